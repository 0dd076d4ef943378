package server

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/iwvelando/tjm-calculator/internal/config"
	"github.com/iwvelando/tjm-calculator/internal/flow"
	"github.com/iwvelando/tjm-calculator/pkg/format"
	"github.com/iwvelando/tjm-calculator/pkg/output"
	"github.com/iwvelando/tjm-calculator/pkg/ratecalc"
	"go.uber.org/zap"
)

type pageData struct {
	State         string
	Input         ratecalc.RawInput
	Errors        flow.FieldErrors
	Summary       *output.Summary
	Email         string
	FailureNotice string
	Upsell        config.UpsellConfig
	UpsellPrice   string
	Recalculate   string
	Disclaimer    string
	Version       string
}

func (h *handler) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	f := flow.New(h.logger, h.sender)
	q := r.URL.Query()
	if q.Get("example") != "" {
		f.FillExample()
	} else {
		// Recalculate links carry the previous values back to the form.
		f.Prefill(rawFromValues(q))
	}

	h.render(w, f, "")
}

func (h *handler) handleCalculateForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if !h.parseForm(w, r) {
		return
	}

	f := flow.New(h.logger, h.sender)
	if err := f.Submit(rawFromValues(r.PostForm)); err != nil {
		var verr *ratecalc.ValidationError
		if errors.As(err, &verr) {
			codes := make([]string, 0, len(verr.Codes))
			for _, c := range verr.Codes {
				codes = append(codes, string(c))
			}
			h.metrics.ObserveInvalid(codes)
		}
	} else {
		result, _ := f.Result()
		h.metrics.ObserveCalculation(result.RequiredDailyRate)
	}

	h.render(w, f, "")
}

func (h *handler) handleEmailForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if !h.parseForm(w, r) {
		return
	}

	f := flow.New(h.logger, h.sender)
	if err := f.Submit(rawFromValues(r.PostForm)); err != nil {
		// The hidden fields were tampered with; show the form again.
		h.render(w, f, "")
		return
	}

	notice := ""
	err := f.SubmitEmail(r.Context(), r.PostForm.Get("email"))
	if f.Errors().Email == "" {
		h.metrics.ObserveNotification(err)
		if err != nil {
			notice = GenericFailureMessage
		}
	}

	h.render(w, f, notice)
}

func (h *handler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *handler) render(w http.ResponseWriter, f *flow.Flow, notice string) {
	data := pageData{
		State:         f.State().String(),
		Input:         f.Input(),
		Errors:        f.Errors(),
		Email:         f.Email(),
		FailureNotice: notice,
		Upsell:        h.upsell,
		UpsellPrice:   format.Amount(h.upsell.Price) + "€",
		Recalculate:   recalculateURL(f.Input()),
		Disclaimer:    output.Disclaimer,
		Version:       h.version,
	}
	if result, ok := f.Result(); ok {
		s := output.BuildSummary(result)
		data.Summary = &s
	}

	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		h.logger.Error("failed to render page",
			zap.String("op", "server.render"),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func rawFromValues(v url.Values) ratecalc.RawInput {
	return ratecalc.RawInput{
		NetTarget:    strings.TrimSpace(v.Get("net")),
		Expenses:     strings.TrimSpace(v.Get("expenses")),
		BillableDays: strings.TrimSpace(v.Get("days")),
		CurrentRate:  strings.TrimSpace(v.Get("current")),
	}
}

func recalculateURL(raw ratecalc.RawInput) string {
	q := url.Values{}
	for key, value := range map[string]string{
		"net":      raw.NetTarget,
		"expenses": raw.Expenses,
		"days":     raw.BillableDays,
		"current":  raw.CurrentRate,
	} {
		if value != "" {
			q.Set(key, value)
		}
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}
