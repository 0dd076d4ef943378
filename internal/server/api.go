package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iwvelando/tjm-calculator/internal/flow"
	"github.com/iwvelando/tjm-calculator/internal/notify"
	"github.com/iwvelando/tjm-calculator/pkg/output"
	"github.com/iwvelando/tjm-calculator/pkg/ratecalc"
	"github.com/iwvelando/tjm-calculator/pkg/validation"
	"go.uber.org/zap"
)

// textField accepts a JSON string, number or null and keeps it as text so
// that the same parsing rules apply to the API and the HTML form.
type textField string

func (f *textField) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = textField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}
	*f = textField(n.String())
	return nil
}

type calculateRequest struct {
	NetTarget    textField `json:"netTarget"`
	Expenses     textField `json:"expenses"`
	BillableDays textField `json:"billableDays"`
	CurrentRate  textField `json:"currentRate"`
}

func (c calculateRequest) raw() ratecalc.RawInput {
	return ratecalc.RawInput{
		NetTarget:    string(c.NetTarget),
		Expenses:     string(c.Expenses),
		BillableDays: string(c.BillableDays),
		CurrentRate:  string(c.CurrentRate),
	}
}

type leadRequest struct {
	Email string           `json:"email"`
	Input calculateRequest `json:"input"`
}

type calculateResponse struct {
	Result      ratecalc.CalculationResult `json:"result"`
	DailyRate   string                     `json:"dailyRate"`
	Verdict     output.VerdictKind         `json:"verdict"`
	VerdictText string                     `json:"verdictText"`
}

type validationResponse struct {
	Error  string            `json:"error"`
	Codes  []string          `json:"codes"`
	Fields map[string]string `json:"fields,omitempty"`
}

const codeInvalidEmail = "InvalidEmail"

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req calculateRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondDecodeError(w, err, "server.handleCalculate")
		return
	}

	result, ok := h.compute(w, req.raw(), "server.handleCalculate")
	if !ok {
		return
	}

	summary := output.BuildSummary(result)
	h.writeJSON(w, http.StatusOK, calculateResponse{
		Result:      result,
		DailyRate:   summary.DailyRate,
		Verdict:     summary.Verdict,
		VerdictText: summary.VerdictText,
	})
}

func (h *handler) handleLead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	const op = "server.handleLead"

	var req leadRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondDecodeError(w, err, op)
		return
	}

	if _, err := validation.NormalizeEmail(req.Email); err != nil {
		h.writeJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Error:  validation.EmailMessage(err),
			Codes:  []string{codeInvalidEmail},
			Fields: map[string]string{"email": validation.EmailMessage(err)},
		})
		return
	}

	f := flow.New(h.logger, h.sender)
	if err := f.Submit(req.Input.raw()); err != nil {
		h.respondValidation(w, err, op)
		return
	}
	result, _ := f.Result()
	h.metrics.ObserveCalculation(result.RequiredDailyRate)

	err := f.SubmitEmail(r.Context(), req.Email)
	h.metrics.ObserveNotification(err)
	if err != nil {
		if errors.Is(err, notify.ErrNotificationFailed) {
			h.respondErrorWithOp(w, http.StatusBadGateway, GenericFailureMessage, op)
			return
		}
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	h.logger.Info("email capture sent",
		zap.String("op", op),
		zap.Float64("requiredDailyRate", result.RequiredDailyRate),
	)
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// compute runs the calculator and writes a 422 on validation failure.
func (h *handler) compute(w http.ResponseWriter, raw ratecalc.RawInput, op string) (ratecalc.CalculationResult, bool) {
	result, err := ratecalc.Compute(ratecalc.ParseInput(raw))
	if err != nil {
		h.respondValidation(w, err, op)
		return ratecalc.CalculationResult{}, false
	}
	h.metrics.ObserveCalculation(result.RequiredDailyRate)
	return result, true
}

func (h *handler) respondValidation(w http.ResponseWriter, err error, op string) {
	var verr *ratecalc.ValidationError
	if !errors.As(err, &verr) {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	codes := make([]string, 0, len(verr.Codes))
	fields := make(map[string]string, len(verr.Codes))
	for _, code := range verr.Codes {
		codes = append(codes, string(code))
		fields[fieldFor(code)] = code.Message()
	}
	h.metrics.ObserveInvalid(codes)

	h.logger.Info("calculation rejected",
		zap.String("op", op),
		zap.Strings("codes", codes),
	)
	h.writeJSON(w, http.StatusUnprocessableEntity, validationResponse{
		Error:  verr.Error(),
		Codes:  codes,
		Fields: fields,
	})
}

func fieldFor(code ratecalc.Code) string {
	switch code {
	case ratecalc.InvalidIncome:
		return "netTarget"
	case ratecalc.InvalidDays:
		return "billableDays"
	case ratecalc.InvalidExpenses:
		return "expenses"
	default:
		return string(code)
	}
}
