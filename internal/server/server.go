// Package server serves the calculator page and its JSON API.
package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/iwvelando/tjm-calculator/internal/config"
	"github.com/iwvelando/tjm-calculator/internal/metrics"
	"github.com/iwvelando/tjm-calculator/internal/notify"
	"github.com/iwvelando/tjm-calculator/pkg/constants"
	"go.uber.org/zap"
)

//go:embed static/* templates/*
var assets embed.FS

// GenericFailureMessage is shown when an email capture cannot be delivered.
const GenericFailureMessage = "Une erreur s'est produite. Veuillez réessayer."

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	sender      notify.Sender
	metrics     *metrics.Metrics
	upsell      config.UpsellConfig
	page        *template.Template
}

// Options carries the collaborators of the handler. Zero values fall back to
// safe defaults.
type Options struct {
	Logger      *zap.Logger
	MaxBodySize int64
	Version     string
	Sender      notify.Sender
	Metrics     *metrics.Metrics
	Upsell      config.UpsellConfig
}

// NewHandler constructs the HTTP handler that serves the web UI and the
// calculation API.
func NewHandler(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	maxBodySize := opts.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	h := &handler{
		logger:      logger,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		sender:      opts.Sender,
		metrics:     m,
		upsell:      opts.Upsell,
		page:        template.Must(template.New("page.html.tmpl").ParseFS(assets, "templates/page.html.tmpl")),
	}

	mux := http.NewServeMux()

	// Server-rendered page and its form posts
	mux.HandleFunc("/", h.handlePage)
	mux.HandleFunc("/calculate", h.handleCalculateForm)
	mux.HandleFunc("/email", h.handleEmailForm)

	// JSON API
	mux.HandleFunc("/api/calculate", h.handleCalculate)
	mux.HandleFunc("/api/lead", h.handleLead)
	mux.HandleFunc("/api/version", h.handleVersion)

	mux.Handle("/metrics", m.Handler())

	// Static assets
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(sub))))

	return h.withRequestLogging(mux)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return errBodyTooLarge
		}
		return fmt.Errorf("failed to decode request: %w", err)
	}
	return nil
}

var errBodyTooLarge = errors.New("request body too large")

func (h *handler) respondDecodeError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, errBodyTooLarge) {
		h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
