// Package notify forwards a calculation summary and the user's email address
// to a third-party form endpoint.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iwvelando/tjm-calculator/pkg/constants"
	"github.com/iwvelando/tjm-calculator/pkg/format"
	"github.com/iwvelando/tjm-calculator/pkg/ratecalc"
	"go.uber.org/zap"
)

// ErrNotificationFailed is returned for any non-2xx response or transport
// failure. Callers show a single generic retry prompt.
var ErrNotificationFailed = errors.New("notification failed")

// Sender delivers an email capture.
type Sender interface {
	Send(ctx context.Context, email string, result ratecalc.CalculationResult) error
}

// Payload is the JSON body posted to the form endpoint.
type Payload struct {
	Email           string  `json:"email"`
	Regime          string  `json:"regime"`
	URSSAFRate      float64 `json:"urssaf_rate"`
	TargetDailyRate string  `json:"tjm_cible"`
	RequiredRevenue string  `json:"ca_annuel_requis"`
	EstimatedTax    string  `json:"urssaf_estime"`
	AnnualExpenses  string  `json:"frais_annuels"`
	AnnualNetTarget string  `json:"net_annuel_cible"`
	CurrentRate     string  `json:"tjm_actuel"`
	AnnualShortfall string  `json:"manque_annuel"`
}

// NewPayload builds the payload for email and result.
func NewPayload(email string, result ratecalc.CalculationResult) Payload {
	p := Payload{
		Email:           email,
		Regime:          constants.TaxRegime,
		URSSAFRate:      result.TaxRate,
		TargetDailyRate: format.Amount(result.RequiredDailyRate),
		RequiredRevenue: format.Amount(result.RequiredAnnualGrossRevenue),
		EstimatedTax:    format.Amount(result.EstimatedAnnualTax),
		AnnualExpenses:  format.Amount(result.AnnualExpenses),
		AnnualNetTarget: format.Amount(result.AnnualNetTarget),
		CurrentRate:     constants.NotApplicable,
		AnnualShortfall: constants.NotApplicable,
	}
	if result.HasCurrentRate() {
		p.CurrentRate = format.Amount(result.CurrentDailyRate)
	}
	if result.AnnualShortfall > 0 {
		p.AnnualShortfall = format.Amount(result.AnnualShortfall)
	}
	return p
}

// Client posts payloads over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient returns a Client posting to endpoint with the given timeout.
func NewClient(logger *zap.Logger, endpoint string, timeout time.Duration, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send posts the summary for result to the endpoint.
func (c *Client) Send(ctx context.Context, email string, result ratecalc.CalculationResult) error {
	body, err := json.Marshal(NewPayload(email, result))
	if err != nil {
		return fmt.Errorf("%w: encoding payload: %v", ErrNotificationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: building request: %v", ErrNotificationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("notification request failed",
			zap.String("op", "notify.Send"),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("notification endpoint rejected submission",
			zap.String("op", "notify.Send"),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: endpoint returned %s", ErrNotificationFailed, resp.Status)
	}

	c.logger.Debug("notification sent",
		zap.String("op", "notify.Send"),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}
