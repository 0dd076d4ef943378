// Package flow owns the view state of the calculator: the form, the results
// with the email capture, and the thank-you screen.
package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/iwvelando/tjm-calculator/internal/notify"
	"github.com/iwvelando/tjm-calculator/pkg/ratecalc"
	"github.com/iwvelando/tjm-calculator/pkg/validation"
	"go.uber.org/zap"
)

// State is the screen currently shown.
type State int

const (
	StateForm State = iota
	StateResults
	StateThankYou
)

func (s State) String() string {
	switch s {
	case StateForm:
		return "form"
	case StateResults:
		return "results"
	case StateThankYou:
		return "thank_you"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrInvalidTransition is returned when an action is not allowed from the
// current state.
var ErrInvalidTransition = errors.New("action not allowed in current state")

// FieldErrors holds the per-field messages shown next to inputs.
type FieldErrors struct {
	Net      string
	Days     string
	Expenses string
	Email    string
}

// Empty reports whether no field has an error.
func (e FieldErrors) Empty() bool {
	return e == FieldErrors{}
}

// Flow is a single user's pass through the calculator. It is not safe for
// concurrent use.
type Flow struct {
	sender notify.Sender
	logger *zap.Logger

	state  State
	raw    ratecalc.RawInput
	result *ratecalc.CalculationResult
	email  string
	errs   FieldErrors
}

// New returns a Flow on the form screen.
func New(logger *zap.Logger, sender notify.Sender) *Flow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{sender: sender, logger: logger, state: StateForm}
}

// State returns the current screen.
func (f *Flow) State() State { return f.state }

// Input returns the form text last submitted or prefilled.
func (f *Flow) Input() ratecalc.RawInput { return f.raw }

// Result returns the current result, if any.
func (f *Flow) Result() (ratecalc.CalculationResult, bool) {
	if f.result == nil {
		return ratecalc.CalculationResult{}, false
	}
	return *f.result, true
}

// Email returns the address accepted by the last successful capture.
func (f *Flow) Email() string { return f.email }

// Errors returns the current field errors.
func (f *Flow) Errors() FieldErrors { return f.errs }

// Prefill sets the form text without submitting it and clears errors.
func (f *Flow) Prefill(raw ratecalc.RawInput) {
	f.raw = raw
	f.errs = FieldErrors{}
}

// FillExample prefills the form with the example figures.
func (f *Flow) FillExample() {
	f.Prefill(ratecalc.ExampleInput().Raw())
}

// Submit computes the result for raw. On validation failure the flow stays on
// the form and the returned error is a *ratecalc.ValidationError.
func (f *Flow) Submit(raw ratecalc.RawInput) error {
	if f.state != StateForm {
		return ErrInvalidTransition
	}
	f.raw = raw

	result, err := ratecalc.Compute(ratecalc.ParseInput(raw))
	if err != nil {
		f.errs = fieldErrorsFor(err)
		f.logger.Debug("calculation rejected",
			zap.String("op", "flow.Submit"),
			zap.Error(err),
		)
		return err
	}

	f.errs = FieldErrors{}
	f.result = &result
	f.state = StateResults
	f.logger.Debug("calculation complete",
		zap.String("op", "flow.Submit"),
		zap.Float64("requiredDailyRate", result.RequiredDailyRate),
	)
	return nil
}

// SubmitEmail validates email and sends the summary. A notification failure
// keeps the flow on the results screen and wraps notify.ErrNotificationFailed.
func (f *Flow) SubmitEmail(ctx context.Context, email string) error {
	if f.state != StateResults || f.result == nil {
		return ErrInvalidTransition
	}

	normalized, err := validation.NormalizeEmail(email)
	if err != nil {
		f.errs.Email = validation.EmailMessage(err)
		return err
	}
	f.errs.Email = ""
	if f.sender == nil {
		return fmt.Errorf("%w: no sender configured", notify.ErrNotificationFailed)
	}

	if err := f.sender.Send(ctx, normalized, *f.result); err != nil {
		f.logger.Warn("email capture failed",
			zap.String("op", "flow.SubmitEmail"),
			zap.Error(err),
		)
		if !errors.Is(err, notify.ErrNotificationFailed) {
			err = fmt.Errorf("%w: %v", notify.ErrNotificationFailed, err)
		}
		return err
	}

	f.email = normalized
	f.state = StateThankYou
	return nil
}

// Recalculate drops the result and returns to the form. Typed values are kept.
func (f *Flow) Recalculate() {
	f.result = nil
	f.email = ""
	f.errs = FieldErrors{}
	f.state = StateForm
}

func fieldErrorsFor(err error) FieldErrors {
	var verr *ratecalc.ValidationError
	if !errors.As(err, &verr) {
		return FieldErrors{}
	}
	var fe FieldErrors
	for _, code := range verr.Codes {
		switch code {
		case ratecalc.InvalidIncome:
			fe.Net = code.Message()
		case ratecalc.InvalidDays:
			fe.Days = code.Message()
		case ratecalc.InvalidExpenses:
			fe.Expenses = code.Message()
		}
	}
	return fe
}
