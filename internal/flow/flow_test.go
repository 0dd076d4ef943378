package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/iwvelando/tjm-calculator/internal/notify"
	"github.com/iwvelando/tjm-calculator/pkg/ratecalc"
	"github.com/iwvelando/tjm-calculator/pkg/testutil"
	"go.uber.org/zap"
)

var exampleRaw = testutil.ExampleRaw()

func TestHappyPath(t *testing.T) {
	sender := &testutil.RecordingSender{}
	f := New(zap.NewNop(), sender)

	if f.State() != StateForm {
		t.Fatalf("initial state = %s, expected form", f.State())
	}
	if err := f.Submit(exampleRaw); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if f.State() != StateResults {
		t.Fatalf("state = %s, expected results", f.State())
	}
	result, ok := f.Result()
	if !ok || result.RequiredDailyRate <= 0 {
		t.Fatalf("expected a result, got %+v (%v)", result, ok)
	}

	if err := f.SubmitEmail(context.Background(), "  jane@example.com "); err != nil {
		t.Fatalf("SubmitEmail() error = %v", err)
	}
	if f.State() != StateThankYou {
		t.Fatalf("state = %s, expected thank_you", f.State())
	}
	sentEmail, sentResult := sender.Last()
	if sender.Calls() != 1 || sentEmail != "jane@example.com" {
		t.Errorf("unexpected sender calls=%d email=%q", sender.Calls(), sentEmail)
	}
	if sentResult != result {
		t.Error("sender received a different result than displayed")
	}
	if f.Email() != "jane@example.com" {
		t.Errorf("Email() = %q", f.Email())
	}

	f.Recalculate()
	if f.State() != StateForm {
		t.Fatalf("state = %s, expected form after recalculate", f.State())
	}
	if _, ok := f.Result(); ok {
		t.Error("expected result to be dropped")
	}
	if f.Email() != "" {
		t.Error("expected email to be cleared")
	}
	if f.Input() != exampleRaw {
		t.Errorf("expected typed values to be kept, got %+v", f.Input())
	}
}

func TestSubmitValidationErrors(t *testing.T) {
	f := New(nil, &testutil.RecordingSender{})

	err := f.Submit(ratecalc.RawInput{NetTarget: "0", Expenses: "-4", BillableDays: ""})
	var verr *ratecalc.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ratecalc.ValidationError, got %v", err)
	}
	if f.State() != StateForm {
		t.Fatalf("state = %s, expected form", f.State())
	}

	errs := f.Errors()
	if errs.Net != "Revenu net invalide." {
		t.Errorf("Net error = %q", errs.Net)
	}
	if errs.Days != "Jours facturables invalides." {
		t.Errorf("Days error = %q", errs.Days)
	}
	if errs.Expenses == "" {
		t.Error("expected an expenses error")
	}

	if err := f.Submit(exampleRaw); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !f.Errors().Empty() {
		t.Errorf("expected errors to be cleared, got %+v", f.Errors())
	}
}

func TestSubmitEmailValidation(t *testing.T) {
	sender := &testutil.RecordingSender{}
	f := New(nil, sender)
	if err := f.Submit(exampleRaw); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	tests := []struct {
		email   string
		message string
	}{
		{"", "Email requis."},
		{"   ", "Email requis."},
		{"not-an-email", "Email invalide."},
	}
	for _, tt := range tests {
		if err := f.SubmitEmail(context.Background(), tt.email); err == nil {
			t.Errorf("SubmitEmail(%q) expected error", tt.email)
		}
		if f.Errors().Email != tt.message {
			t.Errorf("SubmitEmail(%q) message = %q, expected %q", tt.email, f.Errors().Email, tt.message)
		}
		if f.State() != StateResults {
			t.Errorf("state = %s, expected results", f.State())
		}
	}
	if sender.Calls() != 0 {
		t.Errorf("sender called %d times for invalid emails", sender.Calls())
	}
}

func TestSubmitEmailNotificationFailure(t *testing.T) {
	sender := &testutil.RecordingSender{Err: errors.New("connection refused")}
	f := New(nil, sender)
	if err := f.Submit(exampleRaw); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	err := f.SubmitEmail(context.Background(), "jane@example.com")
	if !errors.Is(err, notify.ErrNotificationFailed) {
		t.Fatalf("expected ErrNotificationFailed, got %v", err)
	}
	if f.State() != StateResults {
		t.Fatalf("state = %s, expected results after failure", f.State())
	}
	if _, ok := f.Result(); !ok {
		t.Error("result should survive a notification failure")
	}

	sender.Err = nil
	if err := f.SubmitEmail(context.Background(), "jane@example.com"); err != nil {
		t.Fatalf("retry SubmitEmail() error = %v", err)
	}
	if f.State() != StateThankYou {
		t.Fatalf("state = %s, expected thank_you after retry", f.State())
	}
}

func TestInvalidTransitions(t *testing.T) {
	f := New(nil, &testutil.RecordingSender{})

	if err := f.SubmitEmail(context.Background(), "jane@example.com"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("SubmitEmail() from form = %v, expected ErrInvalidTransition", err)
	}

	if err := f.Submit(exampleRaw); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if err := f.Submit(exampleRaw); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Submit() from results = %v, expected ErrInvalidTransition", err)
	}
}

func TestSubmitEmailOutsideResultsLeavesNoError(t *testing.T) {
	f := New(nil, &testutil.RecordingSender{})

	if err := f.SubmitEmail(context.Background(), "not-an-email"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("SubmitEmail() from form = %v, expected ErrInvalidTransition", err)
	}
	if !f.Errors().Empty() {
		t.Errorf("expected no field errors on the form, got %+v", f.Errors())
	}

	if err := f.Submit(exampleRaw); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if err := f.SubmitEmail(context.Background(), "jane@example.com"); err != nil {
		t.Fatalf("SubmitEmail() error = %v", err)
	}
	if err := f.SubmitEmail(context.Background(), ""); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("SubmitEmail() from thank_you = %v, expected ErrInvalidTransition", err)
	}
	if f.Errors().Email != "" {
		t.Errorf("expected no email error on the thank-you screen, got %q", f.Errors().Email)
	}
	if f.State() != StateThankYou {
		t.Errorf("state = %s, expected thank_you", f.State())
	}
}

func TestNilSender(t *testing.T) {
	f := New(nil, nil)
	if err := f.Submit(exampleRaw); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if err := f.SubmitEmail(context.Background(), "jane@example.com"); !errors.Is(err, notify.ErrNotificationFailed) {
		t.Errorf("expected ErrNotificationFailed without a sender, got %v", err)
	}
}

func TestFillExample(t *testing.T) {
	f := New(nil, nil)
	_ = f.Submit(ratecalc.RawInput{})
	if f.Errors().Empty() {
		t.Fatal("expected errors after empty submit")
	}

	f.FillExample()
	if f.Input() != exampleRaw {
		t.Errorf("Input() = %+v, expected %+v", f.Input(), exampleRaw)
	}
	if !f.Errors().Empty() {
		t.Error("expected FillExample to clear errors")
	}
}

func TestStateString(t *testing.T) {
	if StateThankYou.String() != "thank_you" || StateForm.String() != "form" || State(9).String() != "State(9)" {
		t.Error("unexpected State.String() output")
	}
}

func TestPrefill(t *testing.T) {
	f := New(nil, nil)
	raw := ratecalc.RawInput{NetTarget: "4000", BillableDays: "18"}
	f.Prefill(raw)

	if f.State() != StateForm {
		t.Fatalf("state = %s, expected form", f.State())
	}
	if f.Input() != raw {
		t.Errorf("Input() = %+v, expected %+v", f.Input(), raw)
	}
	if _, ok := f.Result(); ok {
		t.Error("Prefill should not compute a result")
	}
}
