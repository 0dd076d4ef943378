package ratecalc

import (
	"strings"
)

// Code identifies a single validation failure.
type Code string

const (
	// InvalidIncome: monthly net target missing, non-numeric or <= 0.
	InvalidIncome Code = "InvalidIncome"
	// InvalidDays: billable days missing, non-numeric or <= 0.
	InvalidDays Code = "InvalidDays"
	// InvalidExpenses: monthly expenses non-numeric or negative.
	InvalidExpenses Code = "InvalidExpenses"
)

// Message returns the user-facing (French) message for the code.
func (c Code) Message() string {
	switch c {
	case InvalidIncome:
		return "Revenu net invalide."
	case InvalidDays:
		return "Jours facturables invalides."
	case InvalidExpenses:
		return "Dépenses mensuelles invalides."
	default:
		return string(c)
	}
}

// ValidationError is returned by Compute when one or more input rules fail.
type ValidationError struct {
	Codes []Code
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Codes))
	for _, code := range e.Codes {
		parts = append(parts, string(code))
	}
	return "invalid calculation input: " + strings.Join(parts, ", ")
}

// Has reports whether code is among the failures.
func (e *ValidationError) Has(code Code) bool {
	for _, c := range e.Codes {
		if c == code {
			return true
		}
	}
	return false
}
