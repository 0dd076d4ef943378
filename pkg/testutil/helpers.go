// Package testutil provides common utility functions for testing.
package testutil

import (
	"context"
	"sync"

	"github.com/iwvelando/tjm-calculator/pkg/ratecalc"
)

// RecordingSender is a notification sender that records every call and
// returns Err. It is safe for concurrent use.
type RecordingSender struct {
	Err error

	mu     sync.Mutex
	calls  int
	email  string
	result ratecalc.CalculationResult
}

// Send records the call.
func (s *RecordingSender) Send(_ context.Context, email string, result ratecalc.CalculationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.email = email
	s.result = result
	return s.Err
}

// Calls returns the number of Send calls.
func (s *RecordingSender) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Last returns the arguments of the most recent Send call.
func (s *RecordingSender) Last() (string, ratecalc.CalculationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email, s.result
}

// ExampleRaw returns the example figures as form text.
func ExampleRaw() ratecalc.RawInput {
	return ratecalc.ExampleInput().Raw()
}
