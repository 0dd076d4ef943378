package mathutil

import (
	"math"
	"testing"
)

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Zero", 0, true},
		{"Negative", -12.5, true},
		{"NaN", math.NaN(), false},
		{"Positive infinity", math.Inf(1), false},
		{"Negative infinity", math.Inf(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinite(tt.input); got != tt.expected {
				t.Errorf("IsFinite(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		a, b      float64
		tolerance float64
		expected  bool
	}{
		{"Equal", 236.89, 236.89, 0.01, true},
		{"At the boundary", 1.00, 1.01, 0.011, true},
		{"Outside", 236.8866, 236.80, 0.01, false},
		{"Order does not matter", 236.80, 236.8866, 0.01, false},
		{"NaN never matches", math.NaN(), 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinTolerance(tt.a, tt.b, tt.tolerance); got != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v", tt.a, tt.b, tt.tolerance, got, tt.expected)
			}
		})
	}
}

func TestAnnualize(t *testing.T) {
	if got := Annualize(2500); got != 30000 {
		t.Errorf("Annualize(2500) = %v, expected 30000", got)
	}
	if got := Annualize(0); got != 0 {
		t.Errorf("Annualize(0) = %v, expected 0", got)
	}
}

func TestToPercentage(t *testing.T) {
	if got := ToPercentage(0.212); math.Abs(got-21.2) > 1e-9 {
		t.Errorf("ToPercentage(0.212) = %v, expected 21.2", got)
	}
}
