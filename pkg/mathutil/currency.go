// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/tjm-calculator/pkg/constants"
)

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Annualize converts a monthly amount into a yearly one.
func Annualize(monthly float64) float64 {
	return monthly * constants.MonthsPerYear
}

// ToPercentage converts a rate (0.212) to a percentage (21.2).
func ToPercentage(rate float64) float64 {
	return rate * constants.PercentageMultiplier
}
