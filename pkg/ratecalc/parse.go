package ratecalc

import (
	"math"
	"strconv"
	"strings"
)

// RawInput holds the form fields exactly as typed by the user.
type RawInput struct {
	NetTarget    string `json:"netTarget"`
	Expenses     string `json:"expenses"`
	BillableDays string `json:"billableDays"`
	CurrentRate  string `json:"currentRate"`
}

// ParseInput converts raw text into a CalculationInput. Empty optional fields
// become 0. Empty required fields and any unparsable text become NaN so that
// Compute reports them.
func ParseInput(raw RawInput) CalculationInput {
	return CalculationInput{
		MonthlyNetTarget:     parseRequired(raw.NetTarget),
		MonthlyExpenses:      parseOptional(raw.Expenses),
		BillableDaysPerMonth: parseRequired(raw.BillableDays),
		CurrentDailyRate:     parseOptional(raw.CurrentRate),
	}
}

// Raw renders input back to form text, leaving unset optional fields empty.
func (in CalculationInput) Raw() RawInput {
	return RawInput{
		NetTarget:    formatField(in.MonthlyNetTarget, false),
		Expenses:     formatField(in.MonthlyExpenses, true),
		BillableDays: formatField(in.BillableDaysPerMonth, false),
		CurrentRate:  formatField(in.CurrentDailyRate, true),
	}
}

func parseRequired(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	return parseNumber(s)
}

func parseOptional(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	return parseNumber(s)
}

func parseNumber(s string) float64 {
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func formatField(v float64, optional bool) string {
	if math.IsNaN(v) || (optional && v == 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
