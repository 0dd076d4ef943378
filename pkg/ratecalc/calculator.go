// Package ratecalc computes the minimum day rate (TJM) a freelancer must
// charge to reach a monthly net income under the micro-entreprise service
// regime, where a fixed contribution rate is levied on gross revenue.
//
// Compute is pure: no I/O, no shared state, same input gives same output.
package ratecalc

import (
	"github.com/iwvelando/tjm-calculator/pkg/constants"
	"github.com/iwvelando/tjm-calculator/pkg/mathutil"
)

// TaxRate is the contribution rate applied to gross revenue.
const TaxRate = constants.TaxRate

// CalculationInput holds the monthly figures entered by the user.
// Zero MonthlyExpenses and zero CurrentDailyRate mean "not supplied".
type CalculationInput struct {
	MonthlyNetTarget     float64 `json:"monthlyNetTarget"`
	MonthlyExpenses      float64 `json:"monthlyExpenses"`
	BillableDaysPerMonth float64 `json:"billableDaysPerMonth"`
	CurrentDailyRate     float64 `json:"currentDailyRate"`
}

// CalculationResult is derived from a valid CalculationInput.
type CalculationResult struct {
	RequiredDailyRate          float64 `json:"requiredDailyRate"`
	RequiredAnnualGrossRevenue float64 `json:"requiredAnnualGrossRevenue"`
	EstimatedAnnualTax         float64 `json:"estimatedAnnualTax"`
	// DailyShortfall is signed: negative when the current rate is above the
	// required one. Zero when no current rate was supplied.
	DailyShortfall float64 `json:"dailyShortfall"`
	// AnnualShortfall is only non-zero when DailyShortfall > 0.
	AnnualShortfall float64 `json:"annualShortfall"`

	AnnualNetTarget    float64 `json:"annualNetTarget"`
	AnnualExpenses     float64 `json:"annualExpenses"`
	AnnualBillableDays float64 `json:"annualBillableDays"`
	CurrentDailyRate   float64 `json:"currentDailyRate"`
	TaxRate            float64 `json:"taxRate"`
}

// Compute validates input and derives the required rate, revenue and tax.
// Validation is not short-circuited: a returned *ValidationError lists every
// rule the input broke.
func Compute(input CalculationInput) (CalculationResult, error) {
	if err := Validate(input); err != nil {
		return CalculationResult{}, err
	}

	annualNet := mathutil.Annualize(input.MonthlyNetTarget)
	annualExpenses := mathutil.Annualize(input.MonthlyExpenses)
	annualDays := mathutil.Annualize(input.BillableDaysPerMonth)

	gross := (annualNet + annualExpenses) / (1 - TaxRate)
	dailyRate := gross / annualDays
	tax := gross * TaxRate

	result := CalculationResult{
		RequiredDailyRate:          dailyRate,
		RequiredAnnualGrossRevenue: gross,
		EstimatedAnnualTax:         tax,
		AnnualNetTarget:            annualNet,
		AnnualExpenses:             annualExpenses,
		AnnualBillableDays:         annualDays,
		TaxRate:                    TaxRate,
	}

	if hasCurrentRate(input.CurrentDailyRate) {
		result.CurrentDailyRate = input.CurrentDailyRate
		result.DailyShortfall = dailyRate - input.CurrentDailyRate
		if result.DailyShortfall > 0 {
			result.AnnualShortfall = result.DailyShortfall * annualDays
		}
	}

	return result, nil
}

// Validate checks input against every rule and returns nil or a
// *ValidationError holding all failing codes.
func Validate(input CalculationInput) error {
	var codes []Code
	if !mathutil.IsFinite(input.MonthlyNetTarget) || input.MonthlyNetTarget <= 0 {
		codes = append(codes, InvalidIncome)
	}
	if !mathutil.IsFinite(input.BillableDaysPerMonth) || input.BillableDaysPerMonth <= 0 {
		codes = append(codes, InvalidDays)
	}
	if !mathutil.IsFinite(input.MonthlyExpenses) || input.MonthlyExpenses < 0 {
		codes = append(codes, InvalidExpenses)
	}
	if len(codes) > 0 {
		return &ValidationError{Codes: codes}
	}
	return nil
}

// ExampleInput returns the figures used by the "fill example" action.
func ExampleInput() CalculationInput {
	return CalculationInput{
		MonthlyNetTarget:     constants.ExampleMonthlyNetTarget,
		MonthlyExpenses:      constants.ExampleMonthlyExpenses,
		BillableDaysPerMonth: constants.ExampleBillableDaysPerMonth,
		CurrentDailyRate:     constants.ExampleCurrentDailyRate,
	}
}

// HasCurrentRate reports whether the user supplied a usable current rate.
func (r CalculationResult) HasCurrentRate() bool {
	return hasCurrentRate(r.CurrentDailyRate)
}

// HasShortfall reports whether the current rate is below the required one.
func (r CalculationResult) HasShortfall() bool {
	return r.HasCurrentRate() && r.DailyShortfall > 0
}

// RateIsSufficient reports whether the current rate meets the required rate.
// A rate exactly equal to the required one counts as sufficient.
func (r CalculationResult) RateIsSufficient() bool {
	return r.HasCurrentRate() && r.DailyShortfall <= 0
}

func hasCurrentRate(rate float64) bool {
	return mathutil.IsFinite(rate) && rate > 0
}
