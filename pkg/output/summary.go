// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"fmt"

	"github.com/iwvelando/tjm-calculator/pkg/format"
	"github.com/iwvelando/tjm-calculator/pkg/ratecalc"
)

// Disclaimer is shown under every form and result.
const Disclaimer = "Outil indicatif. Estimation basée sur le taux URSSAF 2026 pour micro-entreprise en prestations de services. Hors TVA, CFE, versement libératoire et autres cas particuliers."

// VerdictKind classifies the current rate against the required one.
type VerdictKind string

const (
	VerdictShortfall  VerdictKind = "shortfall"
	VerdictSufficient VerdictKind = "sufficient"
	VerdictNoRate     VerdictKind = "no_rate"
)

// Line is one row of the yearly breakdown.
type Line struct {
	Label    string
	Value    string
	Subtract bool
	Total    bool
}

// Summary is the display model shared by the terminal and web renderers.
type Summary struct {
	DailyRate   string
	Verdict     VerdictKind
	VerdictText string
	// VerdictDetail carries the annual loss line for a shortfall.
	VerdictDetail string
	Breakdown     []Line
}

// BuildSummary turns a result into display strings.
func BuildSummary(result ratecalc.CalculationResult) Summary {
	s := Summary{
		DailyRate: format.Euro(result.RequiredDailyRate) + " / jour",
		Breakdown: []Line{
			{Label: "CA annuel requis", Value: format.Euro(result.RequiredAnnualGrossRevenue)},
			{Label: fmt.Sprintf("URSSAF estimé (%s)", format.Percent(result.TaxRate)), Value: format.Euro(result.EstimatedAnnualTax), Subtract: true},
			{Label: "Frais pro (annuel)", Value: format.Euro(result.AnnualExpenses), Subtract: true},
			{Label: "Net cible (annuel)", Value: format.Euro(result.AnnualNetTarget), Total: true},
		},
	}

	current := format.Amount(result.CurrentDailyRate) + "€/jour"
	switch {
	case result.HasShortfall():
		s.Verdict = VerdictShortfall
		s.VerdictText = fmt.Sprintf("Si vous facturez %s, il vous manque environ %s€ par jour.",
			current, format.Amount(result.DailyShortfall))
		s.VerdictDetail = fmt.Sprintf("Soit environ %s€ par an.", format.Amount(result.AnnualShortfall))
	case result.RateIsSufficient():
		s.Verdict = VerdictSufficient
		s.VerdictText = fmt.Sprintf("Bonne nouvelle : à %s, vous êtes au-dessus de votre minimum de rentabilité (selon cette estimation).", current)
	default:
		s.Verdict = VerdictNoRate
		s.VerdictText = "Ajoutez votre TJM actuel pour voir l’écart et le manque à gagner."
	}

	return s
}
