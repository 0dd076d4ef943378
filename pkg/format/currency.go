// Package format renders amounts the way the French calculator page shows
// them: whole euros, fr-FR digit grouping.
package format

import (
	"strings"

	"github.com/iwvelando/tjm-calculator/pkg/mathutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// GroupSeparator is the narrow no-break space browsers use for fr-FR
// grouping. x/text emits a regular no-break space instead.
const GroupSeparator = "\u202f"

var (
	printer        = message.NewPrinter(language.French)
	groupSeparator = strings.NewReplacer("\u00a0", GroupSeparator)
)

// Whole rounds amount to the nearest euro, halves away from zero.
// Non-finite values round to 0.
func Whole(amount float64) int64 {
	if !mathutil.IsFinite(amount) {
		return 0
	}
	return decimal.NewFromFloat(amount).Round(0).IntPart()
}

// Amount returns amount without decimals and with French thousands
// separators (e.g. "42 640"). No currency symbol.
func Amount(amount float64) string {
	return groupSeparator.Replace(printer.Sprintf("%d", Whole(amount)))
}

// Euro returns Amount followed by the euro sign (e.g. "237 €").
func Euro(amount float64) string {
	return Amount(amount) + " €"
}

// Percent renders a rate as a whole percentage (0.212 -> "21%").
func Percent(rate float64) string {
	return Amount(mathutil.ToPercentage(rate)) + "%"
}
