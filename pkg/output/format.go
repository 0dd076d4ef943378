package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iwvelando/tjm-calculator/pkg/ratecalc"
)

var (
	colorBorder = lipgloss.Color("#282726")
	colorMuted  = lipgloss.Color("#6F6E69")
	colorText   = lipgloss.Color("#FFFCF0")
	colorRed    = lipgloss.Color("#D14D41")
	colorGreen  = lipgloss.Color("#879A39")

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(64)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRed)

	rateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText)

	shortfallStyle  = lipgloss.NewStyle().Foreground(colorRed)
	sufficientStyle = lipgloss.NewStyle().Foreground(colorGreen)
	mutedStyle      = lipgloss.NewStyle().Foreground(colorMuted)
)

// PrettyFormat writes a human-readable summary of result to w.
func PrettyFormat(w io.Writer, result ratecalc.CalculationResult) error {
	s := BuildSummary(result)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Votre TJM minimum de rentabilité"))
	b.WriteString("\n")
	b.WriteString(rateStyle.Render(s.DailyRate))
	b.WriteString("\n\n")

	switch s.Verdict {
	case VerdictShortfall:
		b.WriteString(shortfallStyle.Render(s.VerdictText))
		b.WriteString("\n")
		b.WriteString(shortfallStyle.Bold(true).Render(s.VerdictDetail))
	case VerdictSufficient:
		b.WriteString(sufficientStyle.Render(s.VerdictText))
	default:
		b.WriteString(mutedStyle.Render(s.VerdictText))
	}
	b.WriteString("\n\n")

	for _, line := range s.Breakdown {
		value := line.Value
		if line.Subtract {
			value = "- " + value
		}
		b.WriteString(fmt.Sprintf("%-28s %18s\n", line.Label, value))
	}

	if _, err := fmt.Fprintln(w, boxStyle.Render(strings.TrimRight(b.String(), "\n"))); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, mutedStyle.Render(Disclaimer))
	return err
}

// JSONFormat writes result as indented JSON to w.
func JSONFormat(w io.Writer, result ratecalc.CalculationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
