package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iwvelando/tjm-calculator/pkg/ratecalc"
)

func mustCompute(t *testing.T, input ratecalc.CalculationInput) ratecalc.CalculationResult {
	t.Helper()
	result, err := ratecalc.Compute(input)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	return result
}

func TestBuildSummaryVerdicts(t *testing.T) {
	base := ratecalc.ExampleInput()

	noRate := base
	noRate.CurrentDailyRate = 0

	highRate := base
	highRate.CurrentDailyRate = 500

	tests := []struct {
		name     string
		input    ratecalc.CalculationInput
		expected VerdictKind
		contains string
	}{
		{"Shortfall", base, VerdictShortfall, "il vous manque environ 87€ par jour"},
		{"Sufficient", highRate, VerdictSufficient, "Bonne nouvelle"},
		{"No current rate", noRate, VerdictNoRate, "Ajoutez votre TJM actuel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := BuildSummary(mustCompute(t, tt.input))
			if s.Verdict != tt.expected {
				t.Errorf("Verdict = %s, expected %s", s.Verdict, tt.expected)
			}
			if !strings.Contains(s.VerdictText, tt.contains) {
				t.Errorf("VerdictText = %q, expected to contain %q", s.VerdictText, tt.contains)
			}
			if tt.expected != VerdictShortfall && s.VerdictDetail != "" {
				t.Errorf("unexpected VerdictDetail %q", s.VerdictDetail)
			}
		})
	}
}

func TestBuildSummaryBreakdown(t *testing.T) {
	s := BuildSummary(mustCompute(t, ratecalc.ExampleInput()))

	if s.DailyRate != "237 € / jour" {
		t.Errorf("DailyRate = %q", s.DailyRate)
	}
	if len(s.Breakdown) != 4 {
		t.Fatalf("expected 4 breakdown lines, got %d", len(s.Breakdown))
	}
	if s.Breakdown[1].Label != "URSSAF estimé (21%)" || !s.Breakdown[1].Subtract {
		t.Errorf("unexpected tax line %+v", s.Breakdown[1])
	}
	if !s.Breakdown[3].Total {
		t.Errorf("expected last line to be the total, got %+v", s.Breakdown[3])
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, mustCompute(t, ratecalc.ExampleInput())); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{"TJM minimum", "237 € / jour", "CA annuel requis", "Net cible (annuel)", "Outil indicatif"} {
		if !strings.Contains(out, want) {
			t.Errorf("PrettyFormat output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	result := mustCompute(t, ratecalc.ExampleInput())
	if err := JSONFormat(&buf, result); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded map[string]float64
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode JSON output: %v", err)
	}
	if decoded["requiredDailyRate"] != result.RequiredDailyRate {
		t.Errorf("requiredDailyRate = %v, expected %v", decoded["requiredDailyRate"], result.RequiredDailyRate)
	}
	if decoded["taxRate"] != 0.212 {
		t.Errorf("taxRate = %v, expected 0.212", decoded["taxRate"])
	}
}
