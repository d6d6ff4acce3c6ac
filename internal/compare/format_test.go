package compare

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

func sampleSet() *ComparisonSet {
	return &ComparisonSet{
		BaseScenarioName: "Base Plan",
		PlanPath:         "/path/to/plan.yaml",
		BaseResult: &ComparisonResult{
			ScenarioName:     "Base Plan",
			FinalNetWorth:    decimal.NewFromInt(450000),
			FinalCash:        decimal.NewFromInt(150000),
			FinalCpf:         decimal.NewFromInt(300000),
			SavingsGoalMonth: intPtr(36),
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:         "raise_10pct",
				Description:          "Salary rises 10% immediately",
				FinalNetWorth:        decimal.NewFromInt(520000),
				FinalCash:            decimal.NewFromInt(190000),
				FinalCpf:             decimal.NewFromInt(330000),
				SavingsGoalMonth:     intPtr(30),
				NetWorthDiffFromBase: decimal.NewFromInt(70000),
				NetWorthPctFromBase:  decimal.NewFromFloat(15.56),
				CpfDiffFromBase:      decimal.NewFromInt(30000),
				SavingsGoalDiff:      intPtr(-6),
			},
		},
		Recommendations: []string{"Best Net Worth: raise_10pct ends S$70000 ahead of the base plan"},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	result := (&TableFormatter{}).Format(sampleSet())

	for _, want := range []string{
		"PLAN SCENARIO COMPARISON",
		"Base Scenario: Base Plan",
		"Plan: /path/to/plan.yaml",
		"Base Plan (base)",
		"raise_10pct",
		"S$450.0K",
		"month 36",
		"+S$70.0K (15.6%)",
		"6 months sooner",
		"RECOMMENDATIONS",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("expected %q in output:\n%s", want, result)
		}
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	set := sampleSet()
	set.AlternativeResults = nil
	set.Recommendations = nil

	result := (&TableFormatter{}).Format(set)
	if strings.Contains(result, "COMPARISON TO BASE") {
		t.Error("did not expect comparison section without alternatives")
	}
	if strings.Contains(result, "RECOMMENDATIONS") {
		t.Error("did not expect recommendations section")
	}
}

func TestTableFormatter_Helpers(t *testing.T) {
	tf := &TableFormatter{}
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(999), "999"},
		{decimal.NewFromInt(12500), "12.5K"},
		{decimal.NewFromInt(2500000), "2.50M"},
	}
	for _, tt := range tests {
		if got := tf.formatDecimal(tt.in); got != tt.want {
			t.Errorf("formatDecimal(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if tf.money(decimal.NewFromInt(-1500)) != "-S$1.5K" {
		t.Error("unexpected negative money format")
	}
	if tf.truncate("a very long scenario name indeed", 10) != "a very ..." {
		t.Error("unexpected truncation")
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	got := (&TableFormatter{}).FormatCompact(sampleSet())
	if got != "Base: Base Plan | raise_10pct: +S$70.0K" {
		t.Errorf("unexpected compact output %q", got)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleSet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Scenario,Type,Final Net Worth") {
		t.Errorf("unexpected header %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Base Plan,base,450000.00") {
		t.Errorf("unexpected base row %s", lines[1])
	}
	if !strings.HasSuffix(lines[2], "15.56,,-6") {
		t.Errorf("unexpected alternative row %s", lines[2])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{true, false} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(sampleSet())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var decoded struct {
			Plan string `json:"plan"`
			Base         struct {
				ScenarioName  string `json:"scenarioName"`
				FinalNetWorth string `json:"finalNetWorth"`
			} `json:"base"`
			Alternatives []struct {
				ScenarioName    string `json:"scenarioName"`
				SavingsGoalDiff *int   `json:"savingsGoalDiff"`
			} `json:"alternatives"`
			RankByNetWorth  []string `json:"rankByNetWorth"`
			Recommendations []string `json:"recommendations"`
		}
		if err := json.Unmarshal([]byte(out), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Plan != "/path/to/plan.yaml" || decoded.Base.ScenarioName != "Base Plan" {
			t.Errorf("unexpected plan/base %q %q", decoded.Plan, decoded.Base.ScenarioName)
		}
		if decoded.Base.FinalNetWorth != "450000" {
			t.Errorf("unexpected base net worth %q", decoded.Base.FinalNetWorth)
		}
		if len(decoded.Alternatives) != 1 || decoded.Alternatives[0].SavingsGoalDiff == nil || *decoded.Alternatives[0].SavingsGoalDiff != -6 {
			t.Errorf("unexpected alternatives %+v", decoded.Alternatives)
		}
		if strings.Join(decoded.RankByNetWorth, ",") != "raise_10pct,Base Plan" {
			t.Errorf("unexpected ranking %v", decoded.RankByNetWorth)
		}
		if len(decoded.Recommendations) != 1 {
			t.Errorf("unexpected recommendations %v", decoded.Recommendations)
		}
		if pretty != strings.Contains(out, "\n  ") {
			t.Errorf("pretty=%v mismatch", pretty)
		}
	}
}

func TestJSONFormatter_Format_NoAlternatives(t *testing.T) {
	set := sampleSet()
	set.AlternativeResults = nil
	set.Recommendations = nil

	out, err := (&JSONFormatter{}).Format(set)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{`"alternatives":[]`, `"recommendations":[]`, `"rankByNetWorth":["Base Plan"]`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}
