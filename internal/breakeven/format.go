package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/sgplan/internal/output"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format renders a single result.
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SOLVER RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Target:       %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Goal:         %s\n", tf.describeGoal(result)))
	sb.WriteString(fmt.Sprintf("Status:       %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Projections:  %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:  %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("BREAK-EVEN VALUE\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Current:      %s\n", tf.formatValue(result.Target, result.BaseValue)))
	sb.WriteString(fmt.Sprintf("Required:     %s\n", tf.formatValue(result.Target, result.Value)))
	sb.WriteString(fmt.Sprintf("Search range: %s to %s\n",
		tf.formatValue(result.Target, result.SearchMin), tf.formatValue(result.Target, result.SearchMax)))
	sb.WriteString("\n")

	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Final Net Worth:    %s\n", output.FormatCurrency(result.FinalNetWorth)))
	sb.WriteString(fmt.Sprintf("Lowest Cash:        %s\n", output.FormatCurrency(result.LowestCash)))
	sb.WriteString(fmt.Sprintf("Savings Goal:       %s\n", output.FormatMonth(result.SavingsGoalMonth)))
	if !result.NetWorthDiffFromBase.IsZero() {
		sb.WriteString(fmt.Sprintf("Change vs Base:     %s%s\n",
			tf.deltaSymbol(result.NetWorthDiffFromBase), output.FormatCurrency(result.NetWorthDiffFromBase.Abs())))
	}
	sb.WriteString("\n")
	return sb.String()
}

// FormatMulti renders one row per target followed by recommendations.
func (tf *TableFormatter) FormatMulti(result *MultiTargetResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SOLVER RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	if result.PlanName != "" {
		sb.WriteString(fmt.Sprintf("Plan: %s\n", result.PlanName))
	}
	if len(result.Results) > 0 {
		sb.WriteString(fmt.Sprintf("Goal: %s\n", tf.describeGoal(&result.Results[0])))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%-18s %14s %14s %16s %12s\n", "Target", "Current", "Required", "Final Net Worth", "Status"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, r := range result.Results {
		status := "ok"
		if !r.Success {
			status = "unreachable"
		} else if r.AlreadyMet {
			status = "already met"
		}
		sb.WriteString(fmt.Sprintf("%-18s %14s %14s %16s %12s\n",
			tf.truncate(string(r.Target), 18),
			tf.formatValue(r.Target, r.BaseValue),
			tf.formatValue(r.Target, r.Value),
			tf.formatShort(r.FinalNetWorth),
			status))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format encodes any solver result.
func (jf *JSONFormatter) Format(result interface{}) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (tf *TableFormatter) describeGoal(r *SolveResult) string {
	switch r.Goal {
	case GoalSavingsGoal:
		return fmt.Sprintf("reach %s in cash by month %d", output.FormatCurrency(r.TargetAmount), r.ByMonth)
	case GoalNetWorth:
		return fmt.Sprintf("final net worth of at least %s", output.FormatCurrency(r.TargetAmount))
	case GoalNoShortfall:
		return "cash never falls below zero"
	}
	return string(r.Goal)
}

func (tf *TableFormatter) formatValue(t SolveTarget, v decimal.Decimal) string {
	if t.isMoney() {
		return output.FormatCurrency(v)
	}
	return output.FormatPercentage(v)
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Not reachable"
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	if d.GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return sign + "S$" + d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return sign + "S$" + d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return sign + "S$" + d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
