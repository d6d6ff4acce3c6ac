package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("PLAN SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 88) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.PlanPath != "" {
		sb.WriteString(fmt.Sprintf("Plan: %s\n", compSet.PlanPath))
	}
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Net Worth",
		numWidth, "Cash",
		numWidth, "CPF",
		numWidth, "Goal Reached"))
	sb.WriteString(strings.Repeat("-", 88) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 88) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			sb.WriteString(fmt.Sprintf("  Net Worth:        %sS$%s (%s%%)\n",
				tf.deltaSymbol(alt.NetWorthDiffFromBase),
				tf.formatDecimal(alt.NetWorthDiffFromBase.Abs()),
				alt.NetWorthPctFromBase.StringFixed(1)))

			if !alt.CpfDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  CPF:              %sS$%s\n",
					tf.deltaSymbol(alt.CpfDiffFromBase),
					tf.formatDecimal(alt.CpfDiffFromBase.Abs())))
			}

			if alt.SavingsGoalDiff != nil && *alt.SavingsGoalDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Savings Goal:     %s\n", tf.formatMonths(*alt.SavingsGoalDiff)))
			}
			if alt.LoanPayoffDiff != nil && *alt.LoanPayoffDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Loan Payoff:      %s\n", tf.formatMonths(*alt.LoanPayoffDiff)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	goal := "never"
	if result.SavingsGoalMonth != nil {
		goal = fmt.Sprintf("month %d", *result.SavingsGoalMonth)
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, tf.money(result.FinalNetWorth),
		numWidth, tf.money(result.FinalCash),
		numWidth, tf.money(result.FinalCpf),
		numWidth, goal)
}

func (tf *TableFormatter) money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-S$" + tf.formatDecimal(d.Abs())
	}
	return "S$" + tf.formatDecimal(d)
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) formatMonths(diff int) string {
	if diff < 0 {
		return fmt.Sprintf("%d months sooner", -diff)
	}
	return fmt.Sprintf("%d months later", diff)
}

// deltaSymbol returns a sign prefix for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.NetWorthDiffFromBase.IsPositive() {
			change = fmt.Sprintf("+S$%s", tf.formatDecimal(alt.NetWorthDiffFromBase))
		} else if alt.NetWorthDiffFromBase.IsNegative() {
			change = fmt.Sprintf("-S$%s", tf.formatDecimal(alt.NetWorthDiffFromBase.Abs()))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
