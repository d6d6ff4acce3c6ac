package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Final Net Worth",
		"Final Real Net Worth",
		"Final Cash",
		"Final CPF",
		"Lowest Cash",
		"Loan Paid Off Month",
		"Savings Goal Month",
		"Net Worth Diff from Base",
		"Net Worth % Change",
		"Loan Payoff Diff",
		"Savings Goal Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.FinalNetWorth.StringFixed(2),
		result.FinalRealNetWorth.StringFixed(2),
		result.FinalCash.StringFixed(2),
		result.FinalCpf.StringFixed(2),
		result.LowestCash.StringFixed(2),
		formatOptionalInt(result.LoanPaidOffMonth),
		formatOptionalInt(result.SavingsGoalMonth),
		result.NetWorthDiffFromBase.StringFixed(2),
		result.NetWorthPctFromBase.StringFixed(2),
		formatOptionalInt(result.LoanPayoffDiff),
		formatOptionalInt(result.SavingsGoalDiff),
	}
}

func formatOptionalInt(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}
