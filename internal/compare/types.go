package compare

import (
	"fmt"

	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string `json:"scenarioName"`
	Description  string `json:"description,omitempty"`

	// Key Metrics
	FinalNetWorth     decimal.Decimal `json:"finalNetWorth"`
	FinalRealNetWorth decimal.Decimal `json:"finalRealNetWorth"`
	FinalCash         decimal.Decimal `json:"finalCash"`
	FinalCpf          decimal.Decimal `json:"finalCpf"`
	LowestCash        decimal.Decimal `json:"lowestCash"`
	LowestCashMonth   int             `json:"lowestCashMonth"`
	LoanPaidOffMonth  *int            `json:"loanPaidOffMonth"`
	SavingsGoalMonth  *int            `json:"savingsGoalMonth"`

	// Comparison to Base
	NetWorthDiffFromBase decimal.Decimal `json:"netWorthDiffFromBase"`
	NetWorthPctFromBase  decimal.Decimal `json:"netWorthPctFromBase"`
	CashDiffFromBase     decimal.Decimal `json:"cashDiffFromBase"`
	CpfDiffFromBase      decimal.Decimal `json:"cpfDiffFromBase"`
	LoanPayoffDiff       *int            `json:"loanPayoffDiff,omitempty"`  // months, negative is earlier
	SavingsGoalDiff      *int            `json:"savingsGoalDiff,omitempty"` // months, negative is earlier
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	PlanPath           string             `json:"planPath,omitempty"`
}

// MetricsCalculator extracts key metrics from projection results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a projection
func (mc *MetricsCalculator) CalculateMetrics(name string, projection *domain.ProjectionResult) ComparisonResult {
	result := ComparisonResult{ScenarioName: name}
	if projection == nil {
		return result
	}

	result.LoanPaidOffMonth = projection.LoanPaidOffMonth
	result.SavingsGoalMonth = projection.SavingsGoalReachedMonth

	final, ok := projection.Final()
	if !ok {
		return result
	}
	result.FinalNetWorth = final.TotalNetWorth
	result.FinalRealNetWorth = final.RealNetWorth
	result.FinalCash = final.CashSavings
	result.FinalCpf = final.CpfBalance

	result.LowestCash = projection.Points[0].CashSavings
	result.LowestCashMonth = projection.Points[0].Month
	for _, p := range projection.Points[1:] {
		if p.CashSavings.LessThan(result.LowestCash) {
			result.LowestCash = p.CashSavings
			result.LowestCashMonth = p.Month
		}
	}

	return result
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.NetWorthDiffFromBase = scenario.FinalNetWorth.Sub(base.FinalNetWorth)

	if !base.FinalNetWorth.IsZero() {
		scenario.NetWorthPctFromBase = scenario.NetWorthDiffFromBase.
			Div(base.FinalNetWorth.Abs()).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	scenario.CashDiffFromBase = scenario.FinalCash.Sub(base.FinalCash)
	scenario.CpfDiffFromBase = scenario.FinalCpf.Sub(base.FinalCpf)
	scenario.LoanPayoffDiff = monthDiff(scenario.LoanPaidOffMonth, base.LoanPaidOffMonth)
	scenario.SavingsGoalDiff = monthDiff(scenario.SavingsGoalMonth, base.SavingsGoalMonth)

	return scenario
}

// monthDiff is only defined when both milestones were reached.
func monthDiff(a, b *int) *int {
	if a == nil || b == nil {
		return nil
	}
	d := *a - *b
	return &d
}

func earlier(a, b *int) bool {
	if a == nil {
		return false
	}
	return b == nil || *a < *b
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Find best scenario by final net worth
	best := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FinalNetWorth.GreaterThan(best.FinalNetWorth) {
			best = alt
		}
	}
	if best != base {
		recommendations = append(recommendations,
			"Best Net Worth: "+best.ScenarioName+" ends S$"+best.FinalNetWorth.Sub(base.FinalNetWorth).StringFixed(0)+
				" ahead of the base plan")
	}

	// Earliest savings goal
	goal := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if earlier(alt.SavingsGoalMonth, goal.SavingsGoalMonth) {
			goal = alt
		}
	}
	if goal != base {
		if base.SavingsGoalMonth == nil {
			recommendations = append(recommendations,
				fmt.Sprintf("Savings Goal: %s reaches the goal in month %d; the base plan never does", goal.ScenarioName, *goal.SavingsGoalMonth))
		} else {
			recommendations = append(recommendations,
				fmt.Sprintf("Savings Goal: %s reaches the goal %d months sooner", goal.ScenarioName, *base.SavingsGoalMonth-*goal.SavingsGoalMonth))
		}
	}

	// Earliest loan payoff
	loan := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if earlier(alt.LoanPaidOffMonth, loan.LoanPaidOffMonth) {
			loan = alt
		}
	}
	if loan != base {
		if base.LoanPaidOffMonth == nil {
			recommendations = append(recommendations,
				fmt.Sprintf("Debt Free: %s clears the loan in month %d; the base plan does not within the horizon", loan.ScenarioName, *loan.LoanPaidOffMonth))
		} else {
			recommendations = append(recommendations,
				fmt.Sprintf("Debt Free: %s clears the loan %d months sooner", loan.ScenarioName, *base.LoanPaidOffMonth-*loan.LoanPaidOffMonth))
		}
	}

	// Liquidity warnings
	for _, alt := range compSet.AlternativeResults {
		if alt.LowestCash.IsNegative() {
			recommendations = append(recommendations,
				fmt.Sprintf("Cash Warning: %s runs out of cash in month %d (low of S$%s)", alt.ScenarioName, alt.LowestCashMonth, alt.LowestCash.StringFixed(0)))
		}
	}

	return recommendations
}
