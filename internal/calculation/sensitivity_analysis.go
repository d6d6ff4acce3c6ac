package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectionRunner runs a projection. Both CalculationEngine and ProjectionCache satisfy it.
type ProjectionRunner interface {
	RunProjection(ctx context.Context, snapshot *domain.FinancialSnapshot, settings domain.ProjectionSettings) (*domain.ProjectionResult, error)
}

// SensitivityAnalyzer performs parameter sweep analysis
type SensitivityAnalyzer struct {
	runner ProjectionRunner
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer(runner ProjectionRunner) *SensitivityAnalyzer {
	if runner == nil {
		runner = NewCalculationEngine()
	}
	return &SensitivityAnalyzer{runner: runner}
}

// AnalyzeParameter sweeps one projection setting from MinValue to MaxValue in
// Steps values and records the final balances of each run.
func (sa *SensitivityAnalyzer) AnalyzeParameter(ctx context.Context, plan *domain.Plan, parameter domain.SensitivityParameter) (*domain.ParameterSensitivityAnalysis, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan is required")
	}

	base, err := sa.runWith(ctx, plan, parameter.Name, parameter.BaseValue)
	if err != nil {
		return nil, fmt.Errorf("failed to run base projection: %w", err)
	}

	values := generateParameterValues(parameter)
	results := make([]domain.SensitivityResult, 0, len(values))
	for _, value := range values {
		projection, err := sa.runWith(ctx, plan, parameter.Name, value)
		if err != nil {
			return nil, fmt.Errorf("failed to run projection for %s=%s: %w", parameter.Name, value.String(), err)
		}
		results = append(results, sensitivityResult(value, projection, base))
	}

	baseFinal, _ := base.Final()
	return &domain.ParameterSensitivityAnalysis{
		PlanName:  plan.Name,
		Parameter: parameter,
		Results:   results,
		Summary:   calculateSensitivitySummary(results, parameter, baseFinal.TotalNetWorth),
	}, nil
}

// AnalyzeParameters runs AnalyzeParameter for each parameter in turn.
func (sa *SensitivityAnalyzer) AnalyzeParameters(ctx context.Context, plan *domain.Plan, parameters []domain.SensitivityParameter) ([]*domain.ParameterSensitivityAnalysis, error) {
	out := make([]*domain.ParameterSensitivityAnalysis, 0, len(parameters))
	for _, p := range parameters {
		analysis, err := sa.AnalyzeParameter(ctx, plan, p)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze parameter %s: %w", p.Name, err)
		}
		out = append(out, analysis)
	}
	return out, nil
}

func (sa *SensitivityAnalyzer) runWith(ctx context.Context, plan *domain.Plan, name string, value decimal.Decimal) (*domain.ProjectionResult, error) {
	settings, err := ApplySensitivityParameter(plan.Settings, name, value)
	if err != nil {
		return nil, err
	}
	return sa.runner.RunProjection(ctx, &plan.Snapshot, settings)
}

// ApplySensitivityParameter returns settings with the named parameter replaced.
func ApplySensitivityParameter(settings domain.ProjectionSettings, name string, value decimal.Decimal) (domain.ProjectionSettings, error) {
	switch name {
	case domain.SalaryIncreaseParam.Name:
		settings.AnnualSalaryIncrease = value
	case domain.ExpenseIncreaseParam.Name:
		settings.AnnualExpenseIncrease = value
	case domain.InvestmentReturnParam.Name:
		settings.AnnualInvestmentReturn = value
	case domain.CpfInterestParam.Name:
		settings.AnnualCpfInterestRate = value
	case domain.BonusAmountParam.Name:
		settings.BonusAmount = value
	default:
		return settings, fmt.Errorf("unknown sensitivity parameter %q", name)
	}
	return settings, nil
}

// generateParameterValues generates values for a parameter sweep
func generateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	if param.Steps <= 1 {
		return []decimal.Decimal{param.BaseValue}
	}
	values := make([]decimal.Decimal, 0, param.Steps)

	// Calculate step size
	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))

	for i := 0; i < param.Steps; i++ {
		values = append(values, param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))))
	}
	return values
}

func sensitivityResult(value decimal.Decimal, projection, base *domain.ProjectionResult) domain.SensitivityResult {
	final, _ := projection.Final()
	baseFinal, _ := base.Final()
	change := final.TotalNetWorth.Sub(baseFinal.TotalNetWorth)
	changePct := decimal.Zero
	if !baseFinal.TotalNetWorth.IsZero() {
		changePct = change.Div(baseFinal.TotalNetWorth.Abs()).Mul(hundred).Round(2)
	}
	return domain.SensitivityResult{
		ParameterValue:          value,
		FinalNetWorth:           final.TotalNetWorth,
		FinalCash:               final.CashSavings,
		FinalCpf:                final.CpfBalance,
		LoanPaidOffMonth:        projection.LoanPaidOffMonth,
		SavingsGoalReachedMonth: projection.SavingsGoalReachedMonth,
		NetWorthChange:          change,
		NetWorthChangePct:       changePct,
	}
}

// calculateSensitivitySummary calculates overall sensitivity summary. The score
// is the sweep's net worth spread as a percentage of the base net worth.
func calculateSensitivitySummary(results []domain.SensitivityResult, parameter domain.SensitivityParameter, baseNetWorth decimal.Decimal) domain.SensitivitySummary {
	if len(results) == 0 {
		return domain.SensitivitySummary{}
	}
	minNW, maxNW := results[0].FinalNetWorth, results[0].FinalNetWorth
	for _, r := range results[1:] {
		minNW = minDecimal(minNW, r.FinalNetWorth)
		maxNW = maxDecimal(maxNW, r.FinalNetWorth)
	}
	spread := maxNW.Sub(minNW)
	score := decimal.Zero
	if !baseNetWorth.IsZero() {
		score = spread.Div(baseNetWorth.Abs()).Mul(hundred).Round(2)
	}

	summary := domain.SensitivitySummary{
		BaseNetWorth:     baseNetWorth,
		MinNetWorth:      minNW,
		MaxNetWorth:      maxNW,
		Spread:           spread,
		SensitivityScore: score,
	}

	switch {
	case score.GreaterThan(decimal.NewFromInt(50)):
		summary.RiskLevel = "HIGH"
		summary.Recommendations = []string{
			fmt.Sprintf("High sensitivity to %s changes", parameter.Name),
			"Consider conservative assumptions",
		}
	case score.GreaterThan(decimal.NewFromInt(20)):
		summary.RiskLevel = "MEDIUM"
		summary.Recommendations = []string{
			fmt.Sprintf("Moderate sensitivity to %s changes", parameter.Name),
			"Monitor parameter regularly",
		}
	default:
		summary.RiskLevel = "LOW"
		summary.Recommendations = []string{
			fmt.Sprintf("Low sensitivity to %s changes", parameter.Name),
			"Plan appears robust",
		}
	}
	for _, r := range results {
		if r.FinalNetWorth.IsNegative() {
			summary.Recommendations = append(summary.Recommendations,
				fmt.Sprintf("Net worth turns negative at %s = %s", parameter.Name, r.ParameterValue.String()))
			break
		}
	}
	return summary
}
