package domain

import "github.com/shopspring/decimal"

// DefaultSavingsGoal is the cash balance that triggers the savings milestone.
var DefaultSavingsGoal = decimal.NewFromInt(100000)

// ProjectionSettings are the user-tunable assumptions of a projection run.
// All rates are annual percentages (3 means 3%).
type ProjectionSettings struct {
	AnnualSalaryIncrease   decimal.Decimal `yaml:"annual_salary_increase" json:"annualSalaryIncrease"`
	AnnualExpenseIncrease  decimal.Decimal `yaml:"annual_expense_increase" json:"annualExpenseIncrease"`
	AnnualInvestmentReturn decimal.Decimal `yaml:"annual_investment_return" json:"annualInvestmentReturn"`
	AnnualCpfInterestRate  decimal.Decimal `yaml:"annual_cpf_interest_rate" json:"annualCpfInterestRate"`
	ProjectionYears        int             `yaml:"projection_years" json:"projectionYears"`
	BonusMonths            int             `yaml:"bonus_months" json:"bonusMonths"`
	BonusAmount            decimal.Decimal `yaml:"bonus_amount" json:"bonusAmount"`
	SavingsGoal            decimal.Decimal `yaml:"savings_goal,omitempty" json:"savingsGoal,omitempty"`
	AnnualInflationRate    decimal.Decimal `yaml:"annual_inflation_rate,omitempty" json:"annualInflationRate,omitempty"`
}

// DefaultProjectionSettings returns the assumptions used when a plan omits settings.
func DefaultProjectionSettings() ProjectionSettings {
	return ProjectionSettings{
		AnnualSalaryIncrease:   decimal.NewFromInt(3),
		AnnualExpenseIncrease:  decimal.NewFromInt(2),
		AnnualInvestmentReturn: decimal.NewFromInt(4),
		AnnualCpfInterestRate:  decimal.NewFromFloat(2.5),
		ProjectionYears:        10,
		BonusMonths:            1,
		BonusAmount:            decimal.Zero,
		SavingsGoal:            DefaultSavingsGoal,
		AnnualInflationRate:    decimal.Zero,
	}
}

// Goal returns the savings goal, defaulting to DefaultSavingsGoal when unset.
func (s ProjectionSettings) Goal() decimal.Decimal {
	if s.SavingsGoal.LessThanOrEqual(decimal.Zero) {
		return DefaultSavingsGoal
	}
	return s.SavingsGoal
}

// TotalMonths is the projection horizon in months.
func (s ProjectionSettings) TotalMonths() int {
	if s.ProjectionYears < 1 {
		return 0
	}
	return s.ProjectionYears * 12
}

// Plan bundles a snapshot with the settings it should be projected under.
type Plan struct {
	Name     string             `yaml:"name,omitempty" json:"name,omitempty"`
	Snapshot FinancialSnapshot  `yaml:"snapshot" json:"snapshot"`
	Settings ProjectionSettings `yaml:"settings" json:"settings"`
}

// DeepCopy returns an independent copy of the plan.
func (p *Plan) DeepCopy() *Plan {
	if p == nil {
		return nil
	}
	c := *p
	c.Snapshot = *p.Snapshot.DeepCopy()
	return &c
}
