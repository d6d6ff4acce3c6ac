package domain

import (
	"github.com/shopspring/decimal"
)

// SensitivityParameter represents a projection setting to sweep
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"baseValue"`
	Unit        string          `yaml:"unit" json:"unit"` // "percent", "dollars", "years"
	Description string          `yaml:"description" json:"description"`
}

// ParameterSensitivityAnalysis is the outcome of sweeping one parameter
type ParameterSensitivityAnalysis struct {
	PlanName  string               `json:"planName"`
	Parameter SensitivityParameter `json:"parameter"`
	Results   []SensitivityResult  `json:"results"`
	Summary   SensitivitySummary   `json:"summary"`
}

// SensitivityResult holds the key metrics of one projection in the sweep
type SensitivityResult struct {
	ParameterValue          decimal.Decimal `json:"parameterValue"`
	FinalNetWorth           decimal.Decimal `json:"finalNetWorth"`
	FinalCash               decimal.Decimal `json:"finalCash"`
	FinalCpf                decimal.Decimal `json:"finalCpf"`
	LoanPaidOffMonth        *int            `json:"loanPaidOffMonth"`
	SavingsGoalReachedMonth *int            `json:"savingsGoalReachedMonth"`
	NetWorthChange          decimal.Decimal `json:"netWorthChange"`    // vs base value
	NetWorthChangePct       decimal.Decimal `json:"netWorthChangePct"` // vs base value
}

// SensitivitySummary provides overall analysis summary
type SensitivitySummary struct {
	BaseNetWorth     decimal.Decimal `json:"baseNetWorth"`
	MinNetWorth      decimal.Decimal `json:"minNetWorth"`
	MaxNetWorth      decimal.Decimal `json:"maxNetWorth"`
	Spread           decimal.Decimal `json:"spread"`
	SensitivityScore decimal.Decimal `json:"sensitivityScore"` // % net worth change per % parameter change
	RiskLevel        string          `json:"riskLevel"`        // "LOW", "MEDIUM", "HIGH"
	Recommendations  []string        `json:"recommendations"`
}

// Common sensitivity parameters (annual percentages, matching ProjectionSettings)
var (
	SalaryIncreaseParam = SensitivityParameter{
		Name:        "salary_increase",
		MinValue:    decimal.NewFromInt(0),
		MaxValue:    decimal.NewFromInt(6),
		Steps:       7,
		BaseValue:   decimal.NewFromInt(3),
		Unit:        "percent",
		Description: "Annual salary growth",
	}

	ExpenseIncreaseParam = SensitivityParameter{
		Name:        "expense_increase",
		MinValue:    decimal.NewFromInt(0),
		MaxValue:    decimal.NewFromInt(5),
		Steps:       6,
		BaseValue:   decimal.NewFromInt(2),
		Unit:        "percent",
		Description: "Annual growth of living expenses",
	}

	InvestmentReturnParam = SensitivityParameter{
		Name:        "investment_return",
		MinValue:    decimal.NewFromInt(0),
		MaxValue:    decimal.NewFromInt(8),
		Steps:       5,
		BaseValue:   decimal.NewFromInt(4),
		Unit:        "percent",
		Description: "Annual return on cash savings",
	}

	CpfInterestParam = SensitivityParameter{
		Name:        "cpf_interest",
		MinValue:    decimal.NewFromFloat(2.5),
		MaxValue:    decimal.NewFromInt(5),
		Steps:       6,
		BaseValue:   decimal.NewFromFloat(2.5),
		Unit:        "percent",
		Description: "Blended CPF interest rate used by the monthly projection",
	}

	BonusAmountParam = SensitivityParameter{
		Name:        "bonus_amount",
		MinValue:    decimal.Zero,
		MaxValue:    decimal.NewFromInt(20000),
		Steps:       5,
		BaseValue:   decimal.Zero,
		Unit:        "dollars",
		Description: "Bonus paid in each eligible bonus month",
	}
)

// GetCommonParameters returns the built-in parameter set
func GetCommonParameters() []SensitivityParameter {
	return []SensitivityParameter{
		SalaryIncreaseParam,
		ExpenseIncreaseParam,
		InvestmentReturnParam,
		CpfInterestParam,
		BonusAmountParam,
	}
}

// LookupParameter finds a common parameter by name
func LookupParameter(name string) (SensitivityParameter, bool) {
	for _, p := range GetCommonParameters() {
		if p.Name == name {
			return p, true
		}
	}
	return SensitivityParameter{}, false
}
