package domain

import "github.com/shopspring/decimal"

// BracketCrossing reports whether a span of years crosses contribution age boundaries.
type BracketCrossing struct {
	Crosses           bool                `json:"crosses" yaml:"crosses"`
	CrossedBoundaries []int               `json:"crossedBoundaries" yaml:"crossed_boundaries"`
	From              ContributionBracket `json:"from" yaml:"from"`
	To                ContributionBracket `json:"to" yaml:"to"`
}

// AllocationCrossing is BracketCrossing over allocation brackets.
type AllocationCrossing struct {
	Crosses           bool              `json:"crosses" yaml:"crosses"`
	CrossedBoundaries []int             `json:"crossedBoundaries" yaml:"crossed_boundaries"`
	From              AllocationBracket `json:"from" yaml:"from"`
	To                AllocationBracket `json:"to" yaml:"to"`
}

// EmergencyFundAnalysis checks cash against a target number of months of outgoings.
type EmergencyFundAnalysis struct {
	TargetMonths     int             `json:"targetMonths" yaml:"target_months"`
	MonthlyOutgoings decimal.Decimal `json:"monthlyOutgoings" yaml:"monthly_outgoings"`
	CurrentSavings   decimal.Decimal `json:"currentSavings" yaml:"current_savings"`
	TargetAmount     decimal.Decimal `json:"targetAmount" yaml:"target_amount"`
	MonthsCovered    decimal.Decimal `json:"monthsCovered" yaml:"months_covered"`
	Shortfall        decimal.Decimal `json:"shortfall" yaml:"shortfall"` // signed; negative means surplus
	IsAdequate       bool            `json:"isAdequate" yaml:"is_adequate"`
}

// JobLossAnalysis estimates how long cash lasts without salary.
type JobLossAnalysis struct {
	MonthlyExpenses      decimal.Decimal `json:"monthlyExpenses" yaml:"monthly_expenses"`
	MonthlyLoanPayment   decimal.Decimal `json:"monthlyLoanPayment" yaml:"monthly_loan_payment"`
	MonthlyBurn          decimal.Decimal `json:"monthlyBurn" yaml:"monthly_burn"`
	CashAvailable        decimal.Decimal `json:"cashAvailable" yaml:"cash_available"`
	RunwayMonths         decimal.Decimal `json:"runwayMonths" yaml:"runway_months"`
	Indefinite           bool            `json:"indefinite" yaml:"indefinite"`
	DepletionDate        string          `json:"depletionDate,omitempty" yaml:"depletion_date,omitempty"`
	ExpectedSearchMonths int             `json:"expectedSearchMonths" yaml:"expected_search_months"`
	SurvivesSearch       bool            `json:"survivesSearch" yaml:"survives_search"`
	Shortfall            decimal.Decimal `json:"shortfall" yaml:"shortfall"` // signed
}

// HousingAffordabilityAnalysis applies TDSR/MSR limits to a property purchase.
type HousingAffordabilityAnalysis struct {
	PropertyPrice        decimal.Decimal `json:"propertyPrice" yaml:"property_price"`
	DownPayment          decimal.Decimal `json:"downPayment" yaml:"down_payment"`
	MinCashDownPayment   decimal.Decimal `json:"minCashDownPayment" yaml:"min_cash_down_payment"`
	CpfForDownPayment    decimal.Decimal `json:"cpfForDownPayment" yaml:"cpf_for_down_payment"`
	CashForDownPayment   decimal.Decimal `json:"cashForDownPayment" yaml:"cash_for_down_payment"`
	StampDuty            decimal.Decimal `json:"stampDuty" yaml:"stamp_duty"`
	UpfrontCashNeeded    decimal.Decimal `json:"upfrontCashNeeded" yaml:"upfront_cash_needed"`
	LoanAmount           decimal.Decimal `json:"loanAmount" yaml:"loan_amount"`
	MonthlyPayment       decimal.Decimal `json:"monthlyPayment" yaml:"monthly_payment"`
	GrossMonthlyIncome   decimal.Decimal `json:"grossMonthlyIncome" yaml:"gross_monthly_income"`
	TotalMonthlyDebt     decimal.Decimal `json:"totalMonthlyDebt" yaml:"total_monthly_debt"`
	TDSRPercent          decimal.Decimal `json:"tdsrPercent" yaml:"tdsr_percent"`
	MSRPercent           decimal.Decimal `json:"msrPercent" yaml:"msr_percent"`
	MaxLoanUnderTDSR     decimal.Decimal `json:"maxLoanUnderTdsr" yaml:"max_loan_under_tdsr"`
	PassesTDSR           bool            `json:"passesTDSR" yaml:"passes_tdsr"`
	PassesMSR            bool            `json:"passesMSR" yaml:"passes_msr"`
	CanAffordDownPayment bool            `json:"canAffordDownPayment" yaml:"can_afford_down_payment"`
	IsAffordable         bool            `json:"isAffordable" yaml:"is_affordable"`
}

// RetirementReadinessAnalysis projects assets to a retirement age in closed form.
type RetirementReadinessAnalysis struct {
	CurrentAge            int             `json:"currentAge" yaml:"current_age"`
	RetirementAge         int             `json:"retirementAge" yaml:"retirement_age"`
	LifeExpectancy        int             `json:"lifeExpectancy" yaml:"life_expectancy"`
	YearsToRetirement     int             `json:"yearsToRetirement" yaml:"years_to_retirement"`
	YearsInRetirement     int             `json:"yearsInRetirement" yaml:"years_in_retirement"`
	ProjectedCash         decimal.Decimal `json:"projectedCash" yaml:"projected_cash"`
	ProjectedCpf          decimal.Decimal `json:"projectedCpf" yaml:"projected_cpf"`
	ProjectedTotal        decimal.Decimal `json:"projectedTotal" yaml:"projected_total"`
	DesiredMonthlyIncome  decimal.Decimal `json:"desiredMonthlyIncome" yaml:"desired_monthly_income"`
	InflatedMonthlyIncome decimal.Decimal `json:"inflatedMonthlyIncome" yaml:"inflated_monthly_income"`
	RequiredNestEgg       decimal.Decimal `json:"requiredNestEgg" yaml:"required_nest_egg"`
	Shortfall             decimal.Decimal `json:"shortfall" yaml:"shortfall"` // signed
	FundedRatio           decimal.Decimal `json:"fundedRatio" yaml:"funded_ratio"`
	MeetsFRS              bool            `json:"meetsFRS" yaml:"meets_frs"`
	IsAdequate            bool            `json:"isAdequate" yaml:"is_adequate"`
	Crossing              BracketCrossing `json:"crossing" yaml:"crossing"`
}

// SalaryIncreaseAnalysis compares CPF, take-home and tax before and after a raise.
type SalaryIncreaseAnalysis struct {
	CurrentSalary        decimal.Decimal    `json:"currentSalary" yaml:"current_salary"`
	NewSalary            decimal.Decimal    `json:"newSalary" yaml:"new_salary"`
	IncreaseAmount       decimal.Decimal    `json:"increaseAmount" yaml:"increase_amount"`
	IncreasePercent      decimal.Decimal    `json:"increasePercent" yaml:"increase_percent"`
	Current              ContributionResult `json:"current" yaml:"current"`
	Proposed             ContributionResult `json:"proposed" yaml:"proposed"`
	TakeHomeChange       decimal.Decimal    `json:"takeHomeChange" yaml:"take_home_change"`
	AnnualTakeHomeChange decimal.Decimal    `json:"annualTakeHomeChange" yaml:"annual_take_home_change"`
	EmployerCpfChange    decimal.Decimal    `json:"employerCpfChange" yaml:"employer_cpf_change"`
	AnnualTaxChange      decimal.Decimal    `json:"annualTaxChange" yaml:"annual_tax_change"`
	NetAnnualGain        decimal.Decimal    `json:"netAnnualGain" yaml:"net_annual_gain"`
	ExceedsOWCeiling     bool               `json:"exceedsOwCeiling" yaml:"exceeds_ow_ceiling"`
}

// CareerBreakAnalysis estimates the cost of a period without salary.
type CareerBreakAnalysis struct {
	BreakMonths         int             `json:"breakMonths" yaml:"break_months"`
	LostIncome          decimal.Decimal `json:"lostIncome" yaml:"lost_income"`
	LostEmployeeCpf     decimal.Decimal `json:"lostEmployeeCpf" yaml:"lost_employee_cpf"`
	LostEmployerCpf     decimal.Decimal `json:"lostEmployerCpf" yaml:"lost_employer_cpf"`
	LostCpfGrowth       decimal.Decimal `json:"lostCpfGrowth" yaml:"lost_cpf_growth"`
	ExpensesDuringBreak decimal.Decimal `json:"expensesDuringBreak" yaml:"expenses_during_break"`
	SavingsAfterBreak   decimal.Decimal `json:"savingsAfterBreak" yaml:"savings_after_break"` // signed
	MonthsSustainable   int             `json:"monthsSustainable" yaml:"months_sustainable"`
	CanSustain          bool            `json:"canSustain" yaml:"can_sustain"`
	RecoveryMonths      int             `json:"recoveryMonths" yaml:"recovery_months"` // -1 when savings never recover
	Crossing            BracketCrossing `json:"crossing" yaml:"crossing"`
}
