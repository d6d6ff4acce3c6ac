package domain

import (
	"github.com/shopspring/decimal"
)

// MilestoneKind names an event detected during a projection.
type MilestoneKind string

const (
	MilestoneLoanPaidOff MilestoneKind = "loan_paid_off"
	MilestoneSavingsGoal MilestoneKind = "savings_goal_reached"
	MilestoneRAFormed    MilestoneKind = "retirement_account_formed"
	MilestoneFRSReached  MilestoneKind = "full_retirement_sum_reached"
	MilestoneBHSReached  MilestoneKind = "basic_healthcare_sum_reached"
)

// Milestone records the first month a condition became true.
type Milestone struct {
	Kind      MilestoneKind `json:"kind" yaml:"kind"`
	Month     int           `json:"month" yaml:"month"`
	DateLabel string        `json:"date" yaml:"date"`
	Label     string        `json:"label" yaml:"label"`
}

// MonthlyProjectionPoint is one simulated month of the household projection.
type MonthlyProjectionPoint struct {
	Month                   int             `json:"month" yaml:"month"`
	DateLabel               string          `json:"date" yaml:"date"`
	Year                    int             `json:"year" yaml:"year"`
	CalendarMonth           int             `json:"calendarMonth" yaml:"calendar_month"`
	AgeLabel                string          `json:"ageLabel" yaml:"age_label"`
	Age                     int             `json:"age" yaml:"age"`
	MonthlySalary           decimal.Decimal `json:"monthlySalary" yaml:"monthly_salary"`
	TakeHomePay             decimal.Decimal `json:"takeHomePay" yaml:"take_home_pay"`
	Expenses                decimal.Decimal `json:"expenses" yaml:"expenses"`
	LoanPayment             decimal.Decimal `json:"loanPayment" yaml:"loan_payment"`
	LoanRemaining           decimal.Decimal `json:"loanRemaining" yaml:"loan_remaining"`
	MonthlySavings          decimal.Decimal `json:"monthlySavings" yaml:"monthly_savings"` // signed
	BonusAmount             decimal.Decimal `json:"bonusAmount" yaml:"bonus_amount"`
	CpfContribution         decimal.Decimal `json:"cpfContribution" yaml:"cpf_contribution"`
	EmployerCpfContribution decimal.Decimal `json:"employerCpfContribution" yaml:"employer_cpf_contribution"`
	TotalCpfContribution    decimal.Decimal `json:"totalCpfContribution" yaml:"total_cpf_contribution"`
	CpfBalance              decimal.Decimal `json:"cpfBalance" yaml:"cpf_balance"`
	CashSavings             decimal.Decimal `json:"cashSavings" yaml:"cash_savings"`
	TotalNetWorth           decimal.Decimal `json:"totalNetWorth" yaml:"total_net_worth"`
	RealNetWorth            decimal.Decimal `json:"realNetWorth" yaml:"real_net_worth"`
	Milestone               string          `json:"milestone,omitempty" yaml:"milestone,omitempty"`
}

// ProjectionResult is the full output of a projection run. The milestone month
// pointers are nil when the condition never became true within the horizon.
type ProjectionResult struct {
	Points                  []MonthlyProjectionPoint `json:"points" yaml:"points"`
	LoanPaidOffMonth        *int                     `json:"loanPaidOffMonth" yaml:"loan_paid_off_month"`
	SavingsGoalReachedMonth *int                     `json:"savingsGoalReachedMonth" yaml:"savings_goal_reached_month"`
	Milestones              []Milestone              `json:"milestones" yaml:"milestones"`
}

// Final returns the last projected month, or false for an empty projection.
func (r *ProjectionResult) Final() (MonthlyProjectionPoint, bool) {
	if r == nil || len(r.Points) == 0 {
		return MonthlyProjectionPoint{}, false
	}
	return r.Points[len(r.Points)-1], true
}

// YearSummary aggregates one calendar year of monthly points.
type YearSummary struct {
	Year               int             `json:"year" yaml:"year"`
	Months             int             `json:"months" yaml:"months"`
	Age                int             `json:"age" yaml:"age"`
	GrossIncome        decimal.Decimal `json:"grossIncome" yaml:"gross_income"`
	Bonuses            decimal.Decimal `json:"bonuses" yaml:"bonuses"`
	EmployeeCpf        decimal.Decimal `json:"employeeCpf" yaml:"employee_cpf"`
	EmployerCpf        decimal.Decimal `json:"employerCpf" yaml:"employer_cpf"`
	EstimatedIncomeTax decimal.Decimal `json:"estimatedIncomeTax" yaml:"estimated_income_tax"`
	Expenses           decimal.Decimal `json:"expenses" yaml:"expenses"`
	LoanPayments       decimal.Decimal `json:"loanPayments" yaml:"loan_payments"`
	Savings            decimal.Decimal `json:"savings" yaml:"savings"`
	ClosingCash        decimal.Decimal `json:"closingCash" yaml:"closing_cash"`
	ClosingCpf         decimal.Decimal `json:"closingCpf" yaml:"closing_cpf"`
	ClosingLoan        decimal.Decimal `json:"closingLoan" yaml:"closing_loan"`
	ClosingNetWorth    decimal.Decimal `json:"closingNetWorth" yaml:"closing_net_worth"`
}

