package domain

import "github.com/shopspring/decimal"

// PaymentBreakdown splits one loan payment into interest and principal.
type PaymentBreakdown struct {
	Payment          decimal.Decimal `json:"payment" yaml:"payment"`
	InterestPayment  decimal.Decimal `json:"interestPayment" yaml:"interest_payment"`
	PrincipalPayment decimal.Decimal `json:"principalPayment" yaml:"principal_payment"`
	NewBalance       decimal.Decimal `json:"newBalance" yaml:"new_balance"`
}

// AmortizationRow is one month of a loan schedule.
type AmortizationRow struct {
	Month               int             `json:"month" yaml:"month"`
	Payment             decimal.Decimal `json:"payment" yaml:"payment"`
	Principal           decimal.Decimal `json:"principal" yaml:"principal"`
	Interest            decimal.Decimal `json:"interest" yaml:"interest"`
	Balance             decimal.Decimal `json:"balance" yaml:"balance"`
	CumulativePrincipal decimal.Decimal `json:"cumulativePrincipal" yaml:"cumulative_principal"`
	CumulativeInterest  decimal.Decimal `json:"cumulativeInterest" yaml:"cumulative_interest"`
}

// RemainingTerm is the time needed to clear a balance at a given payment.
// Infinite is set when the payment never reduces the principal.
type RemainingTerm struct {
	Months            int    `json:"months" yaml:"months"`
	Years             int    `json:"years" yaml:"years"`
	RemainderMonths   int    `json:"remainderMonths" yaml:"remainder_months"`
	Infinite          bool   `json:"infinite" yaml:"infinite"`
	FormattedDuration string `json:"formattedDuration" yaml:"formatted_duration"`
}

// InterestSummary totals the cost of a fully amortized loan.
type InterestSummary struct {
	MonthlyPayment decimal.Decimal `json:"monthlyPayment" yaml:"monthly_payment"`
	TotalPaid      decimal.Decimal `json:"totalPaid" yaml:"total_paid"`
	TotalInterest  decimal.Decimal `json:"totalInterest" yaml:"total_interest"`
	Months         int             `json:"months" yaml:"months"`
}

// EarlyPayoffResult compares a baseline schedule with one that pays extra monthly.
type EarlyPayoffResult struct {
	BaselinePayment     decimal.Decimal `json:"baselinePayment" yaml:"baseline_payment"`
	AcceleratedPayment  decimal.Decimal `json:"acceleratedPayment" yaml:"accelerated_payment"`
	BaselineMonths      int             `json:"baselineMonths" yaml:"baseline_months"`
	AcceleratedMonths   int             `json:"acceleratedMonths" yaml:"accelerated_months"`
	MonthsSaved         int             `json:"monthsSaved" yaml:"months_saved"`
	BaselineInterest    decimal.Decimal `json:"baselineInterest" yaml:"baseline_interest"`
	AcceleratedInterest decimal.Decimal `json:"acceleratedInterest" yaml:"accelerated_interest"`
	InterestSaved       decimal.Decimal `json:"interestSaved" yaml:"interest_saved"`
}

// Affordability is the largest loan an income can service.
type Affordability struct {
	MonthlyIncome     decimal.Decimal `json:"monthlyIncome" yaml:"monthly_income"`
	DSRPercent        decimal.Decimal `json:"dsrPercent" yaml:"dsr_percent"`
	MaxMonthlyPayment decimal.Decimal `json:"maxMonthlyPayment" yaml:"max_monthly_payment"`
	MaxLoanAmount     decimal.Decimal `json:"maxLoanAmount" yaml:"max_loan_amount"`
}
