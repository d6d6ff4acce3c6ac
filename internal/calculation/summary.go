package calculation

import (
	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/shopspring/decimal"
)

// SummarizeByYear rolls monthly points up into calendar years and estimates
// resident income tax on each year's salary and bonuses. Partial first and last
// years are taxed on the months they contain.
func (ce *CalculationEngine) SummarizeByYear(result *domain.ProjectionResult) []domain.YearSummary {
	if result == nil || len(result.Points) == 0 {
		return nil
	}
	var years []domain.YearSummary
	for _, p := range result.Points {
		if len(years) == 0 || years[len(years)-1].Year != p.Year {
			years = append(years, domain.YearSummary{
				Year:         p.Year,
				Age:          p.Age,
				GrossIncome:  decimal.Zero,
				Bonuses:      decimal.Zero,
				EmployeeCpf:  decimal.Zero,
				EmployerCpf:  decimal.Zero,
				Expenses:     decimal.Zero,
				LoanPayments: decimal.Zero,
				Savings:      decimal.Zero,
			})
		}
		y := &years[len(years)-1]
		y.Months++
		y.GrossIncome = y.GrossIncome.Add(p.MonthlySalary).Add(p.BonusAmount)
		y.Bonuses = y.Bonuses.Add(p.BonusAmount)
		y.EmployeeCpf = y.EmployeeCpf.Add(p.CpfContribution)
		y.EmployerCpf = y.EmployerCpf.Add(p.EmployerCpfContribution)
		y.Expenses = y.Expenses.Add(p.Expenses)
		y.LoanPayments = y.LoanPayments.Add(p.LoanPayment)
		y.Savings = y.Savings.Add(p.MonthlySavings)
		y.ClosingCash = p.CashSavings
		y.ClosingCpf = p.CpfBalance
		y.ClosingLoan = p.LoanRemaining
		y.ClosingNetWorth = p.TotalNetWorth
	}
	for i := range years {
		years[i].EstimatedIncomeTax = ce.TaxCalc.AnnualTax(years[i].GrossIncome, years[i].EmployeeCpf)
	}
	return years
}
