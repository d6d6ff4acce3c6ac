package calculation

import (
	"testing"

	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/rgehrsitz/sgplan/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "%s: expected %s, got %s", msg, expected, actual.String())
}

func assertDecimalNear(t *testing.T, expected string, actual decimal.Decimal, tolerance string, msg string) {
	t.Helper()
	diff := dec(expected).Sub(actual).Abs()
	assert.True(t, diff.LessThanOrEqual(dec(tolerance)), "%s: expected %s±%s, got %s", msg, expected, tolerance, actual.String())
}

// testSnapshot is a 30-year-old citizen starting Jan 2026 with no loan.
func testSnapshot() *domain.FinancialSnapshot {
	return &domain.FinancialSnapshot{
		PersonalInfo: domain.PersonalInfo{
			Birthday:          dateutil.NewMonthYear(1, 1996),
			StartDate:         dateutil.NewMonthYear(1, 2026),
			EmployeeCategory:  domain.CategoryCitizen,
			CurrentSavings:    dec("20000"),
			CurrentCpfBalance: dec("0"),
			RemainingLoan:     dec("0"),
			MonthlyRepayment:  dec("0"),
			InterestRate:      dec("0"),
		},
		Income: domain.Income{CurrentSalary: dec("5000")},
		Expenses: domain.Expenses{
			Monthly: []domain.ExpenseItem{
				{Name: "Rent", Amount: dec("1500")},
				{Name: "Food", Amount: dec("500")},
			},
		},
	}
}

// flatSettings disables every growth rate so results are easy to reason about.
func flatSettings(years int) domain.ProjectionSettings {
	return domain.ProjectionSettings{
		AnnualSalaryIncrease:   decimal.Zero,
		AnnualExpenseIncrease:  decimal.Zero,
		AnnualInvestmentReturn: decimal.Zero,
		AnnualCpfInterestRate:  decimal.Zero,
		ProjectionYears:        years,
		BonusMonths:            0,
		BonusAmount:            decimal.Zero,
		SavingsGoal:            dec("100000"),
	}
}
