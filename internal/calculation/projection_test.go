package calculation

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/rgehrsitz/sgplan/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runProjection(t *testing.T, snap *domain.FinancialSnapshot, settings domain.ProjectionSettings) *domain.ProjectionResult {
	t.Helper()
	result, err := NewCalculationEngine().RunProjection(context.Background(), snap, settings)
	require.NoError(t, err)
	return result
}

func TestRunProjection_FlatCashFlow(t *testing.T) {
	result := runProjection(t, testSnapshot(), flatSettings(1))
	require.Len(t, result.Points, 12)

	first := result.Points[0]
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, "Jan 2026", first.DateLabel)
	assert.Equal(t, "30y 0m", first.AgeLabel)
	assertDecimal(t, "4000", first.TakeHomePay, "take home")
	assertDecimal(t, "2000", first.Expenses, "expenses")
	assertDecimal(t, "2000", first.MonthlySavings, "savings")
	assertDecimal(t, "1000", first.CpfContribution, "employee CPF")
	assertDecimal(t, "850", first.EmployerCpfContribution, "employer CPF")
	assertDecimal(t, "22000", first.CashSavings, "cash")

	last := result.Points[11]
	assertDecimal(t, "44000", last.CashSavings, "cash after a year")
	assertDecimal(t, "22200", last.CpfBalance, "CPF after a year")
	assertDecimal(t, "66200", last.TotalNetWorth, "net worth")
	assertDecimal(t, "66200", last.RealNetWorth, "no inflation")
}

// A loan that is already zero is never "paid off" and never charged.
func TestRunProjection_NoLoan(t *testing.T) {
	result := runProjection(t, testSnapshot(), flatSettings(5))
	require.Len(t, result.Points, 60)
	assert.Nil(t, result.LoanPaidOffMonth)
	for _, p := range result.Points {
		assert.True(t, p.LoanPayment.IsZero(), "month %d loan payment", p.Month)
		assert.True(t, p.LoanRemaining.IsZero(), "month %d loan remaining", p.Month)
	}
}

func TestRunProjection_LoanPaidOffOnce(t *testing.T) {
	snap := testSnapshot()
	snap.PersonalInfo.RemainingLoan = dec("10000")
	snap.PersonalInfo.MonthlyRepayment = dec("1000")

	result := runProjection(t, snap, flatSettings(2))
	require.NotNil(t, result.LoanPaidOffMonth)
	assert.Equal(t, 10, *result.LoanPaidOffMonth)
	assert.True(t, result.Points[9].LoanRemaining.IsZero())
	assert.Contains(t, result.Points[9].Milestone, "Loan paid off")

	count := 0
	for _, m := range result.Milestones {
		if m.Kind == domain.MilestoneLoanPaidOff {
			count++
		}
	}
	assert.Equal(t, 1, count, "loan milestone recorded once")
	for _, p := range result.Points[10:] {
		assert.True(t, p.LoanPayment.IsZero(), "no payment after payoff (month %d)", p.Month)
		assert.Empty(t, p.Milestone)
	}
}

func TestRunProjection_LoanBalanceNonIncreasing(t *testing.T) {
	snap := testSnapshot()
	snap.PersonalInfo.RemainingLoan = dec("50000")
	snap.PersonalInfo.MonthlyRepayment = dec("1500")
	snap.PersonalInfo.InterestRate = dec("4.5")

	result := runProjection(t, snap, flatSettings(5))
	prev := dec("50000")
	for _, p := range result.Points {
		assert.True(t, p.LoanRemaining.LessThanOrEqual(prev), "month %d loan increased", p.Month)
		prev = p.LoanRemaining
	}
	require.NotNil(t, result.LoanPaidOffMonth)
	assert.True(t, result.Points[*result.LoanPaidOffMonth-1].LoanRemaining.IsZero())
	assert.True(t, result.Points[*result.LoanPaidOffMonth-2].LoanRemaining.IsPositive())
}

func TestRunProjection_SavingsGoalFirstMonthOnly(t *testing.T) {
	result := runProjection(t, testSnapshot(), flatSettings(5))
	require.NotNil(t, result.SavingsGoalReachedMonth)
	month := *result.SavingsGoalReachedMonth
	assert.Equal(t, 40, month)

	for _, p := range result.Points[:month-1] {
		assert.True(t, p.CashSavings.LessThan(dec("100000")), "month %d already above goal", p.Month)
	}
	assert.True(t, result.Points[month-1].CashSavings.GreaterThanOrEqual(dec("100000")))
	assert.Len(t, result.Milestones, 1)
}

func TestRunProjection_SavingsGoalNeverReached(t *testing.T) {
	snap := testSnapshot()
	snap.Expenses.Monthly = append(snap.Expenses.Monthly, domain.ExpenseItem{Name: "Everything", Amount: dec("2000")})
	result := runProjection(t, snap, flatSettings(2))
	assert.Nil(t, result.SavingsGoalReachedMonth)
}

func TestRunProjection_Bonuses(t *testing.T) {
	snap := testSnapshot()
	snap.YearlyBonuses = []domain.YearlyBonus{{Month: 3, Year: 2026, Amount: dec("5000"), Description: "sign-on"}}
	settings := flatSettings(1)
	settings.BonusMonths = 2
	settings.BonusAmount = dec("10000")

	result := runProjection(t, snap, settings)
	for _, p := range result.Points {
		switch p.CalendarMonth {
		case 12, 6:
			assertDecimal(t, "10000", p.BonusAmount, p.DateLabel)
			assertDecimal(t, "14000", p.TakeHomePay, p.DateLabel)
			assertDecimal(t, "22000", p.MonthlySavings, "bonus credited on top of take-home")
		case 3:
			assertDecimal(t, "5000", p.BonusAmount, p.DateLabel)
		default:
			assert.True(t, p.BonusAmount.IsZero(), p.DateLabel)
		}
	}
}

func TestBonusMonthSet(t *testing.T) {
	assert.Empty(t, BonusMonthSet(0))
	assert.Equal(t, map[int]bool{12: true}, BonusMonthSet(1))
	assert.Equal(t, map[int]bool{12: true, 6: true, 3: true}, BonusMonthSet(3))
	assert.Len(t, BonusMonthSet(20), 12)
}

func TestRunProjection_YearlyExpenses(t *testing.T) {
	end := 2027
	snap := testSnapshot()
	snap.Expenses.Yearly = []domain.YearlyExpense{
		{Name: "Insurance", Amount: dec("1200"), Month: 7, StartYear: 2026, EndYear: &end},
		{Name: "Wedding", Amount: dec("30000"), Month: 9, StartYear: 2026},
	}
	result := runProjection(t, snap, flatSettings(3))

	assertDecimal(t, "3200", result.Points[6].Expenses, "Jul 2026")
	assertDecimal(t, "32000", result.Points[8].Expenses, "Sep 2026 one-time")
	assertDecimal(t, "3200", result.Points[18].Expenses, "Jul 2027")
	assertDecimal(t, "2000", result.Points[20].Expenses, "Sep 2027 one-time not repeated")
	assertDecimal(t, "2000", result.Points[30].Expenses, "Jul 2028 after end year")
}

func TestRunProjection_SalaryAdjustmentExactMatch(t *testing.T) {
	snap := testSnapshot()
	snap.Income.SalaryAdjustments = []domain.SalaryAdjustment{
		{Month: 3, Year: 2026, NewSalary: dec("6000")},
		{Month: 5, Year: 2010, NewSalary: dec("99999")},
	}
	result := runProjection(t, snap, flatSettings(1))

	assertDecimal(t, "5000", result.Points[1].MonthlySalary, "Feb")
	assertDecimal(t, "6000", result.Points[2].MonthlySalary, "Mar")
	assertDecimal(t, "6000", result.Points[11].MonthlySalary, "Dec; past adjustment never applied")
}

func TestRunProjection_BracketResolvedEveryMonth(t *testing.T) {
	snap := testSnapshot()
	snap.PersonalInfo.Birthday = dateutil.NewMonthYear(6, 1970)

	result := runProjection(t, snap, flatSettings(1))
	assert.Equal(t, 55, result.Points[4].Age)
	assertDecimal(t, "1000", result.Points[4].CpfContribution, "May at 55")
	assert.Equal(t, 56, result.Points[5].Age)
	assertDecimal(t, "750", result.Points[5].CpfContribution, "Jun at 56")
}

func TestRunProjection_RateOverride(t *testing.T) {
	snap := testSnapshot()
	ten := dec("10")
	snap.Income.CpfRate = &ten
	snap.Income.EmployerCpfRate = &ten
	result := runProjection(t, snap, flatSettings(1))
	assertDecimal(t, "500", result.Points[0].CpfContribution, "employee override")
	assertDecimal(t, "1000", result.Points[0].TotalCpfContribution, "total override")
}

func TestRunProjection_Growth(t *testing.T) {
	settings := flatSettings(2)
	settings.AnnualSalaryIncrease = dec("12")
	settings.AnnualInflationRate = dec("5")
	result := runProjection(t, testSnapshot(), settings)

	assertDecimalNear(t, "5600", result.Points[12].MonthlySalary, "0.01", "salary after 12 monthly steps")
	final, ok := result.Final()
	require.True(t, ok)
	assert.True(t, final.RealNetWorth.LessThan(final.TotalNetWorth), "inflation deflates net worth")
}

func TestRunProjection_DoesNotMutateSnapshot(t *testing.T) {
	snap := testSnapshot()
	snap.PersonalInfo.RemainingLoan = dec("10000")
	snap.PersonalInfo.MonthlyRepayment = dec("1000")
	snap.Income.SalaryAdjustments = []domain.SalaryAdjustment{{Month: 3, Year: 2026, NewSalary: dec("6000")}}
	before := snap.DeepCopy()

	runProjection(t, snap, flatSettings(2))
	assert.Equal(t, before, snap)
}

func TestRunProjection_Errors(t *testing.T) {
	engine := NewCalculationEngine()

	_, err := engine.RunProjection(context.Background(), nil, flatSettings(1))
	assert.Error(t, err)

	snap := testSnapshot()
	snap.PersonalInfo.EmployeeCategory = domain.EmployeeCategory(42)
	_, err = engine.RunProjection(context.Background(), snap, flatSettings(1))
	assert.True(t, errors.Is(err, ErrInvalidCategory))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.RunProjection(ctx, testSnapshot(), flatSettings(1))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunProjection_ZeroYears(t *testing.T) {
	result := runProjection(t, testSnapshot(), flatSettings(0))
	assert.Empty(t, result.Points)
	_, ok := result.Final()
	assert.False(t, ok)
}

func TestSummarizeByYear(t *testing.T) {
	engine := NewCalculationEngine()
	snap := testSnapshot()
	snap.PersonalInfo.StartDate = dateutil.NewMonthYear(7, 2026)
	result, err := engine.RunProjection(context.Background(), snap, flatSettings(2))
	require.NoError(t, err)

	years := engine.SummarizeByYear(result)
	require.Len(t, years, 3)
	assert.Equal(t, 2026, years[0].Year)
	assert.Equal(t, 6, years[0].Months)
	assert.Equal(t, 12, years[1].Months)
	assert.Equal(t, 6, years[2].Months)

	assertDecimal(t, "60000", years[1].GrossIncome, "gross")
	assertDecimal(t, "12000", years[1].EmployeeCpf, "employee CPF")
	assertDecimal(t, "1040", years[1].EstimatedIncomeTax, "tax on 60000 with 12000 CPF relief")
	final, _ := result.Final()
	assert.True(t, years[2].ClosingNetWorth.Equal(final.TotalNetWorth))

	assert.Nil(t, engine.SummarizeByYear(nil))
}

func TestProjectionCache(t *testing.T) {
	cache := NewProjectionCache(NewCalculationEngine(), 2)
	ctx := context.Background()
	snap := testSnapshot()

	first, err := cache.RunProjection(ctx, snap, flatSettings(1))
	require.NoError(t, err)
	second, err := cache.RunProjection(ctx, snap.DeepCopy(), flatSettings(1))
	require.NoError(t, err)
	assert.Same(t, first, second, "identical inputs share a result")

	hits, misses, size := cache.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
	assert.Equal(t, 1, size)

	other := flatSettings(1)
	other.AnnualInvestmentReturn = dec("1")
	third, err := cache.RunProjection(ctx, snap, other)
	require.NoError(t, err)
	assert.NotSame(t, first, third)

	_, _ = cache.RunProjection(ctx, snap, flatSettings(2))
	_, _, size = cache.Stats()
	assert.Equal(t, 2, size, "bounded by max size")

	cache.Clear()
	_, _, size = cache.Stats()
	assert.Equal(t, 0, size)
}

func TestProjectionKey_Deterministic(t *testing.T) {
	a, err := ProjectionKey(testSnapshot(), flatSettings(1))
	require.NoError(t, err)
	b, err := ProjectionKey(testSnapshot(), flatSettings(1))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 5, int(a.Version()), "name-based SHA-1 key")

	settings := flatSettings(1)
	settings.BonusAmount = decimal.NewFromInt(1)
	c, err := ProjectionKey(testSnapshot(), settings)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
