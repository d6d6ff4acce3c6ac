package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/rgehrsitz/sgplan/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// bonusMonthOrder is the order in which calendar months become bonus months as
// BonusMonths grows. December is always first.
var bonusMonthOrder = []int{12, 6, 3, 9, 1, 2, 4, 5, 7, 8, 10, 11}

// statePrecision limits the digits carried between months.
const statePrecision = 10

// BonusMonthSet returns the calendar months eligible for the regular bonus.
func BonusMonthSet(bonusMonths int) map[int]bool {
	set := make(map[int]bool)
	if bonusMonths > len(bonusMonthOrder) {
		bonusMonths = len(bonusMonthOrder)
	}
	for i := 0; i < bonusMonths; i++ {
		set[bonusMonthOrder[i]] = true
	}
	return set
}

// bonusFor is the regular bonus (if the month is eligible) plus any dated bonus.
func bonusFor(at dateutil.MonthYear, eligible map[int]bool, settings domain.ProjectionSettings, bonuses []domain.YearlyBonus) decimal.Decimal {
	total := decimal.Zero
	if eligible[at.Month] {
		total = total.Add(nonNegative(settings.BonusAmount))
	}
	for _, b := range bonuses {
		if b.Month == at.Month && b.Year == at.Year {
			total = total.Add(nonNegative(b.Amount))
		}
	}
	return total
}

// salaryAt applies an adjustment scheduled exactly at this calendar month.
// Adjustments that never coincide with a projected month are never applied.
func salaryAt(current decimal.Decimal, at dateutil.MonthYear, adjustments []domain.SalaryAdjustment) decimal.Decimal {
	for _, adj := range adjustments {
		if adj.Month == at.Month && adj.Year == at.Year {
			current = adj.NewSalary
		}
	}
	return current
}

// RunProjection simulates the household month by month over the settings
// horizon. The snapshot is not modified. ctx is checked between months.
func (ce *CalculationEngine) RunProjection(ctx context.Context, snapshot *domain.FinancialSnapshot, settings domain.ProjectionSettings) (*domain.ProjectionResult, error) {
	if snapshot == nil {
		return nil, newCalculationError("projection", "snapshot is required", nil)
	}
	pi := snapshot.PersonalInfo
	if !pi.EmployeeCategory.IsValid() {
		return nil, newCalculationError("projection", "invalid employee category",
			fmt.Errorf("%w: %d", ErrInvalidCategory, int(pi.EmployeeCategory)))
	}

	totalMonths := settings.TotalMonths()
	result := &domain.ProjectionResult{Points: make([]domain.MonthlyProjectionPoint, 0, totalMonths)}
	ce.Logger.Infof("running projection: %d months from %s", totalMonths, pi.StartDate.Label())

	salaryGrowth := monthlyRateFromAnnual(settings.AnnualSalaryIncrease)
	expenseGrowth := monthlyRateFromAnnual(settings.AnnualExpenseIncrease)
	investReturn := monthlyRateFromAnnual(settings.AnnualInvestmentReturn)
	inflation := monthlyRateFromAnnual(settings.AnnualInflationRate)
	goal := settings.Goal()
	bonusMonths := BonusMonthSet(settings.BonusMonths)
	rates := overrideRates(snapshot.Income)

	salary := nonNegative(snapshot.Income.CurrentSalary)
	expenseFactor := one
	deflator := one
	cash := nonNegative(pi.CurrentSavings)
	cpf := nonNegative(pi.CurrentCpfBalance)
	loan := nonNegative(pi.RemainingLoan)
	shortPaymentWarned := false

	for m := 0; m < totalMonths; m++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		at := pi.StartDate.AddMonths(m)
		age := dateutil.AgeAt(pi.Birthday, at)

		salary = salaryAt(salary, at, snapshot.Income.SalaryAdjustments)
		bonus := bonusFor(at, bonusMonths, settings, snapshot.YearlyBonuses)

		contrib, err := ce.CpfCalc.CalculateContribution(ContributionInput{
			Salary:       salary,
			Category:     pi.EmployeeCategory,
			Age:          age,
			RateOverride: rates,
		})
		if err != nil {
			return nil, err
		}
		takeHome := salary.Add(bonus).Sub(contrib.Employee)

		expenses := snapshot.Expenses.MonthlyExpenseTotal().
			Add(snapshot.Expenses.YearlyExpensesDue(at)).
			Mul(expenseFactor)

		loanPayment := decimal.Zero
		milestone := ""
		if loan.IsPositive() {
			bd := PaymentBreakdown(loan, pi.MonthlyRepayment, pi.InterestRate)
			if !shortPaymentWarned && bd.PrincipalPayment.IsZero() && bd.InterestPayment.IsPositive() {
				shortPaymentWarned = true
				ce.Logger.Warnf("monthly repayment %s does not cover interest of %s in %s; loan balance will not fall",
					pi.MonthlyRepayment.StringFixed(2), bd.InterestPayment.StringFixed(2), at.Label())
			}
			loanPayment = bd.Payment
			loan = bd.NewBalance
			if loan.IsZero() && result.LoanPaidOffMonth == nil {
				month := m + 1
				result.LoanPaidOffMonth = &month
				milestone = "Loan paid off"
				result.Milestones = append(result.Milestones, domain.Milestone{
					Kind: domain.MilestoneLoanPaidOff, Month: month, DateLabel: at.Label(), Label: milestone,
				})
				ce.Logger.Debugf("loan paid off in month %d (%s)", month, at.Label())
			}
		}

		// bonus is already part of takeHome and is credited to savings again.
		savings := takeHome.Sub(expenses).Sub(loanPayment).Add(bonus)
		cash = cash.Mul(one.Add(investReturn)).Add(savings).Round(statePrecision)
		cpf = SimpleCpfGrowth(cpf, contrib.Total, settings.AnnualCpfInterestRate).Round(statePrecision)

		if result.SavingsGoalReachedMonth == nil && cash.GreaterThanOrEqual(goal) {
			month := m + 1
			result.SavingsGoalReachedMonth = &month
			label := fmt.Sprintf("Savings goal of %s reached", goal.StringFixed(0))
			if milestone != "" {
				milestone += "; " + label
			} else {
				milestone = label
			}
			result.Milestones = append(result.Milestones, domain.Milestone{
				Kind: domain.MilestoneSavingsGoal, Month: month, DateLabel: at.Label(), Label: label,
			})
			ce.Logger.Debugf("savings goal reached in month %d (%s)", month, at.Label())
		}

		deflator = deflator.Mul(one.Add(inflation)).Round(statePrecision)
		netWorth := cash.Add(cpf).Sub(loan)

		result.Points = append(result.Points, domain.MonthlyProjectionPoint{
			Month:                   m + 1,
			DateLabel:               at.Label(),
			Year:                    at.Year,
			CalendarMonth:           at.Month,
			AgeLabel:                dateutil.AgeLabel(pi.Birthday, at),
			Age:                     age,
			MonthlySalary:           salary.Round(2),
			TakeHomePay:             takeHome.Round(2),
			Expenses:                expenses.Round(2),
			LoanPayment:             loanPayment,
			LoanRemaining:           loan,
			MonthlySavings:          savings.Round(2),
			BonusAmount:             bonus,
			CpfContribution:         contrib.Employee,
			EmployerCpfContribution: contrib.Employer,
			TotalCpfContribution:    contrib.Total,
			CpfBalance:              cpf.Round(2),
			CashSavings:             cash.Round(2),
			TotalNetWorth:           netWorth.Round(2),
			RealNetWorth:            netWorth.Div(deflator).Round(2),
			Milestone:               milestone,
		})

		salary = salary.Mul(one.Add(salaryGrowth)).Round(statePrecision)
		expenseFactor = expenseFactor.Mul(one.Add(expenseGrowth)).Round(statePrecision)
	}

	if final, ok := result.Final(); ok {
		ce.Logger.Infof("projection complete: final net worth %s", final.TotalNetWorth.StringFixed(2))
	}
	return result, nil
}
