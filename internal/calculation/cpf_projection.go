package calculation

import (
	"context"
	"strings"

	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/rgehrsitz/sgplan/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ProjectCpfAccounts projects the four CPF accounts month by month using the
// contribution rates, the allocation rules and tiered interest. Bonuses are
// treated as additional wages. MediSave year-to-date contributions reset each
// January. In the first month at 55 the RA is formed: SA and then OA move into
// RA up to the Full Retirement Sum and any SA left over moves to OA.
func (ce *CalculationEngine) ProjectCpfAccounts(ctx context.Context, snapshot *domain.FinancialSnapshot, settings domain.ProjectionSettings) (*domain.CpfAccountProjection, error) {
	if snapshot == nil {
		return nil, newCalculationError("cpf projection", "snapshot is required", nil)
	}
	pi := snapshot.PersonalInfo
	totalMonths := settings.TotalMonths()
	frs := ce.Rules.Ceilings.FullRetirementSum
	bhs := ce.Rules.Ceilings.BasicHealthcareSum

	out := &domain.CpfAccountProjection{TotalInterest: decimal.Zero}
	balances := pi.StartingCpfBalances()
	salary := nonNegative(snapshot.Income.CurrentSalary)
	salaryGrowth := monthlyRateFromAnnual(settings.AnnualSalaryIncrease)
	bonusMonths := BonusMonthSet(settings.BonusMonths)
	rates := overrideRates(snapshot.Income)

	ytdMediSave := decimal.Zero
	ytdOW := decimal.Zero
	raFormed := balances.RA.IsPositive()
	frsReached := frs.IsPositive() && balances.RA.GreaterThanOrEqual(frs)
	bhsReached := bhs.IsPositive() && balances.MA.GreaterThanOrEqual(bhs)

	var year *domain.CpfYearSummary

	for m := 0; m < totalMonths; m++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		at := pi.StartDate.AddMonths(m)
		age := dateutil.AgeAt(pi.Birthday, at)
		if at.Month == 1 {
			ytdMediSave = decimal.Zero
			ytdOW = decimal.Zero
		}

		var milestones []string
		if !raFormed && age >= 55 {
			balances = formRetirementAccount(balances, frs)
			raFormed = true
			month := m + 1
			out.RAFormedMonth = &month
			milestones = append(milestones, "Retirement account formed")
			ce.Logger.Debugf("RA formed in month %d with %s", month, balances.RA.StringFixed(2))
		}

		salary = salaryAt(salary, at, snapshot.Income.SalaryAdjustments)
		bonus := bonusFor(at, bonusMonths, settings, snapshot.YearlyBonuses)
		contrib, err := ce.CpfCalc.CalculateContribution(ContributionInput{
			Salary:                 salary,
			Category:               pi.EmployeeCategory,
			Age:                    age,
			AdditionalWage:         bonus,
			YearToDateOrdinaryWage: ytdOW,
			RateOverride:           rates,
		})
		if err != nil {
			return nil, err
		}
		ytdOW = ytdOW.Add(contrib.CappedOrdinary)

		alloc := ce.CpfCalc.Allocate(contrib.Total, age, balances.MA, ytdMediSave)
		ytdMediSave = alloc.MediSave.Contributed

		var ib domain.InterestBreakdown
		balances, ib = ce.CpfCalc.TieredCpfGrowth(balances, alloc, age)
		balances = roundBalances(balances)
		out.TotalInterest = out.TotalInterest.Add(ib.TotalInterest)

		if !frsReached && raFormed && frs.IsPositive() && balances.RA.GreaterThanOrEqual(frs) {
			frsReached = true
			milestones = append(milestones, "Full Retirement Sum reached")
		}
		if !bhsReached && bhs.IsPositive() && balances.MA.GreaterThanOrEqual(bhs) {
			bhsReached = true
			milestones = append(milestones, "Basic Healthcare Sum reached")
		}

		point := domain.CpfAccountPoint{
			Month:        m + 1,
			DateLabel:    at.Label(),
			Age:          age,
			Contribution: contrib.Total,
			Allocation:   alloc,
			Interest:     ib.TotalInterest.Round(2),
			Balances:     balances,
		}
		if len(milestones) > 0 {
			point.Milestone = strings.Join(milestones, "; ")
		}
		out.Points = append(out.Points, point)

		if year == nil || year.Year != at.Year {
			out.Years = append(out.Years, domain.CpfYearSummary{
				Year:          at.Year,
				Age:           age,
				Contributions: decimal.Zero,
				Interest:      decimal.Zero,
			})
			year = &out.Years[len(out.Years)-1]
		}
		year.Contributions = year.Contributions.Add(contrib.Total)
		year.Interest = year.Interest.Add(ib.TotalInterest)
		year.Closing = balances

		salary = salary.Mul(one.Add(salaryGrowth)).Round(statePrecision)
	}

	for i := range out.Years {
		out.Years[i].Interest = out.Years[i].Interest.Round(2)
	}
	out.TotalInterest = out.TotalInterest.Round(2)
	return out, nil
}

// formRetirementAccount moves SA, then OA, into RA up to the full retirement sum.
func formRetirementAccount(b domain.CpfBalances, frs decimal.Decimal) domain.CpfBalances {
	need := nonNegative(frs.Sub(b.RA))
	fromSA := minDecimal(b.SA, need)
	b.RA = b.RA.Add(fromSA)
	b.SA = b.SA.Sub(fromSA)
	need = need.Sub(fromSA)

	fromOA := minDecimal(b.OA, need)
	b.RA = b.RA.Add(fromOA)
	b.OA = b.OA.Sub(fromOA)

	b.OA = b.OA.Add(b.SA)
	b.SA = decimal.Zero
	return b
}

func roundBalances(b domain.CpfBalances) domain.CpfBalances {
	return domain.CpfBalances{OA: b.OA.Round(2), SA: b.SA.Round(2), MA: b.MA.Round(2), RA: b.RA.Round(2)}
}
