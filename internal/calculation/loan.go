package calculation

import (
	"math"

	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/rgehrsitz/sgplan/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// InfiniteTerm is the Months value reported when a payment never clears a loan.
const InfiniteTerm = math.MaxInt32

// maxScheduleMonths bounds schedules driven by an arbitrary payment.
const maxScheduleMonths = 100 * 12

// loanMonthlyRate converts an annual percentage into the nominal monthly rate
// used by mortgage amortization (annual / 12).
func loanMonthlyRate(annualRatePct decimal.Decimal) decimal.Decimal {
	return pctToFraction(annualRatePct).Div(twelve)
}

// MonthlyPayment returns the level payment that amortizes principal over years.
// Non-positive principal or years, or a negative rate, give zero.
func MonthlyPayment(principal, annualRatePct decimal.Decimal, years int) decimal.Decimal {
	if !principal.IsPositive() || annualRatePct.IsNegative() || years <= 0 {
		return decimal.Zero
	}
	n := int64(years) * 12
	if annualRatePct.IsZero() {
		return principal.Div(decimal.NewFromInt(n))
	}
	r := loanMonthlyRate(annualRatePct)
	growth := decimal.NewFromFloat(math.Pow(1+r.InexactFloat64(), float64(n)))
	return principal.Mul(r).Mul(growth).Div(growth.Sub(one))
}

// PaymentBreakdown applies one payment to a balance. The principal portion lies
// between zero and the balance: the final payment is clamped and an
// insufficient payment leaves the balance unchanged.
func PaymentBreakdown(balance, payment, annualRatePct decimal.Decimal) domain.PaymentBreakdown {
	if !balance.IsPositive() || !payment.IsPositive() || annualRatePct.IsNegative() {
		return domain.PaymentBreakdown{
			Payment:          decimal.Zero,
			InterestPayment:  decimal.Zero,
			PrincipalPayment: decimal.Zero,
			NewBalance:       nonNegative(balance),
		}
	}
	interest := balance.Mul(loanMonthlyRate(annualRatePct)).Round(2)
	principal := minDecimal(nonNegative(payment.Sub(interest)), balance)
	actual := minDecimal(payment, interest.Add(principal))
	return domain.PaymentBreakdown{
		Payment:          actual,
		InterestPayment:  minDecimal(interest, actual),
		PrincipalPayment: principal,
		NewBalance:       balance.Sub(principal),
	}
}

// AmortizationSchedule lists every month of a fully amortizing loan. The payment
// is rounded to cents and the final row absorbs the rounding remainder so the
// balance ends at exactly zero.
func AmortizationSchedule(principal, annualRatePct decimal.Decimal, years int) []domain.AmortizationRow {
	payment := MonthlyPayment(principal, annualRatePct, years).Round(2)
	if payment.IsZero() {
		return nil
	}
	return scheduleForPayment(principal, annualRatePct, payment, years*12)
}

// scheduleForPayment runs a schedule at a fixed payment until the balance is
// cleared. When lastMonth > 0 the balance is forced to zero at that month.
func scheduleForPayment(principal, annualRatePct, payment decimal.Decimal, lastMonth int) []domain.AmortizationRow {
	r := loanMonthlyRate(annualRatePct)
	balance := principal
	cumPrincipal, cumInterest := decimal.Zero, decimal.Zero
	var rows []domain.AmortizationRow

	for month := 1; balance.IsPositive() && month <= maxScheduleMonths; month++ {
		interest := balance.Mul(r).Round(2)
		principalPart := payment.Sub(interest)
		if month == lastMonth || principalPart.GreaterThanOrEqual(balance) {
			principalPart = balance
		}
		if !principalPart.IsPositive() {
			break
		}
		balance = balance.Sub(principalPart)
		cumPrincipal = cumPrincipal.Add(principalPart)
		cumInterest = cumInterest.Add(interest)
		rows = append(rows, domain.AmortizationRow{
			Month:               month,
			Payment:             principalPart.Add(interest),
			Principal:           principalPart,
			Interest:            interest,
			Balance:             balance,
			CumulativePrincipal: cumPrincipal,
			CumulativeInterest:  cumInterest,
		})
	}
	return rows
}

// RemainingTerm is how long payment takes to clear balance. A payment that does
// not exceed the first month's interest never clears it and is reported as
// Infinite with Months set to InfiniteTerm.
func RemainingTerm(balance, payment, annualRatePct decimal.Decimal) domain.RemainingTerm {
	if !balance.IsPositive() {
		return termFromMonths(0)
	}
	never := domain.RemainingTerm{Months: InfiniteTerm, Infinite: true, FormattedDuration: "Never"}
	if !payment.IsPositive() || annualRatePct.IsNegative() {
		return never
	}
	if annualRatePct.IsZero() {
		return termFromMonths(int(balance.Div(payment).Ceil().IntPart()))
	}

	r := loanMonthlyRate(annualRatePct)
	if payment.LessThanOrEqual(balance.Mul(r)) {
		return never
	}
	rf := r.InexactFloat64()
	ratio := balance.Mul(r).Div(payment).InexactFloat64()
	n := -math.Log(1-ratio) / math.Log(1+rf)
	return termFromMonths(int(math.Ceil(n - 1e-9)))
}

func termFromMonths(months int) domain.RemainingTerm {
	return domain.RemainingTerm{
		Months:            months,
		Years:             months / 12,
		RemainderMonths:   months % 12,
		FormattedDuration: dateutil.FormatDuration(months),
	}
}

// TotalInterest sums the interest paid over a full amortization schedule.
func TotalInterest(principal, annualRatePct decimal.Decimal, years int) domain.InterestSummary {
	rows := AmortizationSchedule(principal, annualRatePct, years)
	summary := domain.InterestSummary{
		MonthlyPayment: MonthlyPayment(principal, annualRatePct, years).Round(2),
		TotalPaid:      decimal.Zero,
		TotalInterest:  decimal.Zero,
		Months:         len(rows),
	}
	if len(rows) == 0 {
		return summary
	}
	last := rows[len(rows)-1]
	summary.TotalInterest = last.CumulativeInterest
	summary.TotalPaid = last.CumulativePrincipal.Add(last.CumulativeInterest)
	return summary
}

// EarlyPayoff compares the standard schedule with one paying extra each month.
func EarlyPayoff(principal, annualRatePct decimal.Decimal, years int, extra decimal.Decimal) domain.EarlyPayoffResult {
	payment := MonthlyPayment(principal, annualRatePct, years).Round(2)
	baseline := AmortizationSchedule(principal, annualRatePct, years)
	result := domain.EarlyPayoffResult{
		BaselinePayment:     payment,
		AcceleratedPayment:  payment,
		BaselineInterest:    decimal.Zero,
		AcceleratedInterest: decimal.Zero,
		InterestSaved:       decimal.Zero,
	}
	if len(baseline) == 0 {
		return result
	}
	accelerated := baseline
	if extra.IsPositive() {
		result.AcceleratedPayment = payment.Add(extra)
		accelerated = scheduleForPayment(principal, annualRatePct, result.AcceleratedPayment, 0)
	}

	result.BaselineMonths = len(baseline)
	result.AcceleratedMonths = len(accelerated)
	result.MonthsSaved = result.BaselineMonths - result.AcceleratedMonths
	result.BaselineInterest = baseline[len(baseline)-1].CumulativeInterest
	if len(accelerated) > 0 {
		result.AcceleratedInterest = accelerated[len(accelerated)-1].CumulativeInterest
	}
	result.InterestSaved = result.BaselineInterest.Sub(result.AcceleratedInterest)
	return result
}

// Affordability inverts the amortization formula: the largest loan whose
// payment fits within dsrPct of monthly income.
func Affordability(monthlyIncome, annualRatePct decimal.Decimal, years int, dsrPct decimal.Decimal) domain.Affordability {
	out := domain.Affordability{
		MonthlyIncome:     nonNegative(monthlyIncome),
		DSRPercent:        dsrPct,
		MaxMonthlyPayment: decimal.Zero,
		MaxLoanAmount:     decimal.Zero,
	}
	if !monthlyIncome.IsPositive() || !dsrPct.IsPositive() || annualRatePct.IsNegative() || years <= 0 {
		return out
	}
	out.MaxMonthlyPayment = monthlyIncome.Mul(pctToFraction(dsrPct)).Round(2)
	out.MaxLoanAmount = presentValueOfPayments(out.MaxMonthlyPayment, annualRatePct, years).Round(2)
	return out
}

// presentValueOfPayments is the principal a level payment amortizes over years.
func presentValueOfPayments(payment, annualRatePct decimal.Decimal, years int) decimal.Decimal {
	n := int64(years) * 12
	if annualRatePct.IsZero() {
		return payment.Mul(decimal.NewFromInt(n))
	}
	r := loanMonthlyRate(annualRatePct)
	discount := math.Pow(1+r.InexactFloat64(), -float64(n))
	return payment.Mul(decimal.NewFromFloat(1 - discount)).Div(r)
}
