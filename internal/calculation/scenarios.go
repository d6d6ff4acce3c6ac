package calculation

import (
	"math"

	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/rgehrsitz/sgplan/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// DefaultEmergencyMonths is the emergency fund target when none is given.
const DefaultEmergencyMonths = 6

// HousingInput describes a prospective property purchase.
type HousingInput struct {
	PropertyPrice     decimal.Decimal
	DownPaymentPct    decimal.Decimal // percent of price
	CpfForDownPayment decimal.Decimal // OA savings the buyer wants to use
	InterestRatePct   decimal.Decimal
	TenureYears       int
	OtherMonthlyDebt  decimal.Decimal
	IsHDB             bool // MSR applies to HDB flats and ECs only
}

// RetirementInput holds the retirement readiness assumptions.
type RetirementInput struct {
	RetirementAge        int
	LifeExpectancy       int
	DesiredMonthlyIncome decimal.Decimal // in today's dollars
	InflationPct         decimal.Decimal
}

// compoundFactor returns (1 + pct/100)^years.
func compoundFactor(annualPct decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 || annualPct.IsZero() {
		return one
	}
	return decimal.NewFromFloat(math.Pow(1+pctToFraction(annualPct).InexactFloat64(), float64(years)))
}

// futureValue grows a lump sum and a level annual contribution for years.
func futureValue(present, annualContribution, annualPct decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return present
	}
	growth := compoundFactor(annualPct, years)
	if annualPct.IsZero() {
		return present.Add(annualContribution.Mul(decimal.NewFromInt(int64(years))))
	}
	annuity := growth.Sub(one).Div(pctToFraction(annualPct))
	return present.Mul(growth).Add(annualContribution.Mul(annuity))
}

// monthlyOutgoings is the current monthly expenses plus the loan repayment while a loan remains.
func monthlyOutgoings(snapshot *domain.FinancialSnapshot) (expenses, loanPayment decimal.Decimal) {
	expenses = snapshot.Expenses.MonthlyExpenseTotal()
	loanPayment = decimal.Zero
	if snapshot.PersonalInfo.RemainingLoan.IsPositive() {
		loanPayment = nonNegative(snapshot.PersonalInfo.MonthlyRepayment)
	}
	return expenses, loanPayment
}

func (ce *CalculationEngine) currentContribution(snapshot *domain.FinancialSnapshot, salary decimal.Decimal) (*domain.ContributionResult, int, error) {
	pi := snapshot.PersonalInfo
	age := dateutil.AgeAt(pi.Birthday, pi.StartDate)
	contrib, err := ce.CpfCalc.CalculateContribution(ContributionInput{
		Salary:       salary,
		Category:     pi.EmployeeCategory,
		Age:          age,
		RateOverride: overrideRates(snapshot.Income),
	})
	return contrib, age, err
}

// EmergencyFund checks cash savings against targetMonths of expenses and loan payments.
func (ce *CalculationEngine) EmergencyFund(snapshot *domain.FinancialSnapshot, targetMonths int) domain.EmergencyFundAnalysis {
	if targetMonths <= 0 {
		targetMonths = DefaultEmergencyMonths
	}
	expenses, loan := monthlyOutgoings(snapshot)
	outgoings := expenses.Add(loan)
	savings := nonNegative(snapshot.PersonalInfo.CurrentSavings)
	target := outgoings.Mul(decimal.NewFromInt(int64(targetMonths)))

	a := domain.EmergencyFundAnalysis{
		TargetMonths:     targetMonths,
		MonthlyOutgoings: outgoings,
		CurrentSavings:   savings,
		TargetAmount:     target,
		MonthsCovered:    decimal.Zero,
		Shortfall:        target.Sub(savings),
		IsAdequate:       savings.GreaterThanOrEqual(target),
	}
	if outgoings.IsPositive() {
		a.MonthsCovered = savings.Div(outgoings).Round(1)
	}
	return a
}

// JobLossRunway estimates how many months cash lasts with no salary.
func (ce *CalculationEngine) JobLossRunway(snapshot *domain.FinancialSnapshot, searchMonths int) domain.JobLossAnalysis {
	expenses, loan := monthlyOutgoings(snapshot)
	burn := expenses.Add(loan)
	cash := nonNegative(snapshot.PersonalInfo.CurrentSavings)
	a := domain.JobLossAnalysis{
		MonthlyExpenses:      expenses,
		MonthlyLoanPayment:   loan,
		MonthlyBurn:          burn,
		CashAvailable:        cash,
		RunwayMonths:         decimal.Zero,
		ExpectedSearchMonths: searchMonths,
		Shortfall:            burn.Mul(decimal.NewFromInt(int64(searchMonths))).Sub(cash),
	}
	if !burn.IsPositive() {
		a.Indefinite = true
		a.SurvivesSearch = true
		return a
	}
	a.RunwayMonths = cash.Div(burn).Round(1)
	a.SurvivesSearch = cash.Div(burn).GreaterThanOrEqual(decimal.NewFromInt(int64(searchMonths)))
	whole := int(cash.Div(burn).Floor().IntPart())
	a.DepletionDate = snapshot.PersonalInfo.StartDate.AddMonths(whole).Label()
	return a
}

// HousingAffordability applies the TDSR and MSR limits, the minimum cash down
// payment and buyer's stamp duty to a purchase.
func (ce *CalculationEngine) HousingAffordability(snapshot *domain.FinancialSnapshot, in HousingInput) domain.HousingAffordabilityAnalysis {
	rules := ce.Rules.Housing
	price := nonNegative(in.PropertyPrice)
	downPayment := price.Mul(pctToFraction(nonNegative(in.DownPaymentPct))).Round(2)
	minCash := price.Mul(rules.MinCashDownPayment).Round(2)

	cpfRoom := nonNegative(downPayment.Sub(minCash))
	cpfUsed := minDecimal(nonNegative(in.CpfForDownPayment), nonNegative(snapshot.PersonalInfo.CurrentCpfBalance))
	cpfUsed = minDecimal(cpfUsed, cpfRoom)
	cashDown := downPayment.Sub(cpfUsed)
	stampDuty := BuyerStampDuty(price, rules)

	loanAmount := nonNegative(price.Sub(downPayment))
	payment := MonthlyPayment(loanAmount, in.InterestRatePct, in.TenureYears).Round(2)

	_, existingLoan := monthlyOutgoings(snapshot)
	income := nonNegative(snapshot.Income.CurrentSalary)
	totalDebt := payment.Add(nonNegative(in.OtherMonthlyDebt)).Add(existingLoan)

	a := domain.HousingAffordabilityAnalysis{
		PropertyPrice:      price,
		DownPayment:        downPayment,
		MinCashDownPayment: minCash,
		CpfForDownPayment:  cpfUsed,
		CashForDownPayment: cashDown,
		StampDuty:          stampDuty,
		UpfrontCashNeeded:  cashDown.Add(stampDuty),
		LoanAmount:         loanAmount,
		MonthlyPayment:     payment,
		GrossMonthlyIncome: income,
		TotalMonthlyDebt:   totalDebt,
		TDSRPercent:        decimal.Zero,
		MSRPercent:         decimal.Zero,
		MaxLoanUnderTDSR:   decimal.Zero,
	}

	if income.IsPositive() {
		a.TDSRPercent = totalDebt.Div(income).Mul(hundred).Round(2)
		a.MSRPercent = payment.Div(income).Mul(hundred).Round(2)
		room := income.Mul(rules.TDSRLimit).Sub(nonNegative(in.OtherMonthlyDebt)).Sub(existingLoan)
		if room.IsPositive() && in.TenureYears > 0 && !in.InterestRatePct.IsNegative() {
			a.MaxLoanUnderTDSR = presentValueOfPayments(room, in.InterestRatePct, in.TenureYears).Round(2)
		}
		a.PassesTDSR = totalDebt.LessThanOrEqual(income.Mul(rules.TDSRLimit))
		a.PassesMSR = !in.IsHDB || payment.LessThanOrEqual(income.Mul(rules.MSRLimit))
	} else {
		a.PassesTDSR = totalDebt.IsZero()
		a.PassesMSR = !in.IsHDB || payment.IsZero()
	}
	a.CanAffordDownPayment = nonNegative(snapshot.PersonalInfo.CurrentSavings).GreaterThanOrEqual(a.UpfrontCashNeeded)
	a.IsAffordable = a.PassesTDSR && a.PassesMSR && a.CanAffordDownPayment
	return a
}

// RetirementReadiness projects cash and CPF to the retirement age in closed form
// using today's salary, expenses and contributions, and compares them with the
// nest egg needed to fund the desired income until life expectancy.
func (ce *CalculationEngine) RetirementReadiness(snapshot *domain.FinancialSnapshot, settings domain.ProjectionSettings, in RetirementInput) (domain.RetirementReadinessAnalysis, error) {
	pi := snapshot.PersonalInfo
	contrib, age, err := ce.currentContribution(snapshot, nonNegative(snapshot.Income.CurrentSalary))
	if err != nil {
		return domain.RetirementReadinessAnalysis{}, err
	}

	years := in.RetirementAge - age
	if years < 0 {
		years = 0
	}
	yearsRetired := in.LifeExpectancy - in.RetirementAge
	if yearsRetired < 0 {
		yearsRetired = 0
	}

	expenses, loan := monthlyOutgoings(snapshot)
	monthlySavings := contrib.TakeHome.Sub(expenses).Sub(loan)
	annualBonus := nonNegative(settings.BonusAmount).Mul(decimal.NewFromInt(int64(len(BonusMonthSet(settings.BonusMonths)))))
	annualSavings := monthlySavings.Mul(twelve).Add(annualBonus)

	cash := futureValue(nonNegative(pi.CurrentSavings), annualSavings, settings.AnnualInvestmentReturn, years).Round(2)
	cpf := futureValue(nonNegative(pi.CurrentCpfBalance), contrib.Total.Mul(twelve), settings.AnnualCpfInterestRate, years).Round(2)
	total := cash.Add(cpf)

	inflated := nonNegative(in.DesiredMonthlyIncome).Mul(compoundFactor(in.InflationPct, years)).Round(2)
	required := inflated.Mul(twelve).Mul(decimal.NewFromInt(int64(yearsRetired)))

	a := domain.RetirementReadinessAnalysis{
		CurrentAge:            age,
		RetirementAge:         in.RetirementAge,
		LifeExpectancy:        in.LifeExpectancy,
		YearsToRetirement:     years,
		YearsInRetirement:     yearsRetired,
		ProjectedCash:         cash,
		ProjectedCpf:          cpf,
		ProjectedTotal:        total,
		DesiredMonthlyIncome:  nonNegative(in.DesiredMonthlyIncome),
		InflatedMonthlyIncome: inflated,
		RequiredNestEgg:       required,
		Shortfall:             required.Sub(total),
		FundedRatio:           decimal.Zero,
		MeetsFRS:              cpf.GreaterThanOrEqual(ce.Rules.Ceilings.FullRetirementSum),
		IsAdequate:            total.GreaterThanOrEqual(required),
		Crossing:              BracketCrossing(age, years),
	}
	if required.IsPositive() {
		a.FundedRatio = total.Div(required).Round(4)
	}
	return a, nil
}

// SalaryIncreaseImpact compares contributions, take-home pay and tax at the
// current and a proposed salary.
func (ce *CalculationEngine) SalaryIncreaseImpact(snapshot *domain.FinancialSnapshot, newSalary decimal.Decimal) (domain.SalaryIncreaseAnalysis, error) {
	currentSalary := nonNegative(snapshot.Income.CurrentSalary)
	newSalary = nonNegative(newSalary)
	current, _, err := ce.currentContribution(snapshot, currentSalary)
	if err != nil {
		return domain.SalaryIncreaseAnalysis{}, err
	}
	proposed, _, err := ce.currentContribution(snapshot, newSalary)
	if err != nil {
		return domain.SalaryIncreaseAnalysis{}, err
	}

	oldTax := ce.TaxCalc.AnnualTax(currentSalary.Mul(twelve), current.Employee.Mul(twelve))
	newTax := ce.TaxCalc.AnnualTax(newSalary.Mul(twelve), proposed.Employee.Mul(twelve))

	takeHomeChange := proposed.TakeHome.Sub(current.TakeHome)
	a := domain.SalaryIncreaseAnalysis{
		CurrentSalary:        currentSalary,
		NewSalary:            newSalary,
		IncreaseAmount:       newSalary.Sub(currentSalary),
		IncreasePercent:      decimal.Zero,
		Current:              *current,
		Proposed:             *proposed,
		TakeHomeChange:       takeHomeChange,
		AnnualTakeHomeChange: takeHomeChange.Mul(twelve),
		EmployerCpfChange:    proposed.Employer.Sub(current.Employer),
		AnnualTaxChange:      newTax.Sub(oldTax),
		ExceedsOWCeiling:     newSalary.GreaterThan(ce.Rules.Ceilings.OrdinaryWageMonthly),
	}
	a.NetAnnualGain = a.AnnualTakeHomeChange.Sub(a.AnnualTaxChange)
	if currentSalary.IsPositive() {
		a.IncreasePercent = a.IncreaseAmount.Div(currentSalary).Mul(hundred).Round(2)
	}
	return a, nil
}

// CareerBreakImpact estimates the cost of breakMonths without salary: lost
// income and CPF, the growth those contributions would have earned over the
// projection horizon, and how savings hold up.
func (ce *CalculationEngine) CareerBreakImpact(snapshot *domain.FinancialSnapshot, settings domain.ProjectionSettings, breakMonths int) (domain.CareerBreakAnalysis, error) {
	if breakMonths < 0 {
		breakMonths = 0
	}
	salary := nonNegative(snapshot.Income.CurrentSalary)
	contrib, age, err := ce.currentContribution(snapshot, salary)
	if err != nil {
		return domain.CareerBreakAnalysis{}, err
	}
	n := decimal.NewFromInt(int64(breakMonths))
	expenses, loan := monthlyOutgoings(snapshot)
	burn := expenses.Add(loan)
	savings := nonNegative(snapshot.PersonalInfo.CurrentSavings)

	lostCpf := contrib.Total.Mul(n)
	spent := burn.Mul(n)
	a := domain.CareerBreakAnalysis{
		BreakMonths:         breakMonths,
		LostIncome:          salary.Mul(n),
		LostEmployeeCpf:     contrib.Employee.Mul(n),
		LostEmployerCpf:     contrib.Employer.Mul(n),
		LostCpfGrowth:       lostCpf.Mul(compoundFactor(settings.AnnualCpfInterestRate, settings.ProjectionYears).Sub(one)).Round(2),
		ExpensesDuringBreak: spent,
		SavingsAfterBreak:   savings.Sub(spent),
		MonthsSustainable:   breakMonths,
		RecoveryMonths:      0,
		Crossing:            BracketCrossing(age, (breakMonths+11)/12),
	}
	if burn.IsPositive() {
		a.MonthsSustainable = int(savings.Div(burn).Floor().IntPart())
	}
	a.CanSustain = !a.SavingsAfterBreak.IsNegative()

	surplus := contrib.TakeHome.Sub(burn)
	switch {
	case spent.IsZero():
		a.RecoveryMonths = 0
	case surplus.IsPositive():
		a.RecoveryMonths = int(spent.Div(surplus).Ceil().IntPart())
	default:
		a.RecoveryMonths = -1
	}
	return a, nil
}
