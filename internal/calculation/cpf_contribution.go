package calculation

import (
	"fmt"

	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/shopspring/decimal"
)

// ContributionInput describes one month of wages for a CPF member.
type ContributionInput struct {
	Salary                 decimal.Decimal // ordinary wage for the month
	Category               domain.EmployeeCategory
	Age                    int
	AdditionalWage         decimal.Decimal // bonus or other AW paid this month
	YearToDateOrdinaryWage decimal.Decimal // OW subject to CPF so far this year; only used when above capped OW x 12
	RateOverride           *domain.RatePair
}

// CpfCalculator computes contributions and account allocations from a rule set.
type CpfCalculator struct {
	Rules domain.RegulatoryConfig
}

// NewCpfCalculator creates a calculator with the built-in rules.
func NewCpfCalculator() *CpfCalculator {
	return &CpfCalculator{Rules: DefaultCpfRules()}
}

// NewCpfCalculatorWithRules creates a calculator with caller-supplied rules.
func NewCpfCalculatorWithRules(rules domain.RegulatoryConfig) *CpfCalculator {
	return &CpfCalculator{Rules: rules}
}

// RatesFor looks up the employee/employer rates for a category and age.
func (c *CpfCalculator) RatesFor(category domain.EmployeeCategory, age int) (domain.RatePair, domain.ContributionBracket, error) {
	bracket := ContributionBracketForAge(age)
	rows, err := c.Rules.ContributionRates.For(category)
	if err != nil {
		return domain.RatePair{}, bracket, newCalculationError("cpf contribution", "rate lookup failed", err)
	}
	if int(bracket) >= len(rows) {
		return domain.RatePair{}, bracket, newCalculationError("cpf contribution",
			fmt.Sprintf("no %s row for bracket %s", category, bracket), ErrIncompleteRules)
	}
	return rows[bracket], bracket, nil
}

// CalculateContribution applies the OW and AW ceilings and the category rates.
// Negative amounts are treated as zero.
func (c *CpfCalculator) CalculateContribution(in ContributionInput) (*domain.ContributionResult, error) {
	rates, bracket, err := c.RatesFor(in.Category, in.Age)
	if err != nil {
		return nil, err
	}
	if in.RateOverride != nil {
		rates = *in.RateOverride
	}

	salary := nonNegative(in.Salary)
	aw := nonNegative(in.AdditionalWage)
	ceil := c.Rules.Ceilings

	cappedOW := minDecimal(salary, ceil.OrdinaryWageMonthly)

	annualOW := cappedOW.Mul(twelve)
	if ytd := nonNegative(in.YearToDateOrdinaryWage); ytd.GreaterThan(annualOW) {
		annualOW = ytd
	}
	awRoom := nonNegative(ceil.AdditionalWageAnnual.Sub(annualOW))
	eligibleAW := minDecimal(aw, awRoom)

	wages := cappedOW.Add(eligibleAW)
	employee := wages.Mul(rates.Employee).Round(2)
	employer := wages.Mul(rates.Employer).Round(2)

	return &domain.ContributionResult{
		Category:           in.Category,
		Bracket:            bracket,
		EmployeeRate:       rates.Employee,
		EmployerRate:       rates.Employer,
		OrdinaryWage:       salary,
		CappedOrdinary:     cappedOW,
		AdditionalWage:     aw,
		EligibleAdditional: eligibleAW,
		Employee:           employee,
		Employer:           employer,
		Total:              employee.Add(employer),
		TakeHome:           salary.Add(aw).Sub(employee),
	}, nil
}

// overrideRates converts percentage overrides on Income into a rate pair.
func overrideRates(income domain.Income) *domain.RatePair {
	if !income.HasRateOverride() {
		return nil
	}
	return &domain.RatePair{
		Employee: pctToFraction(*income.CpfRate),
		Employer: pctToFraction(*income.EmployerCpfRate),
	}
}
