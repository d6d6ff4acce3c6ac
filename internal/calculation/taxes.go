package calculation

import (
	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/shopspring/decimal"
)

// IncomeTaxCalculator estimates Singapore resident income tax.
type IncomeTaxCalculator struct {
	Rules domain.IncomeTaxRules
}

// NewIncomeTaxCalculator creates a calculator with the built-in YA brackets.
func NewIncomeTaxCalculator() *IncomeTaxCalculator {
	return &IncomeTaxCalculator{Rules: DefaultCpfRules().IncomeTax}
}

// NewIncomeTaxCalculatorWithRules creates a calculator with configurable brackets.
func NewIncomeTaxCalculatorWithRules(rules domain.IncomeTaxRules) *IncomeTaxCalculator {
	return &IncomeTaxCalculator{Rules: rules}
}

// ChargeableIncome deducts CPF relief (capped) and earned income relief.
func (tc *IncomeTaxCalculator) ChargeableIncome(grossAnnual, employeeCpf decimal.Decimal) decimal.Decimal {
	cpfRelief := nonNegative(employeeCpf)
	if tc.Rules.CpfReliefCap.IsPositive() {
		cpfRelief = minDecimal(cpfRelief, tc.Rules.CpfReliefCap)
	}
	return nonNegative(grossAnnual.Sub(cpfRelief).Sub(tc.Rules.EarnedIncomeRelief))
}

// CalculateTax applies the progressive brackets to chargeable income.
func (tc *IncomeTaxCalculator) CalculateTax(chargeable decimal.Decimal) decimal.Decimal {
	return progressiveTax(chargeable, tc.Rules.Brackets)
}

// AnnualTax is CalculateTax(ChargeableIncome(gross, cpf)).
func (tc *IncomeTaxCalculator) AnnualTax(grossAnnual, employeeCpf decimal.Decimal) decimal.Decimal {
	return tc.CalculateTax(tc.ChargeableIncome(grossAnnual, employeeCpf))
}

// MarginalRate returns the rate of the bracket containing chargeable income.
func (tc *IncomeTaxCalculator) MarginalRate(chargeable decimal.Decimal) decimal.Decimal {
	rate := decimal.Zero
	for _, b := range tc.Rules.Brackets {
		if chargeable.GreaterThan(b.Min) {
			rate = b.Rate
		}
	}
	return rate
}

// BuyerStampDuty applies the tiered stamp duty schedule to a purchase price.
func BuyerStampDuty(price decimal.Decimal, rules domain.HousingRules) decimal.Decimal {
	return progressiveTax(price, rules.StampDuty)
}

// progressiveTax sums amount x rate over each band. A band with zero Max is open-ended.
func progressiveTax(amount decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	tax := decimal.Zero
	for _, b := range brackets {
		if amount.LessThanOrEqual(b.Min) {
			break
		}
		upper := amount
		if b.Max.IsPositive() {
			upper = minDecimal(amount, b.Max)
		}
		tax = tax.Add(upper.Sub(b.Min).Mul(b.Rate))
	}
	return tax.Round(2)
}
