package calculation

import (
	"fmt"

	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/shopspring/decimal"
)

// CPF AND TAX RULE ASSUMPTIONS:
//
// 1. Contribution rates follow the 2024 tables for private-sector employees
//    earning above $750/month. PR graduated rates use the full employer (F/G) variant.
//
// 2. Ordinary wages are capped at $6,000/month and the additional wage ceiling
//    is $102,000 less ordinary wages for the year.
//
// 3. Interest: OA 2.5%, SA/MA/RA 4%. Extra 1% on the first $30,000 of combined
//    balances and on the next $30,000, filled SA, MA, RA then OA. From age 55
//    the first tier earns 2% extra. OA's $20,000 sub-cap is not modelled.
//
// 4. Income tax uses YA2024 resident rates. Only earned income relief and CPF
//    relief are applied.

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	one     = decimal.NewFromInt(1)
)

func rate(employee, employer float64) domain.RatePair {
	return domain.RatePair{Employee: decimal.NewFromFloat(employee), Employer: decimal.NewFromFloat(employer)}
}

func split(oa, sa, ma float64) domain.AllocationSplit {
	return domain.AllocationSplit{OA: decimal.NewFromFloat(oa), SA: decimal.NewFromFloat(sa), MA: decimal.NewFromFloat(ma)}
}

func band(min, max int64, r float64) domain.TaxBracket {
	return domain.TaxBracket{Min: decimal.NewFromInt(min), Max: decimal.NewFromInt(max), Rate: decimal.NewFromFloat(r)}
}

// DefaultCpfRules returns the built-in 2024 rule set.
func DefaultCpfRules() domain.RegulatoryConfig {
	citizen := []domain.RatePair{
		rate(0.20, 0.17),
		rate(0.15, 0.15),
		rate(0.105, 0.095),
		rate(0.075, 0.075),
		rate(0.05, 0.05),
	}
	return domain.RegulatoryConfig{
		Metadata: domain.RegulatoryMetadata{
			DataYear:    2024,
			Description: "CPF contribution, allocation and interest rules with YA2024 resident tax",
		},
		ContributionRates: domain.ContributionRateTable{
			Citizen: citizen,
			PRYear1: []domain.RatePair{
				rate(0.05, 0.04),
				rate(0.05, 0.04),
				rate(0.05, 0.035),
				rate(0.05, 0.035),
				rate(0.05, 0.035),
			},
			PRYear2: []domain.RatePair{
				rate(0.15, 0.09),
				rate(0.125, 0.06),
				rate(0.075, 0.035),
				rate(0.05, 0.035),
				rate(0.05, 0.035),
			},
			PRYear3Plus: append([]domain.RatePair(nil), citizen...),
		},
		Allocation: []domain.AllocationSplit{
			split(0.6217, 0.1621, 0.2162),
			split(0.5677, 0.1891, 0.2432),
			split(0.5136, 0.2162, 0.2702),
			split(0.4055, 0.3108, 0.2837),
			split(0.3872, 0.3387, 0.2741),
			split(0.1592, 0.3636, 0.4772),
			split(0.0607, 0.3030, 0.6363),
			split(0.08, 0.08, 0.84),
		},
		Interest: domain.InterestRules{
			OABase:           decimal.NewFromFloat(0.025),
			SABase:           decimal.NewFromFloat(0.04),
			MABase:           decimal.NewFromFloat(0.04),
			RABase:           decimal.NewFromFloat(0.04),
			Tier1Limit:       decimal.NewFromInt(30000),
			Tier1Extra:       decimal.NewFromFloat(0.01),
			Tier1Extra55Plus: decimal.NewFromFloat(0.02),
			Tier2Limit:       decimal.NewFromInt(30000),
			Tier2Extra:       decimal.NewFromFloat(0.01),
		},
		Ceilings: domain.CpfCeilings{
			OrdinaryWageMonthly:  decimal.NewFromInt(6000),
			AdditionalWageAnnual: decimal.NewFromInt(102000),
			MediSaveAnnual:       decimal.NewFromInt(37740),
			BasicHealthcareSum:   decimal.NewFromInt(71500),
			FullRetirementSum:    decimal.NewFromInt(213000),
		},
		IncomeTax: domain.IncomeTaxRules{
			YearOfAssessment: 2024,
			Brackets: []domain.TaxBracket{
				band(0, 20000, 0),
				band(20000, 30000, 0.02),
				band(30000, 40000, 0.035),
				band(40000, 80000, 0.07),
				band(80000, 120000, 0.115),
				band(120000, 160000, 0.15),
				band(160000, 200000, 0.18),
				band(200000, 240000, 0.19),
				band(240000, 280000, 0.195),
				band(280000, 320000, 0.20),
				band(320000, 500000, 0.22),
				band(500000, 1000000, 0.23),
				band(1000000, 0, 0.24),
			},
			EarnedIncomeRelief: decimal.NewFromInt(1000),
			CpfReliefCap:       decimal.NewFromInt(20400),
		},
		Housing: domain.HousingRules{
			TDSRLimit:          decimal.NewFromFloat(0.55),
			MSRLimit:           decimal.NewFromFloat(0.30),
			MinCashDownPayment: decimal.NewFromFloat(0.05),
			StampDuty: []domain.TaxBracket{
				band(0, 180000, 0.01),
				band(180000, 360000, 0.02),
				band(360000, 1000000, 0.03),
				band(1000000, 1500000, 0.04),
				band(1500000, 3000000, 0.05),
				band(3000000, 0, 0.06),
			},
		},
	}
}

// ValidateRules checks that every table has the rows the calculators index into.
func ValidateRules(rules domain.RegulatoryConfig) error {
	for _, c := range domain.AllCategories() {
		rows, err := rules.ContributionRates.For(c)
		if err != nil {
			return err
		}
		if len(rows) < domain.ContributionBracketCount {
			return fmt.Errorf("%w: %s contribution table has %d rows, need %d",
				ErrIncompleteRules, c, len(rows), domain.ContributionBracketCount)
		}
	}
	if len(rules.Allocation) < domain.AllocationBracketCount {
		return fmt.Errorf("%w: allocation table has %d rows, need %d",
			ErrIncompleteRules, len(rules.Allocation), domain.AllocationBracketCount)
	}
	for i, s := range rules.Allocation {
		sum := s.OA.Add(s.SA).Add(s.MA)
		if sum.Sub(one).Abs().GreaterThan(decimal.NewFromFloat(0.001)) {
			return fmt.Errorf("%w: allocation row %d sums to %s", ErrIncompleteRules, i, sum.String())
		}
	}
	if rules.Ceilings.OrdinaryWageMonthly.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: ordinary wage ceiling must be positive", ErrIncompleteRules)
	}
	if len(rules.IncomeTax.Brackets) == 0 {
		return fmt.Errorf("%w: no income tax brackets", ErrIncompleteRules)
	}
	return nil
}

// pctToFraction converts an annual percentage (2.5) to a fraction (0.025).
func pctToFraction(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred)
}

func maxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

func minDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	return maxDecimal(d, decimal.Zero)
}
