package output

import (
	"fmt"

	"github.com/rgehrsitz/sgplan/internal/domain"
)

// Assumptions lists the key modeling assumptions of a rule set and settings,
// rendered at the foot of detailed reports.
func Assumptions(rules domain.RegulatoryConfig, settings domain.ProjectionSettings) []string {
	c := rules.Ceilings
	ir := rules.Interest
	return []string{
		fmt.Sprintf("CPF rules: %s (data year %d)", rules.Metadata.Description, rules.Metadata.DataYear),
		fmt.Sprintf("Ordinary wage ceiling: %s/month; additional wage ceiling: %s/year",
			FormatCurrency(c.OrdinaryWageMonthly), FormatCurrency(c.AdditionalWageAnnual)),
		fmt.Sprintf("MediSave: annual ceiling %s, Basic Healthcare Sum %s; Full Retirement Sum %s",
			FormatCurrency(c.MediSaveAnnual), FormatCurrency(c.BasicHealthcareSum), FormatCurrency(c.FullRetirementSum)),
		fmt.Sprintf("CPF base interest: OA %s, SA/MA/RA %s, plus up to %s extra on the first %s",
			FormatFraction(ir.OABase), FormatFraction(ir.SABase), FormatFraction(ir.Tier1Extra55Plus),
			FormatCurrency(ir.Tier1Limit.Add(ir.Tier2Limit))),
		fmt.Sprintf("Salary growth %s, expense growth %s, cash return %s, CPF growth %s, inflation %s",
			FormatPercentage(settings.AnnualSalaryIncrease), FormatPercentage(settings.AnnualExpenseIncrease),
			FormatPercentage(settings.AnnualInvestmentReturn), FormatPercentage(settings.AnnualCpfInterestRate),
			FormatPercentage(settings.AnnualInflationRate)),
		fmt.Sprintf("Resident income tax: YA%d brackets held constant", rules.IncomeTax.YearOfAssessment),
	}
}
