package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RegulatoryConfig contains the CPF, tax and housing rules applied by the engine.
// It can be loaded from a rules YAML file to override the built-in tables.
type RegulatoryConfig struct {
	Metadata          RegulatoryMetadata    `yaml:"metadata" json:"metadata"`
	ContributionRates ContributionRateTable `yaml:"contribution_rates" json:"contributionRates"`
	Allocation        []AllocationSplit     `yaml:"allocation" json:"allocation"` // indexed by AllocationBracket
	Interest          InterestRules         `yaml:"interest" json:"interest"`
	Ceilings          CpfCeilings           `yaml:"ceilings" json:"ceilings"`
	IncomeTax         IncomeTaxRules        `yaml:"income_tax" json:"incomeTax"`
	Housing           HousingRules          `yaml:"housing" json:"housing"`
}

// RegulatoryMetadata describes the vintage of the rule set.
type RegulatoryMetadata struct {
	DataYear    int    `yaml:"data_year" json:"dataYear"`
	Description string `yaml:"description" json:"description"`
}

// RatePair is an employee/employer contribution rate pair, as fractions of wages.
type RatePair struct {
	Employee decimal.Decimal `yaml:"employee" json:"employee"`
	Employer decimal.Decimal `yaml:"employer" json:"employer"`
}

// Total is the combined contribution rate.
func (r RatePair) Total() decimal.Decimal {
	return r.Employee.Add(r.Employer)
}

// ContributionRateTable holds one row per ContributionBracket for each category.
type ContributionRateTable struct {
	Citizen     []RatePair `yaml:"citizen" json:"citizen"`
	PRYear1     []RatePair `yaml:"pr_year_1" json:"prYear1"`
	PRYear2     []RatePair `yaml:"pr_year_2" json:"prYear2"`
	PRYear3Plus []RatePair `yaml:"pr_year_3_plus" json:"prYear3Plus"`
}

// For returns the rows for a category.
func (t ContributionRateTable) For(c EmployeeCategory) ([]RatePair, error) {
	switch c {
	case CategoryCitizen:
		return t.Citizen, nil
	case CategoryPRYear1:
		return t.PRYear1, nil
	case CategoryPRYear2:
		return t.PRYear2, nil
	case CategoryPRYear3Plus:
		return t.PRYear3Plus, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, int(c))
}

// AllocationSplit is the share of a contribution credited to each account.
// For ages above 55 SA denotes the retirement-account share.
type AllocationSplit struct {
	OA decimal.Decimal `yaml:"oa" json:"oa"`
	SA decimal.Decimal `yaml:"sa" json:"sa"`
	MA decimal.Decimal `yaml:"ma" json:"ma"`
}

// InterestRules contains base rates and extra-interest tiers (all fractions).
type InterestRules struct {
	OABase           decimal.Decimal `yaml:"oa_base" json:"oaBase"`
	SABase           decimal.Decimal `yaml:"sa_base" json:"saBase"`
	MABase           decimal.Decimal `yaml:"ma_base" json:"maBase"`
	RABase           decimal.Decimal `yaml:"ra_base" json:"raBase"`
	Tier1Limit       decimal.Decimal `yaml:"tier1_limit" json:"tier1Limit"`
	Tier1Extra       decimal.Decimal `yaml:"tier1_extra" json:"tier1Extra"`
	Tier1Extra55Plus decimal.Decimal `yaml:"tier1_extra_55_plus" json:"tier1Extra55Plus"`
	Tier2Limit       decimal.Decimal `yaml:"tier2_limit" json:"tier2Limit"`
	Tier2Extra       decimal.Decimal `yaml:"tier2_extra" json:"tier2Extra"`
}

// BaseRate returns the base annual rate of an account.
func (ir InterestRules) BaseRate(a Account) decimal.Decimal {
	switch a {
	case AccountOA:
		return ir.OABase
	case AccountSA:
		return ir.SABase
	case AccountMA:
		return ir.MABase
	case AccountRA:
		return ir.RABase
	}
	return decimal.Zero
}

// CpfCeilings holds the wage ceilings and account caps.
type CpfCeilings struct {
	OrdinaryWageMonthly  decimal.Decimal `yaml:"ordinary_wage_monthly" json:"ordinaryWageMonthly"`
	AdditionalWageAnnual decimal.Decimal `yaml:"additional_wage_annual" json:"additionalWageAnnual"`
	MediSaveAnnual       decimal.Decimal `yaml:"medisave_annual" json:"mediSaveAnnual"`
	BasicHealthcareSum   decimal.Decimal `yaml:"basic_healthcare_sum" json:"basicHealthcareSum"`
	FullRetirementSum    decimal.Decimal `yaml:"full_retirement_sum" json:"fullRetirementSum"`
}

// TaxBracket is one band of a progressive tax schedule. Max is zero for the
// open-ended top band.
type TaxBracket struct {
	Min  decimal.Decimal `yaml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// IncomeTaxRules contains resident income tax brackets and reliefs.
type IncomeTaxRules struct {
	YearOfAssessment   int             `yaml:"year_of_assessment" json:"yearOfAssessment"`
	Brackets           []TaxBracket    `yaml:"brackets" json:"brackets"`
	EarnedIncomeRelief decimal.Decimal `yaml:"earned_income_relief" json:"earnedIncomeRelief"`
	CpfReliefCap       decimal.Decimal `yaml:"cpf_relief_cap" json:"cpfReliefCap"`
}

// HousingRules contains debt servicing limits and stamp duty tiers.
type HousingRules struct {
	TDSRLimit          decimal.Decimal `yaml:"tdsr_limit" json:"tdsrLimit"` // fraction of income
	MSRLimit           decimal.Decimal `yaml:"msr_limit" json:"msrLimit"`
	MinCashDownPayment decimal.Decimal `yaml:"min_cash_down_payment" json:"minCashDownPayment"` // fraction of price
	StampDuty          []TaxBracket    `yaml:"buyer_stamp_duty" json:"buyerStampDuty"`
}
