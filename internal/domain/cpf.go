package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ContributionBracket is the age band that selects CPF contribution rates.
type ContributionBracket int

const (
	ContributionUpTo55 ContributionBracket = iota
	Contribution55To60
	Contribution60To65
	Contribution65To70
	ContributionAbove70
)

// ContributionBracketCount is the number of contribution age bands.
const ContributionBracketCount = 5

var contributionBracketLabels = [ContributionBracketCount]string{"<=55", "55-60", "60-65", "65-70", ">70"}

func (b ContributionBracket) String() string {
	if b < 0 || int(b) >= ContributionBracketCount {
		return fmt.Sprintf("ContributionBracket(%d)", int(b))
	}
	return contributionBracketLabels[b]
}

// AllocationBracket is the age band that selects the OA/SA/MA split.
type AllocationBracket int

const (
	AllocationUpTo35 AllocationBracket = iota
	Allocation35To45
	Allocation45To50
	Allocation50To55
	Allocation55To60
	Allocation60To65
	Allocation65To70
	AllocationAbove70
)

// AllocationBracketCount is the number of allocation age bands.
const AllocationBracketCount = 8

var allocationBracketLabels = [AllocationBracketCount]string{
	"<=35", "35-45", "45-50", "50-55", "55-60", "60-65", "65-70", ">70",
}

func (b AllocationBracket) String() string {
	if b < 0 || int(b) >= AllocationBracketCount {
		return fmt.Sprintf("AllocationBracket(%d)", int(b))
	}
	return allocationBracketLabels[b]
}

// MarshalText renders brackets by label in JSON/YAML output.
func (b ContributionBracket) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// MarshalText renders brackets by label in JSON/YAML output.
func (b AllocationBracket) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// ContributionResult is the outcome of one CPF contribution computation.
type ContributionResult struct {
	Category           EmployeeCategory    `json:"category" yaml:"category"`
	Bracket            ContributionBracket `json:"bracket" yaml:"bracket"`
	EmployeeRate       decimal.Decimal     `json:"employeeRate" yaml:"employee_rate"`
	EmployerRate       decimal.Decimal     `json:"employerRate" yaml:"employer_rate"`
	OrdinaryWage       decimal.Decimal     `json:"ordinaryWage" yaml:"ordinary_wage"`
	CappedOrdinary     decimal.Decimal     `json:"cappedOrdinaryWage" yaml:"capped_ordinary_wage"`
	AdditionalWage     decimal.Decimal     `json:"additionalWage" yaml:"additional_wage"`
	EligibleAdditional decimal.Decimal     `json:"eligibleAdditionalWage" yaml:"eligible_additional_wage"`
	Employee           decimal.Decimal     `json:"employee" yaml:"employee"`
	Employer           decimal.Decimal     `json:"employer" yaml:"employer"`
	Total              decimal.Decimal     `json:"total" yaml:"total"`
	TakeHome           decimal.Decimal     `json:"takeHome" yaml:"take_home"`
}

// MediSaveStatus reports how MediSave caps constrained an allocation.
type MediSaveStatus struct {
	Contributed     decimal.Decimal `json:"contributed" yaml:"contributed"`
	Ceiling         decimal.Decimal `json:"ceiling" yaml:"ceiling"`
	RemainingRoom   decimal.Decimal `json:"remainingRoom" yaml:"remaining_room"`
	ExceededCeiling bool            `json:"exceededCeiling" yaml:"exceeded_ceiling"`
	ExceededBHS     bool            `json:"exceededBhs" yaml:"exceeded_bhs"`
}

// CpfAllocation splits one contribution across the CPF accounts. For members
// aged 55 and over SA carries the retirement-account share.
type CpfAllocation struct {
	Total    decimal.Decimal   `json:"total" yaml:"total"`
	OA       decimal.Decimal   `json:"oa" yaml:"oa"`
	SA       decimal.Decimal   `json:"sa" yaml:"sa"`
	MA       decimal.Decimal   `json:"ma" yaml:"ma"`
	Age      int               `json:"age" yaml:"age"`
	Bracket  AllocationBracket `json:"bracket" yaml:"bracket"`
	Excess   decimal.Decimal   `json:"redistributedExcess" yaml:"redistributed_excess"`
	MediSave MediSaveStatus    `json:"mediSave" yaml:"medisave"`
}

// Sum returns OA+SA+MA.
func (a CpfAllocation) Sum() decimal.Decimal {
	return a.OA.Add(a.SA).Add(a.MA)
}

// CpfBalances holds the four CPF sub-account balances.
type CpfBalances struct {
	OA decimal.Decimal `json:"oa" yaml:"oa"`
	SA decimal.Decimal `json:"sa" yaml:"sa"`
	MA decimal.Decimal `json:"ma" yaml:"ma"`
	RA decimal.Decimal `json:"ra" yaml:"ra"`
}

// Total returns the combined balance.
func (b CpfBalances) Total() decimal.Decimal {
	return b.OA.Add(b.SA).Add(b.MA).Add(b.RA)
}

// Account identifies a CPF sub-account.
type Account string

const (
	AccountOA Account = "OA"
	AccountSA Account = "SA"
	AccountMA Account = "MA"
	AccountRA Account = "RA"
)

// BonusFillOrder is the order in which account balances count toward the
// extra-interest tiers.
var BonusFillOrder = []Account{AccountSA, AccountMA, AccountRA, AccountOA}

// Get returns the balance of one account.
func (b CpfBalances) Get(a Account) decimal.Decimal {
	switch a {
	case AccountOA:
		return b.OA
	case AccountSA:
		return b.SA
	case AccountMA:
		return b.MA
	case AccountRA:
		return b.RA
	}
	return decimal.Zero
}

// TierSlice is the part of one account's balance that earns a given extra rate.
type TierSlice struct {
	Tier      int             `json:"tier" yaml:"tier"` // 0 = base only, 1 or 2 = bonus tier
	Amount    decimal.Decimal `json:"amount" yaml:"amount"`
	ExtraRate decimal.Decimal `json:"extraRate" yaml:"extra_rate"`
	Interest  decimal.Decimal `json:"interest" yaml:"interest"`
}

// AccountInterest is the interest earned by a single account.
type AccountInterest struct {
	Account       Account         `json:"account" yaml:"account"`
	Balance       decimal.Decimal `json:"balance" yaml:"balance"`
	BaseRate      decimal.Decimal `json:"baseRate" yaml:"base_rate"`
	Interest      decimal.Decimal `json:"interest" yaml:"interest"`
	EffectiveRate decimal.Decimal `json:"effectiveRate" yaml:"effective_rate"`
	Tiers         []TierSlice     `json:"tiers" yaml:"tiers"`
}

// InterestBreakdown is the result of a tiered interest computation.
type InterestBreakdown struct {
	Age           int               `json:"age" yaml:"age"`
	Months        int               `json:"months" yaml:"months"`
	Accounts      []AccountInterest `json:"accounts" yaml:"accounts"`
	Tier1Applied  decimal.Decimal   `json:"tier1Applied" yaml:"tier1_applied"`
	Tier2Applied  decimal.Decimal   `json:"tier2Applied" yaml:"tier2_applied"`
	TotalInterest decimal.Decimal   `json:"totalInterest" yaml:"total_interest"`
}

// For returns the interest record of an account; ok is false if absent.
func (ib InterestBreakdown) For(a Account) (AccountInterest, bool) {
	for _, ai := range ib.Accounts {
		if ai.Account == a {
			return ai, true
		}
	}
	return AccountInterest{}, false
}

// CpfAccountPoint is one month of the account-level CPF projection.
type CpfAccountPoint struct {
	Month        int             `json:"month" yaml:"month"`
	DateLabel    string          `json:"date" yaml:"date"`
	Age          int             `json:"age" yaml:"age"`
	Contribution decimal.Decimal `json:"contribution" yaml:"contribution"`
	Allocation   CpfAllocation   `json:"allocation" yaml:"allocation"`
	Interest     decimal.Decimal `json:"interest" yaml:"interest"`
	Balances     CpfBalances     `json:"balances" yaml:"balances"`
	Milestone    string          `json:"milestone,omitempty" yaml:"milestone,omitempty"`
}

// CpfYearSummary rolls account-level points up by calendar year.
type CpfYearSummary struct {
	Year          int             `json:"year" yaml:"year"`
	Age           int             `json:"age" yaml:"age"`
	Contributions decimal.Decimal `json:"contributions" yaml:"contributions"`
	Interest      decimal.Decimal `json:"interest" yaml:"interest"`
	Closing       CpfBalances     `json:"closing" yaml:"closing"`
}

// CpfAccountProjection is the output of the account-level CPF projection.
type CpfAccountProjection struct {
	Points        []CpfAccountPoint `json:"points" yaml:"points"`
	Years         []CpfYearSummary  `json:"years" yaml:"years"`
	RAFormedMonth *int              `json:"raFormedMonth,omitempty" yaml:"ra_formed_month,omitempty"`
	TotalInterest decimal.Decimal   `json:"totalInterest" yaml:"total_interest"`
}
