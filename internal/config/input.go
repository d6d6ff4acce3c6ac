package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/sgplan/internal/calculation"
	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/rgehrsitz/sgplan/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MaxProjectionYears bounds the horizon accepted from plan files.
const MaxProjectionYears = 60

// InputParser handles parsing of plan and rules files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// ValidationError collects every problem found in a plan.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d problem(s): %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

func (e *ValidationError) addf(format string, args ...interface{}) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// LoadFromFile loads a plan from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a plan document.
func (ip *InputParser) Parse(data []byte) (*domain.Plan, error) {
	// settings keys absent from the file keep their default values
	plan := &domain.Plan{Settings: domain.DefaultProjectionSettings()}
	if err := yaml.Unmarshal(data, plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	ApplyDefaults(plan)

	if err := ip.ValidatePlan(plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	return plan, nil
}

// ApplyDefaults fills fields that are optional in plan files.
func ApplyDefaults(plan *domain.Plan) {
	if plan.Name == "" {
		plan.Name = "Base plan"
	}
	if plan.Settings.SavingsGoal.IsZero() {
		plan.Settings.SavingsGoal = domain.DefaultSavingsGoal
	}
}

// ValidatePlan validates a plan and reports every problem at once.
func (ip *InputParser) ValidatePlan(plan *domain.Plan) error {
	if plan == nil {
		return fmt.Errorf("plan is required")
	}
	verr := &ValidationError{}
	ip.validateSnapshot(&plan.Snapshot, verr)
	ip.validateSettings(&plan.Settings, verr)
	if len(verr.Problems) > 0 {
		return verr
	}
	return nil
}

func (ip *InputParser) validateSnapshot(s *domain.FinancialSnapshot, verr *ValidationError) {
	pi := s.PersonalInfo
	if !pi.Birthday.IsValid() {
		verr.addf("personal_info.birthday: month must be 1-12")
	}
	switch {
	case pi.StartDate == (dateutil.MonthYear{}):
		verr.addf("personal_info.start_date: required")
	case !pi.StartDate.IsValid():
		verr.addf("personal_info.start_date: month must be 1-12")
	}
	if pi.Birthday.IsValid() && pi.StartDate.IsValid() && pi.StartDate.Before(pi.Birthday) {
		verr.addf("personal_info.start_date: cannot be before birthday")
	}
	if !pi.EmployeeCategory.IsValid() {
		verr.addf("personal_info.employee_category: %v", domain.ErrInvalidCategory)
	}
	nonNegative(verr, "personal_info.current_savings", pi.CurrentSavings)
	nonNegative(verr, "personal_info.current_cpf_balance", pi.CurrentCpfBalance)
	nonNegative(verr, "personal_info.remaining_loan", pi.RemainingLoan)
	nonNegative(verr, "personal_info.monthly_repayment", pi.MonthlyRepayment)
	nonNegative(verr, "personal_info.interest_rate", pi.InterestRate)
	if pi.RemainingLoan.IsPositive() && !pi.MonthlyRepayment.IsPositive() {
		verr.addf("personal_info.monthly_repayment: required when remaining_loan is set")
	}
	if b := pi.CpfBalances; b != nil {
		nonNegative(verr, "personal_info.cpf_balances.oa", b.OA)
		nonNegative(verr, "personal_info.cpf_balances.sa", b.SA)
		nonNegative(verr, "personal_info.cpf_balances.ma", b.MA)
		nonNegative(verr, "personal_info.cpf_balances.ra", b.RA)
	}

	in := s.Income
	nonNegative(verr, "income.current_salary", in.CurrentSalary)
	if (in.CpfRate == nil) != (in.EmployerCpfRate == nil) {
		verr.addf("income: cpf_rate and employer_cpf_rate must be set together")
	}
	for _, r := range []*decimal.Decimal{in.CpfRate, in.EmployerCpfRate} {
		if r != nil && (r.IsNegative() || r.GreaterThan(decimal.NewFromInt(100))) {
			verr.addf("income: CPF rate override %s must be between 0 and 100", r.String())
		}
	}
	for i, adj := range in.SalaryAdjustments {
		if adj.Month < 1 || adj.Month > 12 {
			verr.addf("income.salary_adjustments[%d].month: must be 1-12", i)
		}
		nonNegative(verr, fmt.Sprintf("income.salary_adjustments[%d].new_salary", i), adj.NewSalary)
	}

	for i, item := range s.Expenses.Monthly {
		if item.Name == "" {
			verr.addf("expenses.monthly[%d].name: required", i)
		}
		nonNegative(verr, fmt.Sprintf("expenses.monthly[%d].amount", i), item.Amount)
	}
	for i, item := range s.Expenses.Yearly {
		if item.Name == "" {
			verr.addf("expenses.yearly[%d].name: required", i)
		}
		if item.Month < 1 || item.Month > 12 {
			verr.addf("expenses.yearly[%d].month: must be 1-12", i)
		}
		nonNegative(verr, fmt.Sprintf("expenses.yearly[%d].amount", i), item.Amount)
		if item.EndYear != nil && *item.EndYear < item.StartYear {
			verr.addf("expenses.yearly[%d].end_year: before start_year", i)
		}
	}
	for i, b := range s.YearlyBonuses {
		if b.Month < 1 || b.Month > 12 {
			verr.addf("yearly_bonuses[%d].month: must be 1-12", i)
		}
		nonNegative(verr, fmt.Sprintf("yearly_bonuses[%d].amount", i), b.Amount)
	}
}

func (ip *InputParser) validateSettings(s *domain.ProjectionSettings, verr *ValidationError) {
	nonNegative(verr, "settings.annual_salary_increase", s.AnnualSalaryIncrease)
	nonNegative(verr, "settings.annual_expense_increase", s.AnnualExpenseIncrease)
	nonNegative(verr, "settings.annual_cpf_interest_rate", s.AnnualCpfInterestRate)
	nonNegative(verr, "settings.bonus_amount", s.BonusAmount)
	if s.AnnualInvestmentReturn.LessThanOrEqual(decimal.NewFromInt(-100)) {
		verr.addf("settings.annual_investment_return: cannot be -100%% or lower")
	}
	if s.AnnualInflationRate.LessThan(decimal.NewFromInt(-10)) {
		verr.addf("settings.annual_inflation_rate: cannot be less than -10%% (extreme deflation)")
	}
	if s.ProjectionYears < 1 || s.ProjectionYears > MaxProjectionYears {
		verr.addf("settings.projection_years: must be between 1 and %d", MaxProjectionYears)
	}
	if s.BonusMonths < 0 || s.BonusMonths > 12 {
		verr.addf("settings.bonus_months: must be between 0 and 12")
	}
}

func nonNegative(verr *ValidationError, field string, d decimal.Decimal) {
	if d.IsNegative() {
		verr.addf("%s: cannot be negative", field)
	}
}

// LoadRules reads a rules file over the built-in CPF and tax tables. Sections
// missing from the file keep their default values.
func (ip *InputParser) LoadRules(filename string) (domain.RegulatoryConfig, error) {
	rules := calculation.DefaultCpfRules()
	data, err := os.ReadFile(filename)
	if err != nil {
		return rules, fmt.Errorf("failed to read rules file %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("failed to parse rules YAML: %w", err)
	}
	if err := calculation.ValidateRules(rules); err != nil {
		return rules, fmt.Errorf("rules validation failed: %w", err)
	}
	return rules, nil
}
