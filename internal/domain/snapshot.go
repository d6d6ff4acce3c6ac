package domain

import (
	"github.com/rgehrsitz/sgplan/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// FinancialSnapshot is the household's position at the start of a projection.
// Callers own it; the engine never mutates it.
type FinancialSnapshot struct {
	PersonalInfo  PersonalInfo  `yaml:"personal_info" json:"personalInfo"`
	Income        Income        `yaml:"income" json:"income"`
	Expenses      Expenses      `yaml:"expenses" json:"expenses"`
	YearlyBonuses []YearlyBonus `yaml:"yearly_bonuses,omitempty" json:"yearlyBonuses,omitempty"`
}

// PersonalInfo holds dates, balances and loan terms.
type PersonalInfo struct {
	Birthday          dateutil.MonthYear `yaml:"birthday" json:"birthday"`
	StartDate         dateutil.MonthYear `yaml:"start_date" json:"startDate"`
	EmployeeCategory  EmployeeCategory   `yaml:"employee_category" json:"employeeCategory"`
	CurrentSavings    decimal.Decimal    `yaml:"current_savings" json:"currentSavings"`
	CurrentCpfBalance decimal.Decimal    `yaml:"current_cpf_balance" json:"currentCpfBalance"`
	CpfBalances       *CpfBalances       `yaml:"cpf_balances,omitempty" json:"cpfBalances,omitempty"`
	RemainingLoan     decimal.Decimal    `yaml:"remaining_loan" json:"remainingLoan"`
	MonthlyRepayment  decimal.Decimal    `yaml:"monthly_repayment" json:"monthlyRepayment"`
	InterestRate      decimal.Decimal    `yaml:"interest_rate" json:"interestRate"` // annual %
}

// Income describes salary and its scheduled changes.
type Income struct {
	CurrentSalary     decimal.Decimal    `yaml:"current_salary" json:"currentSalary"`
	CpfRate           *decimal.Decimal   `yaml:"cpf_rate,omitempty" json:"cpfRate,omitempty"`                   // employee %, overrides table
	EmployerCpfRate   *decimal.Decimal   `yaml:"employer_cpf_rate,omitempty" json:"employerCpfRate,omitempty"` // employer %, overrides table
	SalaryAdjustments []SalaryAdjustment `yaml:"salary_adjustments,omitempty" json:"salaryAdjustments,omitempty"`
}

// HasRateOverride reports whether both CPF percentages are fixed by the caller.
func (i Income) HasRateOverride() bool {
	return i.CpfRate != nil && i.EmployerCpfRate != nil
}

// SalaryAdjustment sets a new salary from a specific calendar month.
type SalaryAdjustment struct {
	Month     int             `yaml:"month" json:"month"`
	Year      int             `yaml:"year" json:"year"`
	NewSalary decimal.Decimal `yaml:"new_salary" json:"newSalary"`
}

// Expenses groups recurring monthly items and dated yearly items.
type Expenses struct {
	Monthly []ExpenseItem   `yaml:"monthly,omitempty" json:"monthly,omitempty"`
	Yearly  []YearlyExpense `yaml:"yearly,omitempty" json:"yearly,omitempty"`
}

// ExpenseItem is a recurring monthly expense.
type ExpenseItem struct {
	Name   string          `yaml:"name" json:"name"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// YearlyExpense is paid in Month of every year from StartYear to EndYear.
// A nil EndYear makes it a one-time expense in StartYear.
type YearlyExpense struct {
	Name      string          `yaml:"name" json:"name"`
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	Month     int             `yaml:"month" json:"month"`
	StartYear int             `yaml:"start_year" json:"startYear"`
	EndYear   *int            `yaml:"end_year,omitempty" json:"endYear,omitempty"`
}

// AppliesIn reports whether the expense is due in the given calendar month.
func (ye YearlyExpense) AppliesIn(at dateutil.MonthYear) bool {
	if ye.Month != at.Month || at.Year < ye.StartYear {
		return false
	}
	if ye.EndYear == nil {
		return at.Year == ye.StartYear
	}
	return at.Year <= *ye.EndYear
}

// YearlyBonus is a one-off bonus paid in a specific calendar month.
type YearlyBonus struct {
	Month       int             `yaml:"month" json:"month"`
	Year        int             `yaml:"year" json:"year"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
}

// MonthlyExpenseTotal sums the recurring monthly items.
func (e Expenses) MonthlyExpenseTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.Monthly {
		total = total.Add(item.Amount)
	}
	return total
}

// YearlyExpensesDue sums the dated items due in the given month.
func (e Expenses) YearlyExpensesDue(at dateutil.MonthYear) decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.Yearly {
		if item.AppliesIn(at) {
			total = total.Add(item.Amount)
		}
	}
	return total
}

// StartingCpfBalances returns the account split, falling back to treating the
// whole CPF balance as OA when no split is supplied.
func (p PersonalInfo) StartingCpfBalances() CpfBalances {
	if p.CpfBalances != nil {
		return *p.CpfBalances
	}
	return CpfBalances{OA: p.CurrentCpfBalance}
}

// DeepCopy returns a copy that shares no slices or pointers with s.
func (s *FinancialSnapshot) DeepCopy() *FinancialSnapshot {
	if s == nil {
		return nil
	}
	c := *s

	if s.PersonalInfo.CpfBalances != nil {
		b := *s.PersonalInfo.CpfBalances
		c.PersonalInfo.CpfBalances = &b
	}
	if s.Income.CpfRate != nil {
		r := *s.Income.CpfRate
		c.Income.CpfRate = &r
	}
	if s.Income.EmployerCpfRate != nil {
		r := *s.Income.EmployerCpfRate
		c.Income.EmployerCpfRate = &r
	}
	c.Income.SalaryAdjustments = append([]SalaryAdjustment(nil), s.Income.SalaryAdjustments...)
	c.Expenses.Monthly = append([]ExpenseItem(nil), s.Expenses.Monthly...)
	c.Expenses.Yearly = nil
	for _, ye := range s.Expenses.Yearly {
		if ye.EndYear != nil {
			end := *ye.EndYear
			ye.EndYear = &end
		}
		c.Expenses.Yearly = append(c.Expenses.Yearly, ye)
	}
	c.YearlyBonuses = append([]YearlyBonus(nil), s.YearlyBonuses...)
	return &c
}
