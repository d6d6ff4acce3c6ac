package transform

import (
	"fmt"

	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/rgehrsitz/sgplan/pkg/dateutil"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RaiseSalary raises the salary by a percentage of the current salary or to
// an absolute amount.
// With From set the raise is scheduled as a salary adjustment in that month;
// otherwise the current salary changes.
type RaiseSalary struct {
	Percent   decimal.Decimal     // e.g. 10 for a 10% raise
	NewSalary decimal.Decimal     // absolute monthly salary; wins over Percent
	From      *dateutil.MonthYear // optional effective month
}

func (rs *RaiseSalary) Name() string {
	return "raise_salary"
}

func (rs *RaiseSalary) Description() string {
	what := fmt.Sprintf("Raise salary by %s%%", rs.Percent.String())
	if rs.NewSalary.IsPositive() {
		what = fmt.Sprintf("Set salary to %s", rs.NewSalary.StringFixed(2))
	}
	if rs.From != nil {
		what += " from " + rs.From.Label()
	}
	return what
}

func (rs *RaiseSalary) Validate(base *domain.Plan) error {
	if err := requirePlan(rs.Name(), base); err != nil {
		return err
	}
	if rs.NewSalary.IsNegative() {
		return NewTransformError(rs.Name(), "validate", "new salary cannot be negative", nil)
	}
	if rs.NewSalary.IsZero() && rs.Percent.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return NewTransformError(rs.Name(), "validate", fmt.Sprintf("percent must be above -100, got %s", rs.Percent.String()), nil)
	}
	if rs.NewSalary.IsZero() && rs.Percent.IsZero() {
		return NewTransformError(rs.Name(), "validate", "either percent or new salary is required", nil)
	}
	if rs.From != nil && !rs.From.IsValid() {
		return NewTransformError(rs.Name(), "validate", "invalid effective month", nil)
	}
	return nil
}

func (rs *RaiseSalary) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	income := &modified.Snapshot.Income

	salary := rs.NewSalary
	if salary.IsZero() {
		salary = income.CurrentSalary.Mul(decimal.NewFromInt(1).Add(rs.Percent.Div(hundred))).Round(2)
	}

	if rs.From == nil {
		income.CurrentSalary = salary
		return modified, nil
	}
	income.SalaryAdjustments = append(income.SalaryAdjustments, domain.SalaryAdjustment{
		Month:     rs.From.Month,
		Year:      rs.From.Year,
		NewSalary: salary,
	})
	return modified, nil
}

// CareerBreak stops salary for a number of months starting at Start. Salary
// resumes at the level the base schedule reaches by the resume month;
// adjustments inside the break are dropped.
type CareerBreak struct {
	Start  dateutil.MonthYear
	Months int
}

func (cb *CareerBreak) Name() string {
	return "career_break"
}

func (cb *CareerBreak) Description() string {
	return fmt.Sprintf("Take a %d-month career break from %s", cb.Months, cb.Start.Label())
}

func (cb *CareerBreak) Validate(base *domain.Plan) error {
	if err := requirePlan(cb.Name(), base); err != nil {
		return err
	}
	if cb.Months <= 0 {
		return NewTransformError(cb.Name(), "validate", fmt.Sprintf("months must be positive, got %d", cb.Months), nil)
	}
	if !cb.Start.IsValid() {
		return NewTransformError(cb.Name(), "validate", "invalid start month", nil)
	}
	if cb.Start.Before(base.Snapshot.PersonalInfo.StartDate) {
		return NewTransformError(cb.Name(), "validate", "break starts before the projection", nil)
	}
	return nil
}

func (cb *CareerBreak) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	income := &modified.Snapshot.Income
	resume := cb.Start.AddMonths(cb.Months)

	kept := income.SalaryAdjustments[:0]
	for _, adj := range income.SalaryAdjustments {
		when := dateutil.MonthYear{Month: adj.Month, Year: adj.Year}
		if !when.Before(cb.Start) && when.Before(resume) {
			continue
		}
		kept = append(kept, adj)
	}
	income.SalaryAdjustments = append(kept,
		domain.SalaryAdjustment{Month: cb.Start.Month, Year: cb.Start.Year, NewSalary: decimal.Zero},
		domain.SalaryAdjustment{Month: resume.Month, Year: resume.Year, NewSalary: salaryBefore(base.Snapshot.Income, resume)},
	)
	return modified, nil
}

// salaryBefore is the salary in force the month before at, taking the latest
// scheduled adjustment into account.
func salaryBefore(income domain.Income, at dateutil.MonthYear) decimal.Decimal {
	salary := income.CurrentSalary
	var latest *dateutil.MonthYear
	for _, adj := range income.SalaryAdjustments {
		when := dateutil.MonthYear{Month: adj.Month, Year: adj.Year}
		if !when.Before(at) || (latest != nil && when.Before(*latest)) {
			continue
		}
		w := when
		latest = &w
		salary = adj.NewSalary
	}
	return salary
}
