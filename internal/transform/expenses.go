package transform

import (
	"fmt"

	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/shopspring/decimal"
)

// AddExpense adds a monthly expense, or a dated yearly expense when Month and
// StartYear are set. A yearly expense without EndYear is paid once.
type AddExpense struct {
	ExpenseName string
	Amount      decimal.Decimal
	Month       int
	StartYear   int
	EndYear     *int
}

func (ae *AddExpense) Name() string {
	return "add_expense"
}

func (ae *AddExpense) yearly() bool {
	return ae.Month != 0 || ae.StartYear != 0
}

func (ae *AddExpense) Description() string {
	if !ae.yearly() {
		return fmt.Sprintf("Add monthly expense %s of %s", ae.ExpenseName, ae.Amount.StringFixed(2))
	}
	if ae.EndYear == nil {
		return fmt.Sprintf("Add one-time expense %s of %s in %02d/%d", ae.ExpenseName, ae.Amount.StringFixed(2), ae.Month, ae.StartYear)
	}
	return fmt.Sprintf("Add yearly expense %s of %s each %02d from %d to %d", ae.ExpenseName, ae.Amount.StringFixed(2), ae.Month, ae.StartYear, *ae.EndYear)
}

func (ae *AddExpense) Validate(base *domain.Plan) error {
	if err := requirePlan(ae.Name(), base); err != nil {
		return err
	}
	if ae.ExpenseName == "" {
		return NewTransformError(ae.Name(), "validate", "expense name cannot be empty", nil)
	}
	if !ae.Amount.IsPositive() {
		return NewTransformError(ae.Name(), "validate", fmt.Sprintf("amount must be positive, got %s", ae.Amount.String()), nil)
	}
	if ae.yearly() {
		if ae.Month < 1 || ae.Month > 12 {
			return NewTransformError(ae.Name(), "validate", fmt.Sprintf("month must be 1-12, got %d", ae.Month), nil)
		}
		if ae.StartYear == 0 {
			return NewTransformError(ae.Name(), "validate", "start year is required for a dated expense", nil)
		}
		if ae.EndYear != nil && *ae.EndYear < ae.StartYear {
			return NewTransformError(ae.Name(), "validate", "end year is before start year", nil)
		}
	}
	return nil
}

func (ae *AddExpense) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	exp := &modified.Snapshot.Expenses
	if !ae.yearly() {
		exp.Monthly = append(exp.Monthly, domain.ExpenseItem{Name: ae.ExpenseName, Amount: ae.Amount})
		return modified, nil
	}
	item := domain.YearlyExpense{Name: ae.ExpenseName, Amount: ae.Amount, Month: ae.Month, StartYear: ae.StartYear}
	if ae.EndYear != nil {
		end := *ae.EndYear
		item.EndYear = &end
	}
	exp.Yearly = append(exp.Yearly, item)
	return modified, nil
}
