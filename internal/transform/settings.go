package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/sgplan/internal/config"
	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/shopspring/decimal"
)

// ChangeReturn replaces one or more growth assumptions. Nil fields keep the
// base plan's value. All values are annual percentages.
type ChangeReturn struct {
	Investment    *decimal.Decimal
	Cpf           *decimal.Decimal
	SalaryGrowth  *decimal.Decimal
	ExpenseGrowth *decimal.Decimal
	Inflation     *decimal.Decimal
}

func (cr *ChangeReturn) Name() string {
	return "change_return"
}

func (cr *ChangeReturn) Description() string {
	var parts []string
	add := func(label string, v *decimal.Decimal) {
		if v != nil {
			parts = append(parts, fmt.Sprintf("%s %s%%", label, v.String()))
		}
	}
	add("investment return", cr.Investment)
	add("CPF interest", cr.Cpf)
	add("salary growth", cr.SalaryGrowth)
	add("expense growth", cr.ExpenseGrowth)
	add("inflation", cr.Inflation)
	return "Set " + strings.Join(parts, ", ")
}

func (cr *ChangeReturn) Validate(base *domain.Plan) error {
	if err := requirePlan(cr.Name(), base); err != nil {
		return err
	}
	if cr.Investment == nil && cr.Cpf == nil && cr.SalaryGrowth == nil && cr.ExpenseGrowth == nil && cr.Inflation == nil {
		return NewTransformError(cr.Name(), "validate", "at least one rate is required", nil)
	}
	modified, _ := cr.Apply(base)
	if err := config.NewInputParser().ValidatePlan(modified); err != nil {
		return NewTransformError(cr.Name(), "validate", "resulting plan is invalid", err)
	}
	return nil
}

func (cr *ChangeReturn) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	s := &modified.Settings
	set := func(dst *decimal.Decimal, v *decimal.Decimal) {
		if v != nil {
			*dst = *v
		}
	}
	set(&s.AnnualInvestmentReturn, cr.Investment)
	set(&s.AnnualCpfInterestRate, cr.Cpf)
	set(&s.AnnualSalaryIncrease, cr.SalaryGrowth)
	set(&s.AnnualExpenseIncrease, cr.ExpenseGrowth)
	set(&s.AnnualInflationRate, cr.Inflation)
	return modified, nil
}

// ExtendHorizon adds years to the projection.
type ExtendHorizon struct {
	Years int
}

func (eh *ExtendHorizon) Name() string {
	return "extend_horizon"
}

func (eh *ExtendHorizon) Description() string {
	return fmt.Sprintf("Extend the projection by %d years", eh.Years)
}

func (eh *ExtendHorizon) Validate(base *domain.Plan) error {
	if err := requirePlan(eh.Name(), base); err != nil {
		return err
	}
	if eh.Years <= 0 {
		return NewTransformError(eh.Name(), "validate", fmt.Sprintf("years must be positive, got %d", eh.Years), nil)
	}
	if base.Settings.ProjectionYears+eh.Years > config.MaxProjectionYears {
		return NewTransformError(eh.Name(), "validate", fmt.Sprintf("horizon cannot exceed %d years", config.MaxProjectionYears), nil)
	}
	return nil
}

func (eh *ExtendHorizon) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.Settings.ProjectionYears += eh.Years
	return modified, nil
}
