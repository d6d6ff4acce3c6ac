package transform

import (
	"fmt"

	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/shopspring/decimal"
)

// ExtraRepayment adds a fixed amount to the monthly loan repayment.
type ExtraRepayment struct {
	Amount decimal.Decimal
}

func (er *ExtraRepayment) Name() string {
	return "extra_repayment"
}

func (er *ExtraRepayment) Description() string {
	return fmt.Sprintf("Repay an extra %s per month", er.Amount.StringFixed(2))
}

func (er *ExtraRepayment) Validate(base *domain.Plan) error {
	if err := requirePlan(er.Name(), base); err != nil {
		return err
	}
	if !er.Amount.IsPositive() {
		return NewTransformError(er.Name(), "validate", fmt.Sprintf("amount must be positive, got %s", er.Amount.String()), nil)
	}
	if !base.Snapshot.PersonalInfo.RemainingLoan.IsPositive() {
		return NewTransformError(er.Name(), "validate", "plan has no outstanding loan", nil)
	}
	return nil
}

func (er *ExtraRepayment) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	pi := &modified.Snapshot.PersonalInfo
	pi.MonthlyRepayment = pi.MonthlyRepayment.Add(er.Amount)
	return modified, nil
}
