package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/rgehrsitz/sgplan/pkg/dateutil"
	"github.com/shopspring/decimal"
)

func createTestPlan() *domain.Plan {
	return &domain.Plan{
		Name: "Base",
		Snapshot: domain.FinancialSnapshot{
			PersonalInfo: domain.PersonalInfo{
				Birthday:          dateutil.MonthYear{Month: 6, Year: 1995},
				StartDate:         dateutil.MonthYear{Month: 1, Year: 2026},
				EmployeeCategory:  domain.CategoryCitizen,
				CurrentSavings:    decimal.NewFromInt(25000),
				CurrentCpfBalance: decimal.NewFromInt(60000),
				RemainingLoan:     decimal.NewFromInt(300000),
				MonthlyRepayment:  decimal.NewFromInt(1500),
				InterestRate:      decimal.NewFromFloat(2.6),
			},
			Income: domain.Income{
				CurrentSalary: decimal.NewFromInt(6000),
				SalaryAdjustments: []domain.SalaryAdjustment{
					{Month: 4, Year: 2027, NewSalary: decimal.NewFromInt(6500)},
				},
			},
			Expenses: domain.Expenses{
				Monthly: []domain.ExpenseItem{{Name: "Food", Amount: decimal.NewFromInt(800)}},
			},
		},
		Settings: domain.DefaultProjectionSettings(),
	}
}

func TestApplyTransforms_Empty(t *testing.T) {
	base := createTestPlan()

	result, err := ApplyTransforms(base, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == base {
		t.Error("expected a copy, got the base pointer")
	}
	result.Snapshot.Expenses.Monthly[0].Amount = decimal.NewFromInt(1)
	if !base.Snapshot.Expenses.Monthly[0].Amount.Equal(decimal.NewFromInt(800)) {
		t.Error("base plan was modified through the copy")
	}
}

func TestApplyTransforms_NilBase(t *testing.T) {
	if _, err := ApplyTransforms(nil, nil); err == nil {
		t.Error("expected error for nil base plan")
	}
}

func TestApplyTransforms_Chain(t *testing.T) {
	base := createTestPlan()
	transforms := []PlanTransform{
		&RaiseSalary{Percent: decimal.NewFromInt(10)},
		&AddExpense{ExpenseName: "Gym", Amount: decimal.NewFromInt(120)},
		&ExtendHorizon{Years: 5},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Snapshot.Income.CurrentSalary.Equal(decimal.NewFromInt(6600)) {
		t.Errorf("expected salary 6600, got %s", result.Snapshot.Income.CurrentSalary)
	}
	if len(result.Snapshot.Expenses.Monthly) != 2 {
		t.Errorf("expected 2 monthly expenses, got %d", len(result.Snapshot.Expenses.Monthly))
	}
	if result.Settings.ProjectionYears != 15 {
		t.Errorf("expected 15 projection years, got %d", result.Settings.ProjectionYears)
	}

	if !base.Snapshot.Income.CurrentSalary.Equal(decimal.NewFromInt(6000)) {
		t.Error("base salary changed")
	}
	if len(base.Snapshot.Expenses.Monthly) != 1 || base.Settings.ProjectionYears != 10 {
		t.Error("base plan changed")
	}
}

func TestApplyTransforms_ValidationFailure(t *testing.T) {
	base := createTestPlan()
	_, err := ApplyTransforms(base, []PlanTransform{&ExtendHorizon{Years: 0}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	var te *TransformError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransformError, got %T", err)
	}
	if te.TransformName != "extend_horizon" {
		t.Errorf("unexpected transform name %s", te.TransformName)
	}
}

func TestRaiseSalary(t *testing.T) {
	from := dateutil.MonthYear{Month: 7, Year: 2026}
	tests := []struct {
		name      string
		transform *RaiseSalary
		wantErr   bool
		salary    string
		adjusts   int
	}{
		{"percent now", &RaiseSalary{Percent: decimal.NewFromInt(5)}, false, "6300", 1},
		{"absolute now", &RaiseSalary{NewSalary: decimal.NewFromInt(7000)}, false, "7000", 1},
		{"scheduled", &RaiseSalary{Percent: decimal.NewFromInt(10), From: &from}, false, "6000", 2},
		{"nothing", &RaiseSalary{}, true, "", 0},
		{"pay cut to zero", &RaiseSalary{Percent: decimal.NewFromInt(-100)}, true, "", 0},
		{"negative salary", &RaiseSalary{NewSalary: decimal.NewFromInt(-1)}, true, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ApplyTransforms(createTestPlan(), []PlanTransform{tt.transform})
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !result.Snapshot.Income.CurrentSalary.Equal(decimal.RequireFromString(tt.salary)) {
				t.Errorf("salary = %s, want %s", result.Snapshot.Income.CurrentSalary, tt.salary)
			}
			if got := len(result.Snapshot.Income.SalaryAdjustments); got != tt.adjusts {
				t.Errorf("adjustments = %d, want %d", got, tt.adjusts)
			}
		})
	}
}

func TestRaiseSalary_ScheduledAdjustment(t *testing.T) {
	from := dateutil.MonthYear{Month: 7, Year: 2026}
	result, err := (&RaiseSalary{Percent: decimal.NewFromInt(10), From: &from}).Apply(createTestPlan())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	adj := result.Snapshot.Income.SalaryAdjustments[1]
	if adj.Month != 7 || adj.Year != 2026 || !adj.NewSalary.Equal(decimal.NewFromInt(6600)) {
		t.Errorf("unexpected adjustment %+v", adj)
	}
}

func TestCareerBreak(t *testing.T) {
	base := createTestPlan()
	cb := &CareerBreak{Start: dateutil.MonthYear{Month: 11, Year: 2027}, Months: 3}

	result, err := ApplyTransforms(base, []PlanTransform{cb})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	adjs := result.Snapshot.Income.SalaryAdjustments
	if len(adjs) != 3 {
		t.Fatalf("expected 3 adjustments, got %d", len(adjs))
	}
	if adjs[1].Month != 11 || adjs[1].Year != 2027 || !adjs[1].NewSalary.IsZero() {
		t.Errorf("unexpected break adjustment %+v", adjs[1])
	}
	// resumes Feb 2028 at the salary set by the Apr 2027 adjustment
	if adjs[2].Month != 2 || adjs[2].Year != 2028 || !adjs[2].NewSalary.Equal(decimal.NewFromInt(6500)) {
		t.Errorf("unexpected resume adjustment %+v", adjs[2])
	}
}

func TestCareerBreak_Validate(t *testing.T) {
	base := createTestPlan()
	cases := []*CareerBreak{
		{Start: dateutil.MonthYear{Month: 1, Year: 2027}, Months: 0},
		{Start: dateutil.MonthYear{Month: 13, Year: 2027}, Months: 3},
		{Start: dateutil.MonthYear{Month: 6, Year: 2025}, Months: 3},
	}
	for _, cb := range cases {
		if err := cb.Validate(base); err == nil {
			t.Errorf("expected validation error for %+v", cb)
		}
	}
}

func TestAddExpense(t *testing.T) {
	end := 2030
	tests := []struct {
		name    string
		expense *AddExpense
		monthly int
		yearly  int
		wantErr bool
	}{
		{"monthly", &AddExpense{ExpenseName: "Gym", Amount: decimal.NewFromInt(100)}, 2, 0, false},
		{"one time", &AddExpense{ExpenseName: "Car", Amount: decimal.NewFromInt(20000), Month: 5, StartYear: 2028}, 1, 1, false},
		{"recurring", &AddExpense{ExpenseName: "Holiday", Amount: decimal.NewFromInt(4000), Month: 12, StartYear: 2026, EndYear: &end}, 1, 1, false},
		{"no name", &AddExpense{Amount: decimal.NewFromInt(100)}, 0, 0, true},
		{"zero amount", &AddExpense{ExpenseName: "X"}, 0, 0, true},
		{"bad month", &AddExpense{ExpenseName: "X", Amount: decimal.NewFromInt(1), Month: 13, StartYear: 2026}, 0, 0, true},
		{"missing year", &AddExpense{ExpenseName: "X", Amount: decimal.NewFromInt(1), Month: 3}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ApplyTransforms(createTestPlan(), []PlanTransform{tt.expense})
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result.Snapshot.Expenses.Monthly) != tt.monthly || len(result.Snapshot.Expenses.Yearly) != tt.yearly {
				t.Errorf("got %d monthly and %d yearly expenses", len(result.Snapshot.Expenses.Monthly), len(result.Snapshot.Expenses.Yearly))
			}
		})
	}
}

func TestExtraRepayment(t *testing.T) {
	result, err := ApplyTransforms(createTestPlan(), []PlanTransform{&ExtraRepayment{Amount: decimal.NewFromInt(500)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Snapshot.PersonalInfo.MonthlyRepayment.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("repayment = %s, want 2000", result.Snapshot.PersonalInfo.MonthlyRepayment)
	}

	noLoan := createTestPlan()
	noLoan.Snapshot.PersonalInfo.RemainingLoan = decimal.Zero
	if err := (&ExtraRepayment{Amount: decimal.NewFromInt(500)}).Validate(noLoan); err == nil {
		t.Error("expected error without a loan")
	}
}

func TestChangeReturn(t *testing.T) {
	inv := decimal.NewFromInt(6)
	result, err := ApplyTransforms(createTestPlan(), []PlanTransform{&ChangeReturn{Investment: &inv}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Settings.AnnualInvestmentReturn.Equal(inv) {
		t.Errorf("investment return = %s", result.Settings.AnnualInvestmentReturn)
	}
	if !result.Settings.AnnualSalaryIncrease.Equal(decimal.NewFromInt(3)) {
		t.Error("salary growth should be unchanged")
	}
	if !strings.Contains((&ChangeReturn{Investment: &inv}).Description(), "investment return 6%") {
		t.Error("description should name the changed rate")
	}

	if err := (&ChangeReturn{}).Validate(createTestPlan()); err == nil {
		t.Error("expected error when no rate is set")
	}
}

func TestExtendHorizon_Limit(t *testing.T) {
	if err := (&ExtendHorizon{Years: 51}).Validate(createTestPlan()); err == nil {
		t.Error("expected error past the maximum horizon")
	}
	if err := (&ExtendHorizon{Years: 50}).Validate(createTestPlan()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTransformError(t *testing.T) {
	inner := errors.New("boom")
	err := NewTransformError("raise_salary", "apply", "failed", inner)
	if err.Error() != "transform raise_salary (apply): failed: boom" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected wrapped error")
	}
}

func TestCareerBreak_DropsAdjustmentsInsideBreak(t *testing.T) {
	cb := &CareerBreak{Start: dateutil.MonthYear{Month: 1, Year: 2027}, Months: 6}
	result, err := cb.Apply(createTestPlan())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	adjs := result.Snapshot.Income.SalaryAdjustments
	if len(adjs) != 2 {
		t.Fatalf("expected 2 adjustments, got %+v", adjs)
	}
	// the Apr 2027 raise lands inside the break, so work resumes at 6500
	if adjs[1].Month != 7 || adjs[1].Year != 2027 || !adjs[1].NewSalary.Equal(decimal.NewFromInt(6500)) {
		t.Errorf("unexpected resume adjustment %+v", adjs[1])
	}
}
