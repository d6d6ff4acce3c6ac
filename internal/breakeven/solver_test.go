package breakeven

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/sgplan/internal/calculation"
	"github.com/rgehrsitz/sgplan/internal/config"
	"github.com/rgehrsitz/sgplan/internal/domain"
)

func loadPlan(t *testing.T) *domain.Plan {
	t.Helper()
	plan, err := config.NewInputParser().LoadFromFile("../../testdata/plan.yaml")
	if err != nil {
		t.Fatalf("failed to load plan: %v", err)
	}
	return plan
}

func baseNetWorth(t *testing.T, engine *calculation.CalculationEngine, plan *domain.Plan) decimal.Decimal {
	t.Helper()
	result, err := engine.RunProjection(context.Background(), &plan.Snapshot, plan.Settings)
	if err != nil {
		t.Fatalf("projection failed: %v", err)
	}
	final, _ := result.Final()
	return final.TotalNetWorth
}

func TestNewDefaultSolver(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	solver := NewDefaultSolver(engine)

	if solver.Runner != engine {
		t.Error("Expected Runner to match input")
	}
	if solver.Metrics == nil {
		t.Error("Expected a metrics calculator")
	}
	if solver.Options.MaxIterations != DefaultSolverOptions().MaxIterations {
		t.Error("Expected default options to be applied")
	}
}

func TestParseTargetAndGoal(t *testing.T) {
	for _, name := range []string{"salary", "salary_increase", "investment_return", "extra_spending", "all"} {
		if _, err := ParseTarget(name); err != nil {
			t.Errorf("ParseTarget(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseTarget("retirement_date"); err == nil {
		t.Error("Expected error for unknown target")
	}
	for _, name := range []string{"savings_goal", "net_worth", "no_shortfall"} {
		if _, err := ParseGoal(name); err != nil {
			t.Errorf("ParseGoal(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseGoal("maximize_income"); err == nil {
		t.Error("Expected error for unknown goal")
	}
}

func TestConstraints_Validate(t *testing.T) {
	lo, hi := decimal.NewFromInt(5), decimal.NewFromInt(1)
	negative := decimal.NewFromInt(-1)

	tests := []struct {
		name    string
		c       Constraints
		goal    SolveGoal
		wantErr bool
	}{
		{"empty is valid", Constraints{}, GoalSavingsGoal, false},
		{"min above max", Constraints{Min: &lo, Max: &hi}, GoalSavingsGoal, true},
		{"negative month", Constraints{ByMonth: -1}, GoalSavingsGoal, true},
		{"net worth needs amount", Constraints{}, GoalNetWorth, true},
		{"negative savings goal", Constraints{TargetAmount: &negative}, GoalSavingsGoal, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate(tt.goal)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			var be *BreakEvenError
			if err != nil && !errors.As(err, &be) {
				t.Errorf("Expected BreakEvenError, got %T", err)
			}
		})
	}
}

func TestSolve_InvalidRequests(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	plan := loadPlan(t)
	ctx := context.Background()

	if _, err := solver.Solve(ctx, SolveRequest{Target: TargetSalary, Goal: GoalNoShortfall}); err == nil {
		t.Error("Expected error for nil plan")
	}
	if _, err := solver.Solve(ctx, SolveRequest{Plan: plan, Target: TargetAll, Goal: GoalNoShortfall}); err == nil {
		t.Error("Expected error for target all")
	}
	if _, err := solver.Solve(ctx, SolveRequest{Plan: plan, Target: TargetSalary, Goal: "minimize_taxes"}); err == nil {
		t.Error("Expected error for unknown goal")
	}
	zero := decimal.Zero
	if _, err := solver.Solve(ctx, SolveRequest{Plan: plan, Target: TargetSalary, Goal: GoalNoShortfall, Constraints: Constraints{Min: &zero}}); err == nil {
		t.Error("Expected error for non-positive salary range")
	}
}

func TestSolve_SalaryForNetWorth(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	plan := loadPlan(t)
	target := baseNetWorth(t, engine, plan).Add(decimal.NewFromInt(100000))

	result, err := NewDefaultSolver(engine).Solve(context.Background(), SolveRequest{
		Plan:        plan,
		Target:      TargetSalary,
		Goal:        GoalNetWorth,
		Constraints: Constraints{TargetAmount: &target},
	})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("Expected success, got %s", result.ConvergenceInfo)
	}
	if result.AlreadyMet {
		t.Error("Base plan should not meet the raised target")
	}
	if !result.Value.GreaterThan(result.BaseValue) {
		t.Errorf("Expected required salary above %s, got %s", result.BaseValue, result.Value)
	}
	if result.FinalNetWorth.LessThan(target) {
		t.Errorf("Final net worth %s below target %s", result.FinalNetWorth, target)
	}
	if !result.NetWorthDiffFromBase.IsPositive() {
		t.Errorf("Expected positive change from base, got %s", result.NetWorthDiffFromBase)
	}
	if !plan.Snapshot.Income.CurrentSalary.Equal(decimal.NewFromInt(5500)) {
		t.Error("Solve must not modify the input plan")
	}
}

func TestSolve_AlreadyMetAtLowerBound(t *testing.T) {
	zero := decimal.Zero
	result, err := NewDefaultSolver(calculation.NewCalculationEngine()).Solve(context.Background(), SolveRequest{
		Plan:        loadPlan(t),
		Target:      TargetInvestmentReturn,
		Goal:        GoalNetWorth,
		Constraints: Constraints{TargetAmount: &zero},
	})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !result.Success || !result.AlreadyMet {
		t.Errorf("Expected success with goal already met, got %+v", result)
	}
	if !result.Value.Equal(result.SearchMin) {
		t.Errorf("Expected value at search minimum, got %s", result.Value)
	}
	if result.Iterations != 1 {
		t.Errorf("Expected 1 projection, got %d", result.Iterations)
	}
}

func TestSolve_Unreachable(t *testing.T) {
	huge := decimal.NewFromInt(1000000000)
	result, err := NewDefaultSolver(calculation.NewCalculationEngine()).Solve(context.Background(), SolveRequest{
		Plan:        loadPlan(t),
		Target:      TargetInvestmentReturn,
		Goal:        GoalNetWorth,
		Constraints: Constraints{TargetAmount: &huge},
	})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if result.Success {
		t.Error("Expected unreachable goal")
	}
	if !strings.Contains(result.ConvergenceInfo, "not reachable") {
		t.Errorf("Unexpected convergence info: %s", result.ConvergenceInfo)
	}
}

func TestSolve_ExtraSpendingKeepsCashPositive(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	result, err := solver.Solve(context.Background(), SolveRequest{
		Plan:   loadPlan(t),
		Target: TargetExtraSpending,
		Goal:   GoalNoShortfall,
	})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("Expected success, got %s", result.ConvergenceInfo)
	}
	if !result.Value.IsPositive() || !result.Value.LessThan(result.SearchMax) {
		t.Errorf("Expected value inside (0, %s), got %s", result.SearchMax, result.Value)
	}
	if result.LowestCash.IsNegative() {
		t.Errorf("Expected non-negative lowest cash, got %s", result.LowestCash)
	}
	if result.Iterations > solver.Options.MaxIterations {
		t.Errorf("Iterations %d exceed limit", result.Iterations)
	}
}

func TestSolve_SavingsGoalByMonth(t *testing.T) {
	goal := decimal.NewFromInt(80000)
	result, err := NewDefaultSolver(calculation.NewCalculationEngine()).Solve(context.Background(), SolveRequest{
		Plan:        loadPlan(t),
		Target:      TargetSalary,
		Goal:        GoalSavingsGoal,
		Constraints: Constraints{TargetAmount: &goal, ByMonth: 36},
	})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("Expected success, got %s", result.ConvergenceInfo)
	}
	if result.ByMonth != 36 || !result.TargetAmount.Equal(goal) {
		t.Errorf("Goal not carried into result: month %d amount %s", result.ByMonth, result.TargetAmount)
	}
	if result.SavingsGoalMonth == nil || *result.SavingsGoalMonth > 36 {
		t.Errorf("Expected savings goal by month 36, got %v", result.SavingsGoalMonth)
	}
}

func TestSolve_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDefaultSolver(calculation.NewCalculationEngine()).Solve(ctx, SolveRequest{
		Plan:   loadPlan(t),
		Target: TargetExtraSpending,
		Goal:   GoalNoShortfall,
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSolveTargets(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	plan := loadPlan(t)
	target := baseNetWorth(t, engine, plan).Add(decimal.NewFromInt(50000))

	multi, err := NewDefaultSolver(engine).SolveTargets(context.Background(), plan, GoalNetWorth,
		Constraints{TargetAmount: &target}, nil)
	if err != nil {
		t.Fatalf("SolveTargets failed: %v", err)
	}
	if len(multi.Results) != len(AllTargets()) {
		t.Fatalf("Expected %d results, got %d", len(AllTargets()), len(multi.Results))
	}
	if multi.PlanName != plan.Name {
		t.Errorf("Expected plan name %q, got %q", plan.Name, multi.PlanName)
	}

	joined := strings.Join(multi.Recommendations, "\n")
	if !strings.Contains(joined, "Raise the monthly salary to S$") {
		t.Errorf("Missing salary recommendation in:\n%s", joined)
	}
	if !strings.Contains(joined, "extra_spending: goal not reachable") {
		t.Errorf("Missing unreachable spending note in:\n%s", joined)
	}
}
