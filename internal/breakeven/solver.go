package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/sgplan/internal/calculation"
	"github.com/rgehrsitz/sgplan/internal/compare"
	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/rgehrsitz/sgplan/internal/transform"
)

var two = decimal.NewFromInt(2)

// Solver finds the value of one plan input at which a goal starts (or stops)
// being met. Each target is assumed to move the outcome in one direction, so
// the boundary is found by bisection.
type Solver struct {
	Runner  calculation.ProjectionRunner
	Metrics *compare.MetricsCalculator
	Options SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(runner calculation.ProjectionRunner, options SolverOptions) *Solver {
	return &Solver{
		Runner:  runner,
		Metrics: compare.NewMetricsCalculator(),
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(runner calculation.ProjectionRunner) *Solver {
	return NewSolver(runner, DefaultSolverOptions())
}

// Solve runs the bisection for a single target.
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if req.Plan == nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "plan is required"}
	}
	if _, err := ParseTarget(string(req.Target)); err != nil || req.Target == TargetAll {
		return nil, &BreakEvenError{Operation: "solve", Message: fmt.Sprintf("unsupported solve target: %s", req.Target)}
	}
	if _, err := ParseGoal(string(req.Goal)); err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: fmt.Sprintf("unsupported solve goal: %s", req.Goal)}
	}
	if err := req.Constraints.Validate(req.Goal); err != nil {
		return nil, err
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.tolerance(req.Target)
	}

	plan := req.Plan.DeepCopy()
	if req.Goal == GoalSavingsGoal && req.Constraints.TargetAmount != nil {
		plan.Settings.SavingsGoal = *req.Constraints.TargetAmount
	}

	lo, hi := req.Constraints.bounds(req.Target, plan)
	if req.Target == TargetSalary && !lo.IsPositive() {
		return nil, &BreakEvenError{Operation: "solve", Message: "salary search range must be positive"}
	}
	if !lo.LessThan(hi) {
		return nil, &BreakEvenError{Operation: "solve", Message: fmt.Sprintf("empty search range %s to %s", lo.String(), hi.String())}
	}

	result := &SolveResult{
		Target:       req.Target,
		Goal:         req.Goal,
		BaseValue:    baseValue(req.Target, plan),
		SearchMin:    lo,
		SearchMax:    hi,
		TargetAmount: s.targetAmount(req, plan),
		ByMonth:      byMonth(req.Constraints, plan),
	}

	base, err := s.evaluate(ctx, plan, req.Target, nil)
	if err != nil {
		return nil, err
	}
	result.BaseFinalNetWorth = base.FinalNetWorth
	result.AlreadyMet = s.meets(base, result)

	// good is the end of the range where the goal is easiest to meet.
	good, bad := hi, lo
	if !req.Target.Increasing() {
		good, bad = lo, hi
	}

	atBad, err := s.evaluate(ctx, plan, req.Target, transformsFor(req.Target, bad))
	if err != nil {
		return nil, err
	}
	result.Iterations++
	if s.meets(atBad, result) {
		s.record(result, bad, atBad)
		result.Success = true
		result.ConvergenceInfo = "goal met across the whole search range"
		return result, nil
	}

	atGood, err := s.evaluate(ctx, plan, req.Target, transformsFor(req.Target, good))
	if err != nil {
		return nil, err
	}
	result.Iterations++
	if !s.meets(atGood, result) {
		s.record(result, good, atGood)
		result.ConvergenceInfo = fmt.Sprintf("goal not reachable between %s and %s", lo.String(), hi.String())
		return result, nil
	}
	s.record(result, good, atGood)

	for result.Iterations < req.MaxIterations {
		if good.Sub(bad).Abs().LessThanOrEqual(req.Tolerance) {
			result.Success = true
			result.ConvergenceInfo = fmt.Sprintf("converged within %s after %d projections", req.Tolerance.String(), result.Iterations)
			return result, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := s.round(req.Target, good.Add(bad).Div(two))
		if mid.Equal(good) || mid.Equal(bad) {
			break
		}
		atMid, err := s.evaluate(ctx, plan, req.Target, transformsFor(req.Target, mid))
		if err != nil {
			return nil, err
		}
		result.Iterations++
		if s.meets(atMid, result) {
			good = mid
			s.record(result, mid, atMid)
		} else {
			bad = mid
		}
	}

	result.Success = true
	result.ConvergenceInfo = fmt.Sprintf("stopped after %d projections", result.Iterations)
	return result, nil
}

// evaluate projects the plan after applying transforms.
func (s *Solver) evaluate(ctx context.Context, plan *domain.Plan, target SolveTarget, transforms []transform.PlanTransform) (compare.ComparisonResult, error) {
	modified, err := transform.ApplyTransforms(plan, transforms)
	if err != nil {
		return compare.ComparisonResult{}, &BreakEvenError{
			Operation: "solve_" + string(target),
			Message:   "failed to apply transform",
			Cause:     err,
		}
	}
	projection, err := s.Runner.RunProjection(ctx, &modified.Snapshot, modified.Settings)
	if err != nil {
		return compare.ComparisonResult{}, &BreakEvenError{
			Operation: "solve_" + string(target),
			Message:   "failed to run projection",
			Cause:     err,
		}
	}
	return s.Metrics.CalculateMetrics(string(target), projection), nil
}

func (s *Solver) meets(m compare.ComparisonResult, r *SolveResult) bool {
	switch r.Goal {
	case GoalSavingsGoal:
		return m.SavingsGoalMonth != nil && *m.SavingsGoalMonth <= r.ByMonth
	case GoalNetWorth:
		return m.FinalNetWorth.GreaterThanOrEqual(r.TargetAmount)
	case GoalNoShortfall:
		return !m.LowestCash.IsNegative()
	}
	return false
}

func (s *Solver) record(r *SolveResult, v decimal.Decimal, m compare.ComparisonResult) {
	r.Value = v
	r.FinalNetWorth = m.FinalNetWorth
	r.LowestCash = m.LowestCash
	r.SavingsGoalMonth = m.SavingsGoalMonth
	r.NetWorthDiffFromBase = m.FinalNetWorth.Sub(r.BaseFinalNetWorth)
}

func (s *Solver) tolerance(t SolveTarget) decimal.Decimal {
	if t.isMoney() {
		return s.Options.MoneyTolerance
	}
	return s.Options.PercentTolerance
}

func (s *Solver) round(t SolveTarget, v decimal.Decimal) decimal.Decimal {
	if t.isMoney() {
		return v.Round(2)
	}
	return v.Round(4)
}

func (s *Solver) targetAmount(req SolveRequest, plan *domain.Plan) decimal.Decimal {
	switch req.Goal {
	case GoalNetWorth:
		return *req.Constraints.TargetAmount
	case GoalSavingsGoal:
		return plan.Settings.Goal()
	}
	return decimal.Zero
}

func (t SolveTarget) isMoney() bool {
	return t == TargetSalary || t == TargetExtraSpending
}

func byMonth(c Constraints, plan *domain.Plan) int {
	total := plan.Settings.TotalMonths()
	if c.ByMonth == 0 || c.ByMonth > total {
		return total
	}
	return c.ByMonth
}

func baseValue(t SolveTarget, plan *domain.Plan) decimal.Decimal {
	switch t {
	case TargetSalary:
		return plan.Snapshot.Income.CurrentSalary
	case TargetSalaryIncrease:
		return plan.Settings.AnnualSalaryIncrease
	case TargetInvestmentReturn:
		return plan.Settings.AnnualInvestmentReturn
	}
	return decimal.Zero
}

func transformsFor(t SolveTarget, v decimal.Decimal) []transform.PlanTransform {
	switch t {
	case TargetSalary:
		return []transform.PlanTransform{&transform.RaiseSalary{NewSalary: v}}
	case TargetSalaryIncrease:
		return []transform.PlanTransform{&transform.ChangeReturn{SalaryGrowth: &v}}
	case TargetInvestmentReturn:
		return []transform.PlanTransform{&transform.ChangeReturn{Investment: &v}}
	case TargetExtraSpending:
		if v.IsPositive() {
			return []transform.PlanTransform{&transform.AddExpense{ExpenseName: "Extra spending", Amount: v}}
		}
	}
	return nil
}
