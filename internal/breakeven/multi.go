package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/rgehrsitz/sgplan/internal/output"
)

// SolveTargets solves every target for the same goal. Per-target bounds in
// constraints are ignored when more than one target is solved.
func (s *Solver) SolveTargets(
	ctx context.Context,
	plan *domain.Plan,
	goal SolveGoal,
	constraints Constraints,
	targets []SolveTarget,
) (*MultiTargetResult, error) {
	if plan == nil {
		return nil, &BreakEvenError{Operation: "solve_targets", Message: "plan is required"}
	}
	if len(targets) == 0 {
		targets = AllTargets()
	}
	if len(targets) > 1 {
		constraints.Min, constraints.Max = nil, nil
	}

	multi := &MultiTargetResult{PlanName: plan.Name, Goal: goal}
	for _, target := range targets {
		result, err := s.Solve(ctx, SolveRequest{
			Plan:        plan,
			Target:      target,
			Goal:        goal,
			Constraints: constraints,
		})
		if err != nil {
			return nil, err
		}
		multi.Results = append(multi.Results, *result)
	}
	multi.Recommendations = s.generateRecommendations(multi.Results)
	return multi, nil
}

func (s *Solver) generateRecommendations(results []SolveResult) []string {
	var recs []string
	if len(results) == 0 {
		return recs
	}
	if results[0].AlreadyMet {
		recs = append(recs, "The plan already meets this goal")
	}

	for _, r := range results {
		if !r.Success {
			recs = append(recs, fmt.Sprintf("%s: goal not reachable within the search range", r.Target))
			continue
		}
		switch r.Target {
		case TargetSalary:
			if !r.AlreadyMet {
				recs = append(recs, fmt.Sprintf("Raise the monthly salary to %s (%s more than today)",
					output.FormatCurrency(r.Value), output.FormatCurrency(r.Value.Sub(r.BaseValue))))
			}
		case TargetSalaryIncrease:
			if !r.AlreadyMet {
				recs = append(recs, fmt.Sprintf("Grow the salary by %s a year instead of %s",
					output.FormatPercentage(r.Value), output.FormatPercentage(r.BaseValue)))
			}
		case TargetInvestmentReturn:
			if !r.AlreadyMet {
				recs = append(recs, fmt.Sprintf("Earn %s a year on savings instead of %s",
					output.FormatPercentage(r.Value), output.FormatPercentage(r.BaseValue)))
			}
		case TargetExtraSpending:
			if r.Value.IsPositive() {
				recs = append(recs, fmt.Sprintf("Up to %s of extra monthly spending still meets the goal",
					output.FormatCurrency(r.Value)))
			}
		}
	}
	return recs
}
