package breakeven

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/sgplan/internal/domain"
)

// SolveTarget names the plan input the solver varies.
type SolveTarget string

const (
	TargetSalary           SolveTarget = "salary"            // current monthly salary
	TargetSalaryIncrease   SolveTarget = "salary_increase"   // annual salary growth, percent
	TargetInvestmentReturn SolveTarget = "investment_return" // annual return on cash, percent
	TargetExtraSpending    SolveTarget = "extra_spending"    // additional monthly expense
	TargetAll              SolveTarget = "all"
)

// SolveGoal names the outcome the solved plan must achieve.
type SolveGoal string

const (
	GoalSavingsGoal SolveGoal = "savings_goal" // reach the savings goal by ByMonth
	GoalNetWorth    SolveGoal = "net_worth"    // final net worth of at least TargetAmount
	GoalNoShortfall SolveGoal = "no_shortfall" // cash never drops below zero
)

// AllTargets lists the targets solved by TargetAll.
func AllTargets() []SolveTarget {
	return []SolveTarget{TargetSalary, TargetSalaryIncrease, TargetInvestmentReturn, TargetExtraSpending}
}

// ParseTarget accepts a target name.
func ParseTarget(s string) (SolveTarget, error) {
	t := SolveTarget(s)
	if t == TargetAll {
		return t, nil
	}
	for _, known := range AllTargets() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown solve target %q", s)
}

// ParseGoal accepts a goal name.
func ParseGoal(s string) (SolveGoal, error) {
	switch g := SolveGoal(s); g {
	case GoalSavingsGoal, GoalNetWorth, GoalNoShortfall:
		return g, nil
	}
	return "", fmt.Errorf("unknown solve goal %q", s)
}

// Increasing reports whether larger values of the target make goals easier
// to meet. Extra spending works the other way.
func (t SolveTarget) Increasing() bool {
	return t != TargetExtraSpending
}

// Constraints bound the search and parameterize the goal.
type Constraints struct {
	Min *decimal.Decimal `json:"min,omitempty"`
	Max *decimal.Decimal `json:"max,omitempty"`

	// TargetAmount is the net worth for GoalNetWorth and, when set, replaces
	// the plan's savings goal for GoalSavingsGoal.
	TargetAmount *decimal.Decimal `json:"targetAmount,omitempty"`

	// ByMonth is the latest acceptable month for GoalSavingsGoal; zero means
	// the end of the horizon.
	ByMonth int `json:"byMonth,omitempty"`
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate(goal SolveGoal) error {
	if c.Min != nil && c.Max != nil && c.Min.GreaterThan(*c.Max) {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min cannot be greater than max"}
	}
	if c.ByMonth < 0 {
		return &BreakEvenError{Operation: "validate_constraints", Message: "by_month cannot be negative"}
	}
	if goal == GoalNetWorth && c.TargetAmount == nil {
		return &BreakEvenError{Operation: "validate_constraints", Message: "net_worth goal requires a target amount"}
	}
	if c.TargetAmount != nil && c.TargetAmount.IsNegative() && goal == GoalSavingsGoal {
		return &BreakEvenError{Operation: "validate_constraints", Message: "savings goal cannot be negative"}
	}
	return nil
}

// bounds returns the search range for a target, narrowed by the constraints.
func (c *Constraints) bounds(t SolveTarget, plan *domain.Plan) (decimal.Decimal, decimal.Decimal) {
	lo, hi := decimal.Zero, decimal.NewFromInt(10)
	switch t {
	case TargetSalary:
		lo = decimal.NewFromInt(1000)
		hi = decimal.Max(plan.Snapshot.Income.CurrentSalary.Mul(decimal.NewFromInt(4)), decimal.NewFromInt(20000))
	case TargetSalaryIncrease:
		hi = decimal.NewFromInt(15)
	case TargetInvestmentReturn:
		hi = decimal.NewFromInt(12)
	case TargetExtraSpending:
		hi = decimal.Max(plan.Snapshot.Income.CurrentSalary, decimal.NewFromInt(5000))
	}
	if c.Min != nil {
		lo = *c.Min
	}
	if c.Max != nil {
		hi = *c.Max
	}
	return lo, hi
}

// SolveRequest defines one solver run
type SolveRequest struct {
	Plan          *domain.Plan
	Target        SolveTarget
	Goal          SolveGoal
	Constraints   Constraints
	MaxIterations int
	Tolerance     decimal.Decimal // width of the final bracket
}

// SolveResult is the boundary value found for one target.
type SolveResult struct {
	Target          SolveTarget `json:"target"`
	Goal            SolveGoal   `json:"goal"`
	Success         bool        `json:"success"`
	AlreadyMet      bool        `json:"alreadyMet"`
	Iterations      int         `json:"iterations"`
	ConvergenceInfo string      `json:"convergenceInfo"`

	BaseValue    decimal.Decimal `json:"baseValue"`
	Value        decimal.Decimal `json:"value"`
	SearchMin    decimal.Decimal `json:"searchMin"`
	SearchMax    decimal.Decimal `json:"searchMax"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	ByMonth      int             `json:"byMonth"`

	// Outcome at Value
	FinalNetWorth    decimal.Decimal `json:"finalNetWorth"`
	LowestCash       decimal.Decimal `json:"lowestCash"`
	SavingsGoalMonth *int            `json:"savingsGoalMonth"`

	BaseFinalNetWorth    decimal.Decimal `json:"baseFinalNetWorth"`
	NetWorthDiffFromBase decimal.Decimal `json:"netWorthDiffFromBase"`
}

// MultiTargetResult holds one result per target for the same goal.
type MultiTargetResult struct {
	PlanName        string        `json:"planName"`
	Goal            SolveGoal     `json:"goal"`
	Results         []SolveResult `json:"results"`
	Recommendations []string      `json:"recommendations"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	MaxIterations    int
	MoneyTolerance   decimal.Decimal // for salary and spending targets
	PercentTolerance decimal.Decimal // for rate targets
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations:    40,
		MoneyTolerance:   decimal.NewFromInt(10),
		PercentTolerance: decimal.NewFromFloat(0.01),
	}
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
