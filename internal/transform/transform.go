package transform

import (
	"fmt"

	"github.com/rgehrsitz/sgplan/internal/domain"
)

// PlanTransform defines the interface for all plan transformations.
// Transforms are composable what-if edits to a plan, used by scenario
// comparison and by the CLI to derive alternatives from a base plan.
type PlanTransform interface {
	// Apply returns a new modified plan. The base plan is never changed.
	Apply(base *domain.Plan) (*domain.Plan, error)

	// Name returns a short identifier for this transform (e.g., "raise_salary").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid without applying it.
	Validate(base *domain.Plan) error
}

// ApplyTransforms applies a sequence of transforms to a base plan.
// Transforms are applied in order, with each transform receiving the output of the previous one.
func ApplyTransforms(base *domain.Plan, transforms []PlanTransform) (*domain.Plan, error) {
	if base == nil {
		return nil, fmt.Errorf("base plan cannot be nil")
	}

	if len(transforms) == 0 {
		return base.DeepCopy(), nil
	}

	current := base
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// Describe joins the descriptions of a transform chain.
func Describe(transforms []PlanTransform) string {
	s := ""
	for i, t := range transforms {
		if i > 0 {
			s += "; "
		}
		s += t.Description()
	}
	return s
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

func requirePlan(name string, base *domain.Plan) error {
	if base == nil {
		return NewTransformError(name, "validate", "base plan cannot be nil", nil)
	}
	return nil
}
