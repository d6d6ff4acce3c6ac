package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/sgplan/internal/domain"
)

// ErrInvalidCategory is re-exported so callers can match it without importing domain.
var ErrInvalidCategory = domain.ErrInvalidCategory

// ErrIncompleteRules is returned when a rule table is missing a row the
// calculation needs.
var ErrIncompleteRules = errors.New("incomplete regulatory rules")

// CalculationError wraps a failure with the operation that produced it.
type CalculationError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *CalculationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

func (e *CalculationError) Unwrap() error { return e.Cause }

func newCalculationError(op, msg string, cause error) *CalculationError {
	return &CalculationError{Operation: op, Message: msg, Cause: cause}
}
