package preset

import (
	"errors"
	"fmt"
)

var (
	ErrNegative     = errors.New("time values cannot be negative")
	ErrMinutesRange = errors.New("minutes cannot exceed 99")
	ErrAllZero      = errors.New("at least one time value must be set")
	ErrOrdering     = errors.New("green must be before yellow, yellow before red")
	ErrTooLarge     = errors.New("time value is too large")
)

// ValidationError reports why a preset was rejected. It is never fatal: the
// caller shows it and keeps the previous preset.
type ValidationError struct {
	Field string
	Err   error
}

func newValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid preset: %v", e.Err)
	}
	return fmt.Sprintf("invalid preset: %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
