package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")

	ErrTaskFinalized         = errors.New("task already finalized")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrTaskAttemptsExhausted = errors.New("task reached its maximum attempts")
	ErrOrderNotBillable      = errors.New("order has no billable items")
	ErrDeviceAlreadyLinked   = errors.New("device linked to another organization")
)

// ValidationError reports a rejected input field. It matches ErrValidation
// with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
