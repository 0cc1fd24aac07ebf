package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the request-facing taxonomy. Every error crossing the
// service boundary wraps exactly one of these so handlers can map it to an
// HTTP status without inspecting messages.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("ticket quantity is not enough")
	ErrAlreadyCompleted  = errors.New("order is already completed")
	ErrAlreadyPending    = errors.New("order is already in payment pending")
	ErrAlreadyCancelled  = errors.New("order is already cancelled")
	ErrUnauthorized      = errors.New("user is not authorized")
	ErrForbidden         = errors.New("operation is forbidden for user")
)

// Validation wraps ErrValidation with a field-level message.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IsInvalidTransition reports whether err is one of the order state
// conflict errors.
func IsInvalidTransition(err error) bool {
	return errors.Is(err, ErrAlreadyCompleted) ||
		errors.Is(err, ErrAlreadyPending) ||
		errors.Is(err, ErrAlreadyCancelled)
}
