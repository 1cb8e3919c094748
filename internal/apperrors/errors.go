package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the authenticated user is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ValidationKind identifies which validation rule was violated.
type ValidationKind string

const (
	// InvalidDateRange: fromDate after toDate, or either date missing/unparseable.
	InvalidDateRange ValidationKind = "InvalidDateRange"
	// InvalidBalance: openingBalance or bankBalance is not a finite decimal.
	InvalidBalance ValidationKind = "InvalidBalance"
	// InvalidTransition: a manual status override the state machine does not allow.
	InvalidTransition ValidationKind = "InvalidTransition"
)

// ValidationError carries the offending field alongside the rule that rejected
// it, so callers can translate it into a field-level user-facing message.
type ValidationError struct {
	Field string
	Kind  ValidationKind
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Msg)
}

// Unwrap makes errors.Is(err, ErrValidation) hold for every ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError constructs a field-level validation error.
func NewValidationError(kind ValidationKind, field, msg string) *ValidationError {
	return &ValidationError{Field: field, Kind: kind, Msg: msg}
}

// ValidationKindOf extracts the ValidationKind from err, if it is (or wraps) a ValidationError.
func ValidationKindOf(err error) (ValidationKind, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind, true
	}
	return "", false
}
