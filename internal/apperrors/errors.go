// Package apperrors holds the error taxonomy shared by the core packages.
//
// Storage implementations translate driver-level conditions into these
// sentinels. Any other error coming out of storage is a persistence failure
// and is propagated wrapped, never swallowed.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested split, request or participant does not exist.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed a precondition.
var ErrValidation = errors.New("validation error")

// ErrAllocationOverflow indicates that partition amounts add up to more than the total.
var ErrAllocationOverflow = errors.New("allocated amounts exceed total")

// ErrReferenceRequired indicates a digital declaration without a payment reference.
// It is also a validation error.
var ErrReferenceRequired error = &ValidationError{Field: "reference", Reason: "payment reference is required"}

// ErrDuplicateReference indicates the reference is already held by another participant.
var ErrDuplicateReference = errors.New("payment reference already used")

// ErrInvalidCode indicates a cash confirmation with the wrong code.
var ErrInvalidCode = errors.New("invalid cash code")

// ErrAlreadyDeclared indicates the participant was no longer in the expected state
// when the write happened. Callers should re-fetch instead of retrying.
var ErrAlreadyDeclared = errors.New("payment already declared")

// ValidationError describes which input failed and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid returns a *ValidationError for field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
