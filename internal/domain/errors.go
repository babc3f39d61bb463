package domain

import (
	"errors"
	"fmt"
)

// Identity and authorization failures
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionInvalid     = errors.New("invalid or expired session")
	ErrForbidden          = errors.New("insufficient permissions")
)

// Conflicts with existing invariants
var (
	ErrDuplicateAccount     = errors.New("account with this email already exists")
	ErrDuplicateApplication = errors.New("application already exists for this spot")
	ErrInvalidTransition    = errors.New("application status cannot be changed")
)

// Referential failures
var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrSpotNotFound        = errors.New("spot not found")
	ErrApplicationNotFound = errors.New("application not found")
)

// ErrStoreUnavailable indicates the persistent store could not be reached
// within its bounded timeouts.
var ErrStoreUnavailable = errors.New("store unavailable")

// ValidationError carries a user-facing message for malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
