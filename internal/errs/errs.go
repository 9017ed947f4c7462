// Package errs defines the error kinds the services return to the transport
// layer. Handlers translate these into HTTP status codes; nothing else about
// presentation lives down here.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means no usable actor identity reached the service.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the actor is known but the policy denies the action.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means a referenced task or user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable wraps unexpected store failures. It is always surfaced,
	// never swallowed; retries belong to the store adapter, not the services.
	ErrUnavailable = errors.New("store unavailable")
)

// ValidationError reports a malformed or out-of-range field value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Unavailable tags a store error with ErrUnavailable while keeping the cause
// in the message.
func Unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
