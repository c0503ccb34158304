// Package apperrors defines the error kinds surfaced by the leaderboard
// services. Handlers classify failures by these types when choosing an
// HTTP status; the services themselves never map to status codes.
package apperrors

import "fmt"

// ValidationError reports malformed or missing caller input. It is always
// the client's fault and is never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IdentityError reports a token that is absent, malformed or rejected by
// the auth provider. Callers must treat it as "re-authenticate", not as a
// transient condition.
type IdentityError struct {
	Message string
	Err     error
}

func (e *IdentityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *IdentityError) Unwrap() error { return e.Err }

// Identity wraps a provider rejection as an IdentityError.
func Identity(message string, err error) error {
	return &IdentityError{Message: message, Err: err}
}

// StorageError reports a failed read or write against the score store.
// The ledger does not retry; outer layers decide what to do.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps a store failure as a StorageError.
func Storage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
