// Package apperror holds the sentinel errors shared by services and
// controllers. Services wrap them with context via fmt.Errorf("...: %w", ...);
// controllers translate them to HTTP status codes with errors.Is.
package apperror

import "errors"

var (
	// ErrNotFound covers missing tests, questions, results and users.
	ErrNotFound = errors.New("resource not found")

	// ErrTestInactive marks tests that exist but are not solvable.
	ErrTestInactive = errors.New("test is not active")

	// ErrUnauthenticated covers missing, malformed or expired tokens.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden is returned when the principal's role does not permit
	// the operation, or a result belongs to another user.
	ErrForbidden = errors.New("access forbidden")

	// ErrValidation covers malformed request payloads and entities that
	// fail construction-time validation.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable wraps storage I/O failures. No retries happen at
	// this layer.
	ErrUnavailable = errors.New("storage unavailable")
)
