package models

import "errors"

// Domain error taxonomy. Handlers translate these into HTTP responses;
// everything below the handler layer speaks these errors only.
var (
	// ErrNotFound indicates a missing entity.
	ErrNotFound = errors.New("Not found")

	// ErrUnauthorized indicates missing/invalid credentials or token.
	ErrUnauthorized = errors.New("Unauthorized")

	// ErrForbidden indicates a valid identity without sufficient rights.
	// The HTTP layer collapses it to 404 so private files are
	// indistinguishable from absent ones.
	ErrForbidden = errors.New("Forbidden")

	// ErrConflict indicates a duplicate email on registration.
	ErrConflict = errors.New("Already exist")
)

// ValidationError carries a client-facing message for malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
