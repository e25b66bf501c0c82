package entities

// ValidationError reports a rejected field value. It is always surfaced to
// the caller with a 4xx status and never retried.
type ValidationError struct {
	Reason string
}

// NewValidationError creates a validation error with a human-readable reason.
func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Reason
}
