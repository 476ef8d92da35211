package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Field-level failures are reported as *ValidationError, which matches
	// ErrValidation under errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an identifier is not a well-formed UUID.
	ErrInvalidID = errors.New("invalid ID")
)

// ValidationError describes a single field that failed validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field. err is the
// field-specific sentinel and may be nil.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Message)
}

// Unwrap returns the field-specific sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports every ValidationError as an ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ParseID parses the canonical textual form of an identifier.
// A malformed value yields a ValidationError wrapping ErrInvalidID.
func ParseID(field, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, NewValidationError(field, "is required", ErrInvalidID)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, NewValidationError(field, "has invalid format", ErrInvalidID)
	}
	return id, nil
}
