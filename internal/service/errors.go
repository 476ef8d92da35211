package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tasklist/internal/domain"
	"github.com/phrazzld/tasklist/internal/store"
)

// Error handling principles:
//  1. Expected conditions (validation failures, not-found, unknown owner)
//     are returned as they come from the domain or store, so callers can
//     match them with errors.Is.
//  2. Unexpected errors are wrapped in a ServiceError carrying the operation.
//  3. The API layer maps errors to HTTP status codes.

// ServiceError wraps unexpected errors from a service with context.
type ServiceError struct {
	// Entity is "task" or "user"
	Entity string
	// Operation is the operation that failed (e.g., "create", "alter")
	Operation string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service %s failed: %v", e.Entity, e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err for the given entity and operation.
// Expected errors are returned directly without wrapping.
func NewServiceError(entity, operation string, err error) error {
	if err == nil {
		return nil
	}
	var serviceErr *ServiceError
	if isExpected(err) || errors.As(err, &serviceErr) {
		return err
	}
	return &ServiceError{Entity: entity, Operation: operation, Err: err}
}

func isExpected(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, store.ErrInvalidEntity)
}
