package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// List returns every user keyed by ID.
	List(ctx context.Context) (map[uuid.UUID]domain.User, error)

	// Create assigns a new random ID, saves the user and returns the ID.
	Create(ctx context.Context, user domain.User) (uuid.UUID, error)

	// Get retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	Get(ctx context.Context, id uuid.UUID) (domain.User, error)

	// Replace overwrites the user's name.
	// Returns ErrUserNotFound if the user does not exist.
	Replace(ctx context.Context, id uuid.UUID, user domain.User) error

	// Delete removes a user permanently. Tasks owned by the user are left
	// in place.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every user. It succeeds on an empty store.
	DeleteAll(ctx context.Context) error
}
