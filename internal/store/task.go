package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist/internal/domain"
)

// TaskFilter narrows a task listing. A nil Completed lists every task.
type TaskFilter struct {
	Completed *bool
}

// TaskStore defines the interface for task data persistence.
// Every identifier-keyed operation checks that the row exists before
// touching it, so a missing task is always reported as ErrTaskNotFound.
type TaskStore interface {
	// List returns the tasks matching filter keyed by ID.
	// Iteration order is not defined.
	List(ctx context.Context, filter TaskFilter) (map[uuid.UUID]domain.Task, error)

	// Create assigns a new random ID, saves the task and returns the ID.
	// Returns ErrOwnerNotFound if the task's owner does not exist.
	Create(ctx context.Context, task domain.Task) (uuid.UUID, error)

	// Get retrieves a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Get(ctx context.Context, id uuid.UUID) (domain.Task, error)

	// Replace overwrites every mutable field of the task.
	// Returns ErrTaskNotFound if the task does not exist and
	// ErrOwnerNotFound if the new owner does not exist.
	Replace(ctx context.Context, id uuid.UUID, task domain.Task) error

	// Delete removes a task permanently.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every task. It succeeds on an empty store.
	DeleteAll(ctx context.Context) error
}
