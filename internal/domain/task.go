package domain

import (
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// DefaultTaskDescription is stored when a task is created without a description.
	DefaultTaskDescription = "no description"

	// MaxTaskDescriptionLength is measured in characters, not bytes.
	MaxTaskDescriptionLength = 1024
)

// Task validation errors
var (
	ErrTaskDescriptionTooLong = errors.New("task description too long")
	ErrOwnerRequired          = errors.New("task owner is required")
)

// Task is a single to-do item owned by a user.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Owner       uuid.UUID `json:"owner"`
}

// TaskPatch carries the task fields a caller explicitly supplied.
// A nil field is absent; a non-nil field is present even if it points at
// the default value.
type TaskPatch struct {
	Description *string
	Completed   *bool
	Owner       *uuid.UUID
}

// NewTask builds a task from the supplied fields, filling omitted optional
// fields with their defaults. The owner must be present. The returned task
// has no ID; identifiers are assigned by the store.
func NewTask(p TaskPatch) (Task, error) {
	if p.Owner == nil {
		return Task{}, NewValidationError("owner", "is required", ErrOwnerRequired)
	}

	task := Task{
		Description: DefaultTaskDescription,
		Completed:   false,
	}.Apply(p)

	if err := task.Validate(); err != nil {
		return Task{}, err
	}
	return task, nil
}

// Apply returns a copy of t with every present field of p written over it.
func (t Task) Apply(p TaskPatch) Task {
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Owner != nil {
		t.Owner = *p.Owner
	}
	return t
}

// Validate checks the mutable fields of the task. The ID is not checked
// because tasks are validated before the store assigns one.
func (t Task) Validate() error {
	if utf8.RuneCountInString(t.Description) > MaxTaskDescriptionLength {
		return NewValidationError("description", "exceeds 1024 characters", ErrTaskDescriptionTooLong)
	}
	if t.Owner == uuid.Nil {
		return NewValidationError("owner", "is required", ErrOwnerRequired)
	}
	return nil
}
