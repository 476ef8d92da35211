package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist/internal/domain"
	"github.com/phrazzld/tasklist/internal/platform/logger"
	"github.com/phrazzld/tasklist/internal/redact"
	"github.com/phrazzld/tasklist/internal/store"
	"go.opentelemetry.io/otel/attribute"
)

// TaskService provides task-related operations
type TaskService interface {
	// List returns every task, or only those whose completion flag equals
	// *completed when completed is non-nil.
	List(ctx context.Context, completed *bool) (map[uuid.UUID]domain.Task, error)

	// Create builds a task from patch, applying defaults for absent
	// fields, saves it and returns its new ID.
	Create(ctx context.Context, patch domain.TaskPatch) (uuid.UUID, error)

	// Get retrieves a task by its ID
	Get(ctx context.Context, id uuid.UUID) (domain.Task, error)

	// Replace overwrites the task with one built from patch. Absent fields
	// take their defaults, not their previous values.
	Replace(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) error

	// Alter overwrites only the fields present in patch.
	Alter(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) error

	// Delete removes a task by its ID
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every task
	DeleteAll(ctx context.Context) error
}

// ErrNilSessionOpener is returned by the constructors when no opener is given.
var ErrNilSessionOpener = errors.New("session opener cannot be nil")

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	sessions store.SessionOpener
	logger   *slog.Logger
}

// NewTaskService creates a new TaskService
// It returns an error if the session opener is nil.
func NewTaskService(sessions store.SessionOpener, logger *slog.Logger) (TaskService, error) {
	if sessions == nil {
		return nil, NewServiceError("task", "create_service", ErrNilSessionOpener)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		sessions: sessions,
		logger:   logger.With("component", "task_service"),
	}, nil
}

// withTasks runs fn against the task store of a fresh session and closes
// the session afterwards.
func (s *TaskServiceImpl) withTasks(ctx context.Context, op string, fn func(store.TaskStore) error) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := s.sessions.Open(ctx)
	if err != nil {
		log.Error("failed to open session",
			"operation", op,
			"error", redact.Error(err))
		return NewServiceError("task", op, err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			log.Warn("failed to close session",
				"operation", op,
				"error", redact.Error(cerr))
		}
	}()

	return fn(session.Tasks())
}

// List implements TaskService.List
func (s *TaskServiceImpl) List(ctx context.Context, completed *bool) (tasks map[uuid.UUID]domain.Task, err error) {
	ctx, span := startSpan(ctx, "TaskService.List")
	if completed != nil {
		span.SetAttributes(attribute.Bool("task.completed", *completed))
	}
	defer func() { endSpan(span, err) }()

	err = s.withTasks(ctx, "list", func(ts store.TaskStore) error {
		var err error
		tasks, err = ts.List(ctx, store.TaskFilter{Completed: completed})
		return err
	})
	if err != nil {
		s.logFailure(ctx, "failed to list tasks", err)
		return nil, NewServiceError("task", "list", err)
	}
	return tasks, nil
}

// Create implements TaskService.Create
func (s *TaskServiceImpl) Create(ctx context.Context, patch domain.TaskPatch) (id uuid.UUID, err error) {
	ctx, span := startSpan(ctx, "TaskService.Create")
	defer func() { endSpan(span, err) }()
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(patch)
	if err != nil {
		log.Debug("rejected invalid task", "error", redact.Error(err))
		return uuid.Nil, err
	}

	err = s.withTasks(ctx, "create", func(ts store.TaskStore) error {
		var err error
		id, err = ts.Create(ctx, task)
		return err
	})
	if err != nil {
		s.logFailure(ctx, "failed to create task", err, "owner", task.Owner)
		return uuid.Nil, NewServiceError("task", "create", err)
	}

	span.SetAttributes(attribute.String("task.id", id.String()))
	log.Info("task created", "task_id", id, "owner", task.Owner)
	return id, nil
}

// Get implements TaskService.Get
func (s *TaskServiceImpl) Get(ctx context.Context, id uuid.UUID) (task domain.Task, err error) {
	ctx, span := startSpan(ctx, "TaskService.Get", attribute.String("task.id", id.String()))
	defer func() { endSpan(span, err) }()

	err = s.withTasks(ctx, "get", func(ts store.TaskStore) error {
		var err error
		task, err = ts.Get(ctx, id)
		return err
	})
	if err != nil {
		s.logFailure(ctx, "failed to retrieve task", err, "task_id", id)
		return domain.Task{}, NewServiceError("task", "get", err)
	}
	return task, nil
}

// Replace implements TaskService.Replace
func (s *TaskServiceImpl) Replace(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (err error) {
	ctx, span := startSpan(ctx, "TaskService.Replace", attribute.String("task.id", id.String()))
	defer func() { endSpan(span, err) }()

	task, err := domain.NewTask(patch)
	if err != nil {
		return err
	}

	err = s.withTasks(ctx, "replace", func(ts store.TaskStore) error {
		return ts.Replace(ctx, id, task)
	})
	if err != nil {
		s.logFailure(ctx, "failed to replace task", err, "task_id", id)
		return NewServiceError("task", "replace", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task replaced", "task_id", id)
	return nil
}

// Alter implements TaskService.Alter
// The read, merge and write all happen in the same session.
func (s *TaskServiceImpl) Alter(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (err error) {
	ctx, span := startSpan(ctx, "TaskService.Alter", attribute.String("task.id", id.String()))
	defer func() { endSpan(span, err) }()

	err = s.withTasks(ctx, "alter", func(ts store.TaskStore) error {
		current, err := ts.Get(ctx, id)
		if err != nil {
			return err
		}
		updated := current.Apply(patch)
		if err := updated.Validate(); err != nil {
			return err
		}
		return ts.Replace(ctx, id, updated)
	})
	if err != nil {
		s.logFailure(ctx, "failed to alter task", err, "task_id", id)
		return NewServiceError("task", "alter", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task altered", "task_id", id)
	return nil
}

// Delete implements TaskService.Delete
func (s *TaskServiceImpl) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := startSpan(ctx, "TaskService.Delete", attribute.String("task.id", id.String()))
	defer func() { endSpan(span, err) }()

	err = s.withTasks(ctx, "delete", func(ts store.TaskStore) error {
		return ts.Delete(ctx, id)
	})
	if err != nil {
		s.logFailure(ctx, "failed to delete task", err, "task_id", id)
		return NewServiceError("task", "delete", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", "task_id", id)
	return nil
}

// DeleteAll implements TaskService.DeleteAll
func (s *TaskServiceImpl) DeleteAll(ctx context.Context) (err error) {
	ctx, span := startSpan(ctx, "TaskService.DeleteAll")
	defer func() { endSpan(span, err) }()

	err = s.withTasks(ctx, "delete_all", func(ts store.TaskStore) error {
		return ts.DeleteAll(ctx)
	})
	if err != nil {
		s.logFailure(ctx, "failed to delete all tasks", err)
		return NewServiceError("task", "delete_all", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("all tasks deleted")
	return nil
}

func (s *TaskServiceImpl) logFailure(ctx context.Context, msg string, err error, args ...any) {
	logFailure(logger.FromContextOrDefault(ctx, s.logger), msg, err, args...)
}

// logFailure logs expected errors at debug level and the rest as errors.
func logFailure(log *slog.Logger, msg string, err error, args ...any) {
	args = append(args, "error", redact.Error(err))
	if isExpected(err) {
		log.Debug(msg, args...)
		return
	}
	log.Error(msg, args...)
}
