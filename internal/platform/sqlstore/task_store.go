package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist/internal/domain"
	"github.com/phrazzld/tasklist/internal/platform/logger"
	"github.com/phrazzld/tasklist/internal/redact"
	"github.com/phrazzld/tasklist/internal/store"
)

type taskQueries struct {
	list         string
	listFiltered string
	exists       string
	ownerExists  string
	insert       string
	get          string
	update       string
	delete       string
	deleteAll    string
}

func newTaskQueries(d Dialect) taskQueries {
	tasks := d.Quote("tasks")
	users := d.Quote("user")
	return taskQueries{
		list:         d.Rebind(fmt.Sprintf("SELECT uuid, description, completed, owner FROM %s", tasks)),
		listFiltered: d.Rebind(fmt.Sprintf("SELECT uuid, description, completed, owner FROM %s WHERE completed = ?", tasks)),
		exists:       d.Rebind(fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE uuid = ?)", tasks)),
		ownerExists:  d.Rebind(fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE uuid = ?)", users)),
		insert:       d.Rebind(fmt.Sprintf("INSERT INTO %s (uuid, description, completed, owner) VALUES (?, ?, ?, ?)", tasks)),
		get:          d.Rebind(fmt.Sprintf("SELECT description, completed, owner FROM %s WHERE uuid = ?", tasks)),
		update:       d.Rebind(fmt.Sprintf("UPDATE %s SET description = ?, completed = ?, owner = ? WHERE uuid = ?", tasks)),
		delete:       d.Rebind(fmt.Sprintf("DELETE FROM %s WHERE uuid = ?", tasks)),
		deleteAll:    fmt.Sprintf("DELETE FROM %s", tasks),
	}
}

// TaskStore implements the store.TaskStore interface on database/sql.
type TaskStore struct {
	db      store.TxBeginner
	dialect Dialect
	q       taskQueries
	logger  *slog.Logger
}

// NewTaskStore creates a TaskStore over db, which is usually the dedicated
// connection of a Session. If logger is nil, a default logger will be used.
func NewTaskStore(db store.TxBeginner, dialect Dialect, logger *slog.Logger) *TaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:      db,
		dialect: dialect,
		q:       newTaskQueries(dialect),
		logger:  logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context, filter store.TaskFilter) (map[uuid.UUID]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args := s.q.list, []any(nil)
	if filter.Completed != nil {
		query, args = s.q.listFiltered, []any{*filter.Completed}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "list", "failed to list tasks", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make(map[uuid.UUID]domain.Task)
	for rows.Next() {
		var (
			rawID, rawOwner []byte
			task            domain.Task
		)
		if err := rows.Scan(&rawID, &task.Description, &task.Completed, &rawOwner); err != nil {
			log.Error("failed to scan task row", slog.String("error", redact.Error(err)))
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		if task.ID, err = decodeID(rawID); err != nil {
			return nil, fmt.Errorf("failed to decode task ID: %w", err)
		}
		if task.Owner, err = decodeID(rawOwner); err != nil {
			return nil, fmt.Errorf("failed to decode task owner: %w", err)
		}
		tasks[task.ID] = task
	}
	if err := rows.Err(); err != nil {
		log.Error("failed iterating task rows", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "list", "failed to list tasks", MapError(err))
	}

	log.Debug("tasks listed", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task domain.Task) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", redact.Error(err)))
		return uuid.Nil, err
	}

	var id uuid.UUID
	err := withFreshID(ctx, log, func() error {
		id = uuid.New()
		return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			if err := s.checkOwner(ctx, tx, task.Owner); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, s.q.insert,
				s.dialect.EncodeID(id),
				task.Description,
				task.Completed,
				s.dialect.EncodeID(task.Owner),
			)
			if err != nil {
				return store.NewStoreError("task", "create", "failed to insert task", MapError(err))
			}
			return nil
		})
	})
	if err != nil {
		logFailure(ctx, log, "failed to create task", err, slog.String("owner", task.Owner.String()))
		return uuid.Nil, err
	}

	log.Info("task created successfully",
		slog.String("task_id", id.String()),
		slog.String("owner", task.Owner.String()))
	return id, nil
}

// Get implements store.TaskStore.Get
func (s *TaskStore) Get(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.checkExists(ctx, s.db, id); err != nil {
		return domain.Task{}, err
	}

	task := domain.Task{ID: id}
	var rawOwner []byte
	err := s.db.QueryRowContext(ctx, s.q.get, s.dialect.EncodeID(id)).
		Scan(&task.Description, &task.Completed, &rawOwner)
	if err != nil {
		log.Error("failed to get task by ID",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", id.String()))
		return domain.Task{}, store.NewStoreError("task", "get", "failed to get task", MapError(err))
	}
	if task.Owner, err = decodeID(rawOwner); err != nil {
		return domain.Task{}, fmt.Errorf("failed to decode task owner: %w", err)
	}

	log.Debug("task retrieved successfully", slog.String("task_id", id.String()))
	return task, nil
}

// Replace implements store.TaskStore.Replace
func (s *TaskStore) Replace(ctx context.Context, id uuid.UUID, task domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during replace",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", id.String()))
		return err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.checkExists(ctx, tx, id); err != nil {
			return err
		}
		if err := s.checkOwner(ctx, tx, task.Owner); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, s.q.update,
			task.Description,
			task.Completed,
			s.dialect.EncodeID(task.Owner),
			s.dialect.EncodeID(id),
		)
		if err != nil {
			return store.NewStoreError("task", "replace", "failed to update task", MapError(err))
		}
		return nil
	})
	if err != nil {
		logFailure(ctx, log, "failed to replace task", err, slog.String("task_id", id.String()))
		return err
	}

	log.Info("task replaced successfully", slog.String("task_id", id.String()))
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.checkExists(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, s.q.delete, s.dialect.EncodeID(id)); err != nil {
			return store.NewStoreError("task", "delete", "failed to delete task", MapError(err))
		}
		return nil
	})
	if err != nil {
		logFailure(ctx, log, "failed to delete task", err, slog.String("task_id", id.String()))
		return err
	}

	log.Info("task deleted successfully", slog.String("task_id", id.String()))
	return nil
}

// DeleteAll implements store.TaskStore.DeleteAll
func (s *TaskStore) DeleteAll(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var removed int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, s.q.deleteAll)
		if err != nil {
			return store.NewStoreError("task", "delete_all", "failed to delete all tasks", MapError(err))
		}
		removed, _ = result.RowsAffected()
		return nil
	})
	if err != nil {
		log.Error("failed to delete all tasks", slog.String("error", redact.Error(err)))
		return err
	}

	log.Info("all tasks deleted", slog.Int64("rows", removed))
	return nil
}

// checkExists returns store.ErrTaskNotFound when no task has the given ID.
func (s *TaskStore) checkExists(ctx context.Context, q store.DBTX, id uuid.UUID) error {
	found, err := exists(ctx, q, s.q.exists, s.dialect.EncodeID(id))
	if err != nil {
		return fmt.Errorf("failed to check task existence: %w", err)
	}
	if !found {
		logger.FromContextOrDefault(ctx, s.logger).
			Debug("task not found", slog.String("task_id", id.String()))
		return store.ErrTaskNotFound
	}
	return nil
}

// checkOwner returns store.ErrOwnerNotFound when the owner is not a known user.
func (s *TaskStore) checkOwner(ctx context.Context, q store.DBTX, owner uuid.UUID) error {
	found, err := exists(ctx, q, s.q.ownerExists, s.dialect.EncodeID(owner))
	if err != nil {
		return fmt.Errorf("failed to check owner existence: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: %s", store.ErrOwnerNotFound, owner)
	}
	return nil
}

// exists runs a SELECT EXISTS(...) query keyed by a single identifier.
func exists(ctx context.Context, q store.DBTX, query string, id any) (bool, error) {
	var found bool
	if err := q.QueryRowContext(ctx, query, id).Scan(&found); err != nil {
		return false, MapError(err)
	}
	return found, nil
}
