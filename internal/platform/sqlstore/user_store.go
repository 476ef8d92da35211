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

type userQueries struct {
	list      string
	exists    string
	insert    string
	get       string
	update    string
	delete    string
	deleteAll string
}

func newUserQueries(d Dialect) userQueries {
	users := d.Quote("user")
	return userQueries{
		list:      fmt.Sprintf("SELECT uuid, name FROM %s", users),
		exists:    d.Rebind(fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE uuid = ?)", users)),
		insert:    d.Rebind(fmt.Sprintf("INSERT INTO %s (uuid, name) VALUES (?, ?)", users)),
		get:       d.Rebind(fmt.Sprintf("SELECT name FROM %s WHERE uuid = ?", users)),
		update:    d.Rebind(fmt.Sprintf("UPDATE %s SET name = ? WHERE uuid = ?", users)),
		delete:    d.Rebind(fmt.Sprintf("DELETE FROM %s WHERE uuid = ?", users)),
		deleteAll: fmt.Sprintf("DELETE FROM %s", users),
	}
}

// UserStore implements the store.UserStore interface on database/sql.
type UserStore struct {
	db      store.TxBeginner
	dialect Dialect
	q       userQueries
	logger  *slog.Logger
}

// NewUserStore creates a UserStore over db.
// If logger is nil, a default logger will be used.
func NewUserStore(db store.TxBeginner, dialect Dialect, logger *slog.Logger) *UserStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserStore{
		db:      db,
		dialect: dialect,
		q:       newUserQueries(dialect),
		logger:  logger.With(slog.String("component", "user_store")),
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// List implements store.UserStore.List
func (s *UserStore) List(ctx context.Context) (map[uuid.UUID]domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, s.q.list)
	if err != nil {
		log.Error("failed to query users", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("user", "list", "failed to list users", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	users := make(map[uuid.UUID]domain.User)
	for rows.Next() {
		var (
			rawID []byte
			user  domain.User
		)
		if err := rows.Scan(&rawID, &user.Name); err != nil {
			log.Error("failed to scan user row", slog.String("error", redact.Error(err)))
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		if user.ID, err = decodeID(rawID); err != nil {
			return nil, fmt.Errorf("failed to decode user ID: %w", err)
		}
		users[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		log.Error("failed iterating user rows", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("user", "list", "failed to list users", MapError(err))
	}

	log.Debug("users listed", slog.Int("count", len(users)))
	return users, nil
}

// Create implements store.UserStore.Create
func (s *UserStore) Create(ctx context.Context, user domain.User) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create", slog.String("error", redact.Error(err)))
		return uuid.Nil, err
	}

	var id uuid.UUID
	err := withFreshID(ctx, log, func() error {
		id = uuid.New()
		if _, err := s.db.ExecContext(ctx, s.q.insert, s.dialect.EncodeID(id), user.Name); err != nil {
			return store.NewStoreError("user", "create", "failed to insert user", MapError(err))
		}
		return nil
	})
	if err != nil {
		logFailure(ctx, log, "failed to create user", err)
		return uuid.Nil, err
	}

	log.Info("user created successfully", slog.String("user_id", id.String()))
	return id, nil
}

// Get implements store.UserStore.Get
func (s *UserStore) Get(ctx context.Context, id uuid.UUID) (domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.checkExists(ctx, s.db, id); err != nil {
		return domain.User{}, err
	}

	user := domain.User{ID: id}
	if err := s.db.QueryRowContext(ctx, s.q.get, s.dialect.EncodeID(id)).Scan(&user.Name); err != nil {
		log.Error("failed to get user by ID",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id.String()))
		return domain.User{}, store.NewStoreError("user", "get", "failed to get user", MapError(err))
	}

	log.Debug("user retrieved successfully", slog.String("user_id", id.String()))
	return user, nil
}

// Replace implements store.UserStore.Replace
func (s *UserStore) Replace(ctx context.Context, id uuid.UUID, user domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during replace",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id.String()))
		return err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.checkExists(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, s.q.update, user.Name, s.dialect.EncodeID(id)); err != nil {
			return store.NewStoreError("user", "replace", "failed to update user", MapError(err))
		}
		return nil
	})
	if err != nil {
		logFailure(ctx, log, "failed to replace user", err, slog.String("user_id", id.String()))
		return err
	}

	log.Info("user replaced successfully", slog.String("user_id", id.String()))
	return nil
}

// Delete implements store.UserStore.Delete
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.checkExists(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, s.q.delete, s.dialect.EncodeID(id)); err != nil {
			return store.NewStoreError("user", "delete", "failed to delete user", MapError(err))
		}
		return nil
	})
	if err != nil {
		logFailure(ctx, log, "failed to delete user", err, slog.String("user_id", id.String()))
		return err
	}

	log.Info("user deleted successfully", slog.String("user_id", id.String()))
	return nil
}

// DeleteAll implements store.UserStore.DeleteAll
func (s *UserStore) DeleteAll(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var removed int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, s.q.deleteAll)
		if err != nil {
			return store.NewStoreError("user", "delete_all", "failed to delete all users", MapError(err))
		}
		removed, _ = result.RowsAffected()
		return nil
	})
	if err != nil {
		log.Error("failed to delete all users", slog.String("error", redact.Error(err)))
		return err
	}

	log.Info("all users deleted", slog.Int64("rows", removed))
	return nil
}

func (s *UserStore) checkExists(ctx context.Context, q store.DBTX, id uuid.UUID) error {
	found, err := exists(ctx, q, s.q.exists, s.dialect.EncodeID(id))
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if !found {
		logger.FromContextOrDefault(ctx, s.logger).
			Debug("user not found", slog.String("user_id", id.String()))
		return store.ErrUserNotFound
	}
	return nil
}
