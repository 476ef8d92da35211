package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist/internal/domain"
	"github.com/phrazzld/tasklist/internal/platform/logger"
	"github.com/phrazzld/tasklist/internal/redact"
	"github.com/phrazzld/tasklist/internal/store"
	"go.opentelemetry.io/otel/attribute"
)

// UserService provides user-related operations
type UserService interface {
	List(ctx context.Context) (map[uuid.UUID]domain.User, error)
	Create(ctx context.Context, patch domain.UserPatch) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (domain.User, error)
	Replace(ctx context.Context, id uuid.UUID, patch domain.UserPatch) error
	Alter(ctx context.Context, id uuid.UUID, patch domain.UserPatch) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	sessions store.SessionOpener
	logger   *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(sessions store.SessionOpener, logger *slog.Logger) (UserService, error) {
	if sessions == nil {
		return nil, NewServiceError("user", "create_service", ErrNilSessionOpener)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		sessions: sessions,
		logger:   logger.With("component", "user_service"),
	}, nil
}

func (s *UserServiceImpl) withUsers(ctx context.Context, op string, fn func(store.UserStore) error) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := s.sessions.Open(ctx)
	if err != nil {
		log.Error("failed to open session",
			"operation", op,
			"error", redact.Error(err))
		return NewServiceError("user", op, err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			log.Warn("failed to close session",
				"operation", op,
				"error", redact.Error(cerr))
		}
	}()

	return fn(session.Users())
}

// List implements UserService.List
func (s *UserServiceImpl) List(ctx context.Context) (users map[uuid.UUID]domain.User, err error) {
	ctx, span := startSpan(ctx, "UserService.List")
	defer func() { endSpan(span, err) }()

	err = s.withUsers(ctx, "list", func(us store.UserStore) error {
		var err error
		users, err = us.List(ctx)
		return err
	})
	if err != nil {
		s.logFailure(ctx, "failed to list users", err)
		return nil, NewServiceError("user", "list", err)
	}
	return users, nil
}

// Create implements UserService.Create
func (s *UserServiceImpl) Create(ctx context.Context, patch domain.UserPatch) (id uuid.UUID, err error) {
	ctx, span := startSpan(ctx, "UserService.Create")
	defer func() { endSpan(span, err) }()

	user, err := domain.NewUser(patch)
	if err != nil {
		return uuid.Nil, err
	}

	err = s.withUsers(ctx, "create", func(us store.UserStore) error {
		var err error
		id, err = us.Create(ctx, user)
		return err
	})
	if err != nil {
		s.logFailure(ctx, "failed to create user", err)
		return uuid.Nil, NewServiceError("user", "create", err)
	}

	span.SetAttributes(attribute.String("user.id", id.String()))
	logger.FromContextOrDefault(ctx, s.logger).Info("user created", "user_id", id)
	return id, nil
}

// Get implements UserService.Get
func (s *UserServiceImpl) Get(ctx context.Context, id uuid.UUID) (user domain.User, err error) {
	ctx, span := startSpan(ctx, "UserService.Get", attribute.String("user.id", id.String()))
	defer func() { endSpan(span, err) }()

	err = s.withUsers(ctx, "get", func(us store.UserStore) error {
		var err error
		user, err = us.Get(ctx, id)
		return err
	})
	if err != nil {
		s.logFailure(ctx, "failed to retrieve user", err, "user_id", id)
		return domain.User{}, NewServiceError("user", "get", err)
	}
	return user, nil
}

// Replace implements UserService.Replace
func (s *UserServiceImpl) Replace(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (err error) {
	ctx, span := startSpan(ctx, "UserService.Replace", attribute.String("user.id", id.String()))
	defer func() { endSpan(span, err) }()

	user, err := domain.NewUser(patch)
	if err != nil {
		return err
	}

	err = s.withUsers(ctx, "replace", func(us store.UserStore) error {
		return us.Replace(ctx, id, user)
	})
	if err != nil {
		s.logFailure(ctx, "failed to replace user", err, "user_id", id)
		return NewServiceError("user", "replace", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user replaced", "user_id", id)
	return nil
}

// Alter implements UserService.Alter
func (s *UserServiceImpl) Alter(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (err error) {
	ctx, span := startSpan(ctx, "UserService.Alter", attribute.String("user.id", id.String()))
	defer func() { endSpan(span, err) }()

	err = s.withUsers(ctx, "alter", func(us store.UserStore) error {
		current, err := us.Get(ctx, id)
		if err != nil {
			return err
		}
		updated := current.Apply(patch)
		if err := updated.Validate(); err != nil {
			return err
		}
		return us.Replace(ctx, id, updated)
	})
	if err != nil {
		s.logFailure(ctx, "failed to alter user", err, "user_id", id)
		return NewServiceError("user", "alter", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user altered", "user_id", id)
	return nil
}

// Delete implements UserService.Delete
// Tasks owned by the user are left untouched.
func (s *UserServiceImpl) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := startSpan(ctx, "UserService.Delete", attribute.String("user.id", id.String()))
	defer func() { endSpan(span, err) }()

	err = s.withUsers(ctx, "delete", func(us store.UserStore) error {
		return us.Delete(ctx, id)
	})
	if err != nil {
		s.logFailure(ctx, "failed to delete user", err, "user_id", id)
		return NewServiceError("user", "delete", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user deleted", "user_id", id)
	return nil
}

// DeleteAll implements UserService.DeleteAll
func (s *UserServiceImpl) DeleteAll(ctx context.Context) (err error) {
	ctx, span := startSpan(ctx, "UserService.DeleteAll")
	defer func() { endSpan(span, err) }()

	err = s.withUsers(ctx, "delete_all", func(us store.UserStore) error {
		return us.DeleteAll(ctx)
	})
	if err != nil {
		s.logFailure(ctx, "failed to delete all users", err)
		return NewServiceError("user", "delete_all", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("all users deleted")
	return nil
}

func (s *UserServiceImpl) logFailure(ctx context.Context, msg string, err error, args ...any) {
	logFailure(logger.FromContextOrDefault(ctx, s.logger), msg, err, args...)
}
