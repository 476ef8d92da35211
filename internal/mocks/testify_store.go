package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist/internal/domain"
	"github.com/phrazzld/tasklist/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockTaskStore is a mock of store.TaskStore interface for use with testify/mock
type TestifyMockTaskStore struct {
	mock.Mock
}

// Ensure TestifyMockTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TestifyMockTaskStore)(nil)

func (m *TestifyMockTaskStore) List(ctx context.Context, filter store.TaskFilter) (map[uuid.UUID]domain.Task, error) {
	args := m.Called(ctx, filter)
	if tasks, ok := args.Get(0).(map[uuid.UUID]domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TestifyMockTaskStore) Create(ctx context.Context, task domain.Task) (uuid.UUID, error) {
	args := m.Called(ctx, task)
	if id, ok := args.Get(0).(uuid.UUID); ok {
		return id, args.Error(1)
	}
	return uuid.Nil, args.Error(1)
}

func (m *TestifyMockTaskStore) Get(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	args := m.Called(ctx, id)
	if task, ok := args.Get(0).(domain.Task); ok {
		return task, args.Error(1)
	}
	return domain.Task{}, args.Error(1)
}

func (m *TestifyMockTaskStore) Replace(ctx context.Context, id uuid.UUID, task domain.Task) error {
	return m.Called(ctx, id, task).Error(0)
}

func (m *TestifyMockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *TestifyMockTaskStore) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// TestifyMockUserStore is a mock of store.UserStore interface for use with testify/mock
type TestifyMockUserStore struct {
	mock.Mock
}

// Ensure TestifyMockUserStore implements store.UserStore interface
var _ store.UserStore = (*TestifyMockUserStore)(nil)

func (m *TestifyMockUserStore) List(ctx context.Context) (map[uuid.UUID]domain.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).(map[uuid.UUID]domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TestifyMockUserStore) Create(ctx context.Context, user domain.User) (uuid.UUID, error) {
	args := m.Called(ctx, user)
	if id, ok := args.Get(0).(uuid.UUID); ok {
		return id, args.Error(1)
	}
	return uuid.Nil, args.Error(1)
}

func (m *TestifyMockUserStore) Get(ctx context.Context, id uuid.UUID) (domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(domain.User); ok {
		return user, args.Error(1)
	}
	return domain.User{}, args.Error(1)
}

func (m *TestifyMockUserStore) Replace(ctx context.Context, id uuid.UUID, user domain.User) error {
	return m.Called(ctx, id, user).Error(0)
}

func (m *TestifyMockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *TestifyMockUserStore) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
