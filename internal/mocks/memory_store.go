package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist/internal/domain"
	"github.com/phrazzld/tasklist/internal/store"
)

// MockUserStore is an in-memory store.UserStore.
type MockUserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]domain.User
}

// NewMockUserStore creates an empty user store.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[uuid.UUID]domain.User)}
}

// Ensure MockUserStore implements store.UserStore interface
var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) List(ctx context.Context) (map[uuid.UUID]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[uuid.UUID]domain.User, len(m.users))
	for id, u := range m.users {
		out[id] = u
	}
	return out, nil
}

func (m *MockUserStore) Create(ctx context.Context, user domain.User) (uuid.UUID, error) {
	if err := user.Validate(); err != nil {
		return uuid.Nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = uuid.New()
	m.users[user.ID] = user
	return user.ID, nil
}

func (m *MockUserStore) Get(ctx context.Context, id uuid.UUID) (domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, store.ErrUserNotFound
	}
	return u, nil
}

func (m *MockUserStore) Replace(ctx context.Context, id uuid.UUID, user domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return store.ErrUserNotFound
	}
	user.ID = id
	m.users[id] = user
	return nil
}

func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *MockUserStore) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = make(map[uuid.UUID]domain.User)
	return nil
}

func (m *MockUserStore) has(id uuid.UUID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.users[id]
	return ok
}

// MockTaskStore is an in-memory store.TaskStore. When users is set, task
// owners must exist in it.
type MockTaskStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]domain.Task
	users *MockUserStore
}

// NewMockTaskStore creates an empty task store. users may be nil to skip
// owner checks.
func NewMockTaskStore(users *MockUserStore) *MockTaskStore {
	return &MockTaskStore{tasks: make(map[uuid.UUID]domain.Task), users: users}
}

// Ensure MockTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) List(ctx context.Context, filter store.TaskFilter) (map[uuid.UUID]domain.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[uuid.UUID]domain.Task)
	for id, t := range m.tasks {
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		out[id] = t
	}
	return out, nil
}

func (m *MockTaskStore) Create(ctx context.Context, task domain.Task) (uuid.UUID, error) {
	if err := m.check(task); err != nil {
		return uuid.Nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task.ID = uuid.New()
	m.tasks[task.ID] = task
	return task.ID, nil
}

func (m *MockTaskStore) Get(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tasks[id]
	if !ok {
		return domain.Task{}, store.ErrTaskNotFound
	}
	return t, nil
}

func (m *MockTaskStore) Replace(ctx context.Context, id uuid.UUID, task domain.Task) error {
	m.mu.Lock()
	_, ok := m.tasks[id]
	m.mu.Unlock()
	if !ok {
		return store.ErrTaskNotFound
	}
	if err := m.check(task); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task.ID = id
	m.tasks[id] = task
	return nil
}

func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *MockTaskStore) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = make(map[uuid.UUID]domain.Task)
	return nil
}

func (m *MockTaskStore) check(task domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	if m.users != nil && !m.users.has(task.Owner) {
		return fmt.Errorf("%w: %s", store.ErrOwnerNotFound, task.Owner)
	}
	return nil
}
