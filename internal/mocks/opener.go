package mocks

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/phrazzld/tasklist/internal/store"
)

// MockOpener implements store.SessionOpener over in-memory stores and
// counts how many sessions were opened and closed.
type MockOpener struct {
	// OpenFn overrides Open when set.
	OpenFn func(ctx context.Context) (store.Session, error)

	// Tasks and Users are handed to every session. They may be replaced
	// with any other implementation before the opener is used.
	Tasks store.TaskStore
	Users store.UserStore

	opened atomic.Int64
	closed atomic.Int64
}

// NewMockOpener creates an opener whose task store validates owners
// against its user store.
func NewMockOpener() *MockOpener {
	users := NewMockUserStore()
	return &MockOpener{
		Tasks: NewMockTaskStore(users),
		Users: users,
	}
}

// Ensure MockOpener implements store.SessionOpener interface
var _ store.SessionOpener = (*MockOpener)(nil)

// Open implements store.SessionOpener.Open
func (o *MockOpener) Open(ctx context.Context) (store.Session, error) {
	if o.OpenFn != nil {
		return o.OpenFn(ctx)
	}
	o.opened.Add(1)
	return &MockSession{tasks: o.Tasks, users: o.Users, onClose: func() { o.closed.Add(1) }}, nil
}

// Opened returns the number of sessions opened so far.
func (o *MockOpener) Opened() int64 { return o.opened.Load() }

// Closed returns the number of sessions closed so far.
func (o *MockOpener) Closed() int64 { return o.closed.Load() }

// MockSession implements store.Session.
type MockSession struct {
	tasks   store.TaskStore
	users   store.UserStore
	onClose func()
	once    sync.Once
}

// NewMockSession creates a session over the given stores.
func NewMockSession(tasks store.TaskStore, users store.UserStore) *MockSession {
	return &MockSession{tasks: tasks, users: users}
}

func (s *MockSession) Tasks() store.TaskStore { return s.tasks }

func (s *MockSession) Users() store.UserStore { return s.users }

// Close implements store.Session.Close
func (s *MockSession) Close() error {
	s.once.Do(func() {
		if s.onClose != nil {
			s.onClose()
		}
	})
	return nil
}
