package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/tasklist/internal/platform/logger"
	"github.com/phrazzld/tasklist/internal/redact"
	"github.com/phrazzld/tasklist/internal/store"
)

// Opener hands out sessions backed by connections from a pool.
type Opener struct {
	db      *sql.DB
	dialect Dialect
	logger  *slog.Logger
}

// NewOpener creates an Opener over db.
// If logger is nil, a default logger will be used.
func NewOpener(db *sql.DB, dialect Dialect, logger *slog.Logger) *Opener {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{db: db, dialect: dialect, logger: logger}
}

// Ensure Opener implements store.SessionOpener interface
var _ store.SessionOpener = (*Opener)(nil)

// Open acquires one connection from the pool and binds both stores to it.
func (o *Opener) Open(ctx context.Context) (store.Session, error) {
	conn, err := o.db.Conn(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, o.logger).
			Error("failed to acquire database connection", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	return &Session{
		conn:  conn,
		tasks: NewTaskStore(conn, o.dialect, o.logger),
		users: NewUserStore(conn, o.dialect, o.logger),
	}, nil
}

// Session is a store.Session over a single *sql.Conn.
type Session struct {
	conn     *sql.Conn
	tasks    *TaskStore
	users    *UserStore
	once     sync.Once
	closeErr error
}

// Ensure Session implements store.Session interface
var _ store.Session = (*Session)(nil)

func (s *Session) Tasks() store.TaskStore { return s.tasks }

func (s *Session) Users() store.UserStore { return s.users }

// Close returns the connection to the pool. Later calls return the result
// of the first one.
func (s *Session) Close() error {
	s.once.Do(func() {
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}
