package store

import "context"

// Session is one logical request's hold on the database. All stores it
// hands out share a single underlying connection. Close must be called on
// every exit path; it is safe to call more than once.
type Session interface {
	Tasks() TaskStore
	Users() UserStore
	Close() error
}

// SessionOpener acquires sessions.
type SessionOpener interface {
	Open(ctx context.Context) (Session, error)
}
