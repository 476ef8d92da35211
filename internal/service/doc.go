// Package service contains the application use cases for tasks and users.
//
// Every operation opens exactly one store.Session, performs its work
// through the session's stores, and closes the session before returning,
// whatever the outcome. Partial updates (Alter) read, merge and write back
// inside that single session.
//
// Services depend on the store interfaces only, never on a particular
// database implementation.
package service
