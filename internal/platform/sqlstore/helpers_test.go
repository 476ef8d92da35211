package sqlstore

import (
	"database/sql/driver"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist/internal/domain"
)

func domainUser(name string) domain.User {
	return domain.User{Name: name}
}

func domainTask(owner uuid.UUID) domain.Task {
	return domain.Task{Description: domain.DefaultTaskDescription, Owner: owner}
}

// capturedArg matches any value and records it for later assertions.
type capturedArg struct{ dst *any }

func (c capturedArg) Match(v driver.Value) bool {
	*c.dst = v
	return true
}

func captureArg(dst *any) capturedArg {
	return capturedArg{dst: dst}
}
