package domain

import (
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxUserNameLength is measured in characters, not bytes.
const MaxUserNameLength = 32

// User validation errors
var (
	ErrEmptyUserName   = errors.New("user name cannot be empty")
	ErrUserNameTooLong = errors.New("user name too long")
)

// User owns tasks. It has no optional fields.
type User struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UserPatch carries the user fields a caller explicitly supplied.
type UserPatch struct {
	Name *string
}

// NewUser builds a user from the supplied fields. The name is mandatory.
func NewUser(p UserPatch) (User, error) {
	if p.Name == nil {
		return User{}, NewValidationError("name", "is required", ErrEmptyUserName)
	}

	user := User{}.Apply(p)
	if err := user.Validate(); err != nil {
		return User{}, err
	}
	return user, nil
}

// Apply returns a copy of u with every present field of p written over it.
func (u User) Apply(p UserPatch) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	return u
}

// Validate checks if the User has valid data.
func (u User) Validate() error {
	if u.Name == "" {
		return NewValidationError("name", "is required", ErrEmptyUserName)
	}
	if utf8.RuneCountInString(u.Name) > MaxUserNameLength {
		return NewValidationError("name", "exceeds 32 characters", ErrUserNameTooLong)
	}
	return nil
}
