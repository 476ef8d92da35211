package api

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist/internal/domain"
)

// TaskRequest is the body of POST /task and PUT /task/{id}. Absent
// description and completed take their defaults.
type TaskRequest struct {
	Description *string    `json:"description" validate:"omitempty,max=1024"`
	Completed   *bool      `json:"completed"`
	Owner       *uuid.UUID `json:"owner" validate:"required"`
}

// TaskPatchRequest is the body of PATCH /task/{id}. Only present fields
// change, and a present field may not be null.
type TaskPatchRequest struct {
	Description *string    `json:"description" validate:"omitempty,max=1024"`
	Completed   *bool      `json:"completed"`
	Owner       *uuid.UUID `json:"owner"`
}

// UnmarshalJSON rejects explicit nulls, which would otherwise be
// indistinguishable from an absent field.
func (r *TaskPatchRequest) UnmarshalJSON(data []byte) error {
	type plain TaskPatchRequest
	return decodePatch(data, (*plain)(r))
}

// UserRequest is the body of POST /user and PUT /user/{id}.
type UserRequest struct {
	Name *string `json:"name" validate:"required,max=32"`
}

// UserPatchRequest is the body of PATCH /user/{id}.
type UserPatchRequest struct {
	Name *string `json:"name" validate:"omitempty,max=32"`
}

func (r *UserPatchRequest) UnmarshalJSON(data []byte) error {
	type plain UserPatchRequest
	return decodePatch(data, (*plain)(r))
}

// decodePatch decodes a PATCH object into dst. A field set to null is a
// validation error and unknown fields are rejected.
func decodePatch(data []byte, dst interface{}) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for name, raw := range fields {
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return domain.NewValidationError(name, "must not be null", nil)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// CreatedResponse is returned by every create endpoint.
type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

func (r TaskRequest) toPatch() domain.TaskPatch {
	return domain.TaskPatch{Description: r.Description, Completed: r.Completed, Owner: r.Owner}
}

func (r TaskPatchRequest) toPatch() domain.TaskPatch {
	return domain.TaskPatch{Description: r.Description, Completed: r.Completed, Owner: r.Owner}
}

func (r UserRequest) toPatch() domain.UserPatch {
	return domain.UserPatch{Name: r.Name}
}

func (r UserPatchRequest) toPatch() domain.UserPatch {
	return domain.UserPatch{Name: r.Name}
}
