package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestNewTask(t *testing.T) {
	t.Parallel()

	owner := uuid.New()

	tests := []struct {
		name    string
		patch   TaskPatch
		want    Task
		wantErr error
	}{
		{
			name:  "all fields supplied",
			patch: TaskPatch{Description: strPtr("foo"), Completed: boolPtr(true), Owner: &owner},
			want:  Task{Description: "foo", Completed: true, Owner: owner},
		},
		{
			name:  "description omitted",
			patch: TaskPatch{Completed: boolPtr(true), Owner: &owner},
			want:  Task{Description: DefaultTaskDescription, Completed: true, Owner: owner},
		},
		{
			name:  "only owner",
			patch: TaskPatch{Owner: &owner},
			want:  Task{Description: DefaultTaskDescription, Completed: false, Owner: owner},
		},
		{
			name:  "empty description is kept",
			patch: TaskPatch{Description: strPtr(""), Owner: &owner},
			want:  Task{Description: "", Owner: owner},
		},
		{
			name:    "owner missing",
			patch:   TaskPatch{Description: strPtr("foo")},
			wantErr: ErrOwnerRequired,
		},
		{
			name:    "nil owner",
			patch:   TaskPatch{Owner: &uuid.Nil},
			wantErr: ErrOwnerRequired,
		},
		{
			name:    "description too long",
			patch:   TaskPatch{Description: strPtr(strings.Repeat("a", MaxTaskDescriptionLength+1)), Owner: &owner},
			wantErr: ErrTaskDescriptionTooLong,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewTask(tc.patch)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantErr)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, uuid.Nil, got.ID, "store assigns the ID")
		})
	}
}

func TestTaskDescriptionLengthCountsCharacters(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	// 1024 two-byte characters is 2048 bytes but still within the limit.
	desc := strings.Repeat("é", MaxTaskDescriptionLength)

	task, err := NewTask(TaskPatch{Description: &desc, Owner: &owner})
	require.NoError(t, err)
	assert.Equal(t, desc, task.Description)
}

func TestTaskApply(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	otherOwner := uuid.New()
	existing := Task{ID: uuid.New(), Description: "foo", Completed: true, Owner: owner}

	tests := []struct {
		name  string
		patch TaskPatch
		want  Task
	}{
		{
			name:  "empty patch preserves everything",
			patch: TaskPatch{},
			want:  existing,
		},
		{
			name:  "description only",
			patch: TaskPatch{Description: strPtr("bar")},
			want:  Task{ID: existing.ID, Description: "bar", Completed: true, Owner: owner},
		},
		{
			name:  "explicit default value still overrides",
			patch: TaskPatch{Completed: boolPtr(false)},
			want:  Task{ID: existing.ID, Description: "foo", Completed: false, Owner: owner},
		},
		{
			name:  "explicit default description overrides",
			patch: TaskPatch{Description: strPtr(DefaultTaskDescription)},
			want:  Task{ID: existing.ID, Description: DefaultTaskDescription, Completed: true, Owner: owner},
		},
		{
			name:  "owner reassigned",
			patch: TaskPatch{Owner: &otherOwner},
			want:  Task{ID: existing.ID, Description: "foo", Completed: true, Owner: otherOwner},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, existing.Apply(tc.patch))
		})
	}

	// Apply works on a copy.
	assert.Equal(t, "foo", existing.Description)
}

func TestParseID(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	got, err := ParseID("id", id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseID("id", "not-a-uuid")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.ErrorIs(t, err, ErrValidation)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "id", vErr.Field)

	_, err = ParseID("id", "")
	assert.ErrorIs(t, err, ErrInvalidID)
}
