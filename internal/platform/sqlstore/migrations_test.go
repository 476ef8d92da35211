package sqlstore

import (
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	for _, d := range dialects {
		t.Run(d.Name(), func(t *testing.T) {
			files, err := fs.Glob(migrationsFS, "migrations/"+d.Name()+"/*.sql")
			require.NoError(t, err)
			assert.Len(t, files, 2)

			for _, f := range files {
				body, err := fs.ReadFile(migrationsFS, f)
				require.NoError(t, err)
				assert.Contains(t, string(body), "-- +goose Up")
				assert.Contains(t, string(body), "-- +goose Down")
			}
		})
	}
}

func TestMigrateRejectsUnknownCommand(t *testing.T) {
	db, mock := newMockDB(t)

	err := Migrate(context.Background(), db, Postgres, "create", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration command: create")
	assert.NoError(t, mock.ExpectationsWereMet())
}
