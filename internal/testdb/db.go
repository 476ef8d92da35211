package testdb

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql" // mysql driver
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/tasklist/internal/config"
	"github.com/phrazzld/tasklist/internal/platform/sqlstore"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 10 * time.Second

// SetupTestDB connects to the test database, migrates it to the latest
// version and empties both tables. The connection is closed when the test
// finishes.
func SetupTestDB(t *testing.T) (*sql.DB, sqlstore.Dialect) {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	require.NotEmpty(t, dbURL, "no test database URL configured")

	driver := GetTestDriver(dbURL)
	dialect, err := sqlstore.DialectFor(driver)
	require.NoError(t, err, "unsupported test database driver")

	cfg := config.DatabaseConfig{Driver: driver, URL: dbURL}
	db, err := sql.Open(cfg.DriverName(), dbURL)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	require.NoError(t, db.PingContext(ctx), "failed to ping test database")

	SetupTestDatabaseSchema(t, db, dialect)
	ResetTables(t, db, dialect)
	return db, dialect
}

// SetupTestDatabaseSchema runs the embedded migrations up to the latest version.
func SetupTestDatabaseSchema(t *testing.T, db *sql.DB, dialect sqlstore.Dialect) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, sqlstore.Migrate(ctx, db, dialect, "up", log), "failed to run migrations")
}

// ResetTables deletes every task and user.
func ResetTables(t *testing.T, db *sql.DB, dialect sqlstore.Dialect) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	for _, table := range []string{"tasks", "user"} {
		_, err := db.ExecContext(ctx, "DELETE FROM "+dialect.Quote(table))
		require.NoError(t, err, "failed to empty %s", table)
	}
}
