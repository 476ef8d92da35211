package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/phrazzld/tasklist/internal/redact"
	"github.com/pressly/goose/v3"
)

// MigrationTableName is the table goose records applied versions in.
const MigrationTableName = "schema_migrations"

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

// MigrationCommands lists the goose commands Migrate accepts.
var MigrationCommands = []string{"up", "down", "status", "version", "reset", "redo"}

// Migrate runs a goose command against db using the migrations embedded
// for the dialect.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(
		slog.String("component", "migrations"),
		slog.String("dialect", dialect.Name()),
		slog.String("command", command),
	)

	if !IsMigrationCommand(command) {
		return fmt.Errorf(
			"unknown migration command: %s (expected %s)",
			command,
			strings.Join(MigrationCommands, ", "),
		)
	}

	goose.SetLogger(&slogGooseLogger{log: log})
	goose.SetBaseFS(migrationsFS)
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect(dialect.gooseDialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	start := time.Now()
	log.Info("starting migration command")

	dir := path.Join("migrations", dialect.Name())
	if err := goose.RunContext(ctx, command, db, dir); err != nil {
		log.Error("migration command failed",
			slog.String("error", redact.Error(err)),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	log.Info("migration command executed successfully",
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}

// IsMigrationCommand reports whether command is one of MigrationCommands.
func IsMigrationCommand(command string) bool {
	for _, c := range MigrationCommands {
		if c == command {
			return true
		}
	}
	return false
}

// slogGooseLogger forwards goose output to slog. Fatalf does not exit so
// that the caller decides how to fail.
type slogGooseLogger struct {
	log *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
