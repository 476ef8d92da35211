package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/tasklist/internal/config"
	"github.com/phrazzld/tasklist/internal/platform/sqlstore"
	"github.com/phrazzld/tasklist/internal/redact"
)

// handleMigrations connects to the configured database and executes a
// single goose command against it.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	if !sqlstore.IsMigrationCommand(command) {
		return fmt.Errorf("invalid migration command %q (expected one of %s)",
			command, strings.Join(sqlstore.MigrationCommands, ", "))
	}

	dialect, err := sqlstore.DialectFor(cfg.Database.Driver)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", "error", redact.Error(err))
		}
	}()

	logger.Info("Executing migrations", "command", command, "driver", cfg.Database.Driver)
	return sqlstore.Migrate(ctx, db, dialect, command, logger)
}
