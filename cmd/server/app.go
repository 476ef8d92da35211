package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasklist/internal/config"
	"github.com/phrazzld/tasklist/internal/platform/sqlstore"
	"github.com/phrazzld/tasklist/internal/redact"
	"github.com/phrazzld/tasklist/internal/service"
	"github.com/phrazzld/tasklist/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the application runs over a non-SQL session opener.
	db       *sql.DB
	dialect  sqlstore.Dialect
	sessions store.SessionOpener

	taskService service.TaskService
	userService service.UserService
}

// newApplication creates the application over an open database handle.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	dialect, err := sqlstore.DialectFor(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}

	app, err := buildApplication(cfg, logger, sqlstore.NewOpener(db, dialect, logger))
	if err != nil {
		return nil, err
	}
	app.db = db
	app.dialect = dialect
	return app, nil
}

// buildApplication wires services onto sessions.
func buildApplication(cfg *config.Config, logger *slog.Logger, sessions store.SessionOpener) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		sessions: sessions,
	}

	var err error
	app.taskService, err = service.NewTaskService(sessions, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.userService, err = service.NewUserService(sessions, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", redact.Error(err))
		}
	}

	app.logger.Info("Application shutdown completed")
}
