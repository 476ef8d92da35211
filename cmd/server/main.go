// Package main implements the entry point for the tasklist server, which
// serves task and user records over HTTP from PostgreSQL or MySQL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	// database/sql drivers selected by database.driver
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/phrazzld/tasklist/internal/config"
	"github.com/phrazzld/tasklist/internal/platform/logger"
	"github.com/phrazzld/tasklist/internal/platform/sqlstore"
	"github.com/phrazzld/tasklist/internal/platform/tracing"
	"github.com/phrazzld/tasklist/internal/redact"
)

// options holds the command-line flags.
type options struct {
	configFile  string
	secretsFile string
	migrate     string
	verbose     bool
}

// parseFlags parses args into options. Usage goes to output.
func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.configFile, "config", "", "path to the configuration file (yaml, json or toml)")
	fs.StringVar(&opts.secretsFile, "secrets", "", "path to the secrets file merged over the configuration")
	fs.StringVar(&opts.migrate, "migrate", "", "run a migration command and exit (up, down, status, version, reset, redo)")
	fs.BoolVar(&opts.verbose, "verbose", false, "log at debug level")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, opts)
	stop()
	if err != nil {
		slog.Error("tasklist exited with error", "error", redact.Error(err))
		os.Exit(1)
	}
}

// run loads configuration, sets up logging and tracing, connects to the
// database and either executes a migration command or serves HTTP until ctx
// is canceled.
func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile:  opts.configFile,
		SecretsFile: opts.secretsFile,
	})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := setupAppLogger(cfg, opts.verbose)
	if err != nil {
		return err
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"tracing_enabled", cfg.Tracing.Enabled)

	if opts.migrate != "" {
		return handleMigrations(ctx, cfg, opts.migrate, log)
	}

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, log)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("failed to flush traces", "error", redact.Error(err))
		}
	}()

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := sqlstore.Migrate(ctx, db, app.dialect, "up", log); err != nil {
			app.cleanup()
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	return app.Run(ctx)
}

// setupAppLogger configures the application logger. verbose forces debug level.
func setupAppLogger(cfg *config.Config, verbose bool) (*slog.Logger, error) {
	level := cfg.Server.LogLevel
	if verbose {
		level = "debug"
	}

	l, err := logger.Setup(logger.LoggerConfig{Level: level})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return l, nil
}
