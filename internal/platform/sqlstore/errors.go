package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/tasklist/internal/redact"
	"github.com/phrazzld/tasklist/internal/store"
)

// PostgreSQL error codes
const (
	pgUniqueViolationCode     = "23505"
	pgForeignKeyViolationCode = "23503"
	pgCheckViolationCode      = "23514"
	pgNotNullViolationCode    = "23502"
)

// MySQL error numbers
const (
	myDuplicateEntry       uint16 = 1062
	myNotNullViolation     uint16 = 1048
	myForeignKeyViolation  uint16 = 1452
	myCheckViolation       uint16 = 3819
	myDataTooLongForColumn uint16 = 1406
)

// MapError maps a driver error to the matching store error, wrapping the
// original so that errors.As still reaches the driver error. Errors without
// a mapping are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolationCode:
			return fmt.Errorf("%w: %w", store.ErrDuplicate, err)
		case pgForeignKeyViolationCode, pgCheckViolationCode, pgNotNullViolationCode:
			return fmt.Errorf("%w: constraint violation (%s): %w",
				store.ErrInvalidEntity, pgErr.ConstraintName, err)
		}
		return err
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case myDuplicateEntry:
			return fmt.Errorf("%w: %w", store.ErrDuplicate, err)
		case myNotNullViolation, myForeignKeyViolation, myCheckViolation, myDataTooLongForColumn:
			return fmt.Errorf("%w: constraint violation: %w", store.ErrInvalidEntity, err)
		}
	}

	return err
}

// IsUniqueViolation reports whether err is a unique constraint violation
// on either backend.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode
	}
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == myDuplicateEntry
}

// maxCreateAttempts bounds how often an insert is retried after the
// generated identifier collided with an existing primary key.
const maxCreateAttempts = 3

// withFreshID runs insert, which must draw a new identifier on every call,
// and repeats it while it fails with a unique violation.
func withFreshID(ctx context.Context, log *slog.Logger, insert func() error) error {
	var err error
	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		if err = insert(); err == nil || !IsUniqueViolation(err) {
			return err
		}
		log.LogAttrs(ctx, slog.LevelWarn, "identifier collision on insert",
			slog.Int("attempt", attempt),
			slog.String("error", redact.Error(err)))
	}
	return err
}

// logFailure logs outcomes the caller can act on, such as not-found or an
// unknown owner, at debug level and everything else as an error.
func logFailure(ctx context.Context, log *slog.Logger, msg string, err error, attrs ...slog.Attr) {
	level := slog.LevelError
	if store.IsNotFoundError(err) || errors.Is(err, store.ErrInvalidEntity) {
		level = slog.LevelDebug
	}
	attrs = append(attrs, slog.String("error", redact.Error(err)))
	log.LogAttrs(ctx, level, msg, attrs...)
}
