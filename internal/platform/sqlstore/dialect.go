package sqlstore

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Dialect captures the differences between the supported SQL backends:
// placeholder syntax, identifier quoting, and how a UUID is stored.
type Dialect struct {
	name         string
	gooseDialect string
	bindType     int // sqlx bind variable style
	quoteChar    string
	binaryIDs    bool // BINARY(16) instead of a native uuid column
}

var (
	// Postgres stores identifiers in native uuid columns.
	Postgres = Dialect{
		name:         "postgres",
		gooseDialect: "postgres",
		bindType:     sqlx.DOLLAR,
		quoteChar:    `"`,
	}

	// MySQL stores identifiers in BINARY(16) columns.
	MySQL = Dialect{
		name:         "mysql",
		gooseDialect: "mysql",
		bindType:     sqlx.QUESTION,
		quoteChar:    "`",
		binaryIDs:    true,
	}
)

// DialectFor returns the dialect for a configured driver name.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "postgres", "pgx":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Name returns the dialect name, which is also its migrations directory.
func (d Dialect) Name() string {
	return d.name
}

// Quote quotes an identifier. The user table needs it on PostgreSQL,
// where "user" is reserved.
func (d Dialect) Quote(ident string) string {
	return d.quoteChar + ident + d.quoteChar
}

// Rebind rewrites ? placeholders into the dialect's syntax.
// Queries in this package never contain a literal question mark.
func (d Dialect) Rebind(query string) string {
	return sqlx.Rebind(d.bindType, query)
}

// EncodeID converts an identifier to the value bound for its column.
func (d Dialect) EncodeID(id uuid.UUID) any {
	if d.binaryIDs {
		b := make([]byte, len(id))
		copy(b, id[:])
		return b
	}
	return id.String()
}

// decodeID converts a scanned identifier column back to a UUID. Drivers
// hand back either the 16 raw bytes or the canonical text form.
func decodeID(raw []byte) (uuid.UUID, error) {
	if len(raw) == 16 {
		return uuid.FromBytes(raw)
	}
	id, err := uuid.ParseBytes(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed stored identifier: %w", err)
	}
	return id, nil
}
