// Package sqlstore provides database/sql implementations of the store
// interfaces for PostgreSQL (through pgx) and MySQL. It owns the mapping
// between domain identifiers and their stored binary form, the
// existence-check-then-mutate discipline, per-request sessions, and the
// embedded schema migrations.
package sqlstore
