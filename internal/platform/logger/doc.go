// Package logger provides structured logging functionality for the application
// using Go's standard library log/slog package. Loggers travel through
// request contexts so that trace IDs recorded by the HTTP layer appear on
// every line logged by services and stores.
package logger
