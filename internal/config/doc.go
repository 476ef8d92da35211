// Package config handles configuration loading, parsing, and validation
// from a config file, an optional secrets file, and environment variables.
// The resulting Config is built once at startup and passed explicitly to
// the components that need it.
package config
