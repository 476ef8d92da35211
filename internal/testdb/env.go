package testdb

import (
	"os"
	"strings"

	"github.com/phrazzld/tasklist/internal/config"
)

// Environment variables consulted for the test database, in order.
const (
	EnvDatabaseURL   = "DATABASE_URL"
	EnvTestDBURL     = "TASKLIST_TEST_DB_URL"
	EnvTestDBDriver  = "TASKLIST_TEST_DB_DRIVER"
	envTasklistDBURL = "TASKLIST_DATABASE_URL"
)

// GetTestDatabaseURL returns the first non-empty database URL from the
// environment.
func GetTestDatabaseURL() string {
	for _, name := range []string{EnvDatabaseURL, EnvTestDBURL, envTasklistDBURL} {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// IsIntegrationTestEnvironment reports whether a test database is configured.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// ShouldSkipDatabaseTest returns true if no database is configured.
func ShouldSkipDatabaseTest() bool {
	return !IsIntegrationTestEnvironment()
}

// GetTestDriver returns the configured driver. Without an explicit setting
// it is inferred from the URL: postgres URLs select postgres, anything else
// is treated as a MySQL DSN.
func GetTestDriver(dbURL string) string {
	if d := strings.TrimSpace(os.Getenv(EnvTestDBDriver)); d != "" {
		return strings.ToLower(d)
	}
	if strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://") {
		return config.DriverPostgres
	}
	return config.DriverMySQL
}
