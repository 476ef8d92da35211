package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// ShutdownTimeout returns the graceful shutdown budget.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig contains all database-related configuration settings.
// Either URL or Host/Name must be set; User and Password usually come from
// the secrets file.
type DatabaseConfig struct {
	Driver                 string `mapstructure:"driver" validate:"required,oneof=postgres mysql"`
	URL                    string `mapstructure:"url"`
	Host                   string `mapstructure:"host" validate:"required_without=URL"`
	Port                   int    `mapstructure:"port" validate:"gte=0,lt=65536"`
	Name                   string `mapstructure:"name" validate:"required_without=URL"`
	User                   string `mapstructure:"user"`
	Password               string `mapstructure:"password"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
	AutoMigrate            bool   `mapstructure:"auto_migrate"`
}

// ConnMaxLifetime returns the pool's connection lifetime.
func (c DatabaseConfig) ConnMaxLifetime() time.Duration {
	return time.Duration(c.ConnMaxLifetimeMinutes) * time.Minute
}

// DriverName returns the database/sql driver registered for Driver.
func (c DatabaseConfig) DriverName() string {
	if c.Driver == DriverPostgres {
		return "pgx"
	}
	return c.Driver
}

// DSN returns the connection string for the configured driver. An explicit
// URL wins; otherwise the DSN is assembled from its parts.
func (c DatabaseConfig) DSN() (string, error) {
	if c.URL != "" {
		return c.URL, nil
	}

	switch c.Driver {
	case DriverPostgres:
		port := c.Port
		if port == 0 {
			port = 5432
		}
		u := url.URL{
			Scheme:   "postgres",
			Host:     net.JoinHostPort(c.Host, strconv.Itoa(port)),
			Path:     "/" + c.Name,
			RawQuery: "sslmode=disable",
		}
		if c.User != "" {
			u.User = url.UserPassword(c.User, c.Password)
		}
		return u.String(), nil
	case DriverMySQL:
		port := c.Port
		if port == 0 {
			port = 3306
		}
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(port))
		mc.DBName = c.Name
		return mc.FormatDSN(), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// TracingConfig controls OpenTelemetry export. When Endpoint is empty and
// tracing is enabled, spans are written to stdout.
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	ServiceName string  `mapstructure:"service_name" validate:"required_if=Enabled true"`
	Endpoint    string  `mapstructure:"endpoint"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRatio float64 `mapstructure:"sample_ratio" validate:"gte=0,lte=1"`
}
