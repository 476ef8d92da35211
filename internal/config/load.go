package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. TASKLIST_SERVER_PORT.
const EnvPrefix = "TASKLIST"

// LoadOptions points Load at optional files. Empty paths are skipped.
type LoadOptions struct {
	// ConfigFile holds non-secret settings (yaml, json or toml by extension).
	ConfigFile string
	// SecretsFile is merged over ConfigFile; typically database credentials.
	SecretsFile string
}

// Load reads configuration from defaults, the config file, the secrets
// file, and environment variables, in increasing order of precedence.
// Returns a populated Config or an error if loading or validation fails.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if opts.SecretsFile != "" {
		v.SetConfigFile(opts.SecretsFile)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read secrets file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only covers keys viper already knows about; bind the
	// ones that have no default so they can come from the environment alone.
	for _, key := range []string{
		"database.url",
		"database.host",
		"database.name",
		"database.user",
		"database.password",
		"tracing.endpoint",
	} {
		if err := v.BindEnv(key, envVar(key)); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", envVar(key), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			fields := make([]string, 0, len(vErrs))
			for _, fe := range vErrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(fields, ", "))
		}
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// envVar returns the environment variable name for a config key.
func envVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.port", 0)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)
	v.SetDefault("database.auto_migrate", false)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "tasklist")
	v.SetDefault("tracing.insecure", false)
	v.SetDefault("tracing.sample_ratio", 1.0)
}
