// env.go - Environment variable configuration and validation
package conf

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/tphakala/pokereview/internal/datastore"
)

// envBinding holds metadata for environment variable bindings (internal use)
type envBinding struct {
	ConfigKey string             // Viper config key
	EnvVar    string             // Environment variable name
	Validate  func(string) error // Optional validation function
}

// getEnvBindings returns the environment variables that get validated
// before use. Every other key is still reachable through AutomaticEnv.
func getEnvBindings() []envBinding {
	return []envBinding{
		{"debug", envPrefix + "_DEBUG", validateEnvBool},

		{"database.type", envPrefix + "_DATABASE_TYPE", validateEnvDatabaseType},
		{"database.sqlite.path", envPrefix + "_DATABASE_SQLITE_PATH", nil},
		{"database.mysql.port", envPrefix + "_DATABASE_MYSQL_PORT", validateEnvPort},
		{"database.mysql.password", envPrefix + "_DATABASE_MYSQL_PASSWORD", nil},
		{"database.postgres.port", envPrefix + "_DATABASE_POSTGRES_PORT", validateEnvPort},
		{"database.postgres.password", envPrefix + "_DATABASE_POSTGRES_PASSWORD", nil},

		{"logging.level", envPrefix + "_LOGGING_LEVEL", validateEnvLogLevel},
		{"logging.format", envPrefix + "_LOGGING_FORMAT", validateEnvLogFormat},

		{"webserver.enabled", envPrefix + "_WEBSERVER_ENABLED", validateEnvBool},
		{"webserver.port", envPrefix + "_WEBSERVER_PORT", validateEnvPort},

		{"seed.onstartup", envPrefix + "_SEED_ONSTARTUP", validateEnvBool},
	}
}

// bindEnvVars sets up environment variable bindings with validation (internal)
func bindEnvVars(v *viper.Viper) error {
	var warnings []string

	for _, binding := range getEnvBindings() {
		if err := v.BindEnv(binding.ConfigKey, binding.EnvVar); err != nil {
			warnings = append(warnings, fmt.Sprintf("Failed to bind %s: %v", binding.EnvVar, err))
			continue
		}

		if binding.Validate != nil {
			if envValue := os.Getenv(binding.EnvVar); envValue != "" {
				if err := binding.Validate(envValue); err != nil {
					warnings = append(warnings, fmt.Sprintf("Invalid %s value '%s': %v", binding.EnvVar, envValue, err))
				}
			}
		}
	}

	if len(warnings) > 0 {
		return fmt.Errorf("environment variable issues:\n  - %s", strings.Join(warnings, "\n  - "))
	}
	return nil
}

// Environment variable validation functions

func validateEnvBool(value string) error {
	if _, err := strconv.ParseBool(strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("must be a boolean (true/false/1/0)")
	}
	return nil
}

func validateEnvPort(value string) error {
	port, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("must be a port number between 1 and 65535")
	}
	return nil
}

func validateEnvDatabaseType(value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case datastore.TypeSQLite, datastore.TypeMySQL, datastore.TypePostgres, "postgresql":
		return nil
	}
	return fmt.Errorf("must be one of sqlite, mysql, postgres")
}

func validateEnvLogLevel(value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trace", "debug", "info", "warn", "warning", "error":
		return nil
	}
	return fmt.Errorf("must be one of trace, debug, info, warn, error")
}

func validateEnvLogFormat(value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "text", "json":
		return nil
	}
	return fmt.Errorf("must be text or json")
}

// configureEnvironmentVariables sets up environment variable support for Viper
func configureEnvironmentVariables(v *viper.Viper) error {
	v.SetEnvPrefix(envPrefix)
	// Nested keys map to underscores: database.sqlite.path -> POKEREVIEW_DATABASE_SQLITE_PATH
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return bindEnvVars(v)
}
