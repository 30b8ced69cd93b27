// conf/validate.go

package conf

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tphakala/pokereview/internal/datastore"
)

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []string
}

// Error returns a string representation of the validation errors
func (ve ValidationError) Error() string {
	return fmt.Sprintf("Validation errors: %v", ve.Errors)
}

// ValidateSettings validates the entire Settings struct and normalizes
// case-insensitive enum values in place.
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	if err := validateDatabaseSettings(&settings.Database); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateLoggingSettings(settings); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateWebServerSettings(&settings.WebServer); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// validateDatabaseSettings validates the selected backend's settings.
func validateDatabaseSettings(settings *DatabaseSettings) error {
	var errs []string

	settings.Type = strings.ToLower(strings.TrimSpace(settings.Type))
	switch settings.Type {
	case "", datastore.TypeSQLite:
		if strings.TrimSpace(settings.SQLite.Path) == "" {
			errs = append(errs, "database.sqlite.path must not be empty")
		}
	case datastore.TypeMySQL:
		errs = append(errs, validateServerSettings("database.mysql", &settings.MySQL)...)
	case datastore.TypePostgres, "postgresql":
		settings.Type = datastore.TypePostgres
		errs = append(errs, validateServerSettings("database.postgres", &settings.Postgres)...)
		switch settings.Postgres.SSLMode {
		case "", "disable", "allow", "prefer", "require", "verify-ca", "verify-full":
		default:
			errs = append(errs, fmt.Sprintf("database.postgres.sslmode %q is not a valid sslmode", settings.Postgres.SSLMode))
		}
	default:
		errs = append(errs, fmt.Sprintf("database.type %q is not supported, use sqlite, mysql or postgres", settings.Type))
	}

	if settings.SlowQueryThreshold < 0 {
		errs = append(errs, "database.slowquerythreshold must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("database settings errors: %v", errs)
	}
	return nil
}

func validateServerSettings(prefix string, s *ServerSettings) []string {
	var errs []string
	if strings.TrimSpace(s.Host) == "" {
		errs = append(errs, prefix+".host must not be empty")
	}
	if !validPort(s.Port) {
		errs = append(errs, fmt.Sprintf("%s.port %q must be between 1 and 65535", prefix, s.Port))
	}
	if strings.TrimSpace(s.Username) == "" {
		errs = append(errs, prefix+".username must not be empty")
	}
	if strings.TrimSpace(s.Database) == "" {
		errs = append(errs, prefix+".database must not be empty")
	}
	return errs
}

// validateLoggingSettings validates level, format and timezone.
func validateLoggingSettings(settings *Settings) error {
	var errs []string
	cfg := &settings.Logging

	cfg.DefaultLevel = strings.ToLower(strings.TrimSpace(cfg.DefaultLevel))
	if validateEnvLogLevel(cfg.DefaultLevel) != nil {
		errs = append(errs, fmt.Sprintf("logging.level %q is not a valid level", cfg.DefaultLevel))
	}
	for module, level := range cfg.ModuleLevels {
		if validateEnvLogLevel(level) != nil {
			errs = append(errs, fmt.Sprintf("logging.module_levels.%s %q is not a valid level", module, level))
		}
	}

	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	if validateEnvLogFormat(cfg.Format) != nil {
		errs = append(errs, fmt.Sprintf("logging.format %q must be text or json", cfg.Format))
	}

	if cfg.Timezone != "" && cfg.Timezone != "Local" {
		if _, err := time.LoadLocation(cfg.Timezone); err != nil {
			errs = append(errs, fmt.Sprintf("logging.timezone %q: %v", cfg.Timezone, err))
		}
	}

	// Debug mode lowers the default level unless it is already more verbose.
	if settings.Debug && cfg.DefaultLevel != "trace" {
		cfg.DefaultLevel = "debug"
	}

	if len(errs) > 0 {
		return fmt.Errorf("logging settings errors: %v", errs)
	}
	return nil
}

// validateWebServerSettings validates the WebServer-specific settings
func validateWebServerSettings(settings *WebServerSettings) error {
	if !settings.Enabled {
		return nil
	}
	var errs []string
	if !validPort(settings.Port) {
		errs = append(errs, fmt.Sprintf("webserver.port %q must be between 1 and 65535", settings.Port))
	}
	if settings.ShutdownTimeout <= 0 {
		errs = append(errs, "webserver.shutdowntimeout must be positive")
	}
	if len(errs) > 0 {
		return fmt.Errorf("webserver settings errors: %v", errs)
	}
	return nil
}

func validPort(port string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(port))
	return err == nil && n >= 1 && n <= 65535
}
