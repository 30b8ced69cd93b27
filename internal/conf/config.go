// Package conf loads pokereview settings from config.yaml, environment
// variables and defaults.
package conf

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/tphakala/pokereview/internal/datastore"
	"github.com/tphakala/pokereview/internal/errors"
	"github.com/tphakala/pokereview/internal/logger"
)

// envPrefix is prepended to every environment variable, e.g. POKEREVIEW_DATABASE_TYPE.
const envPrefix = "POKEREVIEW"

// Settings contains all configuration options.
type Settings struct {
	Debug bool `yaml:"debug"`

	Database  DatabaseSettings     `yaml:"database"`
	Logging   logger.LoggingConfig `yaml:"logging"`
	WebServer WebServerSettings    `yaml:"webserver"`
	Seed      SeedSettings         `yaml:"seed"`
}

// DatabaseSettings selects and configures the relational store.
type DatabaseSettings struct {
	Type               string         `yaml:"type"` // sqlite, mysql or postgres
	SQLite             SQLiteSettings `yaml:"sqlite"`
	MySQL              ServerSettings `yaml:"mysql"`
	Postgres           ServerSettings `yaml:"postgres"`
	SlowQueryThreshold time.Duration  `yaml:"slowquerythreshold"`
}

// SQLiteSettings contains settings for the SQLite backend.
type SQLiteSettings struct {
	Path string `yaml:"path"`
}

// ServerSettings contains settings for networked database servers.
type ServerSettings struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"` // postgres only
}

// WebServerSettings contains settings for the HTTP API.
type WebServerSettings struct {
	Enabled         bool          `yaml:"enabled"`
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdowntimeout"`
	Metrics         bool          `yaml:"metrics"` // expose /metrics
}

// SeedSettings controls fixture loading.
type SeedSettings struct {
	OnStartup bool `yaml:"onstartup"` // run the seed loader before serving
}

// Address returns host:port for the HTTP listener.
func (w *WebServerSettings) Address() string {
	return w.Host + ":" + w.Port
}

// DatastoreConfig converts the database settings into a datastore.Config.
func (d *DatabaseSettings) DatastoreConfig() *datastore.Config {
	return &datastore.Config{
		Type:               strings.ToLower(d.Type),
		SQLite:             datastore.SQLiteConfig{Path: d.SQLite.Path},
		MySQL:              d.MySQL.serverConfig(),
		Postgres:           d.Postgres.serverConfig(),
		SlowQueryThreshold: d.SlowQueryThreshold,
	}
}

func (s ServerSettings) serverConfig() datastore.ServerConfig {
	return datastore.ServerConfig{
		Host:     s.Host,
		Port:     s.Port,
		Username: s.Username,
		Password: s.Password,
		Database: s.Database,
		SSLMode:  s.SSLMode,
	}
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads configFile, or config.yaml from the default config paths when
// configFile is empty, overlays environment variables, validates the result
// and stores it as the current settings. A missing config.yaml is not an
// error; defaults apply.
func Load(configFile string) (*Settings, error) {
	v, err := initViper(configFile)
	if err != nil {
		return nil, err
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, errors.New(err).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("operation", "unmarshal").
			Build()
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsMutex.Lock()
	settingsInstance = settings
	settingsMutex.Unlock()
	return settings, nil
}

// initViper creates a viper instance with defaults, environment bindings and
// the configuration file applied.
func initViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaultConfig(v)

	if err := configureEnvironmentVariables(v); err != nil {
		return nil, errors.New(err).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("operation", "bind-env").
			Build()
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		paths, err := GetDefaultConfigPaths()
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			v.AddConfigPath(path)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, errors.New(err).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("operation", "read-config").
			Context("file", configFile).
			Build()
	}
	return v, nil
}

// GetSettings returns the settings stored by the last successful Load, or nil.
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}
