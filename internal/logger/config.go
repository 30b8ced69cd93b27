package logger

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	DefaultLevel string            `yaml:"default_level" json:"default_level" mapstructure:"level"` // default log level for all modules
	Format       string            `yaml:"format" json:"format" mapstructure:"format"`              // "text" (console) or "json"
	Timezone     string            `yaml:"timezone" json:"timezone" mapstructure:"timezone"`        // "Local", "UTC", or IANA timezone name
	ModuleLevels map[string]string `yaml:"module_levels" json:"module_levels" mapstructure:"module_levels"`
}

// Default values for logging configuration.
const (
	DefaultLogLevel = "info"
	DefaultFormat   = "text"
)

// applyConfigDefaults fills empty configuration fields.
func applyConfigDefaults(cfg *LoggingConfig) {
	if cfg == nil {
		return
	}
	if cfg.DefaultLevel == "" {
		cfg.DefaultLevel = DefaultLogLevel
	}
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
}
