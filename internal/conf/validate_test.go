package conf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() *Settings {
	s := &Settings{}
	s.Database.Type = "sqlite"
	s.Database.SQLite.Path = "pokereview.db"
	s.Logging.DefaultLevel = "info"
	s.Logging.Format = "text"
	s.WebServer.Enabled = true
	s.WebServer.Port = "8080"
	s.WebServer.ShutdownTimeout = 5 * time.Second
	return s
}

func TestValidateSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{"valid sqlite", func(*Settings) {}, ""},
		{"unknown database type", func(s *Settings) { s.Database.Type = "oracle" }, "not supported"},
		{"empty sqlite path", func(s *Settings) { s.Database.SQLite.Path = " " }, "sqlite.path"},
		{"mysql missing host", func(s *Settings) {
			s.Database.Type = "mysql"
			s.Database.MySQL = ServerSettings{Port: "3306", Username: "u", Database: "d"}
		}, "mysql.host"},
		{"mysql bad port", func(s *Settings) {
			s.Database.Type = "mysql"
			s.Database.MySQL = ServerSettings{Host: "h", Port: "99999", Username: "u", Database: "d"}
		}, "mysql.port"},
		{"postgres bad sslmode", func(s *Settings) {
			s.Database.Type = "postgresql"
			s.Database.Postgres = ServerSettings{Host: "h", Port: "5432", Username: "u", Database: "d", SSLMode: "maybe"}
		}, "sslmode"},
		{"negative slow query threshold", func(s *Settings) { s.Database.SlowQueryThreshold = -time.Second }, "slowquerythreshold"},
		{"bad log level", func(s *Settings) { s.Logging.DefaultLevel = "loud" }, "logging.level"},
		{"bad module level", func(s *Settings) { s.Logging.ModuleLevels = map[string]string{"api": "loud"} }, "module_levels.api"},
		{"bad log format", func(s *Settings) { s.Logging.Format = "xml" }, "logging.format"},
		{"bad timezone", func(s *Settings) { s.Logging.Timezone = "Mars/Olympus" }, "logging.timezone"},
		{"bad webserver port", func(s *Settings) { s.WebServer.Port = "0" }, "webserver.port"},
		{"disabled webserver skips checks", func(s *Settings) {
			s.WebServer.Enabled = false
			s.WebServer.Port = ""
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := validSettings()
			tt.mutate(s)

			err := ValidateSettings(s)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ve ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateSettings_NormalizesPostgresAlias(t *testing.T) {
	t.Parallel()

	s := validSettings()
	s.Database.Type = " PostgreSQL "
	s.Database.Postgres = ServerSettings{Host: "h", Port: "5432", Username: "u", Database: "d"}

	require.NoError(t, ValidateSettings(s))
	assert.Equal(t, "postgres", s.Database.Type)
}

func TestValidateEnvPort(t *testing.T) {
	t.Parallel()

	for value, wantErr := range map[string]bool{
		"8080":  false,
		" 443 ": false,
		"0":     true,
		"65536": true,
		"http":  true,
	} {
		err := validateEnvPort(value)
		assert.Equal(t, wantErr, err != nil, "value %q", value)
	}
}
