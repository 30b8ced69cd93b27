// conf/defaults.go default values for settings
package conf

import (
	"time"

	"github.com/spf13/viper"

	"github.com/tphakala/pokereview/internal/datastore"
	"github.com/tphakala/pokereview/internal/logger"
)

// Sets default values for the configuration.
func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("debug", false)

	v.SetDefault("database.type", datastore.TypeSQLite)
	v.SetDefault("database.sqlite.path", datastore.DefaultSQLitePath)
	v.SetDefault("database.slowquerythreshold", datastore.DefaultSlowQueryThreshold)

	v.SetDefault("database.mysql.host", "localhost")
	v.SetDefault("database.mysql.port", "3306")
	v.SetDefault("database.mysql.username", "")
	v.SetDefault("database.mysql.password", "")
	v.SetDefault("database.mysql.database", "pokereview")
	v.SetDefault("database.mysql.sslmode", "")

	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", "5432")
	v.SetDefault("database.postgres.username", "")
	v.SetDefault("database.postgres.password", "")
	v.SetDefault("database.postgres.database", "pokereview")
	v.SetDefault("database.postgres.sslmode", "disable")

	v.SetDefault("logging.level", logger.DefaultLogLevel)
	v.SetDefault("logging.format", logger.DefaultFormat)
	v.SetDefault("logging.timezone", "Local")
	v.SetDefault("logging.module_levels", map[string]string{})

	v.SetDefault("webserver.enabled", true)
	v.SetDefault("webserver.host", "")
	v.SetDefault("webserver.port", "8080")
	v.SetDefault("webserver.shutdowntimeout", 10*time.Second)
	v.SetDefault("webserver.metrics", true)

	v.SetDefault("seed.onstartup", false)
}
