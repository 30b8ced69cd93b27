package datastore

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tphakala/pokereview/internal/logger"
)

const defaultPostgresSSLMode = "disable"

// PostgresManager handles a PostgreSQL database.
type PostgresManager struct {
	base
}

// NewPostgresManager connects to the PostgreSQL server in cfg.Postgres.
func NewPostgresManager(cfg *Config, log logger.Logger) (*PostgresManager, error) {
	dsn := postgresDSN(&cfg.Postgres)
	location := serverLocation(&cfg.Postgres)

	db, err := gorm.Open(postgres.Open(dsn), gormConfig(cfg, log))
	if err != nil {
		return nil, openError(err, TypePostgres, location)
	}
	if err := configurePool(db); err != nil {
		return nil, err
	}

	log.Info("database opened",
		logger.String("db_type", TypePostgres),
		logger.String("location", location))

	return &PostgresManager{
		base: base{
			db:       db,
			dbType:   TypePostgres,
			location: location,
			log:      log,
		},
	}, nil
}

func postgresDSN(c *ServerConfig) string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = defaultPostgresSSLMode
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Host, c.Port, c.Username, c.Password, c.Database, sslMode)
}
