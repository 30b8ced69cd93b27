package datastore

import (
	"fmt"
	"net"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/tphakala/pokereview/internal/logger"
)

// MySQLManager handles a MySQL database.
type MySQLManager struct {
	base
}

// NewMySQLManager connects to the MySQL server in cfg.MySQL.
func NewMySQLManager(cfg *Config, log logger.Logger) (*MySQLManager, error) {
	dsn := mysqlDSN(&cfg.MySQL)
	location := serverLocation(&cfg.MySQL)

	db, err := gorm.Open(mysql.Open(dsn), gormConfig(cfg, log))
	if err != nil {
		return nil, openError(err, TypeMySQL, location)
	}
	if err := configurePool(db); err != nil {
		return nil, err
	}

	log.Info("database opened",
		logger.String("db_type", TypeMySQL),
		logger.String("dsn", redactSensitiveInfo(dsn)))

	return &MySQLManager{
		base: base{
			db:       db,
			dbType:   TypeMySQL,
			location: location,
			log:      log,
		},
	}, nil
}

func mysqlDSN(c *ServerConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true",
		c.Username, c.Password, net.JoinHostPort(c.Host, c.Port), c.Database)
}

// serverLocation renders host:port/database for display.
func serverLocation(c *ServerConfig) string {
	return net.JoinHostPort(c.Host, c.Port) + "/" + c.Database
}
