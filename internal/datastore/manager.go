// Package datastore opens the relational store behind the pokemon review
// repositories and creates its schema.
//
// Three backends are supported through GORM dialectors: SQLite (default),
// MySQL and PostgreSQL. Every backend yields a *gorm.DB that the session
// package wraps into units of work.
package datastore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/tphakala/pokereview/internal/errors"
	"github.com/tphakala/pokereview/internal/logger"
)

// Supported database types.
const (
	TypeSQLite   = "sqlite"
	TypeMySQL    = "mysql"
	TypePostgres = "postgres"
)

const (
	// DefaultSlowQueryThreshold defines the duration after which a query is considered slow.
	DefaultSlowQueryThreshold = 500 * time.Millisecond

	// MaxColumnsForDetailedDisplay defines the maximum number of columns listed
	// in migration logs before only the count is shown.
	MaxColumnsForDetailedDisplay = 5

	defaultMaxIdleConns    = 10
	defaultMaxOpenConns    = 100
	defaultConnMaxLifetime = time.Hour
)

// Manager defines the interface for database lifecycle operations.
type Manager interface {
	// Initialize creates or updates the schema.
	Initialize(ctx context.Context) error
	// DB returns the underlying GORM database.
	DB() *gorm.DB
	// Type returns one of TypeSQLite, TypeMySQL or TypePostgres.
	Type() string
	// Location describes where the data lives, without credentials.
	Location() string
	// Close closes the database connection.
	Close() error
}

// Config holds database configuration.
type Config struct {
	Type     string
	SQLite   SQLiteConfig
	MySQL    ServerConfig
	Postgres ServerConfig
	// SlowQueryThreshold overrides DefaultSlowQueryThreshold.
	SlowQueryThreshold time.Duration
}

// SQLiteConfig holds SQLite settings.
type SQLiteConfig struct {
	Path string
}

// ServerConfig holds settings for networked databases.
type ServerConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	// SSLMode is only used by PostgreSQL.
	SSLMode string
}

// New opens the database described by cfg. The returned Manager has not
// been initialized yet.
func New(cfg *Config, log logger.Logger) (Manager, error) {
	if cfg == nil {
		return nil, errors.Newf("datastore config cannot be nil").
			Component("datastore").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if log == nil {
		log = logger.Global().Module("datastore")
	}

	switch strings.ToLower(cfg.Type) {
	case "", TypeSQLite:
		return NewSQLiteManager(cfg, log)
	case TypeMySQL:
		return NewMySQLManager(cfg, log)
	case TypePostgres, "postgresql":
		return NewPostgresManager(cfg, log)
	default:
		return nil, errors.Newf("unsupported database type %q", cfg.Type).
			Component("datastore").
			Category(errors.CategoryConfiguration).
			Context("type", cfg.Type).
			Build()
	}
}

// Open opens the database described by cfg and brings its schema up to date.
func Open(ctx context.Context, cfg *Config, log logger.Logger) (Manager, error) {
	m, err := New(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := m.Initialize(ctx); err != nil {
		_ = m.Close()
		return nil, err
	}
	return m, nil
}

// gormConfig builds the GORM configuration shared by all backends.
func gormConfig(cfg *Config, log logger.Logger) *gorm.Config {
	threshold := cfg.SlowQueryThreshold
	if threshold <= 0 {
		threshold = DefaultSlowQueryThreshold
	}
	return &gorm.Config{
		Logger: logger.NewGormAdapter(log, threshold),
		// Writes go through explicit unit-of-work transactions.
		SkipDefaultTransaction: true,
		NamingStrategy:         schema.NamingStrategy{},
		TranslateError:         true,
	}
}

// base carries what every Manager implementation shares.
type base struct {
	db       *gorm.DB
	dbType   string
	location string
	log      logger.Logger
}

func (b *base) DB() *gorm.DB {
	return b.db
}

func (b *base) Type() string {
	return b.dbType
}

func (b *base) Location() string {
	return b.location
}

// Initialize creates or updates the schema.
func (b *base) Initialize(ctx context.Context) error {
	return migrateTables(ctx, b.db, b.dbType, b.log)
}

// Close closes the database connection.
func (b *base) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("db_type", b.dbType).
			Build()
	}
	b.log.Debug("database closed", logger.String("db_type", b.dbType))
	return nil
}

// configurePool applies connection pool limits for networked databases.
func configurePool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database: %w", err)
	}
	sqlDB.SetMaxIdleConns(defaultMaxIdleConns)
	sqlDB.SetMaxOpenConns(defaultMaxOpenConns)
	sqlDB.SetConnMaxLifetime(defaultConnMaxLifetime)
	return nil
}

// openError wraps a failed gorm.Open.
func openError(err error, dbType, location string) error {
	return errors.New(fmt.Errorf("failed to open %s database: %w", dbType, err)).
		Component("datastore").
		Category(errors.CategoryDatabase).
		Context("db_type", dbType).
		Context("location", location).
		Build()
}
