package datastore

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tphakala/pokereview/internal/errors"
	"github.com/tphakala/pokereview/internal/logger"
)

// DefaultSQLitePath is used when no path is configured.
const DefaultSQLitePath = "pokereview.db"

// MemoryPath opens a private in-memory SQLite database.
const MemoryPath = ":memory:"

// SQLiteManager handles a SQLite database file.
type SQLiteManager struct {
	base
	path string
}

// NewSQLiteManager opens (creating if needed) the SQLite database at cfg.SQLite.Path.
func NewSQLiteManager(cfg *Config, log logger.Logger) (*SQLiteManager, error) {
	path := cfg.SQLite.Path
	if path == "" {
		path = DefaultSQLitePath
	}

	if path != MemoryPath {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.New(fmt.Errorf("failed to create database directory: %w", err)).
					Component("datastore").
					Category(errors.CategoryFileIO).
					Context("path", dir).
					Build()
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(sqliteDSN(path)), gormConfig(cfg, log))
	if err != nil {
		return nil, openError(err, TypeSQLite, path)
	}

	if path == MemoryPath {
		// Every pooled connection would get its own empty database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying database: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	log.Info("database opened",
		logger.String("db_type", TypeSQLite),
		logger.String("path", path))

	return &SQLiteManager{
		base: base{
			db:       db,
			dbType:   TypeSQLite,
			location: path,
			log:      log,
		},
		path: path,
	}, nil
}

// sqliteDSN appends the pragmas every connection needs.
func sqliteDSN(path string) string {
	return fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON", path)
}

// Path returns the database file path.
func (m *SQLiteManager) Path() string {
	return m.path
}

// Exists checks if the database file exists.
func (m *SQLiteManager) Exists() bool {
	if m.path == MemoryPath {
		return true
	}
	_, err := os.Stat(m.path)
	return err == nil
}
