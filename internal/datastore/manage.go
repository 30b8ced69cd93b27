package datastore

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tphakala/pokereview/internal/datastore/entities"
	"github.com/tphakala/pokereview/internal/errors"
	"github.com/tphakala/pokereview/internal/logger"
)

// redactedMarker replaces passwords in logged connection strings.
const redactedMarker = "[REDACTED]"

// migrateTables runs AutoMigrate per model so each table gets its own log line.
func migrateTables(ctx context.Context, db *gorm.DB, dbType string, log logger.Logger) error {
	start := time.Now()
	models := entities.All()

	log.Debug("starting table migrations",
		logger.String("db_type", dbType),
		logger.Int("table_count", len(models)))

	db = db.WithContext(ctx)
	for _, model := range models {
		if err := migrateTable(db, model, dbType, log); err != nil {
			return err
		}
	}

	log.Info("schema ready",
		logger.String("db_type", dbType),
		logger.Int("tables", len(models)),
		logger.Duration("duration", time.Since(start)))
	return nil
}

func migrateTable(db *gorm.DB, model any, dbType string, log logger.Logger) error {
	tableStart := time.Now()
	tableName := tableNameOf(db, model)

	migrator := db.Migrator()
	tableExists := migrator.HasTable(model)
	columnsBefore := getTableColumns(db, model, tableExists)

	if err := migrator.AutoMigrate(model); err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("db_type", dbType).
			Context("table", tableName).
			Context("operation", "auto_migrate").
			Build()
	}

	action := "unchanged"
	var added []string
	switch {
	case !tableExists:
		action = "created"
	default:
		added = newColumns(getTableColumns(db, model, true), columnsBefore)
		if len(added) > 0 {
			action = "updated"
		}
	}

	fields := []logger.Field{
		logger.String("table", tableName),
		logger.String("action", action),
		logger.Duration("duration", time.Since(tableStart)),
	}
	if len(added) > 0 {
		fields = append(fields, logger.Int("columns_added", len(added)))
		if len(added) <= MaxColumnsForDetailedDisplay {
			fields = append(fields, logger.Any("new_columns", added))
		}
	}
	log.Debug("table migrated", fields...)
	return nil
}

func tableNameOf(db *gorm.DB, model any) string {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return "unknown"
	}
	return stmt.Schema.Table
}

// getTableColumns retrieves column names for a table
func getTableColumns(db *gorm.DB, model any, tableExists bool) []string {
	if !tableExists {
		return nil
	}
	cols, err := db.Migrator().ColumnTypes(model)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(cols))
	for _, col := range cols {
		names = append(names, col.Name())
	}
	return names
}

func newColumns(after, before []string) []string {
	seen := make(map[string]struct{}, len(before))
	for _, c := range before {
		seen[c] = struct{}{}
	}
	var added []string
	for _, c := range after {
		if _, ok := seen[c]; !ok {
			added = append(added, c)
		}
	}
	return added
}

// redactSensitiveInfo redacts the password from a MySQL DSN string
// of the form user:password@protocol(address)/dbname?params.
func redactSensitiveInfo(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	if at < 0 {
		return dsn
	}
	creds := dsn[:at]
	colon := strings.Index(creds, ":")
	if colon < 0 {
		return dsn
	}
	return creds[:colon+1] + redactedMarker + dsn[at:]
}
