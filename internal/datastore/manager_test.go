package datastore

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/pokereview/internal/datastore/entities"
	"github.com/tphakala/pokereview/internal/errors"
	"github.com/tphakala/pokereview/internal/logger"
)

func testLogger() logger.Logger {
	return logger.NewSlogLogger(io.Discard, logger.LogLevelError, time.UTC)
}

func TestNew_SQLiteInitializeCreatesSchema(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "review.db")
	m, err := New(&Config{Type: TypeSQLite, SQLite: SQLiteConfig{Path: path}}, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	require.NoError(t, m.Initialize(context.Background()))

	assert.Equal(t, TypeSQLite, m.Type())
	assert.Equal(t, path, m.Location())

	sqliteMgr, ok := m.(*SQLiteManager)
	require.True(t, ok)
	assert.True(t, sqliteMgr.Exists())

	migrator := m.DB().Migrator()
	for _, table := range []string{
		"pokemons", "categories", "countries", "owners",
		"reviewers", "reviews", "pokemon_categories", "pokemon_owners",
	} {
		assert.True(t, migrator.HasTable(table), "table %s should exist", table)
	}

	// Second run must be a no-op on an existing schema.
	require.NoError(t, m.Initialize(context.Background()))
}

func TestNew_SQLiteEnforcesForeignKeys(t *testing.T) {
	t.Parallel()

	m, err := New(&Config{SQLite: SQLiteConfig{Path: filepath.Join(t.TempDir(), "fk.db")}}, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	require.NoError(t, m.Initialize(context.Background()))

	orphan := entities.Owner{FirstName: "Ash", LastName: "Ketchum", CountryID: 999}
	err = m.DB().Omit("Country").Create(&orphan).Error
	require.Error(t, err, "owner with a missing country must be rejected by the store")
}

func TestNew_InMemory(t *testing.T) {
	t.Parallel()

	m, err := New(&Config{SQLite: SQLiteConfig{Path: MemoryPath}}, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	require.NoError(t, m.Initialize(context.Background()))
	assert.True(t, m.DB().Migrator().HasTable(&entities.Pokemon{}))
}

func TestOpen_InitializesSchema(t *testing.T) {
	t.Parallel()

	m, err := Open(context.Background(), &Config{SQLite: SQLiteConfig{Path: filepath.Join(t.TempDir(), "open.db")}}, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	assert.True(t, m.DB().Migrator().HasTable(&entities.Review{}))

	_, err = Open(context.Background(), &Config{Type: "oracle"}, testLogger())
	require.Error(t, err)
}

func TestNew_RejectsUnknownType(t *testing.T) {
	t.Parallel()

	_, err := New(&Config{Type: "oracle"}, testLogger())
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfiguration))

	_, err = New(nil, testLogger())
	require.Error(t, err)
}

func TestDSNBuilders(t *testing.T) {
	t.Parallel()

	server := ServerConfig{Host: "db.local", Port: "3306", Username: "poke", Password: "s3cret", Database: "reviews"}

	assert.Equal(t,
		"poke:s3cret@tcp(db.local:3306)/reviews?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true",
		mysqlDSN(&server))
	assert.Equal(t, "db.local:3306/reviews", serverLocation(&server))

	server.Port = "5432"
	assert.Equal(t,
		"host=db.local port=5432 user=poke password=s3cret dbname=reviews sslmode=disable TimeZone=UTC",
		postgresDSN(&server))

	server.SSLMode = "require"
	assert.Contains(t, postgresDSN(&server), "sslmode=require")
}

func TestRedactSensitiveInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"password", "poke:s3cret@tcp(127.0.0.1:3306)/reviews?parseTime=True", "poke:[REDACTED]@tcp(127.0.0.1:3306)/reviews?parseTime=True"},
		{"no password", "poke@tcp(127.0.0.1:3306)/reviews", "poke@tcp(127.0.0.1:3306)/reviews"},
		{"no credentials", "/reviews", "/reviews"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, redactSensitiveInfo(tt.dsn))
		})
	}
}

func TestNewColumns(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"gym"}, newColumns([]string{"id", "first_name", "gym"}, []string{"id", "first_name"}))
	assert.Empty(t, newColumns([]string{"id"}, []string{"id"}))
}
