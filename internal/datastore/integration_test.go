//go:build integration

// Integration tests against real MySQL and PostgreSQL servers started in
// Docker. Run with: go test -tags=integration ./internal/datastore/...
package datastore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tphakala/pokereview/internal/datastore/entities"
)

func TestMySQLManager_Initialize(t *testing.T) {
	ctx := context.Background()

	container, err := tcmysql.Run(ctx, "mysql:8.4",
		tcmysql.WithDatabase("pokereview"),
		tcmysql.WithUsername("poke"),
		tcmysql.WithPassword("poke"),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "3306/tcp")
	require.NoError(t, err)

	m, err := New(&Config{
		Type: TypeMySQL,
		MySQL: ServerConfig{
			Host: host, Port: port.Port(),
			Username: "poke", Password: "poke", Database: "pokereview",
		},
	}, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	require.NoError(t, m.Initialize(ctx))
	assertRoundTrip(t, m)
}

func TestPostgresManager_Initialize(t *testing.T) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("pokereview"),
		tcpostgres.WithUsername("poke"),
		tcpostgres.WithPassword("poke"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	m, err := New(&Config{
		Type: TypePostgres,
		Postgres: ServerConfig{
			Host: host, Port: port.Port(),
			Username: "poke", Password: "poke", Database: "pokereview",
		},
	}, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	require.NoError(t, m.Initialize(ctx))
	assertRoundTrip(t, m)
}

func assertRoundTrip(t *testing.T, m Manager) {
	t.Helper()

	country := entities.Country{Name: "Канто"}
	require.NoError(t, m.DB().Create(&country).Error)

	owner := entities.Owner{FirstName: "Jack", LastName: "London", Gym: "Тренер Брок", CountryID: country.ID}
	require.NoError(t, m.DB().Omit("Country").Create(&owner).Error)

	var got entities.Owner
	require.NoError(t, m.DB().Preload("Country").First(&got, owner.ID).Error)
	require.Equal(t, "Канто", got.Country.Name)
}
