package seed

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/pokereview/internal/datastore"
	"github.com/tphakala/pokereview/internal/datastore/entities"
	"github.com/tphakala/pokereview/internal/datastore/repository"
	"github.com/tphakala/pokereview/internal/datastore/session"
	"github.com/tphakala/pokereview/internal/logger"
	"github.com/tphakala/pokereview/internal/observability/metrics"
)

func openStore(t *testing.T) datastore.Manager {
	t.Helper()
	log := logger.NewSlogLogger(io.Discard, logger.LogLevelError, time.UTC)
	m, err := datastore.New(&datastore.Config{
		SQLite: datastore.SQLiteConfig{Path: filepath.Join(t.TempDir(), "seed.db")},
	}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	require.NoError(t, m.Initialize(context.Background()))
	return m
}

func newLoader(m datastore.Manager, opts ...Option) *Loader {
	log := logger.NewSlogLogger(io.Discard, logger.LogLevelError, time.UTC)
	opts = append([]Option{WithLogger(log)}, opts...)
	return NewLoader(session.New(m.DB(), session.WithLogger(log)), opts...)
}

func TestFixture_Shape(t *testing.T) {
	t.Parallel()

	graph := Fixture()
	require.Len(t, graph, 3)

	names := make([]string, 0, len(graph))
	reviewers := make(map[*entities.Reviewer]struct{})
	countries := make(map[*entities.Country]struct{})
	for _, po := range graph {
		require.NotNil(t, po.Pokemon)
		require.NotNil(t, po.Owner)
		names = append(names, po.Pokemon.Name)

		assert.Len(t, po.Pokemon.PokemonCategories, 1)
		require.Len(t, po.Pokemon.Reviews, 3)
		for _, rv := range po.Pokemon.Reviews {
			assert.Equal(t, po.Pokemon.Name, rv.Title)
			assert.GreaterOrEqual(t, rv.Rating, repository.MinRating)
			assert.LessOrEqual(t, rv.Rating, repository.MaxRating)
			reviewers[rv.Reviewer] = struct{}{}
		}
		countries[po.Owner.Country] = struct{}{}
		assert.Equal(t, time.UTC, po.Pokemon.BirthDate.Location())
	}
	assert.Equal(t, []string{"Pikachu", "Squirtle", "Venusaur"}, names)
	assert.Len(t, reviewers, 9, "every review has its own reviewer")
	assert.Len(t, countries, 3)
}

func TestFixture_FreshGraphPerCall(t *testing.T) {
	t.Parallel()

	a, b := Fixture(), Fixture()
	a[0].Pokemon.Name = "changed"
	assert.Equal(t, "Pikachu", b[0].Pokemon.Name)
}

func TestLoader_RunIsIdempotent(t *testing.T) {
	t.Parallel()
	m := openStore(t)
	ctx := context.Background()

	ok, err := newLoader(m).Run(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	want := Counts{
		Pokemon:           3,
		Categories:        3,
		Countries:         3,
		Owners:            3,
		Reviewers:         9,
		Reviews:           9,
		PokemonCategories: 3,
		PokemonOwners:     3,
	}
	got, err := newLoader(m).Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	ok, err = newLoader(m).Run(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "second run must be a no-op")

	got, err = newLoader(m).Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoader_SeededGraphIsTraversable(t *testing.T) {
	t.Parallel()
	m := openStore(t)
	ctx := context.Background()

	_, err := newLoader(m).Run(ctx)
	require.NoError(t, err)

	repos := repository.New(session.New(m.DB()))
	pikachu, err := repos.Pokemon.GetByName(ctx, "Pikachu")
	require.NoError(t, err)
	require.NotNil(t, pikachu)

	owners, err := repos.Owners.OwnersOfPokemon(ctx, pikachu.ID)
	require.NoError(t, err)
	require.Len(t, owners, 1)
	assert.Equal(t, "London", owners[0].LastName)

	country, err := repos.Countries.CountryByOwner(ctx, owners[0].ID)
	require.NoError(t, err)
	require.NotNil(t, country)
	assert.Equal(t, "Канто", country.Name)

	rating, err := repos.Pokemon.Rating(ctx, pikachu.ID)
	require.NoError(t, err)
	assert.InDelta(t, 11.0/3.0, rating, 0.0001)
}

func TestLoader_SkipsPopulatedStore(t *testing.T) {
	t.Parallel()
	m := openStore(t)
	ctx := context.Background()

	// Any pokemon-owner row closes the gate, even without the fixture.
	country := entities.Country{Name: "Johto"}
	require.NoError(t, m.DB().Create(&country).Error)
	owner := entities.Owner{FirstName: "Gold", LastName: "Hibiki", CountryID: country.ID}
	require.NoError(t, m.DB().Create(&owner).Error)
	p := entities.Pokemon{Name: "Cyndaquil", BirthDate: time.Now().UTC()}
	require.NoError(t, m.DB().Create(&p).Error)
	require.NoError(t, m.DB().Create(&entities.PokemonOwner{PokemonID: p.ID, OwnerID: owner.ID}).Error)

	ok, err := newLoader(m).Run(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	var n int64
	require.NoError(t, m.DB().Model(&entities.Pokemon{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

// fakeRecorder captures seed outcomes and table sizes.
type fakeRecorder struct {
	metrics.NopRecorder
	mu     sync.Mutex
	status []string
	tables map[string]int64
}

func (r *fakeRecorder) RecordOperation(operation, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if operation == metrics.OpSeed {
		r.status = append(r.status, status)
	}
}

func (r *fakeRecorder) UpdateTableRowCount(table string, rows int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tables == nil {
		r.tables = make(map[string]int64)
	}
	r.tables[table] = rows
}

func TestLoader_RecordsMetrics(t *testing.T) {
	t.Parallel()
	m := openStore(t)
	ctx := context.Background()

	rec := &fakeRecorder{}
	_, err := newLoader(m, WithRecorder(rec)).Run(ctx)
	require.NoError(t, err)
	_, err = newLoader(m, WithRecorder(rec)).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{metrics.StatusSuccess, metrics.StatusSkipped}, rec.status)
	assert.Equal(t, int64(9), rec.tables["reviews"])
	assert.Equal(t, int64(3), rec.tables["pokemon_owners"])
}
