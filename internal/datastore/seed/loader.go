// Package seed populates an empty store with the fixture graph.
package seed

import (
	"context"
	"time"

	"github.com/tphakala/pokereview/internal/datastore/entities"
	"github.com/tphakala/pokereview/internal/datastore/session"
	"github.com/tphakala/pokereview/internal/errors"
	"github.com/tphakala/pokereview/internal/logger"
	"github.com/tphakala/pokereview/internal/observability/metrics"
)

// Counts reports the number of rows per table.
type Counts struct {
	Pokemon           int64 `yaml:"pokemon" json:"pokemon"`
	Categories        int64 `yaml:"categories" json:"categories"`
	Countries         int64 `yaml:"countries" json:"countries"`
	Owners            int64 `yaml:"owners" json:"owners"`
	Reviewers         int64 `yaml:"reviewers" json:"reviewers"`
	Reviews           int64 `yaml:"reviews" json:"reviews"`
	PokemonCategories int64 `yaml:"pokemon_categories" json:"pokemon_categories"`
	PokemonOwners     int64 `yaml:"pokemon_owners" json:"pokemon_owners"`
}

// tableRowRecorder is implemented by recorders that track table sizes.
type tableRowRecorder interface {
	UpdateTableRowCount(table string, rows int64)
}

// Loader writes the fixture graph once.
type Loader struct {
	uow      session.UnitOfWork
	log      logger.Logger
	recorder metrics.Recorder
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the loader logger.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(l *Loader) {
		if r != nil {
			l.recorder = r
		}
	}
}

// NewLoader creates a Loader writing through uow.
func NewLoader(uow session.UnitOfWork, opts ...Option) *Loader {
	l := &Loader{uow: uow, recorder: metrics.NopRecorder{}}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = logger.Global().Module("datastore").Module("seed")
	}
	return l
}

// Run inserts the fixture graph when the pokemon_owners table is empty and
// reports whether anything was written. A populated store is left untouched.
func (l *Loader) Run(ctx context.Context) (bool, error) {
	start := time.Now()
	log := l.log.WithContext(ctx)

	var existing int64
	if err := l.uow.Query(ctx).Model(&entities.PokemonOwner{}).Count(&existing).Error; err != nil {
		l.recorder.RecordError(metrics.OpSeed, string(errors.CategoryDatabase))
		return false, errors.New(err).
			Component("datastore.seed").
			Category(errors.CategoryDatabase).
			Context("operation", "gate").
			Build()
	}
	if existing > 0 {
		l.recorder.RecordOperation(metrics.OpSeed, metrics.StatusSkipped)
		log.Info("store already seeded, skipping", logger.Int64("pokemon_owners", existing))
		return false, nil
	}

	graph := Fixture()
	l.uow.Add(&graph)
	ok, err := l.uow.Save(ctx)
	elapsed := time.Since(start)
	l.recorder.RecordDuration(metrics.OpSeed, elapsed.Seconds())
	if err != nil {
		l.recorder.RecordOperation(metrics.OpSeed, metrics.StatusError)
		l.recorder.RecordError(metrics.OpSeed, string(errors.CategoryDatabase))
		log.Error("seed failed", logger.Error(err), logger.Duration("duration", elapsed))
		return false, err
	}

	l.recorder.RecordOperation(metrics.OpSeed, metrics.StatusSuccess)
	log.Info("seeded fixture graph",
		logger.Int("pokemon", len(graph)),
		logger.Duration("duration", elapsed))

	if _, err := l.Report(ctx); err != nil {
		log.Warn("failed to refresh table row counts", logger.Error(err))
	}
	return ok, nil
}

// Report counts the rows of every table and publishes them to the recorder
// when it tracks table sizes.
func (l *Loader) Report(ctx context.Context) (Counts, error) {
	var c Counts
	targets := []struct {
		table string
		model any
		dst   *int64
	}{
		{"pokemons", &entities.Pokemon{}, &c.Pokemon},
		{"categories", &entities.Category{}, &c.Categories},
		{"countries", &entities.Country{}, &c.Countries},
		{"owners", &entities.Owner{}, &c.Owners},
		{"reviewers", &entities.Reviewer{}, &c.Reviewers},
		{"reviews", &entities.Review{}, &c.Reviews},
		{"pokemon_categories", &entities.PokemonCategory{}, &c.PokemonCategories},
		{"pokemon_owners", &entities.PokemonOwner{}, &c.PokemonOwners},
	}

	q := l.uow.Query(ctx)
	rr, track := l.recorder.(tableRowRecorder)
	for _, t := range targets {
		if err := q.Model(t.model).Count(t.dst).Error; err != nil {
			return Counts{}, errors.New(err).
				Component("datastore.seed").
				Category(errors.CategoryDatabase).
				Context("operation", "report").
				Context("table", t.table).
				Build()
		}
		if track {
			rr.UpdateTableRowCount(t.table, *t.dst)
		}
	}
	return c, nil
}
