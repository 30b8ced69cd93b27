// Package session implements the unit of work that every repository writes through.
//
// A Session collects staged changes (Add, Update, Remove, RemoveRange) in
// memory and applies them in a single database transaction on Save. Either
// all staged changes commit or none do. The staged list is cleared by every
// Save, whatever its outcome, so a Session can be reused for the next
// logical operation.
//
// Sessions are not meant to be shared between requests. Create one per
// logical operation with a Factory:
//
//	factory := session.NewFactory(db, session.WithLogger(log))
//	s := factory.New()
//	s.Add(&entities.Category{Name: "Electric"})
//	ok, err := s.Save(ctx)
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tphakala/pokereview/internal/errors"
	"github.com/tphakala/pokereview/internal/logger"
	"github.com/tphakala/pokereview/internal/observability/metrics"
)

// UnitOfWork is the capability the repositories depend on.
type UnitOfWork interface {
	// Add stages entity for insertion. Nested associations are inserted with it.
	Add(entity any)
	// Update stages a full-record replacement of entity by primary key.
	Update(entity any)
	// Remove stages deletion of entity by primary key.
	Remove(entity any)
	// RemoveRange stages deletion of every entity, in order.
	RemoveRange(entities ...any)
	// Save applies all staged changes atomically and reports whether at
	// least one row was affected. Store faults are returned as errors.
	Save(ctx context.Context) (bool, error)
	// Discard drops staged changes without touching the store.
	Discard()
	// Query returns a read handle bound to ctx.
	Query(ctx context.Context) *gorm.DB
	// Pending returns the number of staged changes.
	Pending() int
	// ID identifies the session in logs.
	ID() string
}

type changeKind int

const (
	changeAdd changeKind = iota
	changeUpdate
	changeRemove
)

func (k changeKind) String() string {
	switch k {
	case changeAdd:
		return "add"
	case changeUpdate:
		return "update"
	case changeRemove:
		return "remove"
	default:
		return "unknown"
	}
}

type change struct {
	kind   changeKind
	entity any
}

// saveSizeRecorder is implemented by recorders that track batch sizes.
type saveSizeRecorder interface {
	RecordSaveSize(pending int, rows int64)
}

// GormSession is the GORM implementation of UnitOfWork.
type GormSession struct {
	id       string
	db       *gorm.DB
	log      logger.Logger
	recorder metrics.Recorder

	mu      sync.Mutex
	pending []change
}

var _ UnitOfWork = (*GormSession)(nil)

// Option configures a GormSession.
type Option func(*GormSession)

// WithLogger sets the session logger.
func WithLogger(log logger.Logger) Option {
	return func(s *GormSession) {
		if log != nil {
			s.log = log
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *GormSession) {
		if r != nil {
			s.recorder = r
		}
	}
}

// New creates a session over db.
func New(db *gorm.DB, opts ...Option) *GormSession {
	s := &GormSession{
		id:       uuid.NewString(),
		db:       db,
		recorder: metrics.NopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Global().Module("datastore").Module("session")
	}
	s.log = s.log.With(logger.String("session_id", s.id))
	return s
}

// ID returns the session identifier.
func (s *GormSession) ID() string {
	return s.id
}

func (s *GormSession) stage(kind changeKind, entity any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, change{kind: kind, entity: entity})
}

// Add stages entity for insertion.
func (s *GormSession) Add(entity any) {
	s.stage(changeAdd, entity)
}

// Update stages entity for full-record replacement.
func (s *GormSession) Update(entity any) {
	s.stage(changeUpdate, entity)
}

// Remove stages entity for deletion.
func (s *GormSession) Remove(entity any) {
	s.stage(changeRemove, entity)
}

// RemoveRange stages each entity for deletion.
func (s *GormSession) RemoveRange(entities ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entities {
		s.pending = append(s.pending, change{kind: changeRemove, entity: e})
	}
}

// Pending returns the number of staged changes.
func (s *GormSession) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Discard drops staged changes.
func (s *GormSession) Discard() {
	s.mu.Lock()
	n := len(s.pending)
	s.pending = nil
	s.mu.Unlock()

	if n > 0 {
		s.log.Debug("discarded staged changes", logger.Int("changes", n))
	}
}

// Query returns a read handle bound to ctx.
func (s *GormSession) Query(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Save applies all staged changes in one transaction.
func (s *GormSession) Save(ctx context.Context) (bool, error) {
	s.mu.Lock()
	changes := s.pending
	s.pending = nil
	s.mu.Unlock()

	if len(changes) == 0 {
		s.recorder.RecordOperation(metrics.OpSessionSave, metrics.StatusNoop)
		return false, nil
	}

	start := time.Now()
	var rows int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, c := range changes {
			res := apply(tx, c)
			if res.Error != nil {
				return fmt.Errorf("%s %T (change %d of %d): %w", c.kind, c.entity, i+1, len(changes), res.Error)
			}
			rows += res.RowsAffected
		}
		return nil
	})
	elapsed := time.Since(start)
	s.recorder.RecordDuration(metrics.OpSessionSave, elapsed.Seconds())

	if err != nil {
		enhanced := errors.New(err).
			Component("datastore.session").
			Category(errors.CategoryDatabase).
			Context("session_id", s.id).
			Context("changes", len(changes)).
			Timing("session_save", elapsed).
			Build()
		s.recorder.RecordOperation(metrics.OpSessionSave, metrics.StatusRollback)
		s.recorder.RecordError(metrics.OpSessionSave, string(enhanced.Category))
		s.log.WithContext(ctx).Error("save rolled back",
			logger.Int("changes", len(changes)),
			logger.Duration("duration", elapsed),
			logger.Error(err))
		return false, enhanced
	}

	if r, ok := s.recorder.(saveSizeRecorder); ok {
		r.RecordSaveSize(len(changes), rows)
	}

	status := metrics.StatusCommitted
	if rows == 0 {
		status = metrics.StatusNoop
	}
	s.recorder.RecordOperation(metrics.OpSessionSave, status)
	s.log.WithContext(ctx).Debug("save committed",
		logger.Int("changes", len(changes)),
		logger.Int64("rows_affected", rows),
		logger.Duration("duration", elapsed))

	return rows > 0, nil
}

// apply executes one staged change inside tx.
func apply(tx *gorm.DB, c change) *gorm.DB {
	switch c.kind {
	case changeAdd:
		return tx.Create(c.entity)
	case changeUpdate:
		// Updates rather than Save: Save falls back to an insert when no row matches.
		return tx.Model(c.entity).Select("*").Omit(clause.Associations).Updates(c.entity)
	case changeRemove:
		return tx.Delete(c.entity)
	default:
		tx.AddError(fmt.Errorf("unknown change kind %d", c.kind))
		return tx
	}
}

// Factory creates sessions that share a database handle and options.
type Factory struct {
	db   *gorm.DB
	opts []Option
}

// NewFactory returns a Factory for db.
func NewFactory(db *gorm.DB, opts ...Option) *Factory {
	return &Factory{db: db, opts: opts}
}

// New returns a fresh session.
func (f *Factory) New() *GormSession {
	return New(f.db, f.opts...)
}

// DB returns the shared database handle.
func (f *Factory) DB() *gorm.DB {
	return f.db
}
