package repository

import (
	"context"

	"github.com/tphakala/pokereview/internal/datastore/session"
)

// EntityRepository is the generic write primitive for any persisted type T.
// Each call stages its change on the UnitOfWork and saves. The boolean
// result reports whether the save affected at least one row; store faults
// are returned as errors, never folded into false.
type EntityRepository[T any] struct {
	uow session.UnitOfWork
}

// NewEntityRepository creates an EntityRepository over uow.
func NewEntityRepository[T any](uow session.UnitOfWork) *EntityRepository[T] {
	return &EntityRepository[T]{uow: uow}
}

// Create inserts e. Store-assigned IDs are written back into e.
func (r *EntityRepository[T]) Create(ctx context.Context, e *T) (bool, error) {
	if e == nil {
		return false, validationError(ErrNilEntity, "operation", "create")
	}
	r.uow.Add(e)
	return r.uow.Save(ctx)
}

// Update replaces every column of the row identified by e's primary key.
// A missing row yields false; Update never inserts.
func (r *EntityRepository[T]) Update(ctx context.Context, e *T) (bool, error) {
	if e == nil {
		return false, validationError(ErrNilEntity, "operation", "update")
	}
	r.uow.Update(e)
	return r.uow.Save(ctx)
}

// Delete removes the row identified by e's primary key.
func (r *EntityRepository[T]) Delete(ctx context.Context, e *T) (bool, error) {
	if e == nil {
		return false, validationError(ErrNilEntity, "operation", "delete")
	}
	r.uow.Remove(e)
	return r.uow.Save(ctx)
}

// DeleteEntities removes all of es in one save: either every row goes or none does.
func (r *EntityRepository[T]) DeleteEntities(ctx context.Context, es []*T) (bool, error) {
	items := make([]any, 0, len(es))
	for _, e := range es {
		if e == nil {
			return false, validationError(ErrNilEntity, "operation", "delete_entities")
		}
		items = append(items, e)
	}
	r.uow.RemoveRange(items...)
	return r.uow.Save(ctx)
}
