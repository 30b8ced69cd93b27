package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tphakala/pokereview/internal/datastore/session"
)

// Table names used in queries and error context.
const (
	tablePokemons          = "pokemons"
	tableCategories        = "categories"
	tableCountries         = "countries"
	tableOwners            = "owners"
	tableReviewers         = "reviewers"
	tableReviews           = "reviews"
	tablePokemonCategories = "pokemon_categories"
	tablePokemonOwners     = "pokemon_owners"
)

// listAll reads every row of T ordered by primary key.
func listAll[T any](ctx context.Context, uow session.UnitOfWork, table string) ([]T, error) {
	var out []T
	if err := uow.Query(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, storeError(err, "list", table)
	}
	return out, nil
}

// getByID returns the row of T with id, or nil when there is none.
func getByID[T any](ctx context.Context, uow session.UnitOfWork, table string, id uint) (*T, error) {
	var out T
	err := uow.Query(ctx).First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError(err, "get", table)
	}
	return &out, nil
}

// existsByID reports whether a row of T with id exists.
func existsByID[T any](ctx context.Context, uow session.UnitOfWork, table string, id uint) (bool, error) {
	var count int64
	err := uow.Query(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, storeError(err, "exists", table)
	}
	return count > 0, nil
}

// countAll returns the number of rows of T.
func countAll[T any](ctx context.Context, uow session.UnitOfWork, table string) (int64, error) {
	var count int64
	if err := uow.Query(ctx).Model(new(T)).Count(&count).Error; err != nil {
		return 0, storeError(err, "count", table)
	}
	return count, nil
}

// findWhereIDIn reads rows of T whose id is produced by subquery.
// The IN filter yields each row once however many junction rows match.
func findWhereIDIn[T any](ctx context.Context, uow session.UnitOfWork, table string, subquery *gorm.DB) ([]T, error) {
	var out []T
	err := uow.Query(ctx).Where("id IN (?)", subquery).Order("id").Find(&out).Error
	if err != nil {
		return nil, storeError(err, "traverse", table)
	}
	return out, nil
}
