package repository

import (
	"context"
	"strings"

	"github.com/tphakala/pokereview/internal/datastore/entities"
	"github.com/tphakala/pokereview/internal/datastore/session"
)

// ReviewerRepository reads and writes reviewers.
type ReviewerRepository interface {
	List(ctx context.Context) ([]entities.Reviewer, error)
	// Get returns nil, nil when the reviewer does not exist.
	Get(ctx context.Context, id uint) (*entities.Reviewer, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)

	// ReviewsByReviewer returns the reviews written by reviewerID.
	ReviewsByReviewer(ctx context.Context, reviewerID uint) ([]entities.Review, error)

	Create(ctx context.Context, rv *entities.Reviewer) (bool, error)
	Update(ctx context.Context, rv *entities.Reviewer) (bool, error)
	// Delete removes rv together with the reviews it wrote.
	Delete(ctx context.Context, rv *entities.Reviewer) (bool, error)
}

type reviewerRepository struct {
	uow   session.UnitOfWork
	store *EntityRepository[entities.Reviewer]
}

// NewReviewerRepository creates a ReviewerRepository over uow.
func NewReviewerRepository(uow session.UnitOfWork) ReviewerRepository {
	return &reviewerRepository{
		uow:   uow,
		store: NewEntityRepository[entities.Reviewer](uow),
	}
}

func (r *reviewerRepository) List(ctx context.Context) ([]entities.Reviewer, error) {
	return listAll[entities.Reviewer](ctx, r.uow, tableReviewers)
}

func (r *reviewerRepository) Get(ctx context.Context, id uint) (*entities.Reviewer, error) {
	return getByID[entities.Reviewer](ctx, r.uow, tableReviewers, id)
}

func (r *reviewerRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return existsByID[entities.Reviewer](ctx, r.uow, tableReviewers, id)
}

func (r *reviewerRepository) Count(ctx context.Context) (int64, error) {
	return countAll[entities.Reviewer](ctx, r.uow, tableReviewers)
}

func (r *reviewerRepository) ReviewsByReviewer(ctx context.Context, reviewerID uint) ([]entities.Review, error) {
	var reviews []entities.Review
	err := r.uow.Query(ctx).Where("reviewer_id = ?", reviewerID).Order("id").Find(&reviews).Error
	if err != nil {
		return nil, storeError(err, "traverse", tableReviews)
	}
	return reviews, nil
}

func (r *reviewerRepository) Create(ctx context.Context, rv *entities.Reviewer) (bool, error) {
	if rv == nil {
		return false, validationError(ErrNilEntity, "operation", "create")
	}
	if strings.TrimSpace(rv.FirstName) == "" && strings.TrimSpace(rv.LastName) == "" {
		return false, validationError(ErrNameRequired, "table", tableReviewers)
	}
	return r.store.Create(ctx, rv)
}

func (r *reviewerRepository) Update(ctx context.Context, rv *entities.Reviewer) (bool, error) {
	return r.store.Update(ctx, rv)
}

func (r *reviewerRepository) Delete(ctx context.Context, rv *entities.Reviewer) (bool, error) {
	if rv == nil {
		return false, validationError(ErrNilEntity, "operation", "delete")
	}

	reviews, err := r.ReviewsByReviewer(ctx, rv.ID)
	if err != nil {
		return false, err
	}
	for i := range reviews {
		r.uow.Remove(&reviews[i])
	}
	return r.store.Delete(ctx, rv)
}
