package repository

import (
	"context"
	"strings"

	"github.com/tphakala/pokereview/internal/datastore/entities"
	"github.com/tphakala/pokereview/internal/datastore/session"
)

// Rating bounds for reviews.
const (
	MinRating = 1
	MaxRating = 5
)

// ReviewRepository reads and writes reviews.
type ReviewRepository interface {
	List(ctx context.Context) ([]entities.Review, error)
	// Get returns nil, nil when the review does not exist.
	Get(ctx context.Context, id uint) (*entities.Review, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)

	// ReviewsOfPokemon returns the reviews of pokemonID.
	ReviewsOfPokemon(ctx context.Context, pokemonID uint) ([]entities.Review, error)

	// Create inserts rv written by reviewerID about pokemonID.
	// Both must exist; otherwise ErrReviewerNotFound or ErrPokemonNotFound.
	Create(ctx context.Context, reviewerID, pokemonID uint, rv *entities.Review) (bool, error)
	Update(ctx context.Context, rv *entities.Review) (bool, error)
	Delete(ctx context.Context, rv *entities.Review) (bool, error)
	// DeleteReviews removes all of rvs in one save.
	DeleteReviews(ctx context.Context, rvs []*entities.Review) (bool, error)
}

type reviewRepository struct {
	uow   session.UnitOfWork
	store *EntityRepository[entities.Review]
}

// NewReviewRepository creates a ReviewRepository over uow.
func NewReviewRepository(uow session.UnitOfWork) ReviewRepository {
	return &reviewRepository{
		uow:   uow,
		store: NewEntityRepository[entities.Review](uow),
	}
}

func (r *reviewRepository) List(ctx context.Context) ([]entities.Review, error) {
	return listAll[entities.Review](ctx, r.uow, tableReviews)
}

func (r *reviewRepository) Get(ctx context.Context, id uint) (*entities.Review, error) {
	return getByID[entities.Review](ctx, r.uow, tableReviews, id)
}

func (r *reviewRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return existsByID[entities.Review](ctx, r.uow, tableReviews, id)
}

func (r *reviewRepository) Count(ctx context.Context) (int64, error) {
	return countAll[entities.Review](ctx, r.uow, tableReviews)
}

func (r *reviewRepository) ReviewsOfPokemon(ctx context.Context, pokemonID uint) ([]entities.Review, error) {
	var reviews []entities.Review
	err := r.uow.Query(ctx).Where("pokemon_id = ?", pokemonID).Order("id").Find(&reviews).Error
	if err != nil {
		return nil, storeError(err, "traverse", tableReviews)
	}
	return reviews, nil
}

func (r *reviewRepository) Create(ctx context.Context, reviewerID, pokemonID uint, rv *entities.Review) (bool, error) {
	if rv == nil {
		return false, validationError(ErrNilEntity, "operation", "create")
	}
	if err := validateReview(rv); err != nil {
		return false, err
	}

	reviewer, err := getByID[entities.Reviewer](ctx, r.uow, tableReviewers, reviewerID)
	if err != nil {
		return false, err
	}
	if reviewer == nil {
		return false, notFoundError(ErrReviewerNotFound, reviewerID)
	}
	pokemon, err := getByID[entities.Pokemon](ctx, r.uow, tablePokemons, pokemonID)
	if err != nil {
		return false, err
	}
	if pokemon == nil {
		return false, notFoundError(ErrPokemonNotFound, pokemonID)
	}

	rv.ReviewerID = reviewer.ID
	rv.PokemonID = pokemon.ID
	rv.Reviewer = nil
	rv.Pokemon = nil
	return r.store.Create(ctx, rv)
}

func (r *reviewRepository) Update(ctx context.Context, rv *entities.Review) (bool, error) {
	if rv == nil {
		return false, validationError(ErrNilEntity, "operation", "update")
	}
	if err := validateReview(rv); err != nil {
		return false, err
	}
	return r.store.Update(ctx, rv)
}

func (r *reviewRepository) Delete(ctx context.Context, rv *entities.Review) (bool, error) {
	return r.store.Delete(ctx, rv)
}

func (r *reviewRepository) DeleteReviews(ctx context.Context, rvs []*entities.Review) (bool, error) {
	return r.store.DeleteEntities(ctx, rvs)
}

func validateReview(rv *entities.Review) error {
	if strings.TrimSpace(rv.Title) == "" {
		return validationError(ErrNameRequired, "field", "title")
	}
	if rv.Rating < MinRating || rv.Rating > MaxRating {
		return validationError(ErrInvalidRating, "rating", rv.Rating)
	}
	return nil
}
