package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tphakala/pokereview/internal/datastore/entities"
	"github.com/tphakala/pokereview/internal/datastore/session"
)

// PokemonRepository reads and writes pokemon.
type PokemonRepository interface {
	List(ctx context.Context) ([]entities.Pokemon, error)
	// Get returns nil, nil when the pokemon does not exist.
	Get(ctx context.Context, id uint) (*entities.Pokemon, error)
	// GetByName matches the trimmed name exactly; nil, nil when missing.
	GetByName(ctx context.Context, name string) (*entities.Pokemon, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)

	// Rating returns the average review rating of pokemonID, 0 without reviews.
	Rating(ctx context.Context, pokemonID uint) (float64, error)

	// Create inserts p linked to ownerID and categoryID in one save.
	// Both must exist; otherwise ErrOwnerNotFound or ErrCategoryNotFound.
	Create(ctx context.Context, ownerID, categoryID uint, p *entities.Pokemon) (bool, error)
	Update(ctx context.Context, p *entities.Pokemon) (bool, error)
	// Delete removes p together with its reviews and junction rows.
	Delete(ctx context.Context, p *entities.Pokemon) (bool, error)
}

type pokemonRepository struct {
	uow   session.UnitOfWork
	store *EntityRepository[entities.Pokemon]
}

// NewPokemonRepository creates a PokemonRepository over uow.
func NewPokemonRepository(uow session.UnitOfWork) PokemonRepository {
	return &pokemonRepository{
		uow:   uow,
		store: NewEntityRepository[entities.Pokemon](uow),
	}
}

func (r *pokemonRepository) List(ctx context.Context) ([]entities.Pokemon, error) {
	return listAll[entities.Pokemon](ctx, r.uow, tablePokemons)
}

func (r *pokemonRepository) Get(ctx context.Context, id uint) (*entities.Pokemon, error) {
	return getByID[entities.Pokemon](ctx, r.uow, tablePokemons, id)
}

func (r *pokemonRepository) GetByName(ctx context.Context, name string) (*entities.Pokemon, error) {
	var p entities.Pokemon
	err := r.uow.Query(ctx).Where("name = ?", strings.TrimSpace(name)).Order("id").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError(err, "get_by_name", tablePokemons)
	}
	return &p, nil
}

func (r *pokemonRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return existsByID[entities.Pokemon](ctx, r.uow, tablePokemons, id)
}

func (r *pokemonRepository) Count(ctx context.Context) (int64, error) {
	return countAll[entities.Pokemon](ctx, r.uow, tablePokemons)
}

func (r *pokemonRepository) Rating(ctx context.Context, pokemonID uint) (float64, error) {
	var avg sql.NullFloat64
	err := r.uow.Query(ctx).Model(&entities.Review{}).
		Select("AVG(rating)").
		Where("pokemon_id = ?", pokemonID).
		Scan(&avg).Error
	if err != nil {
		return 0, storeError(err, "rating", tableReviews)
	}
	return avg.Float64, nil
}

func (r *pokemonRepository) Create(ctx context.Context, ownerID, categoryID uint, p *entities.Pokemon) (bool, error) {
	if p == nil {
		return false, validationError(ErrNilEntity, "operation", "create")
	}
	if strings.TrimSpace(p.Name) == "" {
		return false, validationError(ErrNameRequired, "table", tablePokemons)
	}

	ok, err := existsByID[entities.Owner](ctx, r.uow, tableOwners, ownerID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, notFoundError(ErrOwnerNotFound, ownerID)
	}
	ok, err = existsByID[entities.Category](ctx, r.uow, tableCategories, categoryID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, notFoundError(ErrCategoryNotFound, categoryID)
	}

	// Junction rows ride along as has-many associations and receive the new pokemon ID.
	p.PokemonOwners = append(p.PokemonOwners, entities.PokemonOwner{OwnerID: ownerID})
	p.PokemonCategories = append(p.PokemonCategories, entities.PokemonCategory{CategoryID: categoryID})
	return r.store.Create(ctx, p)
}

func (r *pokemonRepository) Update(ctx context.Context, p *entities.Pokemon) (bool, error) {
	return r.store.Update(ctx, p)
}

func (r *pokemonRepository) Delete(ctx context.Context, p *entities.Pokemon) (bool, error) {
	if p == nil {
		return false, validationError(ErrNilEntity, "operation", "delete")
	}
	q := r.uow.Query(ctx)

	var reviews []entities.Review
	if err := q.Where("pokemon_id = ?", p.ID).Find(&reviews).Error; err != nil {
		return false, storeError(err, "delete", tableReviews)
	}
	var categoryLinks []entities.PokemonCategory
	if err := q.Where("pokemon_id = ?", p.ID).Find(&categoryLinks).Error; err != nil {
		return false, storeError(err, "delete", tablePokemonCategories)
	}
	var ownerLinks []entities.PokemonOwner
	if err := q.Where("pokemon_id = ?", p.ID).Find(&ownerLinks).Error; err != nil {
		return false, storeError(err, "delete", tablePokemonOwners)
	}

	for i := range reviews {
		r.uow.Remove(&reviews[i])
	}
	for i := range categoryLinks {
		r.uow.Remove(&categoryLinks[i])
	}
	for i := range ownerLinks {
		r.uow.Remove(&ownerLinks[i])
	}
	return r.store.Delete(ctx, p)
}
