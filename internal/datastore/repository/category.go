package repository

import (
	"context"
	"strings"

	"github.com/tphakala/pokereview/internal/datastore/entities"
	"github.com/tphakala/pokereview/internal/datastore/session"
)

// CategoryRepository reads and writes categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]entities.Category, error)
	// Get returns nil, nil when the category does not exist.
	Get(ctx context.Context, id uint) (*entities.Category, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)

	// PokemonByCategory returns the pokemon linked to categoryID, each once.
	PokemonByCategory(ctx context.Context, categoryID uint) ([]entities.Pokemon, error)

	// Create inserts c unless another category has the same folded name.
	Create(ctx context.Context, c *entities.Category) (bool, error)
	// Update replaces c unless it would collide with another category's name.
	Update(ctx context.Context, c *entities.Category) (bool, error)
	// Delete removes c together with its pokemon links.
	Delete(ctx context.Context, c *entities.Category) (bool, error)
}

type categoryRepository struct {
	uow   session.UnitOfWork
	store *EntityRepository[entities.Category]
}

// NewCategoryRepository creates a CategoryRepository over uow.
func NewCategoryRepository(uow session.UnitOfWork) CategoryRepository {
	return &categoryRepository{
		uow:   uow,
		store: NewEntityRepository[entities.Category](uow),
	}
}

func (r *categoryRepository) List(ctx context.Context) ([]entities.Category, error) {
	return listAll[entities.Category](ctx, r.uow, tableCategories)
}

func (r *categoryRepository) Get(ctx context.Context, id uint) (*entities.Category, error) {
	return getByID[entities.Category](ctx, r.uow, tableCategories, id)
}

func (r *categoryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return existsByID[entities.Category](ctx, r.uow, tableCategories, id)
}

func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	return countAll[entities.Category](ctx, r.uow, tableCategories)
}

func (r *categoryRepository) PokemonByCategory(ctx context.Context, categoryID uint) ([]entities.Pokemon, error) {
	sub := r.uow.Query(ctx).Model(&entities.PokemonCategory{}).
		Select("pokemon_id").
		Where("category_id = ?", categoryID)
	return findWhereIDIn[entities.Pokemon](ctx, r.uow, tablePokemons, sub)
}

func (r *categoryRepository) Create(ctx context.Context, c *entities.Category) (bool, error) {
	if c == nil {
		return false, validationError(ErrNilEntity, "operation", "create")
	}
	if err := r.checkName(ctx, c.Name, 0); err != nil {
		return false, err
	}
	return r.store.Create(ctx, c)
}

func (r *categoryRepository) Update(ctx context.Context, c *entities.Category) (bool, error) {
	if c == nil {
		return false, validationError(ErrNilEntity, "operation", "update")
	}
	if err := r.checkName(ctx, c.Name, c.ID); err != nil {
		return false, err
	}
	return r.store.Update(ctx, c)
}

func (r *categoryRepository) Delete(ctx context.Context, c *entities.Category) (bool, error) {
	if c == nil {
		return false, validationError(ErrNilEntity, "operation", "delete")
	}

	var links []entities.PokemonCategory
	err := r.uow.Query(ctx).Where("category_id = ?", c.ID).Find(&links).Error
	if err != nil {
		return false, storeError(err, "delete", tablePokemonCategories)
	}
	for i := range links {
		r.uow.Remove(&links[i])
	}
	return r.store.Delete(ctx, c)
}

// checkName rejects blank names and names already used by another category.
func (r *categoryRepository) checkName(ctx context.Context, name string, selfID uint) error {
	if strings.TrimSpace(name) == "" {
		return validationError(ErrNameRequired, "table", tableCategories)
	}
	existing, err := r.List(ctx)
	if err != nil {
		return err
	}
	match := findByName(existing, name,
		func(c *entities.Category) string { return c.Name },
		func(c *entities.Category) uint { return c.ID },
		selfID)
	if match != nil {
		return conflictError(ErrCategoryExists, name)
	}
	return nil
}
