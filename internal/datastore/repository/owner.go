package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tphakala/pokereview/internal/datastore/entities"
	"github.com/tphakala/pokereview/internal/datastore/session"
)

// OwnerRepository reads and writes owners.
type OwnerRepository interface {
	List(ctx context.Context) ([]entities.Owner, error)
	// Get returns the owner with its Country loaded, or nil, nil when missing.
	Get(ctx context.Context, id uint) (*entities.Owner, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)

	// PokemonByOwner returns the pokemon linked to ownerID, each once.
	PokemonByOwner(ctx context.Context, ownerID uint) ([]entities.Pokemon, error)
	// OwnersOfPokemon returns the owners linked to pokemonID, each once.
	OwnersOfPokemon(ctx context.Context, pokemonID uint) ([]entities.Owner, error)

	// Create attaches the country countryID to o and inserts o.
	// A missing country fails with ErrCountryNotFound and writes nothing.
	Create(ctx context.Context, countryID uint, o *entities.Owner) (bool, error)
	Update(ctx context.Context, o *entities.Owner) (bool, error)
	// Delete removes o together with its pokemon links.
	Delete(ctx context.Context, o *entities.Owner) (bool, error)
}

type ownerRepository struct {
	uow   session.UnitOfWork
	store *EntityRepository[entities.Owner]
}

// NewOwnerRepository creates an OwnerRepository over uow.
func NewOwnerRepository(uow session.UnitOfWork) OwnerRepository {
	return &ownerRepository{
		uow:   uow,
		store: NewEntityRepository[entities.Owner](uow),
	}
}

func (r *ownerRepository) List(ctx context.Context) ([]entities.Owner, error) {
	return listAll[entities.Owner](ctx, r.uow, tableOwners)
}

func (r *ownerRepository) Get(ctx context.Context, id uint) (*entities.Owner, error) {
	var owner entities.Owner
	err := r.uow.Query(ctx).Preload("Country").First(&owner, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError(err, "get", tableOwners)
	}
	return &owner, nil
}

func (r *ownerRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return existsByID[entities.Owner](ctx, r.uow, tableOwners, id)
}

func (r *ownerRepository) Count(ctx context.Context) (int64, error) {
	return countAll[entities.Owner](ctx, r.uow, tableOwners)
}

func (r *ownerRepository) PokemonByOwner(ctx context.Context, ownerID uint) ([]entities.Pokemon, error) {
	sub := r.uow.Query(ctx).Model(&entities.PokemonOwner{}).
		Select("pokemon_id").
		Where("owner_id = ?", ownerID)
	return findWhereIDIn[entities.Pokemon](ctx, r.uow, tablePokemons, sub)
}

func (r *ownerRepository) OwnersOfPokemon(ctx context.Context, pokemonID uint) ([]entities.Owner, error) {
	sub := r.uow.Query(ctx).Model(&entities.PokemonOwner{}).
		Select("owner_id").
		Where("pokemon_id = ?", pokemonID)
	return findWhereIDIn[entities.Owner](ctx, r.uow, tableOwners, sub)
}

func (r *ownerRepository) Create(ctx context.Context, countryID uint, o *entities.Owner) (bool, error) {
	if o == nil {
		return false, validationError(ErrNilEntity, "operation", "create")
	}
	country, err := getByID[entities.Country](ctx, r.uow, tableCountries, countryID)
	if err != nil {
		return false, err
	}
	if country == nil {
		return false, notFoundError(ErrCountryNotFound, countryID)
	}
	o.Country = country
	o.CountryID = country.ID
	return r.store.Create(ctx, o)
}

func (r *ownerRepository) Update(ctx context.Context, o *entities.Owner) (bool, error) {
	return r.store.Update(ctx, o)
}

func (r *ownerRepository) Delete(ctx context.Context, o *entities.Owner) (bool, error) {
	if o == nil {
		return false, validationError(ErrNilEntity, "operation", "delete")
	}

	var links []entities.PokemonOwner
	err := r.uow.Query(ctx).Where("owner_id = ?", o.ID).Find(&links).Error
	if err != nil {
		return false, storeError(err, "delete", tablePokemonOwners)
	}
	for i := range links {
		r.uow.Remove(&links[i])
	}
	return r.store.Delete(ctx, o)
}
