package repository

import (
	"context"
	"strings"

	"github.com/tphakala/pokereview/internal/datastore/entities"
	"github.com/tphakala/pokereview/internal/datastore/session"
)

// CountryRepository reads and writes countries.
type CountryRepository interface {
	List(ctx context.Context) ([]entities.Country, error)
	// Get returns nil, nil when the country does not exist.
	Get(ctx context.Context, id uint) (*entities.Country, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)

	// OwnersFromCountry returns the owners whose country is countryID.
	OwnersFromCountry(ctx context.Context, countryID uint) ([]entities.Owner, error)
	// CountryByOwner returns the country of ownerID, or nil when the owner does not exist.
	CountryByOwner(ctx context.Context, ownerID uint) (*entities.Country, error)

	// Create inserts c unless another country has the same folded name.
	Create(ctx context.Context, c *entities.Country) (bool, error)
	// Update replaces c unless it would collide with another country's name.
	Update(ctx context.Context, c *entities.Country) (bool, error)
	// Delete removes c. It fails with ErrCountryHasOwners while owners reference c.
	Delete(ctx context.Context, c *entities.Country) (bool, error)
}

type countryRepository struct {
	uow   session.UnitOfWork
	store *EntityRepository[entities.Country]
}

// NewCountryRepository creates a CountryRepository over uow.
func NewCountryRepository(uow session.UnitOfWork) CountryRepository {
	return &countryRepository{
		uow:   uow,
		store: NewEntityRepository[entities.Country](uow),
	}
}

func (r *countryRepository) List(ctx context.Context) ([]entities.Country, error) {
	return listAll[entities.Country](ctx, r.uow, tableCountries)
}

func (r *countryRepository) Get(ctx context.Context, id uint) (*entities.Country, error) {
	return getByID[entities.Country](ctx, r.uow, tableCountries, id)
}

func (r *countryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return existsByID[entities.Country](ctx, r.uow, tableCountries, id)
}

func (r *countryRepository) Count(ctx context.Context) (int64, error) {
	return countAll[entities.Country](ctx, r.uow, tableCountries)
}

func (r *countryRepository) OwnersFromCountry(ctx context.Context, countryID uint) ([]entities.Owner, error) {
	var owners []entities.Owner
	err := r.uow.Query(ctx).Where("country_id = ?", countryID).Order("id").Find(&owners).Error
	if err != nil {
		return nil, storeError(err, "traverse", tableOwners)
	}
	return owners, nil
}

func (r *countryRepository) CountryByOwner(ctx context.Context, ownerID uint) (*entities.Country, error) {
	sub := r.uow.Query(ctx).Model(&entities.Owner{}).
		Select("country_id").
		Where("id = ?", ownerID)
	countries, err := findWhereIDIn[entities.Country](ctx, r.uow, tableCountries, sub)
	if err != nil || len(countries) == 0 {
		return nil, err
	}
	return &countries[0], nil
}

func (r *countryRepository) Create(ctx context.Context, c *entities.Country) (bool, error) {
	if c == nil {
		return false, validationError(ErrNilEntity, "operation", "create")
	}
	if err := r.checkName(ctx, c.Name, 0); err != nil {
		return false, err
	}
	return r.store.Create(ctx, c)
}

func (r *countryRepository) Update(ctx context.Context, c *entities.Country) (bool, error) {
	if c == nil {
		return false, validationError(ErrNilEntity, "operation", "update")
	}
	if err := r.checkName(ctx, c.Name, c.ID); err != nil {
		return false, err
	}
	return r.store.Update(ctx, c)
}

func (r *countryRepository) Delete(ctx context.Context, c *entities.Country) (bool, error) {
	if c == nil {
		return false, validationError(ErrNilEntity, "operation", "delete")
	}

	var owners int64
	err := r.uow.Query(ctx).Model(&entities.Owner{}).Where("country_id = ?", c.ID).Count(&owners).Error
	if err != nil {
		return false, storeError(err, "delete", tableOwners)
	}
	if owners > 0 {
		return false, conflictError(ErrCountryHasOwners, c.Name)
	}
	return r.store.Delete(ctx, c)
}

// checkName rejects blank names and names already used by another country.
func (r *countryRepository) checkName(ctx context.Context, name string, selfID uint) error {
	if strings.TrimSpace(name) == "" {
		return validationError(ErrNameRequired, "table", tableCountries)
	}
	existing, err := r.List(ctx)
	if err != nil {
		return err
	}
	match := findByName(existing, name,
		func(c *entities.Country) string { return c.Name },
		func(c *entities.Country) uint { return c.ID },
		selfID)
	if match != nil {
		return conflictError(ErrCountryExists, name)
	}
	return nil
}
