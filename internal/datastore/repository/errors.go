package repository

import "github.com/tphakala/pokereview/internal/errors"

// Sentinel errors for repository operations.
var (
	// ErrCategoryExists indicates a category with the same folded name exists.
	ErrCategoryExists = errors.NewStd("category already exists")

	// ErrCountryExists indicates a country with the same folded name exists.
	ErrCountryExists = errors.NewStd("country already exists")

	// ErrCountryHasOwners indicates a country cannot be deleted while owners reference it.
	ErrCountryHasOwners = errors.NewStd("country still has owners")

	// ErrCountryNotFound indicates the referenced country does not exist.
	ErrCountryNotFound = errors.NewStd("country not found")

	// ErrCategoryNotFound indicates the referenced category does not exist.
	ErrCategoryNotFound = errors.NewStd("category not found")

	// ErrOwnerNotFound indicates the referenced owner does not exist.
	ErrOwnerNotFound = errors.NewStd("owner not found")

	// ErrPokemonNotFound indicates the referenced pokemon does not exist.
	ErrPokemonNotFound = errors.NewStd("pokemon not found")

	// ErrReviewerNotFound indicates the referenced reviewer does not exist.
	ErrReviewerNotFound = errors.NewStd("reviewer not found")

	// ErrNameRequired indicates an empty or whitespace-only name.
	ErrNameRequired = errors.NewStd("name is required")

	// ErrInvalidRating indicates a review rating outside MinRating..MaxRating.
	ErrInvalidRating = errors.NewStd("invalid rating")

	// ErrNilEntity indicates a nil entity was passed to a mutation.
	ErrNilEntity = errors.NewStd("invalid entity: nil")
)

const component = "datastore.repository"

func conflictError(sentinel error, name string) error {
	return errors.New(sentinel).
		Component(component).
		Category(errors.CategoryConflict).
		Context("name", name).
		Build()
}

func notFoundError(sentinel error, id uint) error {
	return errors.New(sentinel).
		Component(component).
		Category(errors.CategoryNotFound).
		Context("id", id).
		Build()
}

func validationError(sentinel error, key string, value any) error {
	return errors.New(sentinel).
		Component(component).
		Category(errors.CategoryValidation).
		Context(key, value).
		Build()
}

// storeError wraps a failed read.
func storeError(err error, operation, table string) error {
	return errors.New(err).
		Component(component).
		Category(errors.CategoryDatabase).
		Context("operation", operation).
		Context("table", table).
		Build()
}
