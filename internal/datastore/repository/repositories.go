package repository

import "github.com/tphakala/pokereview/internal/datastore/session"

// Repositories bundles every relationship repository built on one UnitOfWork.
type Repositories struct {
	Categories CategoryRepository
	Countries  CountryRepository
	Owners     OwnerRepository
	Pokemon    PokemonRepository
	Reviews    ReviewRepository
	Reviewers  ReviewerRepository
}

// New builds the repository set for uow.
func New(uow session.UnitOfWork) *Repositories {
	return &Repositories{
		Categories: NewCategoryRepository(uow),
		Countries:  NewCountryRepository(uow),
		Owners:     NewOwnerRepository(uow),
		Pokemon:    NewPokemonRepository(uow),
		Reviews:    NewReviewRepository(uow),
		Reviewers:  NewReviewerRepository(uow),
	}
}
