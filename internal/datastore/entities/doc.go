// Package entities defines the GORM models for the pokemon review schema.
//
// # Core Entities
//
//   - Pokemon: a reviewed pokemon (name, birth date)
//   - Category: pokemon type such as "Electric"
//   - Country: home region of owners
//   - Owner: trainer that belongs to exactly one Country
//   - Reviewer: author of reviews
//   - Review: a rated review of one Pokemon by one Reviewer
//
// # Junction Entities
//
//   - PokemonCategory: Pokemon <-> Category
//   - PokemonOwner: Pokemon <-> Owner
//
// Junction rows have a composite primary key made of both foreign keys and no
// identity of their own. Foreign keys are declared ON DELETE RESTRICT: the
// repositories remove junction rows explicitly before deleting an endpoint,
// and the store rejects any delete that would leave a dangling row.
package entities

// All returns every model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&Country{},
		&Category{},
		&Reviewer{},
		&Owner{},
		&Pokemon{},
		&Review{},
		&PokemonCategory{},
		&PokemonOwner{},
	}
}
