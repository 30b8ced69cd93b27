// Package dto contains the wire representations used by the HTTP API and
// the seed command's dry-run output, and the mappings between them and the
// persisted entities.
package dto

import "time"

// Category is the wire form of a pokemon category.
type Category struct {
	ID   uint   `json:"id" yaml:"id,omitempty"`
	Name string `json:"name" yaml:"name"`
}

// Country is the wire form of a country.
type Country struct {
	ID   uint   `json:"id" yaml:"id,omitempty"`
	Name string `json:"name" yaml:"name"`
}

// Owner is the wire form of a pokemon owner. Country is only set on reads
// that load it.
type Owner struct {
	ID        uint     `json:"id" yaml:"id,omitempty"`
	FirstName string   `json:"firstName" yaml:"firstName"`
	LastName  string   `json:"lastName" yaml:"lastName"`
	Gym       string   `json:"gym" yaml:"gym"`
	Country   *Country `json:"country,omitempty" yaml:"country,omitempty"`
}

// Pokemon is the wire form of a pokemon.
type Pokemon struct {
	ID        uint      `json:"id" yaml:"id,omitempty"`
	Name      string    `json:"name" yaml:"name"`
	BirthDate time.Time `json:"birthDate" yaml:"birthDate"`
}

// Reviewer is the wire form of a reviewer.
type Reviewer struct {
	ID        uint   `json:"id" yaml:"id,omitempty"`
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
}

// Review is the wire form of a review.
type Review struct {
	ID       uint      `json:"id" yaml:"id,omitempty"`
	Title    string    `json:"title" yaml:"title"`
	Text     string    `json:"text" yaml:"text"`
	Rating   int       `json:"rating" yaml:"rating"`
	Reviewer *Reviewer `json:"reviewer,omitempty" yaml:"reviewer,omitempty"`
}

// Rating is the average review rating of a pokemon.
type Rating struct {
	PokemonID uint    `json:"pokemonId"`
	Rating    float64 `json:"rating"`
}

// IDList carries identifiers for batch operations.
type IDList struct {
	IDs []uint `json:"ids"`
}

// FixtureEntry is one pokemon of the seed fixture with everything linked to it.
type FixtureEntry struct {
	Pokemon  Pokemon  `yaml:"pokemon"`
	Category Category `yaml:"category"`
	Owner    Owner    `yaml:"owner"`
	Reviews  []Review `yaml:"reviews"`
}
