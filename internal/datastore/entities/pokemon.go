package entities

import "time"

// Pokemon is the central reviewed entity.
type Pokemon struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null;index"`
	BirthDate time.Time `gorm:"not null"`

	// Reverse relationships for preloading and explicit junction cleanup
	PokemonCategories []PokemonCategory `gorm:"foreignKey:PokemonID;constraint:OnDelete:RESTRICT"`
	PokemonOwners     []PokemonOwner    `gorm:"foreignKey:PokemonID;constraint:OnDelete:RESTRICT"`
	Reviews           []Review          `gorm:"foreignKey:PokemonID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM.
func (Pokemon) TableName() string {
	return "pokemons"
}
