package entities

// PokemonCategory links a Pokemon to a Category.
type PokemonCategory struct {
	PokemonID  uint `gorm:"primaryKey;autoIncrement:false"`
	CategoryID uint `gorm:"primaryKey;autoIncrement:false;index"`

	Pokemon  *Pokemon  `gorm:"foreignKey:PokemonID"`
	Category *Category `gorm:"foreignKey:CategoryID"`
}

// TableName returns the table name for GORM.
func (PokemonCategory) TableName() string {
	return "pokemon_categories"
}

// PokemonOwner links a Pokemon to an Owner.
type PokemonOwner struct {
	PokemonID uint `gorm:"primaryKey;autoIncrement:false"`
	OwnerID   uint `gorm:"primaryKey;autoIncrement:false;index"`

	Pokemon *Pokemon `gorm:"foreignKey:PokemonID"`
	Owner   *Owner   `gorm:"foreignKey:OwnerID"`
}

// TableName returns the table name for GORM.
func (PokemonOwner) TableName() string {
	return "pokemon_owners"
}
