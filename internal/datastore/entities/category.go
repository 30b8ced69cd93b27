package entities

// Category is a pokemon type. Names are unique under trimmed, case-folded
// comparison; the repository enforces this, not the schema.
type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;not null"`

	PokemonCategories []PokemonCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM.
func (Category) TableName() string {
	return "categories"
}
