package entities

// Country groups owners. Same name uniqueness rule as Category.
type Country struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;not null"`

	Owners []Owner `gorm:"foreignKey:CountryID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM.
func (Country) TableName() string {
	return "countries"
}

// Owner is a pokemon trainer.
type Owner struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	Gym       string `gorm:"size:100"`
	CountryID uint   `gorm:"not null;index"`

	Country       *Country       `gorm:"foreignKey:CountryID"`
	PokemonOwners []PokemonOwner `gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM.
func (Owner) TableName() string {
	return "owners"
}
