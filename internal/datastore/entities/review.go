package entities

// Reviewer writes reviews.
type Reviewer struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`

	Reviews []Review `gorm:"foreignKey:ReviewerID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM.
func (Reviewer) TableName() string {
	return "reviewers"
}

// Review is one reviewer's rating of one pokemon.
type Review struct {
	ID         uint   `gorm:"primaryKey"`
	Title      string `gorm:"size:200;not null"`
	Text       string `gorm:"type:text"`
	Rating     int    `gorm:"not null"`
	PokemonID  uint   `gorm:"not null;index"`
	ReviewerID uint   `gorm:"not null;index"`

	Pokemon  *Pokemon  `gorm:"foreignKey:PokemonID"`
	Reviewer *Reviewer `gorm:"foreignKey:ReviewerID"`
}

// TableName returns the table name for GORM.
func (Review) TableName() string {
	return "reviews"
}
