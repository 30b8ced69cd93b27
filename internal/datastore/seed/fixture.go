package seed

import (
	"time"

	"github.com/tphakala/pokereview/internal/datastore/entities"
)

// fixtureBirthDate is shared by every fixture pokemon.
var fixtureBirthDate = time.Date(1903, time.January, 1, 0, 0, 0, 0, time.UTC)

type fixtureEntry struct {
	pokemon  string
	category string
	owner    [2]string
	gym      string
	country  string
}

var fixtureEntries = []fixtureEntry{
	{pokemon: "Pikachu", category: "Electric", owner: [2]string{"Jack", "London"}, gym: "Тренер Брок", country: "Канто"},
	{pokemon: "Squirtle", category: "Water", owner: [2]string{"Harry", "Potter"}, gym: "Тренер Мисти", country: "Саффрон-сити"},
	{pokemon: "Venusaur", category: "Leaf", owner: [2]string{"Ash", "Ketchum"}, gym: "Тренер Эш", country: "Миллет-таун"},
}

// Fixture builds the seed graph. Each call returns a fresh value graph
// rooted at the pokemon-owner junction rows; no entity is shared between
// entries, so every review gets its own reviewer and every owner its own
// country.
func Fixture() []entities.PokemonOwner {
	out := make([]entities.PokemonOwner, 0, len(fixtureEntries))
	for _, e := range fixtureEntries {
		out = append(out, entities.PokemonOwner{
			Pokemon: &entities.Pokemon{
				Name:      e.pokemon,
				BirthDate: fixtureBirthDate,
				PokemonCategories: []entities.PokemonCategory{
					{Category: &entities.Category{Name: e.category}},
				},
				Reviews: fixtureReviews(e.pokemon),
			},
			Owner: &entities.Owner{
				FirstName: e.owner[0],
				LastName:  e.owner[1],
				Gym:       e.gym,
				Country:   &entities.Country{Name: e.country},
			},
		})
	}
	return out
}

func fixtureReviews(name string) []entities.Review {
	return []entities.Review{
		{
			Title:    name,
			Text:     name + " - лучший покемон, потому что он электрический",
			Rating:   5,
			Reviewer: &entities.Reviewer{FirstName: "Teddy", LastName: "Smith"},
		},
		{
			Title:    name,
			Text:     name + " - лучший в схватке с камнями",
			Rating:   5,
			Reviewer: &entities.Reviewer{FirstName: "Taylor", LastName: "Jones"},
		},
		{
			Title:    name,
			Text:     name + ", " + name + ", " + name,
			Rating:   1,
			Reviewer: &entities.Reviewer{FirstName: "Jessica", LastName: "McGregor"},
		},
	}
}
