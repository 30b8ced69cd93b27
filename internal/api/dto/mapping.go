package dto

import "github.com/tphakala/pokereview/internal/datastore/entities"

// FromCategory converts an entity to its wire form.
func FromCategory(c *entities.Category) Category {
	return Category{ID: c.ID, Name: c.Name}
}

// ToCategory converts a wire category to an entity.
func (c Category) ToCategory() *entities.Category {
	return &entities.Category{ID: c.ID, Name: c.Name}
}

func FromCountry(c *entities.Country) Country {
	return Country{ID: c.ID, Name: c.Name}
}

func (c Country) ToCountry() *entities.Country {
	return &entities.Country{ID: c.ID, Name: c.Name}
}

// FromOwner converts an owner, including its country when loaded.
func FromOwner(o *entities.Owner) Owner {
	out := Owner{ID: o.ID, FirstName: o.FirstName, LastName: o.LastName, Gym: o.Gym}
	if o.Country != nil {
		c := FromCountry(o.Country)
		out.Country = &c
	}
	return out
}

// ToOwner converts a wire owner to an entity. The country link is not
// carried; callers attach it by ID.
func (o Owner) ToOwner() *entities.Owner {
	return &entities.Owner{ID: o.ID, FirstName: o.FirstName, LastName: o.LastName, Gym: o.Gym}
}

func FromPokemon(p *entities.Pokemon) Pokemon {
	return Pokemon{ID: p.ID, Name: p.Name, BirthDate: p.BirthDate}
}

func (p Pokemon) ToPokemon() *entities.Pokemon {
	return &entities.Pokemon{ID: p.ID, Name: p.Name, BirthDate: p.BirthDate.UTC()}
}

func FromReviewer(r *entities.Reviewer) Reviewer {
	return Reviewer{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName}
}

func (r Reviewer) ToReviewer() *entities.Reviewer {
	return &entities.Reviewer{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName}
}

func FromReview(r *entities.Review) Review {
	out := Review{ID: r.ID, Title: r.Title, Text: r.Text, Rating: r.Rating}
	if r.Reviewer != nil {
		rv := FromReviewer(r.Reviewer)
		out.Reviewer = &rv
	}
	return out
}

// ToReview converts a wire review to an entity without its links.
func (r Review) ToReview() *entities.Review {
	return &entities.Review{ID: r.ID, Title: r.Title, Text: r.Text, Rating: r.Rating}
}

// MapSlice converts every element of in with fn.
func MapSlice[E, D any](in []E, fn func(*E) D) []D {
	out := make([]D, 0, len(in))
	for i := range in {
		out = append(out, fn(&in[i]))
	}
	return out
}

// FromFixture flattens a seed graph rooted at pokemon-owner rows.
func FromFixture(graph []entities.PokemonOwner) []FixtureEntry {
	out := make([]FixtureEntry, 0, len(graph))
	for i := range graph {
		po := &graph[i]
		var e FixtureEntry
		if po.Pokemon != nil {
			e.Pokemon = FromPokemon(po.Pokemon)
			for j := range po.Pokemon.PokemonCategories {
				if c := po.Pokemon.PokemonCategories[j].Category; c != nil {
					e.Category = FromCategory(c)
					break
				}
			}
			e.Reviews = MapSlice(po.Pokemon.Reviews, FromReview)
		}
		if po.Owner != nil {
			e.Owner = FromOwner(po.Owner)
		}
		out = append(out, e)
	}
	return out
}
