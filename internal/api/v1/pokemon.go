package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/pokereview/internal/api/dto"
)

func (c *Controller) initPokemonRoutes() {
	g := c.Group.Group("/pokemon")
	g.GET("", c.GetPokemonList)
	g.GET("/:id", c.GetPokemon)
	g.GET("/by-name/:name", c.GetPokemonByName)
	g.GET("/:id/rating", c.GetPokemonRating)
	g.GET("/:id/owners", c.GetOwnersOfPokemon)
	g.GET("/:id/reviews", c.GetReviewsOfPokemon)
	g.POST("", c.CreatePokemon)
	g.PUT("/:id", c.UpdatePokemon)
	g.DELETE("/:id", c.DeletePokemon)
}

// GetPokemonList lists every pokemon.
func (c *Controller) GetPokemonList(ctx echo.Context) error {
	items, err := c.repos().Pokemon.List(ctx.Request().Context())
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to list pokemon")
	}
	return ctx.JSON(http.StatusOK, dto.MapSlice(items, dto.FromPokemon))
}

// GetPokemon returns one pokemon.
func (c *Controller) GetPokemon(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid pokemon ID", http.StatusBadRequest)
	}
	item, err := c.repos().Pokemon.Get(ctx.Request().Context(), id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get pokemon")
	}
	if item == nil {
		return c.HandleError(ctx, nil, "Pokemon not found", http.StatusNotFound)
	}
	return ctx.JSON(http.StatusOK, dto.FromPokemon(item))
}

// GetPokemonByName returns the pokemon with an exact name.
func (c *Controller) GetPokemonByName(ctx echo.Context) error {
	item, err := c.repos().Pokemon.GetByName(ctx.Request().Context(), ctx.Param("name"))
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get pokemon")
	}
	if item == nil {
		return c.HandleError(ctx, nil, "Pokemon not found", http.StatusNotFound)
	}
	return ctx.JSON(http.StatusOK, dto.FromPokemon(item))
}

// GetPokemonRating returns the average review rating of one pokemon.
func (c *Controller) GetPokemonRating(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid pokemon ID", http.StatusBadRequest)
	}
	repos := c.repos()
	reqCtx := ctx.Request().Context()

	exists, err := repos.Pokemon.Exists(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get pokemon")
	}
	if !exists {
		return c.HandleError(ctx, nil, "Pokemon not found", http.StatusNotFound)
	}
	rating, err := repos.Pokemon.Rating(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to compute rating")
	}
	return ctx.JSON(http.StatusOK, dto.Rating{PokemonID: id, Rating: rating})
}

// GetOwnersOfPokemon lists the owners of one pokemon.
func (c *Controller) GetOwnersOfPokemon(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid pokemon ID", http.StatusBadRequest)
	}
	repos := c.repos()
	reqCtx := ctx.Request().Context()

	exists, err := repos.Pokemon.Exists(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get pokemon")
	}
	if !exists {
		return c.HandleError(ctx, nil, "Pokemon not found", http.StatusNotFound)
	}
	items, err := repos.Owners.OwnersOfPokemon(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to list owners")
	}
	return ctx.JSON(http.StatusOK, dto.MapSlice(items, dto.FromOwner))
}

// GetReviewsOfPokemon lists the reviews of one pokemon.
func (c *Controller) GetReviewsOfPokemon(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid pokemon ID", http.StatusBadRequest)
	}
	repos := c.repos()
	reqCtx := ctx.Request().Context()

	exists, err := repos.Pokemon.Exists(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get pokemon")
	}
	if !exists {
		return c.HandleError(ctx, nil, "Pokemon not found", http.StatusNotFound)
	}
	items, err := repos.Reviews.ReviewsOfPokemon(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to list reviews")
	}
	return ctx.JSON(http.StatusOK, dto.MapSlice(items, dto.FromReview))
}

// CreatePokemon adds a pokemon linked to ?ownerId= and ?categoryId=.
func (c *Controller) CreatePokemon(ctx echo.Context) error {
	ownerID, err := queryID(ctx, "ownerId")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid owner ID", http.StatusBadRequest)
	}
	categoryID, err := queryID(ctx, "categoryId")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid category ID", http.StatusBadRequest)
	}
	var body dto.Pokemon
	if err := bindBody(ctx, &body); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	body.ID = 0

	item := body.ToPokemon()
	ok, err := c.repos().Pokemon.Create(ctx.Request().Context(), ownerID, categoryID, item)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to create pokemon")
	}
	if !ok {
		return c.notSaved(ctx, "Pokemon was not saved")
	}
	return ctx.JSON(http.StatusCreated, dto.FromPokemon(item))
}

// UpdatePokemon replaces a pokemon's fields.
func (c *Controller) UpdatePokemon(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid pokemon ID", http.StatusBadRequest)
	}
	var body dto.Pokemon
	if err := bindBody(ctx, &body); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	if err := checkBodyID(id, &body.ID); err != nil {
		return c.HandleError(ctx, err, "Pokemon ID mismatch", http.StatusBadRequest)
	}

	repos := c.repos()
	reqCtx := ctx.Request().Context()
	exists, err := repos.Pokemon.Exists(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get pokemon")
	}
	if !exists {
		return c.HandleError(ctx, nil, "Pokemon not found", http.StatusNotFound)
	}

	ok, err := repos.Pokemon.Update(reqCtx, body.ToPokemon())
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to update pokemon")
	}
	if !ok {
		return c.notSaved(ctx, "Pokemon was not updated")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeletePokemon removes a pokemon with its reviews and links.
func (c *Controller) DeletePokemon(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid pokemon ID", http.StatusBadRequest)
	}
	repos := c.repos()
	reqCtx := ctx.Request().Context()

	item, err := repos.Pokemon.Get(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get pokemon")
	}
	if item == nil {
		return c.HandleError(ctx, nil, "Pokemon not found", http.StatusNotFound)
	}
	ok, err := repos.Pokemon.Delete(reqCtx, item)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to delete pokemon")
	}
	if !ok {
		return c.notSaved(ctx, "Pokemon was not deleted")
	}
	return ctx.NoContent(http.StatusNoContent)
}
