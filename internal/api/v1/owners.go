package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/pokereview/internal/api/dto"
)

func (c *Controller) initOwnerRoutes() {
	g := c.Group.Group("/owners")
	g.GET("", c.GetOwners)
	g.GET("/:id", c.GetOwner)
	g.GET("/:id/pokemon", c.GetPokemonByOwner)
	g.POST("", c.CreateOwner)
	g.PUT("/:id", c.UpdateOwner)
	g.DELETE("/:id", c.DeleteOwner)
}

// GetOwners lists every owner.
func (c *Controller) GetOwners(ctx echo.Context) error {
	items, err := c.repos().Owners.List(ctx.Request().Context())
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to list owners")
	}
	return ctx.JSON(http.StatusOK, dto.MapSlice(items, dto.FromOwner))
}

// GetOwner returns one owner with its country.
func (c *Controller) GetOwner(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid owner ID", http.StatusBadRequest)
	}
	item, err := c.repos().Owners.Get(ctx.Request().Context(), id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get owner")
	}
	if item == nil {
		return c.HandleError(ctx, nil, "Owner not found", http.StatusNotFound)
	}
	return ctx.JSON(http.StatusOK, dto.FromOwner(item))
}

// GetPokemonByOwner lists the pokemon of one owner.
func (c *Controller) GetPokemonByOwner(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid owner ID", http.StatusBadRequest)
	}
	repos := c.repos()
	reqCtx := ctx.Request().Context()

	exists, err := repos.Owners.Exists(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get owner")
	}
	if !exists {
		return c.HandleError(ctx, nil, "Owner not found", http.StatusNotFound)
	}
	items, err := repos.Owners.PokemonByOwner(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to list pokemon")
	}
	return ctx.JSON(http.StatusOK, dto.MapSlice(items, dto.FromPokemon))
}

// CreateOwner adds an owner living in the country given by ?countryId=.
func (c *Controller) CreateOwner(ctx echo.Context) error {
	countryID, err := queryID(ctx, "countryId")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid country ID", http.StatusBadRequest)
	}
	var body dto.Owner
	if err := bindBody(ctx, &body); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	body.ID = 0

	item := body.ToOwner()
	ok, err := c.repos().Owners.Create(ctx.Request().Context(), countryID, item)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to create owner")
	}
	if !ok {
		return c.notSaved(ctx, "Owner was not saved")
	}
	return ctx.JSON(http.StatusCreated, dto.FromOwner(item))
}

// UpdateOwner replaces an owner's fields and keeps its country.
func (c *Controller) UpdateOwner(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid owner ID", http.StatusBadRequest)
	}
	var body dto.Owner
	if err := bindBody(ctx, &body); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	if err := checkBodyID(id, &body.ID); err != nil {
		return c.HandleError(ctx, err, "Owner ID mismatch", http.StatusBadRequest)
	}

	repos := c.repos()
	reqCtx := ctx.Request().Context()
	current, err := repos.Owners.Get(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get owner")
	}
	if current == nil {
		return c.HandleError(ctx, nil, "Owner not found", http.StatusNotFound)
	}

	item := body.ToOwner()
	item.CountryID = current.CountryID
	ok, err := repos.Owners.Update(reqCtx, item)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to update owner")
	}
	if !ok {
		return c.notSaved(ctx, "Owner was not updated")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOwner removes an owner and its pokemon links.
func (c *Controller) DeleteOwner(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid owner ID", http.StatusBadRequest)
	}
	repos := c.repos()
	reqCtx := ctx.Request().Context()

	item, err := repos.Owners.Get(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get owner")
	}
	if item == nil {
		return c.HandleError(ctx, nil, "Owner not found", http.StatusNotFound)
	}
	ok, err := repos.Owners.Delete(reqCtx, item)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to delete owner")
	}
	if !ok {
		return c.notSaved(ctx, "Owner was not deleted")
	}
	return ctx.NoContent(http.StatusNoContent)
}
