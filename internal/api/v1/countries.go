package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/pokereview/internal/api/dto"
)

func (c *Controller) initCountryRoutes() {
	g := c.Group.Group("/countries")
	g.GET("", c.GetCountries)
	g.GET("/:id", c.GetCountry)
	g.GET("/:id/owners", c.GetOwnersFromCountry)
	g.GET("/by-owner/:ownerId", c.GetCountryByOwner)
	g.POST("", c.CreateCountry)
	g.PUT("/:id", c.UpdateCountry)
	g.DELETE("/:id", c.DeleteCountry)
}

// GetCountries lists every country.
func (c *Controller) GetCountries(ctx echo.Context) error {
	items, err := c.repos().Countries.List(ctx.Request().Context())
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to list countries")
	}
	return ctx.JSON(http.StatusOK, dto.MapSlice(items, dto.FromCountry))
}

// GetCountry returns one country.
func (c *Controller) GetCountry(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid country ID", http.StatusBadRequest)
	}
	item, err := c.repos().Countries.Get(ctx.Request().Context(), id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get country")
	}
	if item == nil {
		return c.HandleError(ctx, nil, "Country not found", http.StatusNotFound)
	}
	return ctx.JSON(http.StatusOK, dto.FromCountry(item))
}

// GetOwnersFromCountry lists the owners living in one country.
func (c *Controller) GetOwnersFromCountry(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid country ID", http.StatusBadRequest)
	}
	repos := c.repos()
	reqCtx := ctx.Request().Context()

	exists, err := repos.Countries.Exists(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get country")
	}
	if !exists {
		return c.HandleError(ctx, nil, "Country not found", http.StatusNotFound)
	}
	items, err := repos.Countries.OwnersFromCountry(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to list owners")
	}
	return ctx.JSON(http.StatusOK, dto.MapSlice(items, dto.FromOwner))
}

// GetCountryByOwner returns the country of one owner.
func (c *Controller) GetCountryByOwner(ctx echo.Context) error {
	ownerID, err := parseID(ctx, "ownerId")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid owner ID", http.StatusBadRequest)
	}
	item, err := c.repos().Countries.CountryByOwner(ctx.Request().Context(), ownerID)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get country")
	}
	if item == nil {
		return c.HandleError(ctx, nil, "Owner not found", http.StatusNotFound)
	}
	return ctx.JSON(http.StatusOK, dto.FromCountry(item))
}

// CreateCountry adds a country unless the name is taken.
func (c *Controller) CreateCountry(ctx echo.Context) error {
	var body dto.Country
	if err := bindBody(ctx, &body); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	body.ID = 0

	item := body.ToCountry()
	ok, err := c.repos().Countries.Create(ctx.Request().Context(), item)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to create country")
	}
	if !ok {
		return c.notSaved(ctx, "Country was not saved")
	}
	return ctx.JSON(http.StatusCreated, dto.FromCountry(item))
}

// UpdateCountry replaces a country.
func (c *Controller) UpdateCountry(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid country ID", http.StatusBadRequest)
	}
	var body dto.Country
	if err := bindBody(ctx, &body); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	if err := checkBodyID(id, &body.ID); err != nil {
		return c.HandleError(ctx, err, "Country ID mismatch", http.StatusBadRequest)
	}

	repos := c.repos()
	reqCtx := ctx.Request().Context()
	exists, err := repos.Countries.Exists(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get country")
	}
	if !exists {
		return c.HandleError(ctx, nil, "Country not found", http.StatusNotFound)
	}

	ok, err := repos.Countries.Update(reqCtx, body.ToCountry())
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to update country")
	}
	if !ok {
		return c.notSaved(ctx, "Country was not updated")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteCountry removes a country that no owner references.
func (c *Controller) DeleteCountry(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid country ID", http.StatusBadRequest)
	}
	repos := c.repos()
	reqCtx := ctx.Request().Context()

	item, err := repos.Countries.Get(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get country")
	}
	if item == nil {
		return c.HandleError(ctx, nil, "Country not found", http.StatusNotFound)
	}
	ok, err := repos.Countries.Delete(reqCtx, item)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to delete country")
	}
	if !ok {
		return c.notSaved(ctx, "Country was not deleted")
	}
	return ctx.NoContent(http.StatusNoContent)
}
