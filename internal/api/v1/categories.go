package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/pokereview/internal/api/dto"
)

func (c *Controller) initCategoryRoutes() {
	g := c.Group.Group("/categories")
	g.GET("", c.GetCategories)
	g.GET("/:id", c.GetCategory)
	g.GET("/:id/pokemon", c.GetPokemonByCategory)
	g.POST("", c.CreateCategory)
	g.PUT("/:id", c.UpdateCategory)
	g.DELETE("/:id", c.DeleteCategory)
}

// GetCategories lists every category.
func (c *Controller) GetCategories(ctx echo.Context) error {
	items, err := c.repos().Categories.List(ctx.Request().Context())
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to list categories")
	}
	return ctx.JSON(http.StatusOK, dto.MapSlice(items, dto.FromCategory))
}

// GetCategory returns one category.
func (c *Controller) GetCategory(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid category ID", http.StatusBadRequest)
	}
	item, err := c.repos().Categories.Get(ctx.Request().Context(), id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get category")
	}
	if item == nil {
		return c.HandleError(ctx, nil, "Category not found", http.StatusNotFound)
	}
	return ctx.JSON(http.StatusOK, dto.FromCategory(item))
}

// GetPokemonByCategory lists the pokemon of one category.
func (c *Controller) GetPokemonByCategory(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid category ID", http.StatusBadRequest)
	}
	repos := c.repos()
	reqCtx := ctx.Request().Context()

	exists, err := repos.Categories.Exists(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get category")
	}
	if !exists {
		return c.HandleError(ctx, nil, "Category not found", http.StatusNotFound)
	}
	items, err := repos.Categories.PokemonByCategory(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to list pokemon")
	}
	return ctx.JSON(http.StatusOK, dto.MapSlice(items, dto.FromPokemon))
}

// CreateCategory adds a category unless the name is taken.
func (c *Controller) CreateCategory(ctx echo.Context) error {
	var body dto.Category
	if err := bindBody(ctx, &body); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	body.ID = 0

	item := body.ToCategory()
	ok, err := c.repos().Categories.Create(ctx.Request().Context(), item)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to create category")
	}
	if !ok {
		return c.notSaved(ctx, "Category was not saved")
	}
	return ctx.JSON(http.StatusCreated, dto.FromCategory(item))
}

// UpdateCategory replaces a category.
func (c *Controller) UpdateCategory(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid category ID", http.StatusBadRequest)
	}
	var body dto.Category
	if err := bindBody(ctx, &body); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	if err := checkBodyID(id, &body.ID); err != nil {
		return c.HandleError(ctx, err, "Category ID mismatch", http.StatusBadRequest)
	}

	repos := c.repos()
	reqCtx := ctx.Request().Context()
	exists, err := repos.Categories.Exists(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get category")
	}
	if !exists {
		return c.HandleError(ctx, nil, "Category not found", http.StatusNotFound)
	}

	ok, err := repos.Categories.Update(reqCtx, body.ToCategory())
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to update category")
	}
	if !ok {
		return c.notSaved(ctx, "Category was not updated")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteCategory removes a category and its pokemon links.
func (c *Controller) DeleteCategory(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid category ID", http.StatusBadRequest)
	}
	repos := c.repos()
	reqCtx := ctx.Request().Context()

	item, err := repos.Categories.Get(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get category")
	}
	if item == nil {
		return c.HandleError(ctx, nil, "Category not found", http.StatusNotFound)
	}
	ok, err := repos.Categories.Delete(reqCtx, item)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to delete category")
	}
	if !ok {
		return c.notSaved(ctx, "Category was not deleted")
	}
	return ctx.NoContent(http.StatusNoContent)
}
