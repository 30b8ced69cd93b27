package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/pokereview/internal/api/dto"
)

func (c *Controller) initReviewerRoutes() {
	g := c.Group.Group("/reviewers")
	g.GET("", c.GetReviewers)
	g.GET("/:id", c.GetReviewer)
	g.GET("/:id/reviews", c.GetReviewsByReviewer)
	g.POST("", c.CreateReviewer)
	g.PUT("/:id", c.UpdateReviewer)
	g.DELETE("/:id", c.DeleteReviewer)
}

// GetReviewers lists every reviewer.
func (c *Controller) GetReviewers(ctx echo.Context) error {
	items, err := c.repos().Reviewers.List(ctx.Request().Context())
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to list reviewers")
	}
	return ctx.JSON(http.StatusOK, dto.MapSlice(items, dto.FromReviewer))
}

// GetReviewer returns one reviewer.
func (c *Controller) GetReviewer(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid reviewer ID", http.StatusBadRequest)
	}
	item, err := c.repos().Reviewers.Get(ctx.Request().Context(), id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get reviewer")
	}
	if item == nil {
		return c.HandleError(ctx, nil, "Reviewer not found", http.StatusNotFound)
	}
	return ctx.JSON(http.StatusOK, dto.FromReviewer(item))
}

// GetReviewsByReviewer lists the reviews one reviewer wrote.
func (c *Controller) GetReviewsByReviewer(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid reviewer ID", http.StatusBadRequest)
	}
	repos := c.repos()
	reqCtx := ctx.Request().Context()

	exists, err := repos.Reviewers.Exists(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get reviewer")
	}
	if !exists {
		return c.HandleError(ctx, nil, "Reviewer not found", http.StatusNotFound)
	}
	items, err := repos.Reviewers.ReviewsByReviewer(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to list reviews")
	}
	return ctx.JSON(http.StatusOK, dto.MapSlice(items, dto.FromReview))
}

// CreateReviewer adds a reviewer.
func (c *Controller) CreateReviewer(ctx echo.Context) error {
	var body dto.Reviewer
	if err := bindBody(ctx, &body); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	body.ID = 0

	item := body.ToReviewer()
	ok, err := c.repos().Reviewers.Create(ctx.Request().Context(), item)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to create reviewer")
	}
	if !ok {
		return c.notSaved(ctx, "Reviewer was not saved")
	}
	return ctx.JSON(http.StatusCreated, dto.FromReviewer(item))
}

// UpdateReviewer replaces a reviewer.
func (c *Controller) UpdateReviewer(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid reviewer ID", http.StatusBadRequest)
	}
	var body dto.Reviewer
	if err := bindBody(ctx, &body); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	if err := checkBodyID(id, &body.ID); err != nil {
		return c.HandleError(ctx, err, "Reviewer ID mismatch", http.StatusBadRequest)
	}

	repos := c.repos()
	reqCtx := ctx.Request().Context()
	exists, err := repos.Reviewers.Exists(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get reviewer")
	}
	if !exists {
		return c.HandleError(ctx, nil, "Reviewer not found", http.StatusNotFound)
	}

	ok, err := repos.Reviewers.Update(reqCtx, body.ToReviewer())
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to update reviewer")
	}
	if !ok {
		return c.notSaved(ctx, "Reviewer was not updated")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteReviewer removes a reviewer and the reviews it wrote.
func (c *Controller) DeleteReviewer(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid reviewer ID", http.StatusBadRequest)
	}
	repos := c.repos()
	reqCtx := ctx.Request().Context()

	item, err := repos.Reviewers.Get(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get reviewer")
	}
	if item == nil {
		return c.HandleError(ctx, nil, "Reviewer not found", http.StatusNotFound)
	}
	ok, err := repos.Reviewers.Delete(reqCtx, item)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to delete reviewer")
	}
	if !ok {
		return c.notSaved(ctx, "Reviewer was not deleted")
	}
	return ctx.NoContent(http.StatusNoContent)
}
