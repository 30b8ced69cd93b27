package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/pokereview/internal/api/dto"
	"github.com/tphakala/pokereview/internal/datastore/entities"
)

func (c *Controller) initReviewRoutes() {
	g := c.Group.Group("/reviews")
	g.GET("", c.GetReviews)
	g.GET("/:id", c.GetReview)
	g.POST("", c.CreateReview)
	g.PUT("/:id", c.UpdateReview)
	g.DELETE("/:id", c.DeleteReview)
	g.DELETE("", c.DeleteReviews)
}

// GetReviews lists every review.
func (c *Controller) GetReviews(ctx echo.Context) error {
	items, err := c.repos().Reviews.List(ctx.Request().Context())
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to list reviews")
	}
	return ctx.JSON(http.StatusOK, dto.MapSlice(items, dto.FromReview))
}

// GetReview returns one review.
func (c *Controller) GetReview(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid review ID", http.StatusBadRequest)
	}
	item, err := c.repos().Reviews.Get(ctx.Request().Context(), id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get review")
	}
	if item == nil {
		return c.HandleError(ctx, nil, "Review not found", http.StatusNotFound)
	}
	return ctx.JSON(http.StatusOK, dto.FromReview(item))
}

// CreateReview adds a review by ?reviewerId= about ?pokemonId=.
func (c *Controller) CreateReview(ctx echo.Context) error {
	reviewerID, err := queryID(ctx, "reviewerId")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid reviewer ID", http.StatusBadRequest)
	}
	pokemonID, err := queryID(ctx, "pokemonId")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid pokemon ID", http.StatusBadRequest)
	}
	var body dto.Review
	if err := bindBody(ctx, &body); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	body.ID = 0

	item := body.ToReview()
	ok, err := c.repos().Reviews.Create(ctx.Request().Context(), reviewerID, pokemonID, item)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to create review")
	}
	if !ok {
		return c.notSaved(ctx, "Review was not saved")
	}
	return ctx.JSON(http.StatusCreated, dto.FromReview(item))
}

// UpdateReview replaces a review's text and rating; its links stay.
func (c *Controller) UpdateReview(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid review ID", http.StatusBadRequest)
	}
	var body dto.Review
	if err := bindBody(ctx, &body); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	if err := checkBodyID(id, &body.ID); err != nil {
		return c.HandleError(ctx, err, "Review ID mismatch", http.StatusBadRequest)
	}

	repos := c.repos()
	reqCtx := ctx.Request().Context()
	current, err := repos.Reviews.Get(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get review")
	}
	if current == nil {
		return c.HandleError(ctx, nil, "Review not found", http.StatusNotFound)
	}

	item := body.ToReview()
	item.PokemonID = current.PokemonID
	item.ReviewerID = current.ReviewerID
	ok, err := repos.Reviews.Update(reqCtx, item)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to update review")
	}
	if !ok {
		return c.notSaved(ctx, "Review was not updated")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteReview removes one review.
func (c *Controller) DeleteReview(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return c.HandleError(ctx, err, "Invalid review ID", http.StatusBadRequest)
	}
	repos := c.repos()
	reqCtx := ctx.Request().Context()

	item, err := repos.Reviews.Get(reqCtx, id)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to get review")
	}
	if item == nil {
		return c.HandleError(ctx, nil, "Review not found", http.StatusNotFound)
	}
	ok, err := repos.Reviews.Delete(reqCtx, item)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to delete review")
	}
	if !ok {
		return c.notSaved(ctx, "Review was not deleted")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteReviews removes every review listed in the body in one save. Any
// unknown ID fails the whole request with 404 before anything is removed.
func (c *Controller) DeleteReviews(ctx echo.Context) error {
	var body dto.IDList
	if err := bindBody(ctx, &body); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	if len(body.IDs) == 0 {
		return c.HandleError(ctx, nil, "No review IDs given", http.StatusBadRequest)
	}

	repos := c.repos()
	reqCtx := ctx.Request().Context()
	items := make([]*entities.Review, 0, len(body.IDs))
	for _, id := range body.IDs {
		item, err := repos.Reviews.Get(reqCtx, id)
		if err != nil {
			return c.handleStoreError(ctx, err, "Failed to get review")
		}
		if item == nil {
			return c.HandleError(ctx, nil, "Review not found", http.StatusNotFound)
		}
		items = append(items, item)
	}

	ok, err := repos.Reviews.DeleteReviews(reqCtx, items)
	if err != nil {
		return c.handleStoreError(ctx, err, "Failed to delete reviews")
	}
	if !ok {
		return c.notSaved(ctx, "Reviews were not deleted")
	}
	return ctx.NoContent(http.StatusNoContent)
}
