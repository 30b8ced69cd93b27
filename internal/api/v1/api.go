// internal/api/v1/api.go
package api

import (
	"crypto/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/pokereview/internal/buildinfo"
	"github.com/tphakala/pokereview/internal/datastore/repository"
	"github.com/tphakala/pokereview/internal/datastore/session"
	"github.com/tphakala/pokereview/internal/errors"
	"github.com/tphakala/pokereview/internal/logger"
)

// Controller manages the API routes and handlers
type Controller struct {
	Echo  *echo.Echo
	Group *echo.Group

	sessions  *session.Factory
	log       logger.Logger
	startTime time.Time
}

// Option is a functional option for configuring the Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates the controller and registers every /api/v1 route on e.
// Each request runs on its own session from sessions.
func New(e *echo.Echo, sessions *session.Factory, opts ...Option) *Controller {
	c := &Controller{
		Echo:      e,
		Group:     e.Group("/api/v1"),
		sessions:  sessions,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Global().Module("api")
	}

	c.initRoutes()
	return c
}

// initRoutes registers all API endpoints
func (c *Controller) initRoutes() {
	c.Group.GET("/health", c.HealthCheck)

	c.initCategoryRoutes()
	c.initCountryRoutes()
	c.initOwnerRoutes()
	c.initPokemonRoutes()
	c.initReviewerRoutes()
	c.initReviewRoutes()
}

// repos opens a fresh session and returns the repositories bound to it.
func (c *Controller) repos() *repository.Repositories {
	return repository.New(c.sessions.New())
}

// HealthCheck reports service and database status.
func (c *Controller) HealthCheck(ctx echo.Context) error {
	info := buildinfo.Get()
	response := map[string]any{
		"status":     "healthy",
		"version":    info.Version,
		"build_date": info.BuildDate,
		"uptime":     time.Since(c.startTime).Round(time.Second).String(),
		"timestamp":  time.Now().Format(time.RFC3339),
	}

	status := http.StatusOK
	sqlDB, err := c.sessions.DB().DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Request().Context())
	}
	if err != nil {
		response["status"] = "degraded"
		response["database_status"] = "disconnected"
		response["database_error"] = err.Error()
		status = http.StatusServiceUnavailable
	} else {
		response["database_status"] = "connected"
	}
	return ctx.JSON(status, response)
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	Code          int    `json:"code"`
	CorrelationID string `json:"correlation_id"`
}

// NewErrorResponse creates a new API error response
func NewErrorResponse(err error, message string, code int) *ErrorResponse {
	errorStr := message
	if err != nil {
		errorStr = err.Error()
	}
	return &ErrorResponse{
		Error:         errorStr,
		Message:       message,
		Code:          code,
		CorrelationID: generateCorrelationID(),
	}
}

// generateCorrelationID creates a short random identifier for error tracking.
func generateCorrelationID() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 8

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "ERR-RAND"
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}

// HandleError logs err and writes an error response with code.
func (c *Controller) HandleError(ctx echo.Context, err error, message string, code int) error {
	resp := NewErrorResponse(err, message, code)

	fields := []logger.Field{
		logger.String("correlation_id", resp.CorrelationID),
		logger.String("message", message),
		logger.Int("code", code),
		logger.String("path", ctx.Request().URL.Path),
		logger.String("method", ctx.Request().Method),
	}
	if err != nil {
		fields = append(fields, logger.Error(err))
	}
	log := c.log.WithContext(ctx.Request().Context())
	if code >= http.StatusInternalServerError {
		log.Error("API error", fields...)
	} else {
		log.Debug("API error", fields...)
	}

	return ctx.JSON(code, resp)
}

// handleStoreError maps a repository error to its HTTP status: validation
// failures 400, missing references 404, conflicts 422, everything else 500.
func (c *Controller) handleStoreError(ctx echo.Context, err error, message string) error {
	switch {
	case errors.IsCategory(err, errors.CategoryValidation):
		return c.HandleError(ctx, err, message, http.StatusBadRequest)
	case errors.IsNotFound(err):
		return c.HandleError(ctx, err, message, http.StatusNotFound)
	case errors.IsConflict(err):
		return c.HandleError(ctx, err, message, http.StatusUnprocessableEntity)
	default:
		return c.HandleError(ctx, err, message, http.StatusInternalServerError)
	}
}

// notSaved reports a save that completed without affecting any row.
func (c *Controller) notSaved(ctx echo.Context, message string) error {
	return c.HandleError(ctx, nil, message, http.StatusInternalServerError)
}

// parseID reads the path parameter name as a positive identifier.
func parseID(ctx echo.Context, name string) (uint, error) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, errors.Newf("invalid %s %q", name, raw).
			Component("api").
			Category(errors.CategoryValidation).
			Build()
	}
	return uint(id), nil
}

// queryID reads the query parameter name as a positive identifier.
func queryID(ctx echo.Context, name string) (uint, error) {
	raw := ctx.QueryParam(name)
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, errors.Newf("query parameter %s must be a positive integer, got %q", name, raw).
			Component("api").
			Category(errors.CategoryValidation).
			Build()
	}
	return uint(id), nil
}

// bindBody decodes the request body into dst.
func bindBody(ctx echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(ctx, dst); err != nil {
		return errors.New(err).
			Component("api").
			Category(errors.CategoryValidation).
			Build()
	}
	return nil
}

// checkBodyID rejects a body whose id disagrees with the path id. A zero
// body id takes the path id.
func checkBodyID(pathID uint, bodyID *uint) error {
	if *bodyID == 0 {
		*bodyID = pathID
		return nil
	}
	if *bodyID != pathID {
		return errors.Newf("body id %d does not match path id %d", *bodyID, pathID).
			Component("api").
			Category(errors.CategoryValidation).
			Build()
	}
	return nil
}
