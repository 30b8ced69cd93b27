package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestRecorder receives one observation per finished request.
type RequestRecorder interface {
	RequestStarted()
	RecordRequest(method, route, code string, seconds float64)
}

// NewMetrics records request counts and latency per route template, so
// /api/v1/pokemon/1 and /api/v1/pokemon/2 share one series.
func NewMetrics(rec RequestRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			rec.RequestStarted()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			rec.RecordRequest(c.Request().Method, route, strconv.Itoa(status), time.Since(start).Seconds())
			return err
		}
	}
}
