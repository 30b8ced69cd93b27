package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/pokereview/internal/logger"
)

type observation struct {
	method, route, code string
}

type fakeRequestRecorder struct {
	mu       sync.Mutex
	started  int
	observed []observation
}

func (f *fakeRequestRecorder) RequestStarted() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started++
}

func (f *fakeRequestRecorder) RecordRequest(method, route, code string, _ float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observed = append(f.observed, observation{method, route, code})
}

func serve(e *echo.Echo, method, target string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMetrics_RecordsRouteTemplate(t *testing.T) {
	t.Parallel()

	rec := &fakeRequestRecorder{}
	e := echo.New()
	e.Use(NewMetrics(rec))
	e.GET("/pokemon/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Param("id"))
	})
	e.GET("/broken", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "no")
	})

	serve(e, http.MethodGet, "/pokemon/1", "")
	serve(e, http.MethodGet, "/pokemon/2", "")
	serve(e, http.MethodGet, "/broken", "")
	serve(e, http.MethodGet, "/nowhere", "")

	assert.Equal(t, 4, rec.started)
	require.Len(t, rec.observed, 4)
	assert.Equal(t, observation{"GET", "/pokemon/:id", "200"}, rec.observed[0])
	assert.Equal(t, observation{"GET", "/pokemon/:id", "200"}, rec.observed[1])
	assert.Equal(t, observation{"GET", "/broken", "418"}, rec.observed[2])
	assert.Equal(t, "404", rec.observed[3].code)
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewSlogLogger(&buf, logger.LogLevelDebug, time.UTC)

	e := echo.New()
	e.Use(NewRequestLoggerWithSkipper(log, func(c echo.Context) bool {
		return c.Path() == "/metrics"
	}))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/fail", func(c echo.Context) error { return c.NoContent(http.StatusInternalServerError) })
	e.GET("/metrics", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	serve(e, http.MethodGet, "/ok", "")
	serve(e, http.MethodGet, "/fail", "")
	serve(e, http.MethodGet, "/metrics", "")

	out := buf.String()
	assert.Contains(t, out, "uri=/ok")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "status=500")
	assert.NotContains(t, out, "uri=/metrics")
}

func TestSecureHeadersAndCORS(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.Use(NewCORS(DefaultSecurityConfig()))
	e.Use(NewSecureHeaders())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderOrigin, "http://example.com")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get(echo.HeaderXContentTypeOptions))
	assert.Equal(t, "DENY", rec.Header().Get(echo.HeaderXFrameOptions))
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	e := echo.New()
	e.Use(NewBodyLimit("1K"))
	e.POST("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := serve(e, http.MethodPost, "/", strings.Repeat("x", 100))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodPost, "/", strings.Repeat("x", 4096))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
