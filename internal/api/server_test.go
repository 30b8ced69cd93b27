package api

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/pokereview/internal/conf"
	"github.com/tphakala/pokereview/internal/datastore"
	"github.com/tphakala/pokereview/internal/datastore/session"
	"github.com/tphakala/pokereview/internal/logger"
	"github.com/tphakala/pokereview/internal/observability"
)

func newTestServer(t *testing.T, withMetrics bool) *Server {
	t.Helper()
	log := logger.NewSlogLogger(io.Discard, logger.LogLevelError, time.UTC)
	m, err := datastore.New(&datastore.Config{
		SQLite: datastore.SQLiteConfig{Path: filepath.Join(t.TempDir(), "server.db")},
	}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	require.NoError(t, m.Initialize(context.Background()))

	settings := &conf.Settings{
		WebServer: conf.WebServerSettings{
			Enabled:         true,
			Host:            "127.0.0.1",
			Port:            freePort(t),
			ShutdownTimeout: 2 * time.Second,
			Metrics:         withMetrics,
		},
	}

	opts := []ServerOption{WithLogger(log)}
	if withMetrics {
		metrics, err := observability.NewMetrics()
		require.NoError(t, err)
		opts = append(opts, WithMetrics(metrics))
	}
	s, err := New(settings, session.NewFactory(m.DB()), opts...)
	require.NoError(t, err)
	return s
}

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	require.NoError(t, l.Close())
	return port
}

func TestNew_RequiresDependencies(t *testing.T) {
	t.Parallel()

	_, err := New(nil, session.NewFactory(nil))
	require.Error(t, err)
	_, err = New(&conf.Settings{}, nil)
	require.Error(t, err)
}

func TestServer_MetricsEndpoint(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, true)

	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/api/v1/categories"`)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestServer_MetricsDisabled(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, false)

	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotNil(t, s.APIController())
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	url := "http://" + s.settings.WebServer.Address() + "/api/v1/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:noctx // test helper
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
