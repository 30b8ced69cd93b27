package serve

import (
	"context"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/pokereview/internal/conf"
	"github.com/tphakala/pokereview/internal/errors"
)

func TestRun_DisabledWebServer(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), &conf.Settings{})
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfiguration))
}

func TestRun_SeedsAndServesUntilCancelled(t *testing.T) {
	t.Parallel()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	require.NoError(t, l.Close())

	settings := &conf.Settings{
		Database: conf.DatabaseSettings{
			SQLite: conf.SQLiteSettings{Path: filepath.Join(t.TempDir(), "serve.db")},
		},
		WebServer: conf.WebServerSettings{
			Enabled:         true,
			Host:            "127.0.0.1",
			Port:            port,
			ShutdownTimeout: 2 * time.Second,
			Metrics:         true,
		},
		Seed: conf.SeedSettings{OnStartup: true},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, settings) }()

	url := "http://" + settings.WebServer.Address() + "/api/v1/pokemon/by-name/Venusaur"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:noctx // test helper
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 10*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
}
