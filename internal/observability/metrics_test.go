package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/pokereview/internal/observability/metrics"
)

// TestNewMetricsConcurrency verifies that NewMetrics can be called concurrently
// since every instance owns its registry.
func TestNewMetricsConcurrency(t *testing.T) {
	t.Parallel()

	const numGoroutines = 20

	var wg sync.WaitGroup
	for range numGoroutines {
		wg.Go(func() {
			m, err := NewMetrics()
			assert.NoError(t, err)
			if assert.NotNil(t, m) {
				assert.NotNil(t, m.Registry())
				assert.NotNil(t, m.Datastore)
				assert.NotNil(t, m.HTTP)
			}
		})
	}
	wg.Wait()
}

func TestMetricsHandler_ExposesDatastoreSeries(t *testing.T) {
	t.Parallel()

	m, err := NewMetrics()
	require.NoError(t, err)
	m.Datastore.RecordOperation(metrics.OpSeed, metrics.StatusSuccess)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `pokereview_datastore_operations_total{operation="seed",status="success"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
