package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRouter(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "blueprintctl_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	router := metricsRouter(reg)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "blueprintctl_test_total 1")
}

func TestServeMetrics(t *testing.T) {
	t.Parallel()

	srv, err := serveMetrics("127.0.0.1:0", prometheus.NewRegistry(), logr.Discard())
	require.NoError(t, err)
	require.NoError(t, srv.Close())

	_, err = serveMetrics("256.0.0.1:bad", prometheus.NewRegistry(), logr.Discard())
	assert.Error(t, err)
}

func TestApp_MetricsListener(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ctx, _ := bootstrap(t, srv, "metrics:\n  addr: 127.0.0.1:0\n")
	app := mustApp(t, ctx)
	require.NotNil(t, app.metrics)

	rec := httptest.NewRecorder()
	app.metrics.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "blueprintctl_orchestrator_staged_assignments 0")

	app.Close()
	assert.Nil(t, app.metrics)
}
