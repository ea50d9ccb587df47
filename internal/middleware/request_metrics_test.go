package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/fittracker/internal/middleware"
	"github.com/2beens/fittracker/internal/telemetry/metrics"

	"github.com/gorilla/mux"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestMetrics(t *testing.T) {
	metricsManager, registry := metrics.NewTestManagerAndRegistry()

	r := mux.NewRouter()
	r.HandleFunc("/analytics/series/{metric}", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown metric", http.StatusBadRequest)
	}).Methods("GET").Name("daily-series")
	r.Use(middleware.RequestMetrics(metricsManager))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/analytics/series/sleep", nil))
	require.Equal(t, http.StatusBadRequest, rr.Code)

	m := &dto.Metric{}
	require.NoError(t, metricsManager.CounterRequests.WithLabelValues("GET", "400").Write(m))
	assert.Equal(t, float64(1), m.GetCounter().GetValue())

	families, err := registry.Gather()
	require.NoError(t, err)
	var observed uint64
	for _, f := range families {
		if f.GetName() != "fittracker_test_request_duration_seconds" {
			continue
		}
		for _, metric := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range metric.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			assert.Equal(t, "daily-series", labels["route"])
			assert.Equal(t, "400", labels["status_code"])
			observed += metric.GetHistogram().GetSampleCount()
		}
	}
	assert.Equal(t, uint64(1), observed)
}
