package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/2beens/fittracker/internal/cache"
	"github.com/2beens/fittracker/internal/config"
	"github.com/2beens/fittracker/internal/fitness/tracker"
	"github.com/2beens/fittracker/internal/middleware"
	"github.com/2beens/fittracker/internal/notify"
	"github.com/2beens/fittracker/internal/telemetry/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "test-token"

func newTestServer(t *testing.T) *Server {
	t.Helper()

	storage := &Storage{Backend: config.StorageBackendMemory}
	metricsManager := metrics.NewTestManager()

	params := storage.ServiceParams()
	params.Cache = cache.NewFreeCache(1)
	params.CacheTTL = time.Minute
	params.Publisher = notify.NoopPublisher{}
	params.MetricsManager = metricsManager
	params.Location = time.UTC
	service := tracker.NewService(params)
	require.NoError(t, service.Init(context.Background()))

	return &Server{
		config: &config.Config{
			DefaultChartDays:               7,
			WorkoutsRateLimitAllowedPerMin: 10,
		},
		storage:        storage,
		service:        service,
		apiToken:       testToken,
		versionInfo:    "test",
		metricsManager: metricsManager,
	}
}

func doRequest(t *testing.T, h http.Handler, method, path, body string, withToken bool) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("User-Agent", "test-agent")
	if withToken {
		req.Header.Set(middleware.TokenHeader, testToken)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestServer_PublicRoutes(t *testing.T) {
	router := newTestServer(t).routerSetup()

	rr := doRequest(t, router, http.MethodGet, "/", "", false)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "fittracker test", rr.Body.String())

	rr = doRequest(t, router, http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","storage":"memory"}`, rr.Body.String())
}

func TestServer_AuthRequired(t *testing.T) {
	router := newTestServer(t).routerSetup()

	for _, path := range []string{"/workouts", "/analytics", "/achievements", "/mcp"} {
		rr := doRequest(t, router, http.MethodGet, path, "", false)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}

	rr := doRequest(t, router, http.MethodGet, "/nope", "", true)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_RecordAndRead(t *testing.T) {
	router := newTestServer(t).routerSetup()

	rr := doRequest(t, router, http.MethodPost, "/workouts",
		`{"durationSeconds":1800,"steps":4000,"distanceMeters":3000}`, true)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var result tracker.RecordResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, 4000, result.Workout.Steps)
	assert.Equal(t, 1, result.CurrentStreak)
	require.NotEmpty(t, result.Unlocked)
	assert.Equal(t, "first_workout", result.Unlocked[0].ID)

	rr = doRequest(t, router, http.MethodGet, "/workouts", "", true)
	require.Equal(t, http.StatusOK, rr.Code)
	var sessions []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sessions))
	assert.Len(t, sessions, 1)

	rr = doRequest(t, router, http.MethodGet, "/analytics", "", true)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"totalSteps":4000`)

	rr = doRequest(t, router, http.MethodDelete, "/workouts", "", true)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"removed":1}`, rr.Body.String())
}
