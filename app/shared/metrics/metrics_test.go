package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_OperationCounters(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	r.RecordOperationAttempt(ctx, "RecordScore", "GameService")
	r.RecordOperationAttempt(ctx, "RecordScore", "GameService")
	r.RecordOperationSuccess(ctx, "RecordScore", "GameService")
	r.RecordOperationFailure(ctx, "RecordScore", "GameService")
	r.RecordOperationDuration(ctx, "RecordScore", "GameService", 15*time.Millisecond)
	r.RecordRuns(ctx, "top", 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.opAttempts.WithLabelValues("GameService", "RecordScore")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.opSuccesses.WithLabelValues("GameService", "RecordScore")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.opFailures.WithLabelValues("GameService", "RecordScore")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.runs.WithLabelValues("top")))
}

func TestRegistry_MiddlewareUsesRoutePattern(t *testing.T) {
	r := NewRegistry()
	router := chi.NewRouter()
	router.Use(r.Middleware)
	router.Get("/api/games/{gameID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/games/abc", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("GET", "/api/games/{gameID}", "404")))

	metricsRR := httptest.NewRecorder()
	r.Handler().ServeHTTP(metricsRR, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.True(t, strings.Contains(metricsRR.Body.String(), "dugout_http_requests_total"))
}
