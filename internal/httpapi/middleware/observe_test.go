package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hamed0406/pageloadtime/internal/metrics"
)

func TestObserve_LogsAndCountsByRoutePattern(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(Observe(zap.New(core), m))
	r.Get("/pages/{page}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/pages/unknown", nil))

	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/pages/{page}", "404")); got != 1 {
		t.Fatalf("want 1 counted request, got %v", got)
	}
	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("want 1 log entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["status"] != int64(404) {
		t.Fatalf("unexpected log fields: %v", entries[0].ContextMap())
	}
}
