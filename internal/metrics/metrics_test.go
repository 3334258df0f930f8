package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareRecordsRoutePattern(t *testing.T) {
	m := New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2"} {
		req := httptest.NewRequest(http.MethodGet, "/items/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/items/{id}", "418")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlightGauge))
}

func TestObserveEventDefaultsLabels(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveEvent("click", "nav")
	m.ObserveEvent("", "")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalyticsEvents.WithLabelValues("click", "nav")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalyticsEvents.WithLabelValues("unknown", "unknown")))
}

func TestObserveInventory(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveInventory(3, 2048)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.BackupFiles))
	assert.Equal(t, 2048.0, testutil.ToFloat64(m.BackupBytes))

	m.ObserveInventory(0, 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BackupFiles))
}
