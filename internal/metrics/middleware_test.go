package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RecordsDurationAndCount(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/discovery", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/discovery", http.NoBody))
	require.Equal(t, http.StatusOK, rr.Code)

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/discovery", "200"))
	assert.GreaterOrEqual(t, got, 1.0)
	assert.NotZero(t, testutil.CollectAndCount(httpRequestDuration))
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	for path, status := range map[string]string{"/missing": "404", "/boom": "500"} {
		before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", path, status))
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
		after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", path, status))
		assert.Equal(t, before+1, after, path)
	}
}

func TestMiddleware_RoutePatternLabel(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/items/42", http.NoBody))

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/items/{id}", "200"))
	assert.GreaterOrEqual(t, got, 1.0)
}

func TestRegister_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}
