package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-passform/framework/metrics"
	"github.com/km-arc/go-passform/password"
)

func TestObserveValidation(t *testing.T) {
	m := metrics.New()
	m.ObserveValidation(password.TooShort)
	m.ObserveValidation(password.TooShort)
	m.ObserveValidation(password.Success)

	expected := `
# HELP passform_validations_total Password validations by outcome kind
# TYPE passform_validations_total counter
passform_validations_total{kind="success"} 1
passform_validations_total{kind="too_short"} 2
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "passform_validations_total")
	assert.NoError(t, err)
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := metrics.New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/forms/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/forms/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/forms/def", nil))

	expected := `
# HELP passform_http_requests_total Total number of HTTP requests received
# TYPE passform_http_requests_total counter
passform_http_requests_total{method="GET",route="/forms/{id}",status="404"} 2
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "passform_http_requests_total")
	assert.NoError(t, err)
}

func TestHandler(t *testing.T) {
	m := metrics.New()
	m.SetFormsActive(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "passform_forms_active 3")
}

func TestNew_Independent(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = metrics.New()
		_ = metrics.New()
	})
}
