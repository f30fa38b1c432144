package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetrics_MiddlewareCountsByStatus(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(registry)

	e := echo.New()
	e.Use(metrics.Middleware())
	e.GET("/ok", func(ctx echo.Context) error {
		return ctx.NoContent(http.StatusOK)
	})
	e.GET("/missing", func(ctx echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "no such consignment")
	})
	e.GET("/broken", func(ctx echo.Context) error {
		return errors.New("boom")
	})

	for _, path := range []string{"/ok", "/missing", "/broken"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
	}

	// Handler errors are observed with the status the error carries, not the
	// zero-value 200 the response object holds before the error handler runs.
	assert.Equal(t, 1.0,
		testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, "/ok", "200")))
	assert.Equal(t, 1.0,
		testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, "/missing", "404")))
	assert.Equal(t, 1.0,
		testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, "/broken", "500")))
}
