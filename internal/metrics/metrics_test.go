package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(m *Metrics) *fiber.App {
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/metrics", m.Handler())
	app.Get("/api/v1/projects/:id", func(c *fiber.Ctx) error {
		if c.Params("id") == "missing" {
			return fiber.NewError(fiber.StatusNotFound, "project not found")
		}
		return c.SendString("ok")
	})
	return app
}

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	m := New()
	app := newTestApp(m)

	for _, id := range []string{"p1", "p2", "missing"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/projects/"+id, nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.RequestsTotal.WithLabelValues(fiber.MethodGet, "/api/v1/projects/:id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.RequestsTotal.WithLabelValues(fiber.MethodGet, "/api/v1/projects/:id", "404")))
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	m := New()
	app := newTestApp(m)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/nowhere", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.RequestsTotal.WithLabelValues(fiber.MethodGet, unmatchedRoute, "404")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New()
	app := newTestApp(m)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/projects/p1", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)
	assert.True(t, strings.Contains(text, "devboard_http_requests_total"))
	assert.True(t, strings.Contains(text, "devboard_http_request_duration_seconds"))
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		first := New()
		second := New()
		assert.NotSame(t, first.Registry(), second.Registry())
	})
}
