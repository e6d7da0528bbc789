// Package metrics exposes Prometheus metrics for the API server.
package metrics

import (
	"strconv"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name
const Namespace = "devboard"

// unmatchedRoute labels requests that did not hit a registered route
const unmatchedRoute = "unmatched"

// Metrics holds the HTTP metrics of the API server.
//
// Metrics:
//   - devboard_http_requests_total{method,route,status}
//   - devboard_http_request_duration_seconds{method,route}
//
// Each Metrics owns its registry so that several servers (as in tests) can
// coexist in one process.
type Metrics struct {
	registry        *prometheus.Registry
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers the HTTP metrics along with the Go runtime
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests handled",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Registry returns the registry the metrics are registered with
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records the count and latency of every request. Routes are
// labelled by their pattern (e.g. /api/v1/projects/:id) to keep the label
// cardinality bounded.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		// Without a matching route, c.Route() is the catch-all middleware
		route := c.Route().Path
		if route == "/" && c.Path() != "/" {
			route = unmatchedRoute
		}

		method := c.Method()
		m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
