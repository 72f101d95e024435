package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cnet"

// Metrics holds the API's collectors and the registry they are exposed from.
type Metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	requestDur     *prometheus.HistogramVec
	procedureCalls *prometheus.CounterVec
	procedureDur   *prometheus.HistogramVec
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		requestDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Histogram of HTTP request durations",
			Buckets:   prometheus.ExponentialBuckets(1e-3, 4, 8),
		}, []string{"method", "route"}),

		procedureCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "procedure",
			Name:      "calls_total",
			Help:      "Number of stored procedure calls by procedure and outcome",
		}, []string{"procedure", "outcome"}),

		procedureDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "procedure",
			Name:      "duration_seconds",
			Help:      "Histogram of stored procedure call durations",
			Buckets:   prometheus.ExponentialBuckets(1e-3, 4, 8),
		}, []string{"procedure"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDur,
		m.procedureCalls,
		m.procedureDur,
	)
	return m
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveProcedure records one stored procedure call.
func (m *Metrics) ObserveProcedure(id, outcome string, elapsed time.Duration) {
	m.procedureCalls.WithLabelValues(id, outcome).Inc()
	m.procedureDur.WithLabelValues(id).Observe(elapsed.Seconds())
}

// Middleware records every request that passes through it. Routes are
// labelled by their pattern, not the raw path, to bound cardinality.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			route = r.Path
		}

		m.requests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.requestDur.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
