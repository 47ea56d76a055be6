// Package metrics owns the Prometheus registry the server exposes on
// /metrics.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "talentboard"

// Metrics is safe for concurrent use. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// HTTPRequests counts finished requests by method, route and status.
	HTTPRequests *prometheus.CounterVec
	// HTTPDuration records request latency by method and route.
	HTTPDuration *prometheus.HistogramVec
	// ContentCreated counts stored records by kind (project, post).
	ContentCreated *prometheus.CounterVec
	// Signups counts created profiles by user type.
	Signups *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ContentCreated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_created_total",
			Help:      "Total number of created records by kind",
		}, []string{"kind"}),
		Signups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signups_total",
			Help:      "Total number of completed signups by user type",
		}, []string{"user_type"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) RecordCreated(kind string) {
	if m == nil {
		return
	}
	m.ContentCreated.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordSignup(userType string) {
	if m == nil {
		return
	}
	m.Signups.WithLabelValues(userType).Inc()
}

// Middleware records every request under its route pattern, so ids in
// paths do not explode label cardinality.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The error middleware sits outside this one and has not
			// rendered the response yet.
			status = statusFromError(err)
		}

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		method := c.Method()

		m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

type statusCoder interface {
	HTTPStatus() int
}

func statusFromError(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) && sc.HTTPStatus() > 0 {
		return sc.HTTPStatus()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
