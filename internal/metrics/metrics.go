// Package metrics holds the Prometheus collectors for the service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "photo_orders"

type Metrics struct {
	registry *prometheus.Registry

	ordersSubmitted   *prometheus.CounterVec
	composites        *prometheus.CounterVec
	compositeDuration *prometheus.HistogramVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// New creates a Metrics with its own registry so tests can build as many
// instances as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ordersSubmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orders_submitted_total",
				Help:      "Order submissions by result.",
			},
			[]string{"result"},
		),
		composites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "composites_total",
				Help:      "Compositing requests by mode and result.",
			},
			[]string{"mode", "result"},
		),
		compositeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "composite_duration_seconds",
				Help:      "Time spent decoding, compositing and encoding images.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"mode"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
			},
			[]string{"method", "path"},
		),
	}

	m.registry.MustRegister(
		m.ordersSubmitted,
		m.composites,
		m.compositeDuration,
		m.httpRequests,
		m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordOrder(result string) {
	m.ordersSubmitted.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordComposite(mode, result string, d time.Duration) {
	m.composites.WithLabelValues(mode, result).Inc()
	m.compositeDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func (m *Metrics) RecordHTTPRequest(method, path, status string, d time.Duration) {
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
}
