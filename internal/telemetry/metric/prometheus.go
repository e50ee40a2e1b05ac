// Package metric provides Prometheus metrics for the beacon server.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all application metrics.
type Registry struct {
	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Endpoint metrics
	PingsTotal        prometheus.Counter
	StaticFilesServed prometheus.Counter
	StaticFilesMissed prometheus.Counter

	reg *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all application
// metrics registered, plus the standard Go and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	r := &Registry{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "beacon",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "beacon",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),

		PingsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "beacon",
			Name:      "pings_total",
			Help:      "Total ping requests handled.",
		}),

		StaticFilesServed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "beacon",
			Name:      "static_files_served_total",
			Help:      "Static files served successfully.",
		}),

		StaticFilesMissed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "beacon",
			Name:      "static_files_missed_total",
			Help:      "Static file requests that resolved to no file.",
		}),

		reg: reg,
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer returns the underlying prometheus gatherer, for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}
