// Package httpserver provides the HTTP/HTTPS server for beacon.
package httpserver

import (
	"net/http"

	"github.com/beaconhq/beacon/internal/server/httpserver/handler"
	"github.com/beaconhq/beacon/internal/telemetry/logger"
	"github.com/beaconhq/beacon/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// PingOffset is added to every ping request's value.
	PingOffset int64

	// StaticPrefix is the URL prefix for static file serving.
	StaticPrefix string

	// StaticRoot is the filesystem directory served under StaticPrefix.
	StaticRoot string

	// Logger for request logging.
	Logger logger.Logger

	// Metrics is the application metrics registry. Optional.
	Metrics *metric.Registry

	// RateLimit is the per-IP request rate (requests/second).
	// Zero disables rate limiting.
	RateLimit int
}

// NewRouter creates the HTTP handler with all routes and middleware.
// Every route, including error responses, passes through the
// permissive CORS middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	h := handler.New(handler.Config{
		PingOffset:   cfg.PingOffset,
		StaticPrefix: cfg.StaticPrefix,
		StaticRoot:   cfg.StaticRoot,
		Logger:       log,
		Metrics:      cfg.Metrics,
	})

	// Order: Recover -> CORS -> RequestID -> RateLimit -> AccessLog
	// -> Instrument -> handler mux.
	return Chain(h,
		Recover(log),
		CORS(),
		RequestID(),
		RateLimit(cfg.RateLimit),
		AccessLog(log),
		Instrument(cfg.Metrics),
	)
}
