// Package handler provides HTTP request handlers for the beacon server.
package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/beaconhq/beacon/internal/telemetry/logger"
	"github.com/beaconhq/beacon/internal/telemetry/metric"
)

// Config holds handler construction parameters.
type Config struct {
	// PingOffset is added to every ping request's value. Immutable
	// after construction.
	PingOffset int64

	// StaticPrefix is the URL prefix for static file serving.
	StaticPrefix string

	// StaticRoot is the directory served under StaticPrefix.
	StaticRoot string

	// Logger for request diagnostics.
	Logger logger.Logger

	// Metrics is the application metrics registry. Optional.
	Metrics *metric.Registry
}

// Handler is the main HTTP handler that routes requests to the
// endpoint implementations.
type Handler struct {
	offset       int64
	staticPrefix string
	staticRoot   string
	logger       logger.Logger
	metrics      *metric.Registry
	mux          *http.ServeMux
}

// New creates a new Handler with the given configuration.
func New(cfg Config) *Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	h := &Handler{
		offset:       cfg.PingOffset,
		staticPrefix: strings.TrimSuffix(cfg.StaticPrefix, "/"),
		staticRoot:   cfg.StaticRoot,
		logger:       log,
		metrics:      cfg.Metrics,
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// registerRoutes registers all HTTP routes.
func (h *Handler) registerRoutes() {
	h.mux = http.NewServeMux()

	h.mux.HandleFunc("GET /ping", h.handlePing)
	h.mux.HandleFunc("GET /health", h.handleHealth)

	if h.staticPrefix != "" && h.staticRoot != "" {
		h.mux.HandleFunc("GET "+h.staticPrefix+"/", h.handleStatic)
	}

	if h.metrics != nil {
		h.mux.Handle("GET /metrics", h.metrics.Handler())
	}
}

// writeJSON writes a bare JSON response.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes a structured JSON error response. Clients never
// see a raw fault.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	requestID := logger.RequestIDFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&ErrorResponse{
		Code:      code,
		Message:   message,
		RequestID: requestID,
	})
}
