// Package httpserver provides the HTTP/HTTPS server for beacon.
package httpserver

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/beaconhq/beacon/internal/telemetry/logger"
)

// portSettleDelay is slept after the listener closes so the OS has
// released the port before Run returns and a rapid rebind is attempted.
const portSettleDelay = 10 * time.Millisecond

// Config holds server construction parameters.
type Config struct {
	// Addr is the TCP listen address, e.g. "0.0.0.0:443".
	Addr string

	// Handler serves all requests. Required.
	Handler http.Handler

	// TLSConfig wraps the listener in TLS when non-nil.
	TLSConfig *tls.Config

	// ShutdownTimeout bounds graceful shutdown. Zero means 30s.
	ShutdownTimeout time.Duration

	// ReadTimeout, WriteTimeout and IdleTimeout bound individual
	// connections; zero values leave them unbounded.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Logger for lifecycle transitions.
	Logger logger.Logger
}

// Server owns the listener lifecycle: bind, serve, guaranteed release.
type Server struct {
	httpServer      *http.Server
	tlsConfig       *tls.Config
	addr            string
	shutdownTimeout time.Duration
	logger          logger.Logger

	mu        sync.Mutex
	boundAddr net.Addr
	ready     chan struct{}
}

// New creates a new server. It does not bind the port; Run does.
func New(cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Server{
		httpServer: &http.Server{
			Handler:      cfg.Handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		tlsConfig:       cfg.TLSConfig,
		addr:            cfg.Addr,
		shutdownTimeout: timeout,
		logger:          log,
		ready:           make(chan struct{}),
	}
}

// Ready returns a channel that closes once the listener is bound and
// accepting connections. No request is handled before that point.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the bound listener address, or nil before Run binds.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boundAddr
}

// Run binds the listener and serves until ctx is cancelled or serving
// fails. On every exit path the listener is closed, the port released,
// and a short settle delay observed so an immediate rebind succeeds.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("httpserver: bind %s: %w", s.addr, err)
	}
	if s.tlsConfig != nil {
		ln = tls.NewListener(ln, s.tlsConfig)
	}

	defer func() {
		// Shutdown normally closes the listener; this covers the
		// paths where it never ran.
		ln.Close()
		time.Sleep(portSettleDelay)
	}()

	s.mu.Lock()
	s.boundAddr = ln.Addr()
	s.mu.Unlock()

	pid := os.Getpid()
	s.logger.Info("server started",
		"pid", pid,
		"addr", ln.Addr().String(),
		"tls", s.tlsConfig != nil,
	)
	close(s.ready)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(ln)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("serve failed", "pid", pid, "addr", s.addr, "error", err)
			return err
		}
		return nil
	}

	s.logger.Info("server shutting down", "pid", pid, "addr", ln.Addr().String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("httpserver: shutdown: %w", err)
	}

	<-serveErr // Serve has returned ErrServerClosed by now
	return nil
}
