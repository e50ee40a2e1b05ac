package main

import (
	"context"
	"crypto/tls"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/beaconhq/beacon/internal/infra/buildinfo"
	"github.com/beaconhq/beacon/internal/infra/confloader"
	"github.com/beaconhq/beacon/internal/infra/shutdown"
	"github.com/beaconhq/beacon/internal/infra/tlsroots"
	"github.com/beaconhq/beacon/internal/server/config"
	"github.com/beaconhq/beacon/internal/server/httpserver"
	"github.com/beaconhq/beacon/internal/telemetry/logger"
	"github.com/beaconhq/beacon/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("beacon-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting beacon-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)

	metrics := metric.NewRegistry()

	tlsConfig, certWatcher, err := initTLS(cfg, log)
	if err != nil {
		return fmt.Errorf("init tls: %w", err)
	}

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		PingOffset:   cfg.Ping.Offset,
		StaticPrefix: cfg.Static.Prefix,
		StaticRoot:   cfg.Static.Root,
		Logger:       log,
		Metrics:      metrics,
		RateLimit:    cfg.Limits.RateLimit,
	})

	srv := httpserver.New(httpserver.Config{
		Addr:            net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:         router,
		TLSConfig:       tlsConfig,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		ReadTimeout:     cfg.Limits.ReadTimeout,
		WriteTimeout:    cfg.Limits.WriteTimeout,
		IdleTimeout:     cfg.Limits.IdleTimeout,
		Logger:          log,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sh := shutdown.NewHandler(cfg.Server.ShutdownTimeout)

	serverDone := make(chan error, 1)
	sh.OnShutdown(func(sctx context.Context) error {
		cancel()
		select {
		case err := <-serverDone:
			return err
		case <-sctx.Done():
			return sctx.Err()
		}
	})

	if certWatcher != nil {
		certWatcher.StartAsync()
		sh.OnShutdown(func(context.Context) error {
			certWatcher.Stop()
			return nil
		})
	}

	go func() {
		err := srv.Run(ctx)
		serverDone <- err
		// A listen or serve failure ends the process; a clean Run
		// return only happens after shutdown already began.
		sh.Trigger(err)
	}()

	if err := sh.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig assembles the configuration from defaults, the optional
// file and environment variables, then validates it.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger and installs it as the
// process default.
func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}

// initTLS builds the server TLS configuration from the externally
// provisioned certificate files. Returns nil config when TLS is
// disabled. The watcher is non-nil when hot reload is on; the caller
// owns starting and stopping it.
func initTLS(cfg *config.ServerConfig, log logger.Logger) (*tls.Config, *tlsroots.Watcher, error) {
	if !cfg.TLS.Enabled {
		return nil, nil, nil
	}

	if !cfg.TLS.Watch {
		tlsConfig, err := tlsroots.ServerTLSConfig(cfg.TLS.CAFile, cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if err != nil {
			return nil, nil, err
		}
		return tlsConfig, nil, nil
	}

	watcher, err := tlsroots.NewWatcher(cfg.TLS.CertFile, cfg.TLS.KeyFile, tlsroots.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}

	tlsConfig, err := tlsroots.WatchedServerTLSConfig(cfg.TLS.CAFile, watcher)
	if err != nil {
		return nil, nil, err
	}

	return tlsConfig, watcher, nil
}
