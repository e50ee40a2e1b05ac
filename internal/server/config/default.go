// Package config defines the beacon server configuration.
package config

import "time"

// Default configuration values.
const (
	DefaultHost = "0.0.0.0"
	DefaultPort = 443

	DefaultStaticPrefix = "/page"
	DefaultStaticRoot   = "/srv/beacon/pages"

	DefaultPingOffset = 2

	DefaultShutdownTimeout = 30 * time.Second
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogFile   = "beacon.log"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		TLS: TLSSection{
			Enabled: true,
			Watch:   true,
		},
		Static: StaticSection{
			Prefix: DefaultStaticPrefix,
			Root:   DefaultStaticRoot,
		},
		Ping: PingSection{
			Offset: DefaultPingOffset,
		},
		Limits: LimitsSection{
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
			IdleTimeout:  DefaultIdleTimeout,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			File:   DefaultLogFile,
		},
	}
}
