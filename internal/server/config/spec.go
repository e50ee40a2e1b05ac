// Package config defines the beacon server configuration.
package config

import "time"

// ServerConfig is the root configuration for beacon-server.
type ServerConfig struct {
	Server ServerSection `koanf:"server"`
	TLS    TLSSection    `koanf:"tls"`
	Static StaticSection `koanf:"static"`
	Ping   PingSection   `koanf:"ping"`
	Limits LimitsSection `koanf:"limits"`
	Log    LogSection    `koanf:"log"`
}

// ServerSection configures the listener.
type ServerSection struct {
	// Host is the bind address. Empty binds all interfaces.
	Host string `koanf:"host"`

	// Port is the TCP listen port.
	Port int `koanf:"port"`

	// ShutdownTimeout bounds graceful shutdown once it begins.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// TLSSection configures the TLS material. The file paths point at
// certificates issued and renewed by an external authority.
type TLSSection struct {
	// Enabled wraps the listener in TLS. When false the server speaks
	// plain TCP and the file paths are ignored.
	Enabled bool `koanf:"enabled"`

	// CAFile is the CA bundle path. Optional; when set, client
	// certificates are verified against it if presented.
	CAFile string `koanf:"ca_file"`

	// CertFile is the server certificate chain path.
	CertFile string `koanf:"cert_file"`

	// KeyFile is the private key path matching CertFile.
	KeyFile string `koanf:"key_file"`

	// Watch reloads the certificate when the files change on disk.
	Watch bool `koanf:"watch"`
}

// StaticSection configures static file serving.
type StaticSection struct {
	// Prefix is the URL path prefix for static files.
	Prefix string `koanf:"prefix"`

	// Root is the filesystem directory served under Prefix.
	Root string `koanf:"root"`
}

// PingSection configures the ping endpoint.
type PingSection struct {
	// Offset is added to every ping request's value. Fixed for the
	// process lifetime.
	Offset int64 `koanf:"offset"`
}

// LimitsSection configures request-level protections.
type LimitsSection struct {
	// RateLimit is the per-IP request rate (requests/second).
	// Zero disables rate limiting.
	RateLimit int `koanf:"rate_limit"`

	// ReadTimeout bounds reading an entire request.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds writing an entire response.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// IdleTimeout bounds keep-alive idle connections.
	IdleTimeout time.Duration `koanf:"idle_timeout"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`

	// File is the log file path. Empty logs to stderr.
	File string `koanf:"file"`
}
