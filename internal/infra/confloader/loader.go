// Package confloader provides configuration loading mechanism.
package confloader

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the default environment variable prefix.
const DefaultEnvPrefix = "BEACON_"

// envAliases maps bare environment variables to configuration keys.
// These predate the BEACON_ prefix scheme and are kept for
// compatibility with existing certificate provisioning.
var envAliases = map[string]string{
	"SSL_CA_PATH":          "tls.ca_file",
	"SSL_CERT_PATH":        "tls.cert_file",
	"SSL_PRIVATE_KEY_PATH": "tls.key_file",
}

// Loader loads configuration from multiple sources.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	filePath  string
	loaded    bool
}

// Option is a function that configures the Loader.
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithConfigFile sets the configuration file path.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

// NewLoader creates a new configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: DefaultEnvPrefix,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load loads configuration from all sources and unmarshals into target.
// Loading order (later sources override earlier):
//  1. Default values (the target struct as passed in)
//  2. Configuration file (YAML)
//  3. Environment variables, including the SSL_* aliases
func (l *Loader) Load(target any) error {
	if l.filePath != "" {
		if err := l.LoadFile(l.filePath); err != nil {
			return fmt.Errorf("load config file: %w", err)
		}
	}

	if err := l.LoadEnv(); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	if err := l.Unmarshal(target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	l.loaded = true
	return nil
}

// LoadFile loads configuration from a YAML file.
func (l *Loader) LoadFile(path string) error {
	if path == "" {
		return nil
	}

	provider := file.Provider(path)
	if err := l.k.Load(provider, yaml.Parser()); err != nil {
		return fmt.Errorf("load file %s: %w", path, err)
	}

	return nil
}

// LoadEnv loads configuration from environment variables.
// Prefixed variables use the format BEACON_SECTION_KEY (uppercase,
// underscores). Example: BEACON_SERVER_PORT=443 -> server.port.
// The SSL_* alias variables are applied afterwards so they win over
// prefixed equivalents, matching how the certificates are provisioned.
func (l *Loader) LoadEnv() error {
	// BEACON_TLS_CERT_FILE -> tls.cert_file
	envTransformer := func(s string) string {
		s = strings.TrimPrefix(s, l.envPrefix)
		s = strings.ToLower(s)
		return envKeyToPath(s)
	}

	provider := env.Provider(l.envPrefix, ".", envTransformer)
	if err := l.k.Load(provider, nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	aliases := make(map[string]any)
	for name, key := range envAliases {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			aliases[key] = v
		}
	}
	if len(aliases) > 0 {
		if err := l.LoadMap(aliases); err != nil {
			return fmt.Errorf("load env aliases: %w", err)
		}
	}

	return nil
}

// LoadMap loads configuration from a map (useful for flags or testing).
func (l *Loader) LoadMap(data map[string]any) error {
	if err := l.k.Load(mapProvider(data), nil); err != nil {
		return fmt.Errorf("load map: %w", err)
	}
	return nil
}

// Unmarshal unmarshals the loaded configuration into the target struct.
// Uses koanf tags for struct field mapping.
func (l *Loader) Unmarshal(target any) error {
	return l.k.Unmarshal("", target)
}

// Get returns a value from the configuration by key.
func (l *Loader) Get(key string) any {
	return l.k.Get(key)
}

// GetString returns a string value from the configuration.
func (l *Loader) GetString(key string) string {
	return l.k.String(key)
}

// GetInt returns an int value from the configuration.
func (l *Loader) GetInt(key string) int {
	return l.k.Int(key)
}

// GetBool returns a bool value from the configuration.
func (l *Loader) GetBool(key string) bool {
	return l.k.Bool(key)
}

// IsLoaded returns true if configuration has been loaded.
func (l *Loader) IsLoaded() bool {
	return l.loaded
}

// All returns all configuration as a map.
func (l *Loader) All() map[string]any {
	return l.k.All()
}

// envKeyToPath converts a lowered environment variable suffix to a
// dotted config path. Section names contain no underscores, so the
// first segment is the section and the rest is the key, underscores
// intact: server_read_timeout -> server.read_timeout.
func envKeyToPath(s string) string {
	parts := strings.SplitN(s, "_", 2)
	if len(parts) == 1 {
		return s
	}
	return parts[0] + "." + parts[1]
}
