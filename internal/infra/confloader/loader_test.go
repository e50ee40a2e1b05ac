package confloader

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Server struct {
		Port int  `koanf:"port"`
		TLS  bool `koanf:"tls"`
	} `koanf:"server"`
	TLS struct {
		CAFile   string `koanf:"ca_file"`
		CertFile string `koanf:"cert_file"`
		KeyFile  string `koanf:"key_file"`
	} `koanf:"tls"`
	Static struct {
		Root string `koanf:"root"`
	} `koanf:"static"`
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l == nil {
		t.Fatal("NewLoader() returned nil")
	}
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}
}

func TestNewLoader_WithOptions(t *testing.T) {
	l := NewLoader(
		WithEnvPrefix("TEST_"),
		WithConfigFile("/path/to/config.yaml"),
	)

	if l.envPrefix != "TEST_" {
		t.Errorf("envPrefix = %q, want TEST_", l.envPrefix)
	}
	if l.filePath != "/path/to/config.yaml" {
		t.Errorf("filePath = %q, want /path/to/config.yaml", l.filePath)
	}
}

func TestLoader_LoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
server:
  port: 8443
  tls: true
static:
  root: /srv/pages
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	l := NewLoader()
	if err := l.LoadFile(configPath); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if port := l.GetInt("server.port"); port != 8443 {
		t.Errorf("server.port = %d, want 8443", port)
	}
	if !l.GetBool("server.tls") {
		t.Error("server.tls should be true")
	}
	if root := l.GetString("static.root"); root != "/srv/pages" {
		t.Errorf("static.root = %q, want /srv/pages", root)
	}
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	l := NewLoader()
	if err := l.LoadFile("/nonexistent/config.yaml"); err == nil {
		t.Error("LoadFile() should return error for nonexistent file")
	}
}

func TestLoader_LoadFile_Empty(t *testing.T) {
	l := NewLoader()
	if err := l.LoadFile(""); err != nil {
		t.Errorf("LoadFile(\"\") should not error, got: %v", err)
	}
}

func TestLoader_LoadEnv(t *testing.T) {
	t.Setenv("BEACON_SERVER_PORT", "9443")
	t.Setenv("BEACON_SERVER_TLS", "true")

	l := NewLoader()
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if port := l.GetInt("server.port"); port != 9443 {
		t.Errorf("server.port = %d, want 9443", port)
	}
	if !l.GetBool("server.tls") {
		t.Error("server.tls should be true")
	}
}

func TestLoader_LoadEnv_SSLAliases(t *testing.T) {
	t.Setenv("SSL_CA_PATH", "/etc/beacon/ca.pem")
	t.Setenv("SSL_CERT_PATH", "/etc/beacon/cert.pem")
	t.Setenv("SSL_PRIVATE_KEY_PATH", "/etc/beacon/key.pem")

	l := NewLoader()
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	var cfg testConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if cfg.TLS.CAFile != "/etc/beacon/ca.pem" {
		t.Errorf("tls.ca_file = %q, want /etc/beacon/ca.pem", cfg.TLS.CAFile)
	}
	if cfg.TLS.CertFile != "/etc/beacon/cert.pem" {
		t.Errorf("tls.cert_file = %q, want /etc/beacon/cert.pem", cfg.TLS.CertFile)
	}
	if cfg.TLS.KeyFile != "/etc/beacon/key.pem" {
		t.Errorf("tls.key_file = %q, want /etc/beacon/key.pem", cfg.TLS.KeyFile)
	}
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	content := "server:\n  port: 8080\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("BEACON_SERVER_PORT", "443")

	var cfg testConfig
	l := NewLoader(WithConfigFile(configPath))
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 443 {
		t.Errorf("server.port = %d, env should override file (want 443)", cfg.Server.Port)
	}
	if !l.IsLoaded() {
		t.Error("IsLoaded() should be true after Load")
	}
}

func TestLoader_LoadMap(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{"static.root": "/tmp/pages"}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}
	if root := l.GetString("static.root"); root != "/tmp/pages" {
		t.Errorf("static.root = %q, want /tmp/pages", root)
	}
}

func TestMapProvider_ReadBytes(t *testing.T) {
	m := mapProvider{}
	if _, err := m.ReadBytes(); err != ErrReadBytesNotSupported {
		t.Errorf("ReadBytes() error = %v, want %v", err, ErrReadBytesNotSupported)
	}
}
