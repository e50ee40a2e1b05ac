// Package config defines the beacon server configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Verify validates the configuration. TLS and static file errors are
// caught here so the process fails before binding the listener.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyTLS(&cfg.TLS); err != nil {
		return err
	}
	if err := verifyStatic(&cfg.Static); err != nil {
		return err
	}
	return nil
}

func verifyServer(cfg *ServerSection) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", cfg.Port)
	}
	return nil
}

func verifyTLS(cfg *TLSSection) error {
	if !cfg.Enabled {
		return nil
	}

	if cfg.CertFile == "" {
		return errors.New("tls.cert_file is required when TLS is enabled")
	}
	if cfg.KeyFile == "" {
		return errors.New("tls.key_file is required when TLS is enabled")
	}

	for _, path := range []string{cfg.CAFile, cfg.CertFile, cfg.KeyFile} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("TLS file %s: %w", path, err)
		}
	}
	return nil
}

func verifyStatic(cfg *StaticSection) error {
	if cfg.Prefix == "" || !strings.HasPrefix(cfg.Prefix, "/") {
		return fmt.Errorf("static.prefix %q must start with /", cfg.Prefix)
	}
	if cfg.Root == "" {
		return errors.New("static.root is required")
	}

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return fmt.Errorf("static.root %s: %w", cfg.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("static.root %s is not a directory", cfg.Root)
	}
	return nil
}
