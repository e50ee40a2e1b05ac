// Package config defines the beacon server configuration.
//
// Configuration is assembled by internal/infra/confloader from
// defaults, an optional YAML file and environment variables. Verify
// rejects configurations that would fail at runtime (missing TLS
// material, absent static root) before any listener binds.
package config
