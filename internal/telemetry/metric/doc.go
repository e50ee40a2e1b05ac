// Package metric provides Prometheus metrics for the beacon server.
//
// It exposes metrics in Prometheus format for monitoring request
// rates, latencies, ping traffic and static file serving. The
// registry is private to the process (no default global registry) and
// served on /metrics by the HTTP router.
package metric
