// Package httpserver provides the HTTP/HTTPS server for beacon.
//
// It uses the Go standard library net/http for implementation. The
// router wires the endpoint handlers behind a middleware chain
// (Recover, CORS, RequestID, RateLimit, access logging) and the
// Server type owns the listener lifecycle: bind, serve, and a
// guaranteed port release on exit regardless of how serving ends.
//
// Features:
//
//   - TLS with externally provisioned certificates and hot reload
//   - Maximally permissive CORS on every route
//   - Graceful shutdown with configurable timeout
//   - Prometheus metrics integration
package httpserver
