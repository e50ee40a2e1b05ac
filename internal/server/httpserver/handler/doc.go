// Package handler provides HTTP request handlers for the beacon server.
//
// This package implements the two request classes the server exposes:
// static file fetches under a configured path prefix, and the ping
// endpoint returning the caller's value plus a fixed offset. It also
// carries the operational endpoints (/health, /metrics).
package handler
