// Package main provides the entry point for beacon-server.
//
// beacon-server is a small HTTPS process that serves a static site
// from a filesystem directory and answers liveness pings. It is the
// probe target for external monitoring, not a computational service.
package main
