// Package tlsroots provides TLS certificate management for beacon.
//
// The certificate material is provisioned externally (a CA bundle, a
// server certificate chain and the matching private key, mounted as
// files) and this package turns it into a server-capable tls.Config:
//
//   - roots.go: trust pool construction and server TLS config
//   - watcher.go: certificate hot-reload via fsnotify
//
// When a CA bundle is supplied it is installed as the client CA pool,
// so clients that present certificates are verified against it;
// clients without certificates are still admitted, matching how the
// certificates for this service are issued.
package tlsroots
