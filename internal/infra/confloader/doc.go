// Package confloader provides configuration loading mechanism.
//
// This package implements a flexible configuration loader that supports
// multiple sources and formats using koanf as the underlying library.
//
// Priority (highest to lowest):
//
//  1. Environment variables
//  2. Configuration file (YAML)
//  3. Default values
//
// Environment variables use the BEACON_ prefix. The historical TLS
// variables SSL_CA_PATH, SSL_CERT_PATH and SSL_PRIVATE_KEY_PATH are
// honored verbatim as aliases for the tls.* keys so deployments
// provisioned for earlier versions keep working unchanged.
package confloader
