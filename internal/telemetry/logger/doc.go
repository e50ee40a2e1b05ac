// Package logger provides structured logging for beacon.
//
// It wraps the standard library log/slog to provide timestamped,
// leveled logging in JSON or text format. Output can be directed to
// a log file, which is the normal mode for the server process; the
// file is opened in append mode so restarts do not truncate history.
//
// Features:
//   - JSON or text structured logging
//   - Log level configuration with runtime adjustment
//   - File output with stderr fallback
//   - Context-aware logging with request ID propagation
package logger
