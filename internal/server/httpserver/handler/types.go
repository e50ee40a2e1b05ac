// Package handler provides HTTP request handlers for the beacon server.
package handler

// Error codes returned by the API.
const (
	CodeMissingValue = "missing_value"
	CodeInvalidValue = "invalid_value"
	CodeInternal     = "internal_error"
	CodeRateLimited  = "rate_limited"
)

// ErrorResponse is the JSON body for every error status.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// HealthResponse is the JSON body for GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Time    string `json:"time"`
}
