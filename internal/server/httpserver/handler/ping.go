// Package handler provides HTTP request handlers for the beacon server.
package handler

import (
	"net/http"
	"strconv"
)

// valueHeader is the request header carrying the ping input.
const valueHeader = "value"

// handlePing handles GET /ping. The required `value` header is parsed
// as a base-10 integer and the response body is the bare JSON integer
// value + offset. Absent or malformed input is a client error, never
// a fault.
func (h *Handler) handlePing(w http.ResponseWriter, r *http.Request) {
	raw := r.Header.Get(valueHeader)
	h.logger.WithContext(r.Context()).Info("handling ping", "value", raw)

	if raw == "" {
		h.writeError(w, r, http.StatusBadRequest, CodeMissingValue,
			"header `value` is required")
		return
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, CodeInvalidValue,
			"header `value` must be a base-10 integer")
		return
	}

	if h.metrics != nil {
		h.metrics.PingsTotal.Inc()
	}

	h.writeJSON(w, http.StatusOK, value+h.offset)
}
