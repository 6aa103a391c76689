// Package httputil centralizes JSON response and error envelopes so every
// handler emits the same shape.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "classtrack/pkg/domain-errors"
)

// WriteJSON writes a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// WriteError translates a domain error into the JSON error envelope.
// Business and validation errors carry their reason string; internal and
// transient failures collapse to a generic retry message so store details
// never leak to the caller.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)

	body := map[string]string{"error": string(code)}
	switch code {
	case dErrors.CodeInternal, dErrors.CodeUnavailable, dErrors.CodeInvariantViolation:
		body["error_description"] = "Request failed. Please try again."
	default:
		var de *dErrors.Error
		if errors.As(err, &de) && de.Message != "" {
			body["error_description"] = de.Message
		}
	}

	WriteJSON(w, status, body)
}
