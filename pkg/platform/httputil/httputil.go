// Package httputil translates domain results into HTTP responses.
//
// Handlers hand it coded errors (pkg/domain-errors) and payloads; it owns
// the status mapping and guarantees internal error detail never reaches the
// client.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "appguard/pkg/domain-errors"
)

// WriteJSON serializes v with the given status. Encoding failures are
// swallowed: by the time encoding runs the header is already written.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a coded error onto the wire contract:
//
//	{"error": "<code>", "error_description": "<caller-safe description>"}
//
// Internal and unavailable errors omit the description so storage detail
// never leaks to clients.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := map[string]string{"error": string(code)}

	switch code {
	case dErrors.CodeInternal, dErrors.CodeUnavailable:
		// description withheld
	default:
		if desc := dErrors.DescriptionOf(err); desc != "" {
			body["error_description"] = desc
		}
	}

	WriteJSON(w, statusFor(code), body)
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeInvalidInput, dErrors.CodeInvariantViolation:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
