// Package request provides request-ID middleware so every log line and error
// response can be correlated to a single call.
package request

import (
	"net/http"

	"github.com/google/uuid"

	"appguard/pkg/requestcontext"
)

// HeaderRequestID is the inbound/outbound header carrying the request ID.
const HeaderRequestID = "X-Request-Id"

// ID assigns a request ID to every request, honoring an inbound header when
// present, and echoes it on the response.
func ID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
