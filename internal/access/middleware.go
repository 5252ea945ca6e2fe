package access

import (
	"log/slog"
	"net/http"

	"appguard/pkg/platform/httputil"
	"appguard/pkg/requestcontext"
)

// Require gates a route on one operation. It consumes the identity and role
// placed on the context by the auth middleware; the wrapped handler only
// runs when the permission table allows the call.
func Require(op Operation, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			role, ok := ParseRole(requestcontext.Role(ctx))
			if !ok || requestcontext.Identity(ctx) == "" {
				role = ""
			}

			if err := Authorize(role, op); err != nil {
				logger.WarnContext(ctx, "operation denied",
					"operation", string(op),
					"role", requestcontext.Role(ctx),
					"identity", requestcontext.Identity(ctx),
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
