package http

import (
	"net/http"

	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/internal/utils"
)

// auth is an HTTP middleware that guards protected routes with a session
// bearer token.
//
// It hands the raw "Authorization" header to
// [service.AuthService.Authorize] and, on success, stores the principal's
// user ID in the request context under [utils.UserIDCtxKey] before
// delegating to the next handler.
//
// Rejections are answered through the error status map:
//   - 403 Forbidden for a missing, malformed, forged or expired token, and
//     for action tokens (verification, reset) presented as bearer tokens.
//   - 400 Bad Request with a hint when the Bearer scheme is repeated.
//   - 500 Internal Server Error for any other failure.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		principal, err := h.services.AuthService.Authorize(ctx, r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, r, err, "request was not authorized")
			return
		}

		ctx = utils.WithUserID(ctx, principal.UserID)
		l := logger.FromContext(ctx).With().Int64("user_id", principal.UserID).Logger()
		ctx = l.WithContext(ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
