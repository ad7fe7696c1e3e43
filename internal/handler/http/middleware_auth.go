package http

import (
	"net/http"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// via [service.AuthService.ParseToken] and stores the decoded claims in the
// request context with [utils.WithClaims].
//
// A missing header or a header without a token part is answered with
// 401 Unauthorized. A token that fails validation (bad signature, wrong
// issuer, expired) is answered with 403 Forbidden.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenString, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			h.fail(w, r, err)
			return
		}

		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		log := logger.FromContext(ctx).With().Int64("user_id", token.Claims.UserID).Logger()

		ctx = utils.WithClaims(log.WithContext(ctx), token.Claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// admin lets through only users holding the admin role. It must run after
// auth; the role is read from the datastore, not from the token.
func (h *Handler) admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h.services.AdminService.RequireAdmin(r.Context(), userID(r)); err != nil {
			h.fail(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
