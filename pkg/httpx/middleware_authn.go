package httpx

import (
	"net/http"
	"slices"
	"strings"

	"github.com/aussiebroadwan/sectors/pkg/jwtx"
	"github.com/aussiebroadwan/sectors/pkg/slogx"
)

// RequireScope verifies the bearer token and checks it grants scope. A nil
// verifier means authentication is switched off and every request passes.
func RequireScope(v jwtx.Verifier, scope string) Middleware {
	return func(next http.Handler) http.Handler {
		if v == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, http.StatusUnauthorized, "invalid_token", "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, http.StatusUnauthorized, "invalid_token", "token verification failed")
				return
			}

			if !slices.Contains(claims.Scopes, scope) {
				writeBearerError(w, http.StatusForbidden, "insufficient_scope", "token lacks scope "+scope)
				return
			}

			ctx := contextWithClaims(r.Context(), claims)
			ctx = slogx.With(ctx, "sub", claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, status int, code, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="`+code+`", error_description="`+desc+`"`)
	WriteError(w, status, code, desc)
}
