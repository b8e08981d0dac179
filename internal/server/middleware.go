package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/talitapaixao/terapia-com-deus-api/pkg/response"
)

// AdminMiddleware guards operational endpoints behind a static bearer token.
// An empty configured token disables the endpoints entirely.
func AdminMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				response.Error(w, http.StatusForbidden, "Admin access disabled", "no admin token configured")
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Error(w, http.StatusUnauthorized, "Missing Authorization header", "")
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				response.Error(w, http.StatusUnauthorized, "Invalid token format", "")
				return
			}

			provided := strings.TrimPrefix(authHeader, "Bearer ")
			if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				response.Error(w, http.StatusUnauthorized, "Invalid or expired token", "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
