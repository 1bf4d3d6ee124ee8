package middleware

import (
	"net/http"

	"clinical-study/pkg/response"
)

// RequireSession rejects requests that were not authenticated with a bearer
// token. It must run after AuthMiddleware.Authenticate.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetTokenIDFromContext(r.Context()); !ok {
			response.Unauthorized(w, "Session token is required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
