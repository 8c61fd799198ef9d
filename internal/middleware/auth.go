package middleware

import (
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/session"
)

// RequireAdmin middleware rejects requests whose session holds no admin token.
// Token presence is the only check; the backend validates the token itself.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := SessionFrom(r.Context())
		if s == nil {
			http.Error(w, "Unauthorized: session required", http.StatusUnauthorized)
			return
		}
		if !s.Tokens.Present(session.Admin) {
			http.Error(w, "Unauthorized: admin login required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
