package middleware

import (
	"context"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/storefront"
)

// SessionCookie names the cookie carrying the browser session id
const SessionCookie = "sf_session"

type contextKey struct{}

// SessionResolver finds or creates the session of a browser
type SessionResolver interface {
	Resolve(id string) (*storefront.Session, bool)
}

// Session middleware attaches the browser session to the request context.
// A new session id is issued when the cookie is missing or unknown.
func Session(resolver SessionResolver, secure bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(SessionCookie); err == nil {
				id = c.Value
			}

			s, created := resolver.Resolve(id)
			if created {
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    s.ID,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			// expired tokens are logged out before the handler runs
			s.Account.Status()

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}

// WithSession returns a copy of ctx carrying s
func WithSession(ctx context.Context, s *storefront.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// SessionFrom returns the session stored in ctx, or nil
func SessionFrom(ctx context.Context) *storefront.Session {
	s, _ := ctx.Value(contextKey{}).(*storefront.Session)
	return s
}
