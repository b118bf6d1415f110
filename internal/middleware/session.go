package middleware

import (
	"net/http"

	"github.com/mealdex/mealdex/internal/auth"
)

// Session resolves the request's cookie-carried token into an Identity and
// stores it in the request context. Anonymous requests pass through with
// no identity; enforcement belongs to RequireAuth. The resolver swallows
// every failure mode (missing cookie, bad signature, expiry, deleted user)
// into anonymity so none of them is distinguishable downstream.
func Session(resolver *auth.SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := resolver.Resolve(r.Context(), r)
			if identity == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests with a uniform 401 body.
// Must run after Session.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth.IdentityFromContext(r.Context()) == nil {
				writeUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeUnauthorized writes a 401 response.
// Uses the same message for all auth failures to prevent enumeration.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized","code":"UNAUTHORIZED"}`))
}
