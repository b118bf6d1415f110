package auth

import (
	"context"
	"net/http"

	"github.com/mealdex/mealdex/internal/model"
)

// CookieName is the name of the session cookie carrying the signed token.
const CookieName = "token"

// cookieMaxAge matches TokenTTL in seconds.
const cookieMaxAge = int(TokenTTL / 1e9)

// TokenVerifier verifies a session token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// UserFinder is the credential store lookup the resolver needs.
type UserFinder interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// SessionResolver turns an inbound request's cookie into an authenticated
// identity, or nil for anonymous. It is read-only and safe to call multiple
// times per request.
type SessionResolver struct {
	tokens TokenVerifier
	users  UserFinder
}

// NewSessionResolver creates a SessionResolver.
func NewSessionResolver(tokens TokenVerifier, users UserFinder) *SessionResolver {
	return &SessionResolver{
		tokens: tokens,
		users:  users,
	}
}

// Resolve extracts the token from the request's cookie jar and returns the
// authenticated identity, or nil when the cookie is absent, the token fails
// verification, or the user no longer exists (a deleted user may still hold
// an unexpired token). None of these cases is an error.
func (r *SessionResolver) Resolve(ctx context.Context, req *http.Request) *model.Identity {
	cookie, err := req.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := r.tokens.Verify(cookie.Value)
	if err != nil {
		return nil
	}

	user, err := r.users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		return nil
	}

	return &model.Identity{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Image: user.Image,
	}
}

// NewSessionCookie builds the cookie handed to the client at login.
// HTTP-only and SameSite=Lax always; Secure only in production so local
// development over plain HTTP still works.
func NewSessionCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie builds the cookie written at logout to clear the
// client's copy. The token itself stays valid until natural expiry.
func ExpiredSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
