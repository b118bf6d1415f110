package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of a session token. This is a policy
// constant, not negotiable per call.
const TokenTTL = 24 * time.Hour

// ErrInvalidToken is returned for every verification failure: bad signature,
// malformed structure, or expiry. Callers must not distinguish these cases
// to the end user.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the identity claims embedded in a session token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited session tokens.
// Tokens are stateless: there is no revocation list, so a previously issued
// token remains valid until its natural expiry even after logout. Logout is
// a client-side cookie deletion only.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService creates a TokenService signing with the given key.
// The key is process-wide configuration; config loading fails fast when
// it is absent, so an empty key never reaches this constructor in practice.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue produces a signed compact token carrying the user's identity claims
// with an absolute expiry of now + TokenTTL.
func (s *TokenService) Issue(subject, email, name string) (string, error) {
	now := s.now()
	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature integrity and expiry. Any failure yields
// ErrInvalidToken so internal distinctions never leak to callers.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
