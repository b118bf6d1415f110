package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mealdex/mealdex/internal/model"
)

// fakeUserFinder serves canned users keyed by ID.
type fakeUserFinder struct {
	users map[string]*model.User
}

func (f *fakeUserFinder) GetUserByID(_ context.Context, id string) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func newResolverFixture(t *testing.T) (*SessionResolver, *TokenService, *fakeUserFinder) {
	t.Helper()
	tokens := NewTokenService("test-secret")
	users := &fakeUserFinder{users: map[string]*model.User{
		"user-123": {
			ID:    "user-123",
			Email: "ann@x.com",
			Name:  "Ann",
			Image: "https://example.com/ann.png",
		},
	}}
	return NewSessionResolver(tokens, users), tokens, users
}

func requestWithCookie(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	}
	return req
}

func TestSessionResolver_NoCookie(t *testing.T) {
	t.Parallel()

	resolver, _, _ := newResolverFixture(t)

	identity := resolver.Resolve(context.Background(), requestWithCookie(""))
	if identity != nil {
		t.Errorf("expected anonymous for missing cookie, got %+v", identity)
	}
}

func TestSessionResolver_InvalidToken(t *testing.T) {
	t.Parallel()

	resolver, _, _ := newResolverFixture(t)

	identity := resolver.Resolve(context.Background(), requestWithCookie("not-a-token"))
	if identity != nil {
		t.Errorf("expected anonymous for invalid token, got %+v", identity)
	}
}

func TestSessionResolver_TokenSignedWithOtherKey(t *testing.T) {
	t.Parallel()

	resolver, _, _ := newResolverFixture(t)

	other := NewTokenService("other-secret")
	token, err := other.Issue("user-123", "ann@x.com", "Ann")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	identity := resolver.Resolve(context.Background(), requestWithCookie(token))
	if identity != nil {
		t.Errorf("expected anonymous for foreign signature, got %+v", identity)
	}
}

func TestSessionResolver_DeletedUser(t *testing.T) {
	t.Parallel()

	resolver, tokens, _ := newResolverFixture(t)

	// Token for a subject that no longer exists in the store.
	token, err := tokens.Issue("user-gone", "gone@x.com", "Gone")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	identity := resolver.Resolve(context.Background(), requestWithCookie(token))
	if identity != nil {
		t.Errorf("expected anonymous for deleted user, got %+v", identity)
	}
}

func TestSessionResolver_ValidSession(t *testing.T) {
	t.Parallel()

	resolver, tokens, _ := newResolverFixture(t)

	token, err := tokens.Issue("user-123", "ann@x.com", "Ann")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	identity := resolver.Resolve(context.Background(), requestWithCookie(token))
	if identity == nil {
		t.Fatal("expected identity for valid session, got anonymous")
	}
	if identity.ID != "user-123" {
		t.Errorf("expected ID user-123, got %s", identity.ID)
	}
	if identity.Email != "ann@x.com" {
		t.Errorf("expected email ann@x.com, got %s", identity.Email)
	}
	if identity.Name != "Ann" {
		t.Errorf("expected name Ann, got %s", identity.Name)
	}
	if identity.Image != "https://example.com/ann.png" {
		t.Errorf("expected image to carry through, got %s", identity.Image)
	}
}

func TestSessionCookie_Attributes(t *testing.T) {
	t.Parallel()

	cookie := NewSessionCookie("abc", true)
	if cookie.Name != CookieName {
		t.Errorf("expected cookie name %q, got %q", CookieName, cookie.Name)
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HTTP-only")
	}
	if !cookie.Secure {
		t.Error("expected Secure cookie when secure=true")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Error("expected SameSite=Lax")
	}
	if cookie.MaxAge != 86400 {
		t.Errorf("expected MaxAge 86400, got %d", cookie.MaxAge)
	}

	cleared := ExpiredSessionCookie(false)
	if cleared.MaxAge >= 0 {
		t.Errorf("expected negative MaxAge to clear cookie, got %d", cleared.MaxAge)
	}
	if cleared.Value != "" {
		t.Error("cleared cookie should have empty value")
	}
}

func TestIdentityContext_RoundTrip(t *testing.T) {
	t.Parallel()

	if got := IdentityFromContext(context.Background()); got != nil {
		t.Errorf("expected nil identity from empty context, got %+v", got)
	}
	if got := UserIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty user ID from empty context, got %q", got)
	}

	identity := &model.Identity{ID: "user-123", Email: "ann@x.com", Name: "Ann"}
	ctx := ContextWithIdentity(context.Background(), identity)

	if got := IdentityFromContext(ctx); got != identity {
		t.Errorf("expected stored identity back, got %+v", got)
	}
	if got := UserIDFromContext(ctx); got != "user-123" {
		t.Errorf("expected user-123, got %q", got)
	}
}
