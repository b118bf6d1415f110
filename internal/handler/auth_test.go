package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mealdex/mealdex/internal/auth"
	"github.com/mealdex/mealdex/internal/handler/dto"
	"github.com/mealdex/mealdex/internal/model"
	"github.com/mealdex/mealdex/internal/repository"
	"github.com/mealdex/mealdex/internal/service"
)

// memUserStore is an in-memory UserStore for handler tests.
type memUserStore struct {
	byEmail map[string]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byEmail: make(map[string]*model.User)}
}

func (s *memUserStore) CreateUser(ctx context.Context, user *model.User) error {
	if _, ok := s.byEmail[user.Email]; ok {
		return repository.ErrEmailExists
	}
	u := *user
	s.byEmail[user.Email] = &u
	return nil
}

func (s *memUserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *memUserStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	for _, user := range s.byEmail {
		if user.ID == id {
			u := *user
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// stubTokenIssuer returns a fixed token.
type stubTokenIssuer struct {
	token string
}

func (s *stubTokenIssuer) Issue(subject, email, name string) (string, error) {
	return s.token, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAuthHandler() (*AuthHandler, *memUserStore) {
	store := newMemUserStore()
	svc := service.NewAuthService(store, &stubTokenIssuer{token: "test-token"})
	return NewAuthHandler(svc, testLogger(), false), store
}

func registerUser(t *testing.T, h *AuthHandler, name, email, password string) dto.UserResponse {
	t.Helper()

	body := `{"name":"` + name + `","email":"` + email + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response dto.UserResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return response
}

func TestAuthHandler_Register(t *testing.T) {
	h, store := newTestAuthHandler()

	response := registerUser(t, h, "Alice", "alice@example.com", "secret123")

	if response.ID == "" {
		t.Error("expected a generated user ID")
	}
	if response.Email != "alice@example.com" {
		t.Errorf("unexpected email: %s", response.Email)
	}
	if response.Name != "Alice" {
		t.Errorf("unexpected name: %s", response.Name)
	}

	stored, err := store.GetUserByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "secret123" {
		t.Error("password must be stored as a hash")
	}
}

func TestAuthHandler_Register_HashNotInResponse(t *testing.T) {
	h, _ := newTestAuthHandler()

	body := `{"name":"Alice","email":"alice@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if strings.Contains(rec.Body.String(), "argon2id") {
		t.Error("response must not contain the password hash")
	}
	if strings.Contains(rec.Body.String(), "secret123") {
		t.Error("response must not contain the password")
	}
}

func TestAuthHandler_Register_ValidationFailed(t *testing.T) {
	h, _ := newTestAuthHandler()

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@b.com","password":"pw"}`},
		{"missing email", `{"name":"A","password":"pw"}`},
		{"missing password", `{"name":"A","email":"a@b.com"}`},
		{"blank name", `{"name":"   ","email":"a@b.com","password":"pw"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Register(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	h, _ := newTestAuthHandler()
	registerUser(t, h, "Alice", "alice@example.com", "secret123")

	body := `{"name":"Imposter","email":"alice@example.com","password":"other"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rec.Code)
	}

	var response dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Code != "EMAIL_TAKEN" {
		t.Errorf("expected code EMAIL_TAKEN, got %s", response.Code)
	}
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	h, _ := newTestAuthHandler()
	registerUser(t, h, "Alice", "alice@example.com", "secret123")

	body := `{"email":"alice@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	c := cookies[0]
	if c.Name != auth.CookieName {
		t.Errorf("expected cookie name %q, got %q", auth.CookieName, c.Name)
	}
	if c.Value != "test-token" {
		t.Errorf("unexpected cookie value: %s", c.Value)
	}
	if !c.HttpOnly {
		t.Error("cookie must be HttpOnly")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Error("cookie must be SameSite=Lax")
	}
	if c.Secure {
		t.Error("cookie must not be Secure outside production")
	}
	if c.Path != "/" {
		t.Errorf("expected cookie path /, got %s", c.Path)
	}
	if c.MaxAge != 86400 {
		t.Errorf("expected MaxAge 86400, got %d", c.MaxAge)
	}
}

func TestAuthHandler_Login_SecureCookieInProduction(t *testing.T) {
	store := newMemUserStore()
	svc := service.NewAuthService(store, &stubTokenIssuer{token: "test-token"})
	h := NewAuthHandler(svc, testLogger(), true)
	registerUser(t, h, "Alice", "alice@example.com", "secret123")

	body := `{"email":"alice@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if !cookies[0].Secure {
		t.Error("cookie must be Secure in production")
	}
}

func TestAuthHandler_Login_FailuresAreIndistinguishable(t *testing.T) {
	h, _ := newTestAuthHandler()
	registerUser(t, h, "Alice", "alice@example.com", "secret123")

	login := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Login(rec, req)
		return rec
	}

	unknownEmail := login(`{"email":"nobody@example.com","password":"secret123"}`)
	wrongPassword := login(`{"email":"alice@example.com","password":"wrong"}`)

	if unknownEmail.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 for unknown email, got %d", unknownEmail.Code)
	}
	if wrongPassword.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 for wrong password, got %d", wrongPassword.Code)
	}

	if !bytes.Equal(unknownEmail.Body.Bytes(), wrongPassword.Body.Bytes()) {
		t.Errorf("failure bodies must be identical:\n%s\n%s",
			unknownEmail.Body.String(), wrongPassword.Body.String())
	}

	if len(unknownEmail.Result().Cookies()) != 0 {
		t.Error("failed login must not set a cookie")
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	h, _ := newTestAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	c := cookies[0]
	if c.Name != auth.CookieName {
		t.Errorf("expected cookie name %q, got %q", auth.CookieName, c.Name)
	}
	if c.Value != "" {
		t.Errorf("expected empty cookie value, got %s", c.Value)
	}
	if c.MaxAge != -1 {
		t.Errorf("expected MaxAge -1, got %d", c.MaxAge)
	}
}

func TestAuthHandler_Session(t *testing.T) {
	h, _ := newTestAuthHandler()

	t.Run("anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
		rec := httptest.NewRecorder()

		h.Session(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("authenticated", func(t *testing.T) {
		identity := &model.Identity{ID: "u1", Email: "alice@example.com", Name: "Alice"}
		req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
		req = req.WithContext(auth.ContextWithIdentity(req.Context(), identity))
		rec := httptest.NewRecorder()

		h.Session(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}

		var response dto.SessionResponse
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if response.User.ID != "u1" {
			t.Errorf("unexpected user ID: %s", response.User.ID)
		}
	})
}

func TestAuthHandler_Check(t *testing.T) {
	h, _ := newTestAuthHandler()

	t.Run("anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
		rec := httptest.NewRecorder()

		h.Check(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("authenticated", func(t *testing.T) {
		identity := &model.Identity{ID: "u1"}
		req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
		req = req.WithContext(auth.ContextWithIdentity(req.Context(), identity))
		rec := httptest.NewRecorder()

		h.Check(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}

		var response dto.CheckResponse
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if !response.Authenticated {
			t.Error("expected authenticated true")
		}
	})
}
