package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mealdex/mealdex/internal/auth"
	"github.com/mealdex/mealdex/internal/handler/dto"
	"github.com/mealdex/mealdex/internal/service"
)

// AuthHandler handles registration, login, logout, and session checks.
type AuthHandler struct {
	svc          *service.AuthService
	logger       *slog.Logger
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie controls the
// Secure attribute on the session cookie (true in production).
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		svc:          svc,
		logger:       logger,
		secureCookie: secureCookie,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Name, email, and password are required")
		return
	}

	user, err := h.svc.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_registered", "user_id", user.ID)

	writeJSON(w, http.StatusCreated, dto.ToUserResponse(user))
}

// Login handles POST /api/auth/login.
// On success it sets the session cookie and returns the public user.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Email and password are required")
		return
	}

	result, err := h.svc.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_logged_in", "user_id", result.User.ID)

	http.SetCookie(w, auth.NewSessionCookie(result.Token, h.secureCookie))
	writeJSON(w, http.StatusOK, dto.ToUserResponse(result.User))
}

// Logout handles POST /api/auth/logout.
// Tokens are stateless, so this only clears the client's cookie; an
// already-issued token stays valid until its natural expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ExpiredSessionCookie(h.secureCookie))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Session handles GET /api/auth/session.
// Returns the current identity or a uniform 401.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionResponse{User: *identity})
}

// Check handles GET /api/auth/check.
// A lightweight authenticated-or-not probe for the client.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if auth.IdentityFromContext(r.Context()) == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, dto.CheckResponse{Authenticated: true})
}

// handleServiceError maps auth service errors to HTTP responses.
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "EMAIL_TAKEN", "Email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		// Identical body for unknown email and wrong password.
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
