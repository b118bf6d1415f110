// Package dto defines request and response shapes for the HTTP API.
package dto

import "github.com/mealdex/mealdex/internal/model"

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// RegisterRequest is the body for POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public user projection returned by auth endpoints.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToUserResponse converts a user to its public projection.
func ToUserResponse(user *model.User) UserResponse {
	public := user.Public()
	return UserResponse{
		ID:    public.ID,
		Name:  public.Name,
		Email: public.Email,
	}
}

// SessionResponse is the body for GET /api/auth/session.
type SessionResponse struct {
	User model.Identity `json:"user"`
}

// CheckResponse is the body for GET /api/auth/check.
type CheckResponse struct {
	Authenticated bool `json:"authenticated"`
}
