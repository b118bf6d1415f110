// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mealdex/mealdex/internal/auth"
	"github.com/mealdex/mealdex/internal/model"
	"github.com/mealdex/mealdex/internal/repository"
)

// Auth service errors.
var (
	// ErrEmailTaken is returned when registering with an email that exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// callers must render the two identically to avoid user enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore is the credential store the auth service needs.
// *repository.Repository satisfies it.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// TokenIssuer mints signed session tokens.
type TokenIssuer interface {
	Issue(subject, email, name string) (string, error)
}

// AuthService handles registration and login.
type AuthService struct {
	users  UserStore
	tokens TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// RegisterInput defines input for registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new account. Returns ErrEmailTaken if the email is
// already registered. The returned user carries the public projection;
// the password hash never leaves the service boundary in responses.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if _, err := s.users.GetUserByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		// Race backstop: a concurrent registration won the unique constraint.
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput defines input for login.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the authenticated user and the session token the
// handler sets as a cookie.
type LoginResult struct {
	User  *model.User
	Token string
}

// Login verifies credentials and issues a session token. An unknown email
// and a wrong password both yield ErrInvalidCredentials so the responses
// are indistinguishable.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.users.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	match, err := auth.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !match {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{User: user, Token: token}, nil
}
