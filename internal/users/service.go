package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"projectdocs-backend/internal/shared/auth"
)

const minPasswordLength = 8

// Service owns account registration and credential checks.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates a password-based account and returns a signed token.
func (s *Service) Register(ctx context.Context, email, password, confirmPassword string) (AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return AuthResponse{}, ErrInvalidInput
	}
	if password != confirmPassword {
		return AuthResponse{}, ErrPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return AuthResponse{}, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return AuthResponse{}, err
	}

	return s.issueToken(user)
}

// Login verifies credentials and returns a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResponse{}, ErrInvalidCredentials
		}
		return AuthResponse{}, err
	}
	if user.PasswordHash == "" {
		// OAuth-only account, no password to compare.
		return AuthResponse{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return AuthResponse{}, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// UpsertFromOAuth creates or refreshes an account from an OAuth profile
// and returns a signed token for it.
func (s *Service) UpsertFromOAuth(ctx context.Context, email, fullName, pictureURL string) (AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return AuthResponse{}, ErrInvalidInput
	}
	user, err := s.Repo.UpsertOAuth(ctx, User{
		ID:         uuid.NewString(),
		Email:      email,
		FullName:   fullName,
		PictureURL: pictureURL,
	})
	if err != nil {
		return AuthResponse{}, err
	}
	return s.issueToken(user)
}

func (s *Service) issueToken(user User) (AuthResponse, error) {
	token, expiresAt, err := auth.SignJWT(user.ID, user.Email, user.FullName)
	if err != nil {
		return AuthResponse{}, err
	}
	return AuthResponse{Token: token, Email: user.Email, ExpiresAt: expiresAt}, nil
}
