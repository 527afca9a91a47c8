package users

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	t.Setenv("JWT_SECRET", "users-test-secret")
	return NewService(NewMemoryRepo())
}

func TestRegisterIssuesToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, "New.User@Example.com", "longenough", "longenough")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected a token")
	}
	if res.Email != "new.user@example.com" {
		t.Fatalf("expected normalized email, got %q", res.Email)
	}
	if !res.ExpiresAt.After(time.Now().Add(6 * 24 * time.Hour)) {
		t.Fatalf("expected roughly week-long expiry, got %v", res.ExpiresAt)
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(context.Background(), "a@example.com", "longenough", "different")
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(context.Background(), "a@example.com", "short", "short")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "dup@example.com", "longenough", "longenough"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(ctx, "dup@example.com", "longenough", "longenough")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "login@example.com", "longenough", "longenough"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	res, err := svc.Login(ctx, "login@example.com", "longenough")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected a token")
	}

	if _, err := svc.Login(ctx, "login@example.com", "wrongpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for a bad password, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "longenough"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for an unknown email, got %v", err)
	}
}

func TestLoginRejectsOAuthOnlyAccount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.UpsertFromOAuth(ctx, "oauth@example.com", "O Auth", ""); err != nil {
		t.Fatalf("UpsertFromOAuth: %v", err)
	}
	if _, err := svc.Login(ctx, "oauth@example.com", "whatever123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for an oauth-only account, got %v", err)
	}
}

func TestUpsertFromOAuthIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.UpsertFromOAuth(ctx, "same@example.com", "First Name", "")
	if err != nil {
		t.Fatalf("first UpsertFromOAuth: %v", err)
	}
	second, err := svc.UpsertFromOAuth(ctx, "same@example.com", "Updated Name", "pic")
	if err != nil {
		t.Fatalf("second UpsertFromOAuth: %v", err)
	}
	if first.Email != second.Email {
		t.Fatalf("expected the same account, got %q and %q", first.Email, second.Email)
	}

	user, err := svc.Repo.GetByEmail(ctx, "same@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if user.FullName != "Updated Name" {
		t.Fatalf("expected refreshed profile, got %q", user.FullName)
	}
}
