package users

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPGRepoCreateMapsUniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("INSERT INTO users").
		WithArgs("user-1", "dup@example.com", "hash", nil, nil).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_email_key"})

	err = repo.Create(context.Background(), User{
		ID:           "user-1",
		Email:        "dup@example.com",
		PasswordHash: "hash",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestPGRepoGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT id, email").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "password_hash", "full_name", "picture_url", "created_at", "updated_at",
		}))

	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
