package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new account.
func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, password_hash, full_name, picture_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		nullableString(user.PasswordHash),
		nullableString(user.FullName),
		nullableString(user.PictureURL),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// GetByEmail fetches an account by email.
func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `
SELECT id, email, password_hash, full_name, picture_url, created_at, updated_at
FROM users
WHERE email = $1
LIMIT 1`
	return r.queryOne(ctx, query, email)
}

// GetByID fetches an account by ID.
func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, email, password_hash, full_name, picture_url, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`
	return r.queryOne(ctx, query, userID)
}

// UpsertOAuth inserts or refreshes an account keyed by email.
func (r *PGRepo) UpsertOAuth(ctx context.Context, user User) (User, error) {
	const query = `
INSERT INTO users (id, email, full_name, picture_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
ON CONFLICT (email) DO UPDATE SET
  full_name = EXCLUDED.full_name,
  picture_url = EXCLUDED.picture_url,
  updated_at = now()
RETURNING id, email, password_hash, full_name, picture_url, created_at, updated_at`
	row := r.DB.QueryRowContext(ctx, query,
		user.ID,
		user.Email,
		nullableString(user.FullName),
		nullableString(user.PictureURL),
	)
	return scanUser(row)
}

func (r *PGRepo) queryOne(ctx context.Context, query string, arg any) (User, error) {
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var user User
	var passwordHash sql.NullString
	var fullName sql.NullString
	var pictureURL sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Email,
		&passwordHash,
		&fullName,
		&pictureURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return User{}, err
	}
	if passwordHash.Valid {
		user.PasswordHash = passwordHash.String
	}
	if fullName.Valid {
		user.FullName = fullName.String
	}
	if pictureURL.Valid {
		user.PictureURL = pictureURL.String
	}
	return user, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
