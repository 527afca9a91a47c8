package users

import "context"

// Repo defines persistence operations for users.
type Repo interface {
	// Create inserts a new account. Returns ErrEmailTaken when the email is
	// already registered.
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
	// UpsertOAuth inserts or refreshes an account keyed by email and returns
	// the stored row. The password hash of an existing account is untouched.
	UpsertOAuth(ctx context.Context, user User) (User, error)
}
