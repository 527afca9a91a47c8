package users

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]string // email -> id
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:    make(map[string]User),
		byEmail: make(map[string]string),
	}
}

// Create inserts a new account.
func (r *MemoryRepo) Create(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, taken := r.byEmail[key]; taken {
		return ErrEmailTaken
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	r.byID[user.ID] = user
	r.byEmail[key] = user.ID
	return nil
}

// GetByEmail fetches an account by email.
func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.byID[id], nil
}

// GetByID fetches an account by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

// UpsertOAuth inserts or refreshes an account keyed by email.
func (r *MemoryRepo) UpsertOAuth(ctx context.Context, user User) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(user.Email)
	if id, ok := r.byEmail[key]; ok {
		existing := r.byID[id]
		existing.FullName = user.FullName
		existing.PictureURL = user.PictureURL
		existing.UpdatedAt = time.Now().UTC()
		r.byID[id] = existing
		return existing, nil
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	r.byID[user.ID] = user
	r.byEmail[key] = user.ID
	return user, nil
}

var _ Repo = (*MemoryRepo)(nil)
