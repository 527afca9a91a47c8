package documents

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of DocumentsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Document // userId -> documents
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Document),
	}
}

// Create stores a document for a user, enforcing the per-user cap under the
// repo lock.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.data[doc.UserID]) >= MaxPerUser {
		return ErrCapExceeded
	}
	r.data[doc.UserID] = append(r.data[doc.UserID], doc)
	return nil
}

// GetByID returns a document by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userId, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := r.data[userId]
	for i := range docs {
		if docs[i].ID == documentID {
			return docs[i], nil
		}
	}
	return Document{}, ErrNotFound
}

// GetByIDs resolves ids to documents owned by the user, oldest-first.
// Unknown or unowned ids are dropped.
func (r *MemoryRepo) GetByIDs(ctx context.Context, userId string, documentIDs []string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wanted := make(map[string]struct{}, len(documentIDs))
	for _, id := range documentIDs {
		wanted[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Document
	for _, doc := range r.data[userId] {
		if _, ok := wanted[doc.ID]; ok {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// ListByUser returns documents for a user, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userId string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	userDocs := r.data[userId]
	r.mu.RUnlock()

	docs := make([]Document, len(userDocs))
	copy(docs, userDocs)
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

// Delete removes a document for a user.
func (r *MemoryRepo) Delete(ctx context.Context, userId, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	docs := r.data[userId]
	for i := range docs {
		if docs[i].ID == documentID {
			deleted := docs[i]
			r.data[userId] = append(docs[:i], docs[i+1:]...)
			return deleted, nil
		}
	}
	return Document{}, ErrNotFound
}

var _ DocumentsRepo = (*MemoryRepo)(nil)
