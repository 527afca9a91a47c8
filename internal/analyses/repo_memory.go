package analyses

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Analysis // documentID -> analysis
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Analysis),
	}
}

// Upsert stores/replaces the analysis for a document.
func (r *MemoryRepo) Upsert(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[analysis.DocumentID] = analysis
	return nil
}

// GetByDocumentID returns the analysis attached to a document.
func (r *MemoryRepo) GetByDocumentID(ctx context.Context, documentID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	analysis, ok := r.data[documentID]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

// GetByDocumentIDs returns analyses keyed by document ID.
func (r *MemoryRepo) GetByDocumentIDs(ctx context.Context, documentIDs []string) (map[string]Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Analysis, len(documentIDs))
	for _, id := range documentIDs {
		if analysis, ok := r.data[id]; ok {
			out[id] = analysis
		}
	}
	return out, nil
}

// DeleteByDocumentID removes the analysis for a document if one exists.
func (r *MemoryRepo) DeleteByDocumentID(ctx context.Context, documentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, documentID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
