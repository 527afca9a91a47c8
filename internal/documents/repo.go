package documents

import "context"

// DocumentsRepo defines persistence operations for documents.
type DocumentsRepo interface {
	// Create inserts a new document, enforcing the per-user cap inside the
	// same transaction as the insert. Returns ErrCapExceeded at the limit.
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userId, documentID string) (Document, error)
	// GetByIDs resolves the given ids to documents owned by the user,
	// oldest-first. Ids that are unknown or owned by someone else are
	// silently dropped.
	GetByIDs(ctx context.Context, userId string, documentIDs []string) ([]Document, error)
	ListByUser(ctx context.Context, userId string) ([]Document, error)
	// Delete removes the document and returns it so the caller can clean up
	// the stored file. Returns ErrNotFound if absent or owned by someone else.
	Delete(ctx context.Context, userId, documentID string) (Document, error)
}
