package analyses

import "context"

// Repo defines persistence operations for analyses.
type Repo interface {
	// Upsert inserts the analysis for a document, replacing any previous one
	// (re-analyzing a document overwrites its earlier result).
	Upsert(ctx context.Context, analysis Analysis) error
	GetByDocumentID(ctx context.Context, documentID string) (Analysis, error)
	// GetByDocumentIDs returns the analyses for the given documents keyed by
	// document ID; documents without an analysis are simply absent.
	GetByDocumentIDs(ctx context.Context, documentIDs []string) (map[string]Analysis, error)
	DeleteByDocumentID(ctx context.Context, documentID string) error
}
