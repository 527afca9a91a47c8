package documents

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"projectdocs-backend/internal/shared/storage/object"
	"projectdocs-backend/internal/shared/telemetry"
)

// AnalysisLookup is the slice of the analyses store this package needs.
type AnalysisLookup interface {
	GetByDocumentIDs(ctx context.Context, documentIDs []string) (map[string]AnalysisRecord, error)
	DeleteByDocumentID(ctx context.Context, documentID string) error
}

// Service contains business logic for documents.
type Service struct {
	Store    object.ObjectStore
	Repo     DocumentsRepo
	Analyses AnalysisLookup
}

// Upload validates the declared content type, saves the file and records the
// document. The per-user cap is enforced by the repo inside the insert
// transaction; if it rejects the insert the stored file is removed again.
func (s *Service) Upload(ctx context.Context, userId, fileName, contentType string, r io.Reader) (Document, error) {
	if fileName == "" {
		return Document{}, ErrInvalidInput
	}
	normalized := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if _, ok := AllowedContentTypes[normalized]; !ok {
		return Document{}, ErrInvalidContentType
	}

	storageKey, size, err := s.Store.Save(ctx, userId, fileName, r)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		ID:          uuid.NewString(),
		UserID:      userId,
		FileName:    fileName,
		StorageKey:  storageKey,
		ContentType: normalized,
		SizeBytes:   size,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		if delErr := s.Store.Delete(ctx, storageKey); delErr != nil {
			telemetry.Warn("upload.cleanup_failed", map[string]any{
				"storage_key": storageKey,
				"error":       delErr.Error(),
			})
		}
		return Document{}, err
	}

	return doc, nil
}

// List returns the user's documents, newest first, with any attached analysis.
func (s *Service) List(ctx context.Context, userId string) ([]DocumentResponse, error) {
	if userId == "" {
		return nil, errors.New("user id required")
	}
	docs, err := s.Repo.ListByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}

	var byDoc map[string]AnalysisRecord
	if s.Analyses != nil && len(ids) > 0 {
		byDoc, err = s.Analyses.GetByDocumentIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	out := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		var analysis *AnalysisRecord
		if rec, ok := byDoc[doc.ID]; ok {
			a := rec
			analysis = &a
		}
		out = append(out, toResponse(doc, analysis))
	}
	return out, nil
}

// Delete removes a document, its stored file and its analysis.
func (s *Service) Delete(ctx context.Context, userId, documentID string) error {
	doc, err := s.Repo.Delete(ctx, userId, documentID)
	if err != nil {
		return err
	}

	if err := s.Store.Delete(ctx, doc.StorageKey); err != nil {
		telemetry.Warn("delete.file_cleanup_failed", map[string]any{
			"document_id": documentID,
			"storage_key": doc.StorageKey,
			"error":       err.Error(),
		})
	}

	// Postgres cascades this via the FK; the explicit delete keeps the
	// in-memory repositories consistent too.
	if s.Analyses != nil {
		if err := s.Analyses.DeleteByDocumentID(ctx, documentID); err != nil {
			telemetry.Warn("delete.analysis_cleanup_failed", map[string]any{
				"document_id": documentID,
				"error":       err.Error(),
			})
		}
	}
	return nil
}
