package analyses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"projectdocs-backend/internal/documents"
	"projectdocs-backend/internal/extract"
	"projectdocs-backend/internal/llm"
	"projectdocs-backend/internal/shared/metrics"
	"projectdocs-backend/internal/shared/storage/object"
	"projectdocs-backend/internal/shared/telemetry"
)

// Service sequences extraction, the single model call and per-document
// persistence for a batch of documents.
type Service struct {
	Repo    Repo
	DocRepo documents.DocumentsRepo
	Store   object.ObjectStore
	LLM     llm.Client
}

// AnalyzeBatch analyzes the given documents for a user. Ids that do not
// resolve to the caller are dropped; per-document extraction and parse
// failures are logged and absorbed. The whole operation only fails when
// nothing resolved or the one remote call failed.
func (s *Service) AnalyzeBatch(ctx context.Context, userID string, documentIDs []string) error {
	docs, err := s.DocRepo.GetByIDs(ctx, userID, documentIDs)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return ErrNoDocuments
	}

	metrics.IncBatchStarted()
	start := time.Now()

	var combined strings.Builder
	for _, doc := range docs {
		text, err := extract.Text(ctx, s.Store, doc.StorageKey, doc.ContentType)
		if err != nil {
			metrics.IncExtractionFailed()
			telemetry.Error("analyze.extract_failed", map[string]any{
				"document_id": doc.ID,
				"user_id":     userID,
				"error":       err.Error(),
			})
			continue
		}
		fmt.Fprintf(&combined, "--- Document: %s ---\n%s\n\n", doc.FileName, text)
	}

	raw, err := s.LLM.Analyze(ctx, combined.String())
	if err != nil {
		metrics.IncUpstreamFailed()
		telemetry.Error("analyze.model_call_failed", map[string]any{
			"user_id":   userID,
			"documents": len(docs),
			"error":     err.Error(),
		})
		return err
	}

	persisted := 0
	for _, doc := range docs {
		fields, err := ParseFields(raw)
		if err != nil {
			metrics.IncParseFailed()
			telemetry.Error("analyze.parse_failed", map[string]any{
				"document_id": doc.ID,
				"user_id":     userID,
				"error":       err.Error(),
			})
			continue
		}

		analysis := Analysis{
			ID:                       uuid.NewString(),
			DocumentID:               doc.ID,
			ProjectName:              fields.ProjectName,
			ProjectDuration:          fields.ProjectDuration,
			HumanResourcesHierarchy:  fields.HumanResourcesHierarchy,
			ProjectStages:            fields.ProjectStages,
			SpecialConditions:        fields.SpecialConditions,
			ImplementationBoundaries: fields.ImplementationBoundaries,
			RawAnalysis:              raw,
			AnalyzedAt:               time.Now().UTC(),
		}
		if err := s.Repo.Upsert(ctx, analysis); err != nil {
			telemetry.Error("analyze.persist_failed", map[string]any{
				"document_id": doc.ID,
				"user_id":     userID,
				"error":       err.Error(),
			})
			continue
		}
		persisted++
	}

	metrics.IncBatchCompleted()
	metrics.AddDocumentsAnalyzed(persisted)
	metrics.ObserveBatchDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)

	telemetry.Info("analyze.batch_complete", map[string]any{
		"user_id":   userID,
		"resolved":  len(docs),
		"persisted": persisted,
	})
	return nil
}
