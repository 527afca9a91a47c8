package analyses

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Upsert inserts or replaces the analysis for a document.
func (r *PGRepo) Upsert(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (
    id,
    document_id,
    project_name,
    project_duration,
    human_resources_hierarchy,
    project_stages,
    special_conditions,
    implementation_boundaries,
    raw_analysis,
    analyzed_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (document_id) DO UPDATE SET
    project_name = EXCLUDED.project_name,
    project_duration = EXCLUDED.project_duration,
    human_resources_hierarchy = EXCLUDED.human_resources_hierarchy,
    project_stages = EXCLUDED.project_stages,
    special_conditions = EXCLUDED.special_conditions,
    implementation_boundaries = EXCLUDED.implementation_boundaries,
    raw_analysis = EXCLUDED.raw_analysis,
    analyzed_at = EXCLUDED.analyzed_at`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		analysis.ID,
		analysis.DocumentID,
		nullableString(analysis.ProjectName),
		nullableString(analysis.ProjectDuration),
		nullableString(analysis.HumanResourcesHierarchy),
		nullableString(analysis.ProjectStages),
		nullableString(analysis.SpecialConditions),
		nullableString(analysis.ImplementationBoundaries),
		analysis.RawAnalysis,
		analysis.AnalyzedAt,
	)
	return err
}

// GetByDocumentID returns the analysis attached to a document.
func (r *PGRepo) GetByDocumentID(ctx context.Context, documentID string) (Analysis, error) {
	const query = `
SELECT id, document_id, project_name, project_duration, human_resources_hierarchy,
       project_stages, special_conditions, implementation_boundaries, raw_analysis, analyzed_at
FROM analyses
WHERE document_id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, documentID)
	analysis, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	return analysis, nil
}

// GetByDocumentIDs returns analyses keyed by document ID.
func (r *PGRepo) GetByDocumentIDs(ctx context.Context, documentIDs []string) (map[string]Analysis, error) {
	out := make(map[string]Analysis, len(documentIDs))
	if len(documentIDs) == 0 {
		return out, nil
	}

	const query = `
SELECT id, document_id, project_name, project_duration, human_resources_hierarchy,
       project_stages, special_conditions, implementation_boundaries, raw_analysis, analyzed_at
FROM analyses
WHERE document_id = ANY($1::uuid[])`

	rows, err := r.DB.QueryContext(ctx, query, documentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out[analysis.DocumentID] = analysis
	}
	return out, rows.Err()
}

// DeleteByDocumentID removes the analysis for a document if one exists.
func (r *PGRepo) DeleteByDocumentID(ctx context.Context, documentID string) error {
	const query = `DELETE FROM analyses WHERE document_id = $1`
	_, err := r.DB.ExecContext(ctx, query, documentID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var analysis Analysis
	var projectName sql.NullString
	var projectDuration sql.NullString
	var hrHierarchy sql.NullString
	var projectStages sql.NullString
	var specialConditions sql.NullString
	var implementationBoundaries sql.NullString
	err := row.Scan(
		&analysis.ID,
		&analysis.DocumentID,
		&projectName,
		&projectDuration,
		&hrHierarchy,
		&projectStages,
		&specialConditions,
		&implementationBoundaries,
		&analysis.RawAnalysis,
		&analysis.AnalyzedAt,
	)
	if err != nil {
		return Analysis{}, err
	}
	if projectName.Valid {
		analysis.ProjectName = projectName.String
	}
	if projectDuration.Valid {
		analysis.ProjectDuration = projectDuration.String
	}
	if hrHierarchy.Valid {
		analysis.HumanResourcesHierarchy = hrHierarchy.String
	}
	if projectStages.Valid {
		analysis.ProjectStages = projectStages.String
	}
	if specialConditions.Valid {
		analysis.SpecialConditions = specialConditions.String
	}
	if implementationBoundaries.Valid {
		analysis.ImplementationBoundaries = implementationBoundaries.String
	}
	return analysis, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
