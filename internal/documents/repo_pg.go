package documents

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// PGRepo implements DocumentsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document. The owner's user row is locked for the
// duration of the transaction so two concurrent uploads cannot both pass the
// cap check.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var ownerID string
	if err := tx.QueryRowContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, doc.UserID).Scan(&ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidInput
		}
		return err
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE user_id = $1`, doc.UserID).Scan(&count); err != nil {
		return err
	}
	if count >= MaxPerUser {
		return ErrCapExceeded
	}

	const insert = `
INSERT INTO documents (id, user_id, file_name, storage_key, content_type, size_bytes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := tx.ExecContext(ctx, insert,
		doc.ID,
		doc.UserID,
		doc.FileName,
		doc.StorageKey,
		doc.ContentType,
		doc.SizeBytes,
		doc.CreatedAt,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID fetches a document by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userId, documentID string) (Document, error) {
	// The column is uuid-typed; a malformed id would fail the whole query
	// instead of matching nothing.
	if !isUUID(documentID) {
		return Document{}, ErrNotFound
	}
	const query = `
SELECT id, user_id, file_name, storage_key, content_type, size_bytes, created_at
FROM documents
WHERE user_id = $1 AND id = $2
LIMIT 1`
	var doc Document
	err := r.DB.QueryRowContext(ctx, query, userId, documentID).Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.StorageKey,
		&doc.ContentType,
		&doc.SizeBytes,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// GetByIDs resolves ids to documents owned by the user, oldest-first.
// Malformed ids are dropped up front: they cannot match any row, and the
// `::uuid[]` cast would otherwise reject the entire query.
func (r *PGRepo) GetByIDs(ctx context.Context, userId string, documentIDs []string) ([]Document, error) {
	valid := make([]string, 0, len(documentIDs))
	for _, id := range documentIDs {
		if isUUID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return nil, nil
	}
	documentIDs = valid
	const query = `
SELECT id, user_id, file_name, storage_key, content_type, size_bytes, created_at
FROM documents
WHERE user_id = $1 AND id = ANY($2::uuid[])
ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, userId, documentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDocuments(rows)
}

// ListByUser lists documents ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userId string) ([]Document, error) {
	const query = `
SELECT id, user_id, file_name, storage_key, content_type, size_bytes, created_at
FROM documents
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDocuments(rows)
}

// Delete removes the document; the analysis row goes with it via the FK
// cascade. Returns the deleted document for file cleanup.
func (r *PGRepo) Delete(ctx context.Context, userId, documentID string) (Document, error) {
	if !isUUID(documentID) {
		return Document{}, ErrNotFound
	}
	const query = `
DELETE FROM documents
WHERE user_id = $1 AND id = $2
RETURNING id, user_id, file_name, storage_key, content_type, size_bytes, created_at`
	var doc Document
	err := r.DB.QueryRowContext(ctx, query, userId, documentID).Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.StorageKey,
		&doc.ContentType,
		&doc.SizeBytes,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func collectDocuments(rows *sql.Rows) ([]Document, error) {
	var out []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(
			&doc.ID,
			&doc.UserID,
			&doc.FileName,
			&doc.StorageKey,
			&doc.ContentType,
			&doc.SizeBytes,
			&doc.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

var _ DocumentsRepo = (*PGRepo)(nil)
