package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"claritydocs-backend/internal/analysis"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new history record.
func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO document_history (
    id,
    user_id,
    document_name,
    document_type,
    content,
    summary,
    uploaded_at,
    file_type,
    file_size,
    storage_key
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	summary, err := marshalSummary(rec.Summary)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.UserID,
		rec.DocumentName,
		nullableString(rec.DocumentType),
		rec.Content,
		summary,
		rec.UploadedAt,
		nullableString(rec.FileType),
		nullableInt(rec.FileSize),
		nullableString(rec.StorageKey),
	)
	return err
}

const recordColumns = `id, user_id, document_name, document_type, content, summary, uploaded_at, file_type, file_size, storage_key`

// GetByID fetches a record by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, recordID string) (Record, error) {
	query := `
SELECT ` + recordColumns + `
FROM document_history
WHERE user_id = $1 AND id = $2
LIMIT 1`
	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, userID, recordID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

// ListByUser lists records newest-first by uploaded_at.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Record, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	query := `
SELECT ` + recordColumns + `
FROM document_history
WHERE user_id = $1
ORDER BY uploaded_at DESC
LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Update merges the patch and refreshes uploaded_at, re-surfacing the record
// at the top of the list ordering.
func (r *PGRepo) Update(ctx context.Context, userID, recordID string, patch Patch, uploadedAt time.Time) error {
	sets := []string{"uploaded_at = $1"}
	args := []any{uploadedAt}

	if patch.DocumentName != nil {
		args = append(args, *patch.DocumentName)
		sets = append(sets, fmt.Sprintf("document_name = $%d", len(args)))
	}
	if patch.DocumentType != nil {
		args = append(args, nullableString(*patch.DocumentType))
		sets = append(sets, fmt.Sprintf("document_type = $%d", len(args)))
	}
	if patch.Content != nil {
		args = append(args, *patch.Content)
		sets = append(sets, fmt.Sprintf("content = $%d", len(args)))
	}
	if patch.Summary != nil {
		summary, err := marshalSummary(patch.Summary)
		if err != nil {
			return err
		}
		args = append(args, summary)
		sets = append(sets, fmt.Sprintf("summary = $%d", len(args)))
	}

	args = append(args, userID)
	userArg := len(args)
	args = append(args, recordID)
	idArg := len(args)

	query := fmt.Sprintf(
		"UPDATE document_history SET %s WHERE user_id = $%d AND id = $%d",
		strings.Join(sets, ", "), userArg, idArg,
	)

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a record permanently. No soft-delete, no undo.
func (r *PGRepo) Delete(ctx context.Context, userID, recordID string) error {
	const query = `DELETE FROM document_history WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, recordID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var documentType sql.NullString
	var summary []byte
	var fileType sql.NullString
	var fileSize sql.NullInt64
	var storageKey sql.NullString
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.DocumentName,
		&documentType,
		&rec.Content,
		&summary,
		&rec.UploadedAt,
		&fileType,
		&fileSize,
		&storageKey,
	)
	if err != nil {
		return Record{}, err
	}
	if documentType.Valid {
		rec.DocumentType = documentType.String
	}
	if len(summary) > 0 {
		var parsed analysis.PlainLanguageSummary
		if err := json.Unmarshal(summary, &parsed); err != nil {
			return Record{}, fmt.Errorf("decode summary for record %s: %w", rec.ID, err)
		}
		rec.Summary = &parsed
	}
	if fileType.Valid {
		rec.FileType = fileType.String
	}
	if fileSize.Valid {
		rec.FileSize = fileSize.Int64
	}
	if storageKey.Valid {
		rec.StorageKey = storageKey.String
	}
	return rec, nil
}

func marshalSummary(summary *analysis.PlainLanguageSummary) (any, error) {
	if summary == nil {
		return nil, nil
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}
	return data, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt(value int64) any {
	if value == 0 {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
