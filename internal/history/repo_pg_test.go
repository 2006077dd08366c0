package history

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"claritydocs-backend/internal/analysis"
)

func TestPGRepoCreateInsertsNullableColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	rec := Record{
		ID:           "rec-1",
		UserID:       "user-1",
		DocumentName: "lease.pdf",
		DocumentType: "Rental Agreement",
		Content:      "the tenant shall...",
		Summary: &analysis.PlainLanguageSummary{
			Summary: []analysis.SummaryPoint{{KeyPoint: "Rent", Description: "Due on the 1st."}},
			Dos:     []string{"Pay on time"},
			Donts:   []string{},
		},
		UploadedAt: time.Now().UTC(),
		FileType:   "pdf",
		FileSize:   2048,
		StorageKey: "uploads/user-1/rec-1",
	}

	mock.ExpectExec("INSERT INTO document_history").
		WithArgs(
			rec.ID,
			rec.UserID,
			rec.DocumentName,
			rec.DocumentType,
			rec.Content,
			sqlmock.AnyArg(), // summary JSON
			rec.UploadedAt,
			rec.FileType,
			rec.FileSize,
			rec.StorageKey,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByUserClampsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	cols := []string{"id", "user_id", "document_name", "document_type", "content", "summary", "uploaded_at", "file_type", "file_size", "storage_key"}
	rows := sqlmock.NewRows(cols).
		AddRow("rec-2", "user-1", "newer.pdf", nil, "text", nil, time.Now().UTC(), nil, nil, nil).
		AddRow("rec-1", "user-1", "older.pdf", "Loan Agreement", "text", []byte(`{"summary":[{"keyPoint":"k","description":"d"}],"dos":[],"donts":[]}`), time.Now().UTC().Add(-time.Hour), "pdf", int64(100), "uploads/user-1/rec-1")

	mock.ExpectQuery("SELECT (.+) FROM document_history").
		WithArgs("user-1", DefaultListLimit).
		WillReturnRows(rows)

	recs, err := repo.ListByUser(context.Background(), "user-1", 500)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].ID != "rec-2" {
		t.Fatalf("expected newest record first, got %s", recs[0].ID)
	}
	if recs[1].Summary == nil || len(recs[1].Summary.Summary) != 1 {
		t.Fatalf("expected decoded summary on rec-1, got %+v", recs[1].Summary)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateBuildsPartialSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	name := "renamed.pdf"
	now := time.Now().UTC()

	mock.ExpectExec("UPDATE document_history SET uploaded_at = \\$1, document_name = \\$2 WHERE user_id = \\$3 AND id = \\$4").
		WithArgs(now, name, "user-1", "rec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Update(context.Background(), "user-1", "rec-1", Patch{DocumentName: &name}, now)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateMissingRowReturnsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	content := "new text"
	now := time.Now().UTC()

	mock.ExpectExec("UPDATE document_history").
		WithArgs(now, content, "user-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), "user-1", "missing", Patch{Content: &content}, now)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDeleteMissingRowReturnsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("DELETE FROM document_history").
		WithArgs("user-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "user-1", "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
