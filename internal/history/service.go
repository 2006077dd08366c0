package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"claritydocs-backend/internal/analysis"
	"claritydocs-backend/internal/fault"
)

// NewRecord carries the caller-supplied fields for a new history entry.
type NewRecord struct {
	DocumentName string
	DocumentType string
	Content      string
	Summary      *analysis.PlainLanguageSummary
	FileType     string
	FileSize     int64
	StorageKey   string
}

// Service applies ownership and validation rules on top of a Repo.
type Service struct {
	repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new record for ownerID, returning the stored record.
func (s *Service) Create(ctx context.Context, ownerID string, in NewRecord) (Record, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Record{}, fault.Validation("owner id is required")
	}
	if strings.TrimSpace(in.DocumentName) == "" {
		return Record{}, fault.Validation("document name is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return Record{}, fault.Validation("document content is required")
	}
	if !analysis.ValidAgreementType(in.DocumentType) {
		return Record{}, fault.Validation("unknown document type")
	}

	rec := Record{
		ID:           uuid.NewString(),
		UserID:       ownerID,
		DocumentName: in.DocumentName,
		DocumentType: in.DocumentType,
		Content:      in.Content,
		Summary:      in.Summary,
		UploadedAt:   time.Now().UTC(),
		FileType:     in.FileType,
		FileSize:     in.FileSize,
		StorageKey:   in.StorageKey,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, fault.Persistence("could not save document", err)
	}
	return rec, nil
}

// List returns ownerID's records newest-first, at most limit entries.
// Callers may only list their own history.
func (s *Service) List(ctx context.Context, callerID, ownerID string, limit int) ([]Record, error) {
	if callerID != ownerID {
		return nil, fault.Permission("cannot read another user's history")
	}
	recs, err := s.repo.ListByUser(ctx, ownerID, limit)
	if err != nil {
		return nil, fault.Persistence("could not load history", err)
	}
	if recs == nil {
		recs = []Record{}
	}
	return recs, nil
}

// Get returns a single record owned by callerID.
func (s *Service) Get(ctx context.Context, callerID, recordID string) (Record, error) {
	rec, err := s.repo.GetByID(ctx, callerID, recordID)
	if errors.Is(err, ErrNotFound) {
		return Record{}, err
	}
	if err != nil {
		return Record{}, fault.Persistence("could not load document", err)
	}
	return rec, nil
}

// Update applies patch to a record owned by callerID and refreshes its
// UploadedAt stamp, returning the updated record.
func (s *Service) Update(ctx context.Context, callerID, recordID string, patch Patch) (Record, error) {
	if patch.Empty() {
		return Record{}, fault.Validation("no fields to update")
	}
	if patch.DocumentName != nil && strings.TrimSpace(*patch.DocumentName) == "" {
		return Record{}, fault.Validation("document name cannot be empty")
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return Record{}, fault.Validation("document content cannot be empty")
	}
	if patch.DocumentType != nil && !analysis.ValidAgreementType(*patch.DocumentType) {
		return Record{}, fault.Validation("unknown document type")
	}

	now := time.Now().UTC()
	err := s.repo.Update(ctx, callerID, recordID, patch, now)
	if errors.Is(err, ErrNotFound) {
		return Record{}, err
	}
	if err != nil {
		return Record{}, fault.Persistence("could not update document", err)
	}
	return s.Get(ctx, callerID, recordID)
}

// Delete removes a record owned by callerID. The deletion is permanent.
func (s *Service) Delete(ctx context.Context, callerID, recordID string) error {
	err := s.repo.Delete(ctx, callerID, recordID)
	if errors.Is(err, ErrNotFound) {
		return err
	}
	if err != nil {
		return fault.Persistence("could not delete document", err)
	}
	return nil
}
