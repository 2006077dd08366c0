package history

import (
	"time"

	"claritydocs-backend/internal/analysis"
)

// Record is one persisted document in a user's history.
type Record struct {
	ID           string
	UserID       string
	DocumentName string
	DocumentType string
	Content      string
	Summary      *analysis.PlainLanguageSummary
	// UploadedAt is set at creation and refreshed on every update, so it acts
	// as "last modified" and as the list ordering key.
	UploadedAt time.Time
	FileType   string // "pdf", "image", or "text"
	FileSize   int64
	StorageKey string
}

// Patch carries the fields of a partial update. Nil fields are left untouched.
type Patch struct {
	DocumentName *string
	DocumentType *string
	Content      *string
	Summary      *analysis.PlainLanguageSummary
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.DocumentName == nil && p.DocumentType == nil && p.Content == nil && p.Summary == nil
}
