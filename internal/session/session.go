package session

import (
	"context"
	"time"

	"claritydocs-backend/internal/analysis"
)

// DefaultTTL bounds how long an abandoned submission survives server-side.
const DefaultTTL = 24 * time.Hour

// State carries one user's in-progress submission across page loads. It is the
// hand-off channel between intake stages: written when text is submitted for
// analysis, read once at results-page load to decide replay vs. recompute,
// and cleared on explicit reset.
type State struct {
	DocumentText      string                         `json:"documentText,omitempty"`
	AgreementType     string                         `json:"agreementType,omitempty"`
	EditingDocumentID string                         `json:"editingDocumentId,omitempty"`
	DocumentName      string                         `json:"documentName,omitempty"`
	FileType          string                         `json:"fileType,omitempty"`
	FileSize          int64                          `json:"fileSize,omitempty"`
	Summary           *analysis.PlainLanguageSummary `json:"summaryData,omitempty"`
	// Generation increments on every reset. An in-flight submission whose
	// generation no longer matches the stored one must be discarded.
	Generation int64 `json:"generation"`
}

// Empty reports whether the state holds no pending submission.
func (s State) Empty() bool {
	return s.DocumentText == "" && s.Summary == nil
}

// Store persists per-user session state. Implementations must be safe for
// concurrent use.
type Store interface {
	Load(ctx context.Context, userID string) (State, error)
	Save(ctx context.Context, userID string, state State) error
	// Clear drops every hand-off key at once and bumps the generation so a
	// late-resolving call cannot write itself back.
	Clear(ctx context.Context, userID string) (State, error)
}
