package history

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("record not found")

// DefaultListLimit caps a history query when the caller does not ask for less.
const DefaultListLimit = 50

// Repo defines persistence operations for history records. Every operation is
// scoped to the owning user; a record never leaks across owners.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, userID, recordID string) (Record, error)
	// ListByUser returns records newest-first by uploaded_at, capped at limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]Record, error)
	// Update merges the patch into the record and refreshes uploaded_at.
	Update(ctx context.Context, userID, recordID string, patch Patch, uploadedAt time.Time) error
	Delete(ctx context.Context, userID, recordID string) error
}
