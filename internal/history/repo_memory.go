package history

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Record // userID -> records
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]Record)}
}

func (r *MemoryRepo) Create(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[rec.UserID] = append(r.data[rec.UserID], rec)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, recordID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	recs := r.data[userID]
	for i := range recs {
		if recs[i].ID == recordID {
			return recs[i], nil
		}
	}
	return Record{}, ErrNotFound
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	r.mu.RLock()
	userRecs := r.data[userID]
	r.mu.RUnlock()

	// Copy and sort newest-first by UploadedAt.
	recs := make([]Record, len(userRecs))
	copy(recs, userRecs)
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].UploadedAt.After(recs[j].UploadedAt)
	})

	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func (r *MemoryRepo) Update(ctx context.Context, userID, recordID string, patch Patch, uploadedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	recs := r.data[userID]
	for i := range recs {
		if recs[i].ID != recordID {
			continue
		}
		if patch.DocumentName != nil {
			recs[i].DocumentName = *patch.DocumentName
		}
		if patch.DocumentType != nil {
			recs[i].DocumentType = *patch.DocumentType
		}
		if patch.Content != nil {
			recs[i].Content = *patch.Content
		}
		if patch.Summary != nil {
			recs[i].Summary = patch.Summary
		}
		recs[i].UploadedAt = uploadedAt
		r.data[userID] = recs
		return nil
	}
	return ErrNotFound
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, recordID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	recs := r.data[userID]
	for i := range recs {
		if recs[i].ID == recordID {
			r.data[userID] = append(recs[:i:i], recs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

var _ Repo = (*MemoryRepo)(nil)
