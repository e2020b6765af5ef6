package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores resume records in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byUser map[string][]Record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUser: make(map[string][]Record)}
}

// Create stores the record.
func (r *MemoryRepo) Create(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[record.UserID] = append(r.byUser[record.UserID], record)
	return nil
}

// ListByUser returns a user's records, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	userRecords := r.byUser[userID]
	r.mu.RUnlock()

	records := make([]Record, len(userRecords))
	copy(records, userRecords)
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records, nil
}

var _ Repo = (*MemoryRepo)(nil)
