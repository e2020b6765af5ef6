package resumes

import "context"

// Repo defines persistence operations for resume records.
type Repo interface {
	Create(ctx context.Context, record Record) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Record, error)
}
