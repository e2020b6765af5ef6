package usage

import (
	"context"
	"fmt"
)

type store interface {
	Get(ctx context.Context, userID string) (Counts, error)
	Increment(ctx context.Context, userID string) (Counts, error)
}

// Service manages per-user conversion quotas via an underlying store.
type Service struct {
	store store
}

// NewService constructs a Service with an in-memory store.
func NewService() *Service {
	return &Service{store: newMemoryStore()}
}

// NewPostgresService constructs a Service backed by Postgres.
func NewPostgresService(pgStore store) *Service {
	return &Service{store: pgStore}
}

// Check returns ErrLimitReached when the user is at either cap. A missing
// row counts as zero usage.
func (s *Service) Check(ctx context.Context, userID string) (Counts, error) {
	c, err := s.store.Get(ctx, userID)
	if err != nil {
		return Counts{}, err
	}
	if c.Daily >= DailyLimit {
		return c, fmt.Errorf("%w: daily limit of %d", ErrLimitReached, DailyLimit)
	}
	if c.Monthly >= MonthlyLimit {
		return c, fmt.Errorf("%w: monthly limit of %d", ErrLimitReached, MonthlyLimit)
	}
	return c, nil
}

// Increment bumps both counters by one, creating the row if absent. It does
// not re-check the caps; callers gate with Check before doing the work.
func (s *Service) Increment(ctx context.Context, userID string) (Counts, error) {
	return s.store.Increment(ctx, userID)
}
