package usage

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu   sync.RWMutex
	data map[string]Counts
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]Counts)}
}

func (s *memoryStore) Get(ctx context.Context, userID string) (Counts, error) {
	if err := ctx.Err(); err != nil {
		return Counts{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[userID], nil
}

func (s *memoryStore) Increment(ctx context.Context, userID string) (Counts, error) {
	if err := ctx.Err(); err != nil {
		return Counts{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.data[userID]
	c.Daily++
	c.Monthly++
	s.data[userID] = c
	return c, nil
}
