package interests

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store for tests and development.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[int64][]string

	// FailWith, when set, is returned by every operation. Lets tests
	// exercise the storage failure paths.
	FailWith error
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[int64][]string)}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, userID int64) ([]string, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.data[userID]
	out := make([]string, len(stored))
	copy(out, stored)
	return out, nil
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, userID int64, values []string) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	cleaned := normalize(values)
	sort.Strings(cleaned)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = cleaned
	return nil
}

// Add implements Store.
func (s *MemoryStore) Add(ctx context.Context, userID int64, interest string) error {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	return s.Set(ctx, userID, append(current, interest))
}

// Remove implements Store.
func (s *MemoryStore) Remove(ctx context.Context, userID int64, interest string) error {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	kept := current[:0]
	for _, v := range current {
		if v != interest {
			kept = append(kept, v)
		}
	}
	return s.Set(ctx, userID, kept)
}
