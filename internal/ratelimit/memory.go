package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a sliding window per key. Counts are per process.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string][]time.Time
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{windows: make(map[string][]time.Time), now: time.Now}
}

func (s *MemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	attempts := prune(s.windows[key], now.Add(-window))

	if len(attempts) >= limit {
		s.windows[key] = attempts
		return Result{Limit: limit, ResetAt: attempts[0].Add(window)}, nil
	}

	attempts = append(attempts, now)
	s.windows[key] = attempts
	s.sweep(now.Add(-window))
	return Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - len(attempts),
		ResetAt:   attempts[0].Add(window),
	}, nil
}

// sweep drops keys whose attempts have all expired. Must hold s.mu.
func (s *MemoryStore) sweep(cutoff time.Time) {
	for key, attempts := range s.windows {
		if len(attempts) == 0 || !attempts[len(attempts)-1].After(cutoff) {
			delete(s.windows, key)
		}
	}
}

func prune(attempts []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for ; i < len(attempts); i++ {
		if attempts[i].After(cutoff) {
			break
		}
	}
	return attempts[i:]
}
