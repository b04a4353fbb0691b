package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryRateLimiter is a per-process sliding window used when Redis is disabled.
type MemoryRateLimiter struct {
	mu   sync.Mutex
	hits map[string][]time.Time
	now  func() time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		hits: make(map[string][]time.Time),
		now:  time.Now,
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string, policy Policy) (bool, error) {
	if !policy.Enabled() {
		return true, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	kept := prune(l.hits[key], now.Add(-policy.Window))
	allowed := len(kept) < policy.Limit
	l.hits[key] = append(kept, now)
	return allowed, nil
}

func (l *MemoryRateLimiter) Count(_ context.Context, key string, window time.Duration) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := prune(l.hits[key], l.now().Add(-window))
	l.hits[key] = kept
	return int64(len(kept)), nil
}

func (l *MemoryRateLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	delete(l.hits, key)
	l.mu.Unlock()
	return nil
}

// prune drops timestamps at or before cutoff; hits are appended in order.
func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	return hits[i:]
}
