package ratelimit

import (
	"context"
	"time"
)

// Policy is a sliding-window budget: at most Limit requests per Window.
type Policy struct {
	Limit  int
	Window time.Duration
}

// Enabled reports whether the policy restricts anything.
func (p Policy) Enabled() bool {
	return p.Limit > 0 && p.Window > 0
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, policy Policy) (bool, error)
	// Count returns the requests recorded for key inside the window.
	Count(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
