package ports

import (
	"context"
	"time"
)

// RateDecision is the outcome of taking one token from a bucket.
type RateDecision struct {
	Allowed    bool
	Limit      int
	Remaining  int64
	RetryAfter time.Duration
}

// RateLimiter takes a token from the bucket identified by key.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateDecision, error)
}
