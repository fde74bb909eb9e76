package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roster-hq/employee-roster/internal/core/ports"
)

// RateLimitConfig describes a token bucket: Capacity tokens, refilled by
// RefillTokens every RefillInterval.
type RateLimitConfig struct {
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

func (c RateLimitConfig) normalized() RateLimitConfig {
	if c.Capacity < 1 {
		c.Capacity = 1
	}
	if c.RefillTokens < 1 {
		c.RefillTokens = 1
	}
	if c.RefillInterval <= 0 {
		c.RefillInterval = time.Second
	}
	if minTTL := 5 * c.RefillInterval; c.TTL < minTTL {
		c.TTL = minTTL
	}
	if c.Prefix == "" {
		c.Prefix = "rl"
	}
	return c
}

// The bucket state lives in one hash per key so refill and take are atomic.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl_seconds = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
  tokens = capacity
  last_refill = now_ms
end

local elapsed = math.max(0, now_ms - last_refill)
local intervals = math.floor(elapsed / interval_ms)
if intervals > 0 then
  tokens = math.min(capacity, tokens + (intervals * refill_tokens))
  last_refill = last_refill + (intervals * interval_ms)
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
  allowed = 1
  tokens = tokens - 1
else
  retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

// TokenBucket is a ports.RateLimiter shared by every API replica through Redis.
type TokenBucket struct {
	client *redis.Client
	cfg    RateLimitConfig
	now    func() time.Time
}

func NewTokenBucket(client *redis.Client, cfg RateLimitConfig) *TokenBucket {
	return &TokenBucket{client: client, cfg: cfg.normalized(), now: time.Now}
}

// Allow takes one token from the bucket for key.
func (b *TokenBucket) Allow(ctx context.Context, key string) (ports.RateDecision, error) {
	args := []any{
		b.now().UnixMilli(),
		b.cfg.Capacity,
		b.cfg.RefillTokens,
		b.cfg.RefillInterval.Milliseconds(),
		int64(b.cfg.TTL / time.Second),
	}

	vals, err := tokenBucketScript.Run(ctx, b.client, []string{b.cfg.Prefix + ":" + key}, args...).Result()
	if err != nil {
		return ports.RateDecision{}, fmt.Errorf("rate limit script: %w", err)
	}

	d, err := parseDecision(vals)
	if err != nil {
		return ports.RateDecision{}, err
	}
	d.Limit = b.cfg.Capacity
	return d, nil
}

func parseDecision(vals any) (ports.RateDecision, error) {
	arr, ok := vals.([]any)
	if !ok || len(arr) != 3 {
		return ports.RateDecision{}, fmt.Errorf("rate limit script: unexpected result %#v", vals)
	}
	return ports.RateDecision{
		Allowed:    asInt64(arr[0]) == 1,
		Remaining:  asInt64(arr[1]),
		RetryAfter: time.Duration(asInt64(arr[2])) * time.Millisecond,
	}, nil
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
