package redis

import (
	"testing"
	"time"
)

func TestParseDecision(t *testing.T) {
	d, err := parseDecision([]any{int64(1), int64(4), int64(0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Allowed || d.Remaining != 4 || d.RetryAfter != 0 {
		t.Fatalf("unexpected decision: %+v", d)
	}

	d, err = parseDecision([]any{int64(0), int64(0), int64(1500)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Allowed || d.RetryAfter != 1500*time.Millisecond {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestParseDecision_Malformed(t *testing.T) {
	for _, v := range []any{nil, "OK", []any{int64(1)}} {
		if _, err := parseDecision(v); err == nil {
			t.Fatalf("expected error for %#v", v)
		}
	}
}

func TestRateLimitConfig_Normalized(t *testing.T) {
	cfg := RateLimitConfig{RefillInterval: 2 * time.Second}.normalized()

	if cfg.Capacity != 1 || cfg.RefillTokens != 1 || cfg.Prefix != "rl" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TTL != 10*time.Second {
		t.Fatalf("expected ttl raised to 5 refill intervals, got %s", cfg.TTL)
	}
}
