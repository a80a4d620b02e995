package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/readcoach/api/internal/cache"
)

type ActionConfig struct {
	Limit  int64
	Window time.Duration
}

// DefaultLimits caps the LLM-backed endpoints per user. Everything else gets
// the fallback limit.
var DefaultLimits = map[string]ActionConfig{
	"questions":  {Limit: 20, Window: time.Minute},
	"analyze":    {Limit: 30, Window: time.Minute},
	"vocabulary": {Limit: 30, Window: time.Minute},
}

type Limiter struct {
	cache *cache.RedisCache
}

type CheckResult struct {
	Allowed   bool  `json:"allowed"`
	Remaining int64 `json:"remaining"`
	ResetAt   int64 `json:"reset_at"`
	Limit     int64 `json:"limit"`
}

func NewLimiter(cache *cache.RedisCache) *Limiter {
	return &Limiter{cache: cache}
}

func (l *Limiter) Check(ctx context.Context, clientID, action string) (*CheckResult, error) {
	config, ok := DefaultLimits[action]
	if !ok {
		// Default limit for unknown actions
		config = ActionConfig{Limit: 100, Window: time.Minute}
	}

	key := fmt.Sprintf("rate:%s:%s", clientID, action)

	count, err := l.cache.Incr(ctx, key, config.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to increment counter: %w", err)
	}

	ttl, err := l.cache.TTL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get TTL: %w", err)
	}

	resetAt := time.Now().Add(ttl).Unix()
	remaining := config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &CheckResult{
		Allowed:   count <= config.Limit,
		Remaining: remaining,
		ResetAt:   resetAt,
		Limit:     config.Limit,
	}, nil
}
