package adapters

import (
	"context"
	"sync"
	"time"
)

// DefaultTokenMargin is subtracted from a token's lifetime so it is never
// presented right at expiry.
const DefaultTokenMargin = 5 * time.Minute

// TokenFetcher obtains a fresh access token and its lifetime.
type TokenFetcher func(ctx context.Context) (token string, ttl time.Duration, err error)

// TokenCache holds a single access token. Refreshes are serialised, so
// concurrent callers near expiry share one fetch.
type TokenCache struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
	margin    time.Duration
	now       func() time.Time
}

func NewTokenCache(margin time.Duration, now func() time.Time) *TokenCache {
	if now == nil {
		now = time.Now
	}
	return &TokenCache{margin: margin, now: now}
}

func (c *TokenCache) Get(ctx context.Context, fetch TokenFetcher) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt.Add(-c.margin)) {
		return c.token, nil
	}

	token, ttl, err := fetch(ctx)
	if err != nil {
		return "", err
	}
	c.token = token
	c.expiresAt = c.now().Add(ttl)
	return token, nil
}

// Invalidate drops the cached token, forcing the next Get to fetch.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	c.token = ""
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}
