// Package cache stores lookup results from slow external services.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is a byte-oriented TTL cache. Implementations treat a backend failure
// as a miss; callers never need to handle cache errors.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// GetJSON decodes the cached value for key into dst.
func GetJSON(ctx context.Context, c Cache, key string, dst any) bool {
	if c == nil {
		return false
	}
	raw, ok := c.Get(ctx, key)
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// SetJSON stores value encoded as JSON.
func SetJSON(ctx context.Context, c Cache, key string, value any, ttl time.Duration) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.Set(ctx, key, raw, ttl)
}
