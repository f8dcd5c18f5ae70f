// Package cache provides the TTL key-value cache shared across resource
// fetches, with in-memory, Redis and no-op backends selected by
// configuration.
package cache

import (
	"context"
	"time"
)

// Cache is the minimal contract the proxy requires: get, set-with-ttl,
// and safety under concurrent access.
type Cache interface {
	// Get returns the cached payload and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a payload without expiry.
	Set(ctx context.Context, key string, value []byte) error
	// SetWithTTL stores a payload that expires after ttl.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Key joins non-empty components into a standardized cache key.
func Key(components ...string) string {
	key := ""
	for _, c := range components {
		if c == "" {
			continue
		}
		if key != "" {
			key += ":"
		}
		key += c
	}
	return key
}
