package cache

import (
	"context"
	"time"
)

// None disables caching entirely; every Get is a miss.
type None struct{}

// NewNone creates a no-op cache.
func NewNone() None { return None{} }

func (None) Get(ctx context.Context, key string) ([]byte, bool, error) { return nil, false, nil }

func (None) Set(ctx context.Context, key string, value []byte) error { return nil }

func (None) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (None) Delete(ctx context.Context, key string) error { return nil }

func (None) Clear(ctx context.Context) error { return nil }

var _ Cache = None{}
