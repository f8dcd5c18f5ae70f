package cache

import (
	"fmt"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

// Cache backend types selectable via configuration.
const (
	TypeMemory = "memory"
	TypeRedis  = "redis"
	TypeNone   = "none"
)

// New creates a cache backend by type. A Redis backend that cannot be
// reached falls back to the in-memory cache so the proxy still starts.
func New(cacheType, redisURL, redisPrefix string) (Cache, error) {
	switch cacheType {
	case TypeRedis:
		c, err := NewRedis(redisURL, redisPrefix)
		if err != nil {
			util.Errorf("Failed to initialize Redis cache, falling back to in-memory: %v", err)
			return NewMemory(), nil
		}
		return c, nil
	case TypeNone:
		util.Info("Caching disabled")
		return NewNone(), nil
	case TypeMemory, "":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown cache type %q", cacheType)
	}
}
