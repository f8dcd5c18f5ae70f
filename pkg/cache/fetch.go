package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

// Fetch is the cached-fetch helper applied at every resource call site:
// return the cached value for key unless refresh is set, otherwise run
// fetch and store its result with the given TTL. Cache failures are
// logged and degrade to a direct fetch; they never fail the request.
func Fetch[T any](ctx context.Context, c Cache, key string, ttl time.Duration, refresh bool, fetch func(context.Context) (T, error)) (T, error) {
	var out T
	if !refresh {
		payload, ok, err := c.Get(ctx, key)
		if err != nil {
			util.Warnf("Cache get for %s failed: %v", key, err)
		} else if ok {
			if err := json.Unmarshal(payload, &out); err == nil {
				util.Debugf("Cache hit for %s", key)
				return out, nil
			}
			util.Warnf("Discarding undecodable cache entry for %s", key)
		}
	}

	out, err := fetch(ctx)
	if err != nil {
		return out, err
	}

	payload, err := json.Marshal(out)
	if err != nil {
		util.Warnf("Cache encode for %s failed: %v", key, err)
		return out, nil
	}
	if ttl > 0 {
		err = c.SetWithTTL(ctx, key, payload, ttl)
	} else {
		err = c.Set(ctx, key, payload)
	}
	if err != nil {
		util.Warnf("Cache set for %s failed: %v", key, err)
	}
	return out, nil
}
