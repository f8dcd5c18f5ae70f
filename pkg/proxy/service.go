// Package proxy implements the cached resource service over the upstream
// provider: subscriptions, resource groups, virtual machines, route
// resolution, virtual networks and peering reconciliation.
//
// Every upstream call acquires a permit from the shared concurrency
// limiter and goes through the cached-fetch helper, so callers only ever
// see typed models.
package proxy

import (
	"context"
	"time"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/azure"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/cache"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/limiter"
)

// Service is the resource service facade. Construct once at process start
// and share; all methods are safe for concurrent use.
type Service struct {
	client  azure.Client
	cache   cache.Cache
	limiter *limiter.Limiter
	ttl     time.Duration
}

// New creates a Service with explicit dependencies.
func New(client azure.Client, c cache.Cache, l *limiter.Limiter, ttl time.Duration) *Service {
	return &Service{client: client, cache: c, limiter: l, ttl: ttl}
}

// guarded runs fn while holding one limiter permit.
func guarded[T any](ctx context.Context, s *Service, fn func(context.Context) (T, error)) (T, error) {
	release, err := s.limiter.Acquire(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	defer release()
	return fn(ctx)
}
