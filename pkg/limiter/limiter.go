// Package limiter provides the counting admission gate that caps
// simultaneous in-flight upstream provider calls.
package limiter

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

// Limiter bounds concurrent upstream calls with a weighted semaphore.
// Every provider call acquires one permit before calling out and releases
// it unconditionally on both success and failure paths.
type Limiter struct {
	sem *semaphore.Weighted
}

// New creates a limiter admitting at most max concurrent operations.
func New(max int64) *Limiter {
	util.Infof("Concurrency limiter initialized with max_concurrent=%d", max)
	return &Limiter{sem: semaphore.NewWeighted(max)}
}

// Acquire blocks until a permit is available or ctx is done. The returned
// release function is idempotent and must be called (deferred) by the
// caller.
func (l *Limiter) Acquire(ctx context.Context) (func(), error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	released := false
	return func() {
		if !released {
			released = true
			l.sem.Release(1)
		}
	}, nil
}
