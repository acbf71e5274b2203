package services

import (
	"context"
	"sync/atomic"
)

// ListCache wraps a Cache and counts invalidations. A read-through fill
// compares the count before and after it loads, and drops its own write
// when a Forget ran in between. Every writer of a key must share one
// ListCache for the count to be meaningful.
type ListCache struct {
	Cache
	gen atomic.Uint64
}

func NewListCache(c Cache) *ListCache {
	if lc, ok := c.(*ListCache); ok {
		return lc
	}
	return &ListCache{Cache: c}
}

// Forget bumps the invalidation count before deleting, so a fill that
// stored stale data either sees the bump or has its write deleted.
func (c *ListCache) Forget(ctx context.Context, keys ...string) error {
	c.gen.Add(1)
	return c.Cache.Forget(ctx, keys...)
}

func (c *ListCache) generation() uint64 { return c.gen.Load() }
