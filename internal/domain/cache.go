package domain

import (
	"context"
	"time"
)

// ListingCache provides fast listing lookups in front of the ListingStore.
type ListingCache interface {
	Set(ctx context.Context, listing Listing) error
	Get(ctx context.Context, id string) (Listing, error)
	Invalidate(ctx context.Context, id string) error
}

// RateLimiter provides distributed rate limiting.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// LockManager provides distributed locking. The request layer acquires a
// per-negotiation lock before calling Continue or Accept so two concurrent
// rounds cannot compute from a stale offer or collide on message ids.
type LockManager interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (unlock func(), err error)
}
