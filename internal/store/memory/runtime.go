package memory

import (
	"context"
	"sync"
	"time"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

// LockManager is an in-process domain.LockManager for single-node runs. It
// has the same contract as the Redis implementation: a held lock fails fast
// with domain.ErrLockHeld instead of blocking.
type LockManager struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLockManager creates an in-process lock manager.
func NewLockManager() *LockManager {
	return &LockManager{held: make(map[string]struct{})}
}

// Acquire takes the named lock. The ttl is ignored: an in-process lock
// cannot outlive a crashed holder the way a Redis lock can.
func (lm *LockManager) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if _, ok := lm.held[key]; ok {
		return nil, domain.ErrLockHeld
	}
	lm.held[key] = struct{}{}

	var once sync.Once
	unlock := func() {
		once.Do(func() {
			lm.mu.Lock()
			delete(lm.held, key)
			lm.mu.Unlock()
		})
	}
	return unlock, nil
}

// ListingCache is a map-backed domain.ListingCache for single-node runs.
// Entries never expire; the stores it fronts are in the same process, so
// Invalidate keeps it coherent.
type ListingCache struct {
	mu       sync.RWMutex
	listings map[string]domain.Listing
}

// NewListingCache creates an in-process listing cache.
func NewListingCache() *ListingCache {
	return &ListingCache{listings: make(map[string]domain.Listing)}
}

func (c *ListingCache) Set(ctx context.Context, listing domain.Listing) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listings[listing.ID] = cloneListing(listing)
	return nil
}

func (c *ListingCache) Get(ctx context.Context, id string) (domain.Listing, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	listing, ok := c.listings[id]
	if !ok {
		return domain.Listing{}, domain.ErrNotFound
	}
	return cloneListing(listing), nil
}

func (c *ListingCache) Invalidate(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.listings, id)
	return nil
}

var (
	_ domain.LockManager  = (*LockManager)(nil)
	_ domain.ListingCache = (*ListingCache)(nil)
)
