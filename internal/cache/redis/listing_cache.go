package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

const defaultListingTTL = 5 * time.Minute

// ListingCache implements domain.ListingCache using JSON-serialized listings
// under simple string keys.
//
// Key schema:
//
//	sneaker:{id} - JSON-encoded Listing
type ListingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewListingCache creates a ListingCache backed by the given Client. A zero
// ttl falls back to the 5-minute default.
func NewListingCache(c *Client, ttl time.Duration) *ListingCache {
	if ttl <= 0 {
		ttl = defaultListingTTL
	}
	return &ListingCache{rdb: c.Underlying(), ttl: ttl}
}

func listingKey(id string) string { return "sneaker:" + id }

// Set stores a listing in the cache with the configured TTL.
func (lc *ListingCache) Set(ctx context.Context, listing domain.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("redis: marshal listing %s: %w", listing.ID, err)
	}
	if err := lc.rdb.Set(ctx, listingKey(listing.ID), data, lc.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set listing %s: %w", listing.ID, err)
	}
	return nil
}

// Get retrieves a listing by id. It returns domain.ErrNotFound when the key
// does not exist.
func (lc *ListingCache) Get(ctx context.Context, id string) (domain.Listing, error) {
	data, err := lc.rdb.Get(ctx, listingKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Listing{}, domain.ErrNotFound
		}
		return domain.Listing{}, fmt.Errorf("redis: get listing %s: %w", id, err)
	}

	var listing domain.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		return domain.Listing{}, fmt.Errorf("redis: unmarshal listing %s: %w", id, err)
	}
	return listing, nil
}

// Invalidate removes a listing from the cache.
func (lc *ListingCache) Invalidate(ctx context.Context, id string) error {
	if err := lc.rdb.Del(ctx, listingKey(id)).Err(); err != nil {
		return fmt.Errorf("redis: invalidate listing %s: %w", id, err)
	}
	return nil
}

// Compile-time interface check.
var _ domain.ListingCache = (*ListingCache)(nil)
