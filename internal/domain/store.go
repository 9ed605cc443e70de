package domain

import (
	"context"
	"time"
)

// ListingStore persists sneaker listings.
type ListingStore interface {
	Create(ctx context.Context, listing Listing) error
	GetByID(ctx context.Context, id string) (Listing, error)
	List(ctx context.Context, filter ListingFilter) ([]Listing, error)
	Update(ctx context.Context, listing Listing) error
}

// SellerStore persists seller accounts.
type SellerStore interface {
	Create(ctx context.Context, seller Seller) error
	GetByID(ctx context.Context, id string) (Seller, error)
	GetByEmail(ctx context.Context, email string) (Seller, error)
}

// NegotiationStore persists negotiation records. Put writes the whole record
// in one shot; there is no partial update, so a failed engine call never
// leaves a half-written negotiation behind.
type NegotiationStore interface {
	Create(ctx context.Context, n Negotiation) error
	GetByID(ctx context.Context, id string) (Negotiation, error)
	Put(ctx context.Context, n Negotiation) error
	ListBySneaker(ctx context.Context, sneakerID string) ([]Negotiation, error)
	// ExpireStale transitions active negotiations older than cutoff to
	// expired. No caller runs it yet; it exists so a future sweeper can
	// adopt the expired status without a schema change.
	ExpireStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// CartStore persists cart items.
type CartStore interface {
	Add(ctx context.Context, item CartItem) error
	ListByUser(ctx context.Context, userID string) ([]CartItem, error)
	Remove(ctx context.Context, userID, sneakerID string) error
}
