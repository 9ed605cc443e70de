package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/RishabhV28/sneakdeal/internal/domain"
	"github.com/RishabhV28/sneakdeal/internal/store/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixtures bundles the in-memory backends most service tests need.
type fixtures struct {
	listings     *memory.ListingStore
	sellers      *memory.SellerStore
	negotiations *memory.NegotiationStore
	carts        *memory.CartStore
	cache        *memory.ListingCache
	locks        *memory.LockManager
}

func newFixtures() *fixtures {
	return &fixtures{
		listings:     memory.NewListingStore(),
		sellers:      memory.NewSellerStore(),
		negotiations: memory.NewNegotiationStore(),
		carts:        memory.NewCartStore(),
		cache:        memory.NewListingCache(),
		locks:        memory.NewLockManager(),
	}
}

func (f *fixtures) catalog() *CatalogService {
	return NewCatalogService(f.listings, f.sellers, f.cache, nil, nil, nil, testLogger())
}

// seedSeller inserts a seller and returns it.
func (f *fixtures) seedSeller(t *testing.T, id string) domain.Seller {
	t.Helper()
	seller := domain.Seller{
		ID:       id,
		Username: "seller-" + id,
		Email:    id + "@example.com",
		Rating:   4.5,
	}
	require.NoError(t, f.sellers.Create(context.Background(), seller))
	return seller
}

// seedListing inserts an available, AI-deal-enabled listing and returns it.
func (f *fixtures) seedListing(t *testing.T, id, sellerID string, price float64) domain.Listing {
	t.Helper()
	listing := domain.Listing{
		ID:              id,
		Name:            "Sneaker " + id,
		Brand:           "Nike",
		Model:           "Air Jordan 1",
		Price:           price,
		Size:            "10",
		Condition:       domain.ConditionNew,
		Images:          []string{},
		SellerID:        sellerID,
		Available:       true,
		AIDealAvailable: true,
		CreatedAt:       time.Now().UTC(),
	}
	require.NoError(t, f.listings.Create(context.Background(), listing))
	return listing
}

// recordingBroadcaster captures negotiation broadcasts for assertions.
type recordingBroadcaster struct {
	updates []domain.Negotiation
}

func (b *recordingBroadcaster) BroadcastNegotiation(n domain.Negotiation) {
	b.updates = append(b.updates, n)
}
