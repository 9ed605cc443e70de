package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

func makeListing(id, brand, size string, price float64, cond domain.Condition, createdAt time.Time) domain.Listing {
	return domain.Listing{
		ID:        id,
		Name:      brand + " " + id,
		Brand:     brand,
		Price:     price,
		Size:      size,
		Condition: cond,
		Images:    []string{"img-" + id},
		SellerID:  "seller-1",
		Available: true,
		CreatedAt: createdAt,
	}
}

func TestListingStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewListingStore()
	now := time.Now().UTC()

	l := makeListing("sn-1", "Nike", "10", 2450, domain.ConditionNew, now)
	require.NoError(t, s.Create(ctx, l))
	assert.ErrorIs(t, s.Create(ctx, l), domain.ErrAlreadyExists)

	got, err := s.GetByID(ctx, "sn-1")
	require.NoError(t, err)
	assert.Equal(t, l, got)

	// Mutating the returned value must not leak into the store.
	got.Images[0] = "tampered"
	again, err := s.GetByID(ctx, "sn-1")
	require.NoError(t, err)
	assert.Equal(t, "img-sn-1", again.Images[0])

	l.Price = 2400
	require.NoError(t, s.Update(ctx, l))
	got, err = s.GetByID(ctx, "sn-1")
	require.NoError(t, err)
	assert.Equal(t, 2400.0, got.Price)

	assert.ErrorIs(t, s.Update(ctx, makeListing("ghost", "Nike", "9", 1, domain.ConditionNew, now)), domain.ErrNotFound)
	_, err = s.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListingStoreFilters(t *testing.T) {
	ctx := context.Background()
	s := NewListingStore()
	base := time.Now().UTC()

	jordan := makeListing("sn-1", "Nike", "10", 2450, domain.ConditionNew, base)
	jordan.Colorway = "Chicago"
	yeezy := makeListing("sn-2", "Adidas", "9.5", 890, domain.ConditionLikeNew, base.Add(time.Minute))
	airmax := makeListing("sn-3", "Nike", "8.5", 185, domain.ConditionUsed, base.Add(2*time.Minute))
	sold := makeListing("sn-4", "Nike", "10", 120, domain.ConditionNew, base.Add(3*time.Minute))
	sold.Available = false

	for _, l := range []domain.Listing{jordan, yeezy, airmax, sold} {
		require.NoError(t, s.Create(ctx, l))
	}

	tests := []struct {
		name   string
		filter domain.ListingFilter
		want   []string
	}{
		{"no filter, newest first", domain.ListingFilter{}, []string{"sn-3", "sn-2", "sn-1"}},
		{"brand is case-insensitive", domain.ListingFilter{Brand: "nike"}, []string{"sn-3", "sn-1"}},
		{"size is exact", domain.ListingFilter{Size: "9.5"}, []string{"sn-2"}},
		{"price range", domain.ListingFilter{MinPrice: 150, MaxPrice: 1000}, []string{"sn-3", "sn-2"}},
		{"condition", domain.ListingFilter{Condition: domain.ConditionUsed}, []string{"sn-3"}},
		{"search matches colorway", domain.ListingFilter{Search: "chicago"}, []string{"sn-1"}},
		{"no matches", domain.ListingFilter{Brand: "Puma"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := s.List(ctx, tt.filter)
			require.NoError(t, err)
			ids := make([]string, 0, len(out))
			for _, l := range out {
				ids = append(ids, l.ID)
			}
			if tt.want == nil {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.want, ids)
			}
		})
	}
}

func TestSellerStore(t *testing.T) {
	ctx := context.Background()
	s := NewSellerStore()

	seller := domain.Seller{ID: "seller-1", Username: "sneakerking", Email: "king@example.com"}
	require.NoError(t, s.Create(ctx, seller))

	// Duplicate id and duplicate email both collide.
	assert.ErrorIs(t, s.Create(ctx, seller), domain.ErrAlreadyExists)
	assert.ErrorIs(t, s.Create(ctx, domain.Seller{ID: "seller-2", Email: "king@example.com"}), domain.ErrAlreadyExists)

	got, err := s.GetByEmail(ctx, "king@example.com")
	require.NoError(t, err)
	assert.Equal(t, "seller-1", got.ID)

	_, err = s.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNegotiationStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewNegotiationStore()
	now := time.Now().UTC().Truncate(time.Second)

	n := domain.Negotiation{
		ID:            "neg-1",
		SneakerID:     "sn-1",
		BuyerID:       "buyer-1",
		SellerID:      "seller-1",
		OriginalPrice: 2450,
		CurrentOffer:  2150,
		Status:        domain.NegotiationActive,
		Messages: []domain.NegotiationMessage{
			{ID: "1", Type: domain.MessageAI, Message: "opening", Timestamp: now.Format(time.RFC3339)},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Create(ctx, n))
	assert.ErrorIs(t, s.Create(ctx, n), domain.ErrAlreadyExists)

	got, err := s.GetByID(ctx, "neg-1")
	require.NoError(t, err)
	assert.Equal(t, n, got)

	n.CurrentOffer = 2255
	n.Messages = append(n.Messages,
		domain.NegotiationMessage{ID: "2", Type: domain.MessageSeller, Message: "counter", Timestamp: now.Format(time.RFC3339)},
		domain.NegotiationMessage{ID: "3", Type: domain.MessageAI, Message: "new offer", Timestamp: now.Format(time.RFC3339)},
	)
	require.NoError(t, s.Put(ctx, n))

	got, err = s.GetByID(ctx, "neg-1")
	require.NoError(t, err)
	assert.Equal(t, 2255.0, got.CurrentOffer)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, n.Messages, got.Messages)

	assert.ErrorIs(t, s.Put(ctx, domain.Negotiation{ID: "ghost"}), domain.ErrNotFound)
}

func TestNegotiationStoreExpireStale(t *testing.T) {
	ctx := context.Background()
	s := NewNegotiationStore()
	now := time.Now().UTC()

	stale := domain.Negotiation{ID: "neg-old", SneakerID: "sn-1", Status: domain.NegotiationActive, UpdatedAt: now.Add(-2 * time.Hour)}
	fresh := domain.Negotiation{ID: "neg-new", SneakerID: "sn-1", Status: domain.NegotiationActive, UpdatedAt: now}
	done := domain.Negotiation{ID: "neg-done", SneakerID: "sn-1", Status: domain.NegotiationAccepted, UpdatedAt: now.Add(-2 * time.Hour)}
	for _, n := range []domain.Negotiation{stale, fresh, done} {
		require.NoError(t, s.Create(ctx, n))
	}

	count, err := s.ExpireStale(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := s.GetByID(ctx, "neg-old")
	require.NoError(t, err)
	assert.Equal(t, domain.NegotiationExpired, got.Status)

	got, err = s.GetByID(ctx, "neg-new")
	require.NoError(t, err)
	assert.Equal(t, domain.NegotiationActive, got.Status)

	// Terminal records are left alone.
	got, err = s.GetByID(ctx, "neg-done")
	require.NoError(t, err)
	assert.Equal(t, domain.NegotiationAccepted, got.Status)
}

func TestCartStore(t *testing.T) {
	ctx := context.Background()
	s := NewCartStore()
	now := time.Now().UTC()

	first := domain.CartItem{ID: "c-1", UserID: "u-1", SneakerID: "sn-1", Quantity: 1, AddedAt: now}
	require.NoError(t, s.Add(ctx, first))

	// Re-adding the same listing bumps quantity instead of duplicating.
	require.NoError(t, s.Add(ctx, domain.CartItem{ID: "c-2", UserID: "u-1", SneakerID: "sn-1", Quantity: 2, AddedAt: now.Add(time.Minute)}))
	require.NoError(t, s.Add(ctx, domain.CartItem{ID: "c-3", UserID: "u-1", SneakerID: "sn-2", Quantity: 1, AddedAt: now.Add(2 * time.Minute)}))
	require.NoError(t, s.Add(ctx, domain.CartItem{ID: "c-4", UserID: "u-2", SneakerID: "sn-1", Quantity: 1, AddedAt: now}))

	items, err := s.ListByUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "sn-1", items[0].SneakerID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "sn-2", items[1].SneakerID)

	require.NoError(t, s.Remove(ctx, "u-1", "sn-1"))
	assert.ErrorIs(t, s.Remove(ctx, "u-1", "sn-1"), domain.ErrNotFound)

	items, err = s.ListByUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestLockManager(t *testing.T) {
	ctx := context.Background()
	lm := NewLockManager()

	unlock, err := lm.Acquire(ctx, "negotiation:neg-1", time.Second)
	require.NoError(t, err)

	_, err = lm.Acquire(ctx, "negotiation:neg-1", time.Second)
	assert.ErrorIs(t, err, domain.ErrLockHeld)

	// A different key is independent.
	other, err := lm.Acquire(ctx, "negotiation:neg-2", time.Second)
	require.NoError(t, err)
	other()

	unlock()
	unlock() // idempotent

	again, err := lm.Acquire(ctx, "negotiation:neg-1", time.Second)
	require.NoError(t, err)
	again()
}

func TestListingCache(t *testing.T) {
	ctx := context.Background()
	c := NewListingCache()

	_, err := c.Get(ctx, "sn-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	l := makeListing("sn-1", "Nike", "10", 2450, domain.ConditionNew, time.Now().UTC())
	require.NoError(t, c.Set(ctx, l))

	got, err := c.Get(ctx, "sn-1")
	require.NoError(t, err)
	assert.Equal(t, l, got)

	require.NoError(t, c.Invalidate(ctx, "sn-1"))
	_, err = c.Get(ctx, "sn-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
