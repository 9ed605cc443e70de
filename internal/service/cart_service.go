package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

// CartService handles shopping cart operations.
type CartService struct {
	carts   domain.CartStore
	catalog *CatalogService
	logger  *slog.Logger
}

// NewCartService creates a CartService with all required dependencies.
func NewCartService(carts domain.CartStore, catalog *CatalogService, logger *slog.Logger) *CartService {
	return &CartService{carts: carts, catalog: catalog, logger: logger}
}

// Add puts a listing in the user's cart. Adding an already-carted listing
// bumps its quantity. The listing must exist and be available.
func (s *CartService) Add(ctx context.Context, userID, sneakerID string, quantity int) (domain.CartItem, error) {
	if quantity <= 0 {
		quantity = 1
	}

	listing, err := s.catalog.GetListing(ctx, sneakerID)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("cart_service: verify listing %q: %w", sneakerID, err)
	}
	if !listing.Available {
		ve := &domain.ValidationError{}
		return domain.CartItem{}, ve.Add("sneakerId", "listing is no longer available")
	}

	item := domain.CartItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		SneakerID: sneakerID,
		Quantity:  quantity,
		AddedAt:   time.Now().UTC(),
	}
	if err := s.carts.Add(ctx, item); err != nil {
		return domain.CartItem{}, fmt.Errorf("cart_service: add: %w", err)
	}
	return item, nil
}

// ListByUser returns the user's cart items, each joined with its listing and
// the listing's seller.
func (s *CartService) ListByUser(ctx context.Context, userID string) ([]domain.CartItemWithListing, error) {
	items, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cart_service: list for user %q: %w", userID, err)
	}

	out := make([]domain.CartItemWithListing, 0, len(items))
	for _, item := range items {
		listing, err := s.catalog.GetListing(ctx, item.SneakerID)
		if err != nil {
			// A listing deleted out from under a cart item should not
			// break the whole cart view.
			s.logger.WarnContext(ctx, "cart_service: dangling cart item",
				slog.String("cart_item_id", item.ID),
				slog.String("sneaker_id", item.SneakerID),
				slog.String("error", err.Error()),
			)
			continue
		}
		out = append(out, domain.CartItemWithListing{CartItem: item, Sneaker: listing})
	}
	return out, nil
}

// Remove deletes one listing from the user's cart. Returns domain.ErrNotFound
// when the listing was not in the cart.
func (s *CartService) Remove(ctx context.Context, userID, sneakerID string) error {
	if err := s.carts.Remove(ctx, userID, sneakerID); err != nil {
		return fmt.Errorf("cart_service: remove %q: %w", sneakerID, err)
	}
	return nil
}
