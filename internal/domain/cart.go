package domain

import "time"

// CartItem links a buyer to a listing they intend to purchase.
type CartItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	SneakerID string    `json:"sneakerId"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// CartItemWithListing joins a cart item with the listing (and its seller)
// for storefront rendering.
type CartItemWithListing struct {
	CartItem
	Sneaker ListingWithSeller `json:"sneaker"`
}
