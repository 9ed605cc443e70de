package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

// CartService defines the methods the cart handler requires from the service
// layer.
type CartService interface {
	Add(ctx context.Context, userID, sneakerID string, quantity int) (domain.CartItem, error)
	ListByUser(ctx context.Context, userID string) ([]domain.CartItemWithListing, error)
	Remove(ctx context.Context, userID, sneakerID string) error
}

// CartHandler serves shopping cart endpoints.
type CartHandler struct {
	carts  CartService
	logger *slog.Logger
}

// NewCartHandler creates a CartHandler with the given service and logger.
func NewCartHandler(carts CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: logger}
}

type addToCartRequest struct {
	UserID    string `json:"userId"`
	SneakerID string `json:"sneakerId"`
	Quantity  int    `json:"quantity"`
}

// AddToCart puts a sneaker in the user's cart.
// POST /api/cart
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.SneakerID) == "" {
		writeError(w, http.StatusBadRequest, "userId and sneakerId are required")
		return
	}

	item, err := h.carts.Add(r.Context(), req.UserID, req.SneakerID, req.Quantity)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to add to cart")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// GetCart returns the user's cart with listings joined in.
// GET /api/cart/{userId}
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := pathParam(r, "userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}

	items, err := h.carts.ListByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to get cart")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// RemoveFromCart deletes one sneaker from the user's cart.
// DELETE /api/cart/{userId}/{sneakerId}
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID := pathParam(r, "userId")
	sneakerID := pathParam(r, "sneakerId")
	if userID == "" || sneakerID == "" {
		writeError(w, http.StatusBadRequest, "missing user or sneaker id")
		return
	}

	if err := h.carts.Remove(r.Context(), userID, sneakerID); err != nil {
		writeServiceError(w, r, h.logger, err, "failed to remove from cart")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
