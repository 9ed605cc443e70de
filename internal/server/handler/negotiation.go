package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

// NegotiationService defines the methods the negotiation handler requires
// from the service layer.
type NegotiationService interface {
	Start(ctx context.Context, sneakerID, buyerID string) (domain.Negotiation, error)
	Get(ctx context.Context, id string) (domain.Negotiation, error)
	Continue(ctx context.Context, id string) (domain.Negotiation, error)
	Accept(ctx context.Context, id string) (domain.Negotiation, error)
	ListBySneaker(ctx context.Context, sneakerID string) ([]domain.Negotiation, error)
}

// NegotiationHandler serves the AI haggling endpoints.
type NegotiationHandler struct {
	negotiations NegotiationService
	logger       *slog.Logger
}

// NewNegotiationHandler creates a NegotiationHandler with the given service
// and logger.
func NewNegotiationHandler(negotiations NegotiationService, logger *slog.Logger) *NegotiationHandler {
	return &NegotiationHandler{negotiations: negotiations, logger: logger}
}

type startNegotiationRequest struct {
	SneakerID string `json:"sneakerId"`
	BuyerID   string `json:"buyerId"`
	// SellerID is accepted for wire compatibility but ignored: the seller
	// is always taken from the listing itself.
	SellerID string `json:"sellerId"`
}

// StartNegotiation opens a negotiation for a sneaker.
// POST /api/negotiations
func (h *NegotiationHandler) StartNegotiation(w http.ResponseWriter, r *http.Request) {
	var req startNegotiationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.SneakerID) == "" || strings.TrimSpace(req.BuyerID) == "" {
		writeError(w, http.StatusBadRequest, "sneakerId and buyerId are required")
		return
	}

	n, err := h.negotiations.Start(r.Context(), req.SneakerID, req.BuyerID)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to start negotiation")
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

// GetNegotiation returns a negotiation with its full transcript.
// GET /api/negotiations/{id}
func (h *NegotiationHandler) GetNegotiation(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing negotiation id")
		return
	}

	n, err := h.negotiations.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to get negotiation")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// ContinueNegotiation runs one haggling round.
// PATCH /api/negotiations/{id}/continue
func (h *NegotiationHandler) ContinueNegotiation(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing negotiation id")
		return
	}

	n, err := h.negotiations.Continue(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to continue negotiation")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// AcceptNegotiation closes the negotiation at the current offer.
// PATCH /api/negotiations/{id}/accept
func (h *NegotiationHandler) AcceptNegotiation(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing negotiation id")
		return
	}

	n, err := h.negotiations.Accept(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to accept negotiation")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// ListBySneaker returns all negotiations against a listing.
// GET /api/sneakers/{id}/negotiations
func (h *NegotiationHandler) ListBySneaker(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing sneaker id")
		return
	}

	out, err := h.negotiations.ListBySneaker(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to list negotiations")
		return
	}
	writeJSON(w, http.StatusOK, out)
}
