package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

// SellerService defines the methods the seller handler requires from the
// service layer.
type SellerService interface {
	Register(ctx context.Context, username, email, password string) (domain.Seller, error)
	Authenticate(ctx context.Context, email, password string) (domain.Seller, error)
	GetSeller(ctx context.Context, id string) (domain.Seller, error)
}

// SellerHandler serves seller account endpoints.
type SellerHandler struct {
	sellers SellerService
	logger  *slog.Logger
}

// NewSellerHandler creates a SellerHandler with the given service and logger.
func NewSellerHandler(sellers SellerService, logger *slog.Logger) *SellerHandler {
	return &SellerHandler{sellers: sellers, logger: logger}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a seller account.
// POST /api/sellers/register
func (h *SellerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	seller, err := h.sellers.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to register seller")
		return
	}
	writeJSON(w, http.StatusCreated, seller)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies a seller's credentials.
// POST /api/sellers/login
func (h *SellerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	seller, err := h.sellers.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		// Do not reveal whether the email exists.
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		writeServiceError(w, r, h.logger, err, "failed to log in")
		return
	}
	writeJSON(w, http.StatusOK, seller)
}

// GetSeller returns a seller's public profile.
// GET /api/sellers/{id}
func (h *SellerHandler) GetSeller(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing seller id")
		return
	}

	seller, err := h.sellers.GetSeller(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to get seller")
		return
	}
	writeJSON(w, http.StatusOK, seller)
}
