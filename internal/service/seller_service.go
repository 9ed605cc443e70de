package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

// SellerService handles seller account registration and authentication.
type SellerService struct {
	sellers domain.SellerStore
	logger  *slog.Logger
}

// NewSellerService creates a SellerService with all required dependencies.
func NewSellerService(sellers domain.SellerStore, logger *slog.Logger) *SellerService {
	return &SellerService{sellers: sellers, logger: logger}
}

// Register creates a new seller account with a bcrypt-hashed password.
// Returns domain.ErrAlreadyExists if the email is taken.
func (s *SellerService) Register(ctx context.Context, username, email, password string) (domain.Seller, error) {
	ve := &domain.ValidationError{}
	if strings.TrimSpace(username) == "" {
		ve.Add("username", "required")
	}
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		ve.Add("email", "must be a valid email address")
	}
	if len(password) < 8 {
		ve.Add("password", "must be at least 8 characters")
	}
	if !ve.Empty() {
		return domain.Seller{}, ve
	}

	if _, err := s.sellers.GetByEmail(ctx, email); err == nil {
		return domain.Seller{}, fmt.Errorf("seller_service: register %q: %w", email, domain.ErrAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Seller{}, fmt.Errorf("seller_service: check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Seller{}, fmt.Errorf("seller_service: hash password: %w", err)
	}

	seller := domain.Seller{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.sellers.Create(ctx, seller); err != nil {
		return domain.Seller{}, fmt.Errorf("seller_service: create: %w", err)
	}

	s.logger.InfoContext(ctx, "seller_service: registered seller",
		slog.String("seller_id", seller.ID),
		slog.String("username", username),
	)
	return seller, nil
}

// Authenticate verifies an email/password pair. A wrong password and an
// unknown email are indistinguishable to the caller: both return
// domain.ErrNotFound.
func (s *SellerService) Authenticate(ctx context.Context, email, password string) (domain.Seller, error) {
	seller, err := s.sellers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Seller{}, domain.ErrNotFound
		}
		return domain.Seller{}, fmt.Errorf("seller_service: get by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(seller.PasswordHash), []byte(password)); err != nil {
		return domain.Seller{}, domain.ErrNotFound
	}
	return seller, nil
}

// GetSeller retrieves a seller's public profile by ID.
func (s *SellerService) GetSeller(ctx context.Context, id string) (domain.Seller, error) {
	seller, err := s.sellers.GetByID(ctx, id)
	if err != nil {
		return domain.Seller{}, fmt.Errorf("seller_service: get by id %q: %w", id, err)
	}
	return seller, nil
}
