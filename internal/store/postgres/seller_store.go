package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

// SellerStore implements domain.SellerStore using PostgreSQL.
type SellerStore struct {
	pool *pgxpool.Pool
}

// NewSellerStore creates a SellerStore backed by the given connection pool.
func NewSellerStore(pool *pgxpool.Pool) *SellerStore {
	return &SellerStore{pool: pool}
}

const sellerCols = `id, username, email, password_hash, avatar, rating, total_sales, verified_seller`

// Create inserts a new seller account.
func (s *SellerStore) Create(ctx context.Context, seller domain.Seller) error {
	const query = `
		INSERT INTO sellers (
			id, username, email, password_hash, avatar,
			rating, total_sales, verified_seller
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.pool.Exec(ctx, query,
		seller.ID, seller.Username, seller.Email, seller.PasswordHash, seller.Avatar,
		seller.Rating, seller.TotalSales, seller.VerifiedSeller,
	)
	if err != nil {
		return fmt.Errorf("postgres: create seller %s: %w", seller.ID, err)
	}
	return nil
}

func scanSeller(row pgx.Row) (domain.Seller, error) {
	var s domain.Seller
	err := row.Scan(
		&s.ID, &s.Username, &s.Email, &s.PasswordHash, &s.Avatar,
		&s.Rating, &s.TotalSales, &s.VerifiedSeller,
	)
	return s, err
}

// GetByID retrieves a seller by id.
func (s *SellerStore) GetByID(ctx context.Context, id string) (domain.Seller, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+sellerCols+` FROM sellers WHERE id = $1`, id)
	seller, err := scanSeller(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Seller{}, domain.ErrNotFound
		}
		return domain.Seller{}, fmt.Errorf("postgres: get seller %s: %w", id, err)
	}
	return seller, nil
}

// GetByEmail retrieves a seller by email address.
func (s *SellerStore) GetByEmail(ctx context.Context, email string) (domain.Seller, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+sellerCols+` FROM sellers WHERE email = $1`, email)
	seller, err := scanSeller(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Seller{}, domain.ErrNotFound
		}
		return domain.Seller{}, fmt.Errorf("postgres: get seller by email %s: %w", email, err)
	}
	return seller, nil
}

// Compile-time interface check.
var _ domain.SellerStore = (*SellerStore)(nil)
