package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

// ListingStore implements domain.ListingStore using PostgreSQL.
type ListingStore struct {
	pool *pgxpool.Pool
}

// NewListingStore creates a ListingStore backed by the given connection pool.
func NewListingStore(pool *pgxpool.Pool) *ListingStore {
	return &ListingStore{pool: pool}
}

const listingCols = `id, name, brand, model, colorway, price, original_price,
	size, condition, description, images, seller_id,
	available, featured, ai_deal_available, created_at`

// Create inserts a new listing.
func (s *ListingStore) Create(ctx context.Context, l domain.Listing) error {
	const query = `
		INSERT INTO sneakers (
			id, name, brand, model, colorway, price, original_price,
			size, condition, description, images, seller_id,
			available, featured, ai_deal_available, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12,
			$13, $14, $15, $16
		)`

	_, err := s.pool.Exec(ctx, query,
		l.ID, l.Name, l.Brand, l.Model, l.Colorway, l.Price, l.OriginalPrice,
		l.Size, string(l.Condition), l.Description, l.Images, l.SellerID,
		l.Available, l.Featured, l.AIDealAvailable, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: create listing %s: %w", l.ID, err)
	}
	return nil
}

// scanListing scans a single listing row into a domain.Listing.
func scanListing(row pgx.Row) (domain.Listing, error) {
	var l domain.Listing
	var condition string
	err := row.Scan(
		&l.ID, &l.Name, &l.Brand, &l.Model, &l.Colorway, &l.Price, &l.OriginalPrice,
		&l.Size, &condition, &l.Description, &l.Images, &l.SellerID,
		&l.Available, &l.Featured, &l.AIDealAvailable, &l.CreatedAt,
	)
	if err != nil {
		return domain.Listing{}, err
	}
	l.Condition = domain.Condition(condition)
	return l, nil
}

// GetByID retrieves a listing by its primary key.
func (s *ListingStore) GetByID(ctx context.Context, id string) (domain.Listing, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+listingCols+` FROM sneakers WHERE id = $1`, id)
	l, err := scanListing(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Listing{}, domain.ErrNotFound
		}
		return domain.Listing{}, fmt.Errorf("postgres: get listing %s: %w", id, err)
	}
	return l, nil
}

// List returns available listings matching the filter, newest first.
func (s *ListingStore) List(ctx context.Context, f domain.ListingFilter) ([]domain.Listing, error) {
	query := `SELECT ` + listingCols + ` FROM sneakers WHERE available`
	args := []any{}
	argIdx := 1

	if f.Brand != "" {
		query += fmt.Sprintf(" AND brand ILIKE '%%' || $%d || '%%'", argIdx)
		args = append(args, f.Brand)
		argIdx++
	}
	if f.Size != "" {
		query += fmt.Sprintf(" AND size = $%d", argIdx)
		args = append(args, f.Size)
		argIdx++
	}
	if f.MinPrice > 0 {
		query += fmt.Sprintf(" AND price >= $%d", argIdx)
		args = append(args, f.MinPrice)
		argIdx++
	}
	if f.MaxPrice > 0 {
		query += fmt.Sprintf(" AND price <= $%d", argIdx)
		args = append(args, f.MaxPrice)
		argIdx++
	}
	if f.Condition != "" {
		query += fmt.Sprintf(" AND condition = $%d", argIdx)
		args = append(args, string(f.Condition))
		argIdx++
	}
	if f.Search != "" {
		query += fmt.Sprintf(
			" AND (name ILIKE '%%' || $%d || '%%' OR brand ILIKE '%%' || $%d || '%%' OR colorway ILIKE '%%' || $%d || '%%')",
			argIdx, argIdx, argIdx,
		)
		args = append(args, f.Search)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list listings rows: %w", err)
	}
	return listings, nil
}

// Update rewrites the mutable listing fields (price, flags, images).
func (s *ListingStore) Update(ctx context.Context, l domain.Listing) error {
	const query = `
		UPDATE sneakers SET
			price     = $2,
			images    = $3,
			available = $4,
			featured  = $5
		WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query,
		l.ID, l.Price, l.Images, l.Available, l.Featured,
	)
	if err != nil {
		return fmt.Errorf("postgres: update listing %s: %w", l.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Compile-time interface check.
var _ domain.ListingStore = (*ListingStore)(nil)
