package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

// CartStore implements domain.CartStore using PostgreSQL.
type CartStore struct {
	pool *pgxpool.Pool
}

// NewCartStore creates a CartStore backed by the given connection pool.
func NewCartStore(pool *pgxpool.Pool) *CartStore {
	return &CartStore{pool: pool}
}

// Add inserts a cart item. Re-adding the same listing bumps the quantity.
func (s *CartStore) Add(ctx context.Context, item domain.CartItem) error {
	const query = `
		INSERT INTO cart_items (id, user_id, sneaker_id, quantity, added_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, sneaker_id) DO UPDATE SET
			quantity = cart_items.quantity + EXCLUDED.quantity`

	_, err := s.pool.Exec(ctx, query,
		item.ID, item.UserID, item.SneakerID, item.Quantity, item.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: add cart item %s: %w", item.ID, err)
	}
	return nil
}

// ListByUser returns the user's cart items, oldest first.
func (s *CartStore) ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, sneaker_id, quantity, added_at
		 FROM cart_items WHERE user_id = $1 ORDER BY added_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("postgres: list cart for %s: %w", userID, err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.SneakerID, &it.Quantity, &it.AddedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan cart item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list cart rows: %w", err)
	}
	return items, nil
}

// Remove deletes a user's cart entry for a listing. Returns
// domain.ErrNotFound when nothing matched.
func (s *CartStore) Remove(ctx context.Context, userID, sneakerID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND sneaker_id = $2`,
		userID, sneakerID)
	if err != nil {
		return fmt.Errorf("postgres: remove cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Compile-time interface check.
var _ domain.CartStore = (*CartStore)(nil)
