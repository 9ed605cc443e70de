package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

// NegotiationStore implements domain.NegotiationStore using PostgreSQL.
// Transcripts are stored as a TEXT[] of independently JSON-encoded messages
// and decoded back into structured values on every read.
type NegotiationStore struct {
	pool *pgxpool.Pool
}

// NewNegotiationStore creates a NegotiationStore backed by the given pool.
func NewNegotiationStore(pool *pgxpool.Pool) *NegotiationStore {
	return &NegotiationStore{pool: pool}
}

const negotiationCols = `id, sneaker_id, buyer_id, seller_id, original_price,
	current_offer, final_price, status, messages, created_at, updated_at`

// Create inserts a new negotiation record.
func (s *NegotiationStore) Create(ctx context.Context, n domain.Negotiation) error {
	encoded, err := domain.EncodeMessages(n.Messages)
	if err != nil {
		return fmt.Errorf("postgres: create negotiation %s: %w", n.ID, err)
	}

	const query = `
		INSERT INTO negotiations (
			id, sneaker_id, buyer_id, seller_id, original_price,
			current_offer, final_price, status, messages, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = s.pool.Exec(ctx, query,
		n.ID, n.SneakerID, n.BuyerID, n.SellerID, n.OriginalPrice,
		n.CurrentOffer, n.FinalPrice, string(n.Status), encoded, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: create negotiation %s: %w", n.ID, err)
	}
	return nil
}

func scanNegotiation(row pgx.Row) (domain.Negotiation, error) {
	var n domain.Negotiation
	var status string
	var encoded []string
	err := row.Scan(
		&n.ID, &n.SneakerID, &n.BuyerID, &n.SellerID, &n.OriginalPrice,
		&n.CurrentOffer, &n.FinalPrice, &status, &encoded, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return domain.Negotiation{}, err
	}
	n.Status = domain.NegotiationStatus(status)
	n.Messages, err = domain.DecodeMessages(encoded)
	if err != nil {
		return domain.Negotiation{}, err
	}
	return n, nil
}

// GetByID retrieves a negotiation by id with its transcript decoded.
func (s *NegotiationStore) GetByID(ctx context.Context, id string) (domain.Negotiation, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+negotiationCols+` FROM negotiations WHERE id = $1`, id)
	n, err := scanNegotiation(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Negotiation{}, domain.ErrNotFound
		}
		return domain.Negotiation{}, fmt.Errorf("postgres: get negotiation %s: %w", id, err)
	}
	return n, nil
}

// Put rewrites the whole negotiation record.
func (s *NegotiationStore) Put(ctx context.Context, n domain.Negotiation) error {
	encoded, err := domain.EncodeMessages(n.Messages)
	if err != nil {
		return fmt.Errorf("postgres: put negotiation %s: %w", n.ID, err)
	}

	const query = `
		UPDATE negotiations SET
			current_offer = $2,
			final_price   = $3,
			status        = $4,
			messages      = $5,
			updated_at    = $6
		WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query,
		n.ID, n.CurrentOffer, n.FinalPrice, string(n.Status), encoded, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: put negotiation %s: %w", n.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListBySneaker returns all negotiations for a listing, oldest first.
func (s *NegotiationStore) ListBySneaker(ctx context.Context, sneakerID string) ([]domain.Negotiation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+negotiationCols+` FROM negotiations WHERE sneaker_id = $1 ORDER BY created_at`,
		sneakerID)
	if err != nil {
		return nil, fmt.Errorf("postgres: list negotiations for %s: %w", sneakerID, err)
	}
	defer rows.Close()

	var out []domain.Negotiation
	for rows.Next() {
		n, err := scanNegotiation(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan negotiation: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list negotiations rows: %w", err)
	}
	return out, nil
}

// ExpireStale transitions active negotiations not touched since cutoff to
// expired and reports how many rows changed.
func (s *NegotiationStore) ExpireStale(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE negotiations SET status = $1, updated_at = NOW()
		 WHERE status = $2 AND updated_at < $3`,
		string(domain.NegotiationExpired), string(domain.NegotiationActive), cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("postgres: expire stale negotiations: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Compile-time interface check.
var _ domain.NegotiationStore = (*NegotiationStore)(nil)
