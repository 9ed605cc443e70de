package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/RishabhV28/sneakdeal/internal/domain"
	"github.com/RishabhV28/sneakdeal/internal/negotiation"
)

// lockTTL bounds how long a negotiation round can hold its lock. A crashed
// round releases automatically after this window.
const lockTTL = 10 * time.Second

// NegotiationBroadcaster pushes negotiation updates to connected clients.
// Implementations must not block.
type NegotiationBroadcaster interface {
	BroadcastNegotiation(n domain.Negotiation)
}

// NegotiationService orchestrates haggling sessions: it loads and persists
// negotiation records around the pure engine calls and serializes concurrent
// rounds on the same negotiation with a per-record lock.
type NegotiationService struct {
	listings     domain.ListingStore
	negotiations domain.NegotiationStore
	locks        domain.LockManager
	broadcaster  NegotiationBroadcaster
	logger       *slog.Logger

	now func() time.Time
}

// NewNegotiationService creates a NegotiationService with all required
// dependencies. broadcaster may be nil when no realtime transport is wired.
func NewNegotiationService(
	listings domain.ListingStore,
	negotiations domain.NegotiationStore,
	locks domain.LockManager,
	broadcaster NegotiationBroadcaster,
	logger *slog.Logger,
) *NegotiationService {
	return &NegotiationService{
		listings:     listings,
		negotiations: negotiations,
		locks:        locks,
		broadcaster:  broadcaster,
		logger:       logger,
		now:          time.Now,
	}
}

// Start opens a negotiation for the given sneaker on behalf of buyerID.
// Returns domain.ErrAIDealUnavailable if the listing does not support AI
// deals and domain.ErrNotFound if the listing does not exist.
func (s *NegotiationService) Start(ctx context.Context, sneakerID, buyerID string) (domain.Negotiation, error) {
	listing, err := s.listings.GetByID(ctx, sneakerID)
	if err != nil {
		return domain.Negotiation{}, fmt.Errorf("negotiation_service: get listing %q: %w", sneakerID, err)
	}

	n, err := negotiation.Initiate(listing, buyerID, s.now())
	if err != nil {
		return domain.Negotiation{}, fmt.Errorf("negotiation_service: initiate: %w", err)
	}
	n.ID = uuid.NewString()

	if err := s.negotiations.Create(ctx, n); err != nil {
		return domain.Negotiation{}, fmt.Errorf("negotiation_service: create: %w", err)
	}

	s.logger.InfoContext(ctx, "negotiation_service: started negotiation",
		slog.String("negotiation_id", n.ID),
		slog.String("sneaker_id", sneakerID),
		slog.Float64("initial_offer", n.CurrentOffer),
	)

	s.broadcast(n)
	return n, nil
}

// Get retrieves a negotiation by ID.
func (s *NegotiationService) Get(ctx context.Context, id string) (domain.Negotiation, error) {
	n, err := s.negotiations.GetByID(ctx, id)
	if err != nil {
		return domain.Negotiation{}, fmt.Errorf("negotiation_service: get by id %q: %w", id, err)
	}
	return n, nil
}

// Continue runs one haggling round and persists the result. Concurrent
// rounds on the same negotiation are serialized by a per-negotiation lock;
// a contended call fails with domain.ErrLockHeld rather than queueing.
func (s *NegotiationService) Continue(ctx context.Context, id string) (domain.Negotiation, error) {
	return s.transition(ctx, id, "continue", negotiation.Continue)
}

// Accept closes the negotiation at the current offer. The same lock as
// Continue guards it, so an accept never races a round in flight.
func (s *NegotiationService) Accept(ctx context.Context, id string) (domain.Negotiation, error) {
	return s.transition(ctx, id, "accept", negotiation.Accept)
}

func (s *NegotiationService) transition(
	ctx context.Context,
	id, action string,
	step func(domain.Negotiation, time.Time) (domain.Negotiation, error),
) (domain.Negotiation, error) {
	unlock, err := s.locks.Acquire(ctx, "negotiation:"+id, lockTTL)
	if err != nil {
		return domain.Negotiation{}, fmt.Errorf("negotiation_service: %s %q: %w", action, id, err)
	}
	defer unlock()

	n, err := s.negotiations.GetByID(ctx, id)
	if err != nil {
		return domain.Negotiation{}, fmt.Errorf("negotiation_service: get by id %q: %w", id, err)
	}

	updated, err := step(n, s.now())
	if err != nil {
		return domain.Negotiation{}, fmt.Errorf("negotiation_service: %s %q: %w", action, id, err)
	}

	if err := s.negotiations.Put(ctx, updated); err != nil {
		return domain.Negotiation{}, fmt.Errorf("negotiation_service: persist %q: %w", id, err)
	}

	s.logger.InfoContext(ctx, "negotiation_service: negotiation updated",
		slog.String("negotiation_id", id),
		slog.String("action", action),
		slog.String("status", string(updated.Status)),
		slog.Float64("current_offer", updated.CurrentOffer),
	)

	s.broadcast(updated)
	return updated, nil
}

// ListBySneaker returns all negotiations recorded against a listing.
func (s *NegotiationService) ListBySneaker(ctx context.Context, sneakerID string) ([]domain.Negotiation, error) {
	out, err := s.negotiations.ListBySneaker(ctx, sneakerID)
	if err != nil {
		return nil, fmt.Errorf("negotiation_service: list by sneaker %q: %w", sneakerID, err)
	}
	return out, nil
}

func (s *NegotiationService) broadcast(n domain.Negotiation) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastNegotiation(n)
	}
}
