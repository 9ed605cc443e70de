// Package memory implements the domain store interfaces with mutex-guarded
// maps. It backs the serve-memory mode and test suites; nothing survives a
// restart.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

// ListingStore is an in-memory domain.ListingStore.
type ListingStore struct {
	mu       sync.RWMutex
	listings map[string]domain.Listing
}

// NewListingStore creates an empty in-memory listing store.
func NewListingStore() *ListingStore {
	return &ListingStore{listings: make(map[string]domain.Listing)}
}

// Create inserts a listing. Returns domain.ErrAlreadyExists on id collision.
func (s *ListingStore) Create(_ context.Context, l domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.listings[l.ID]; ok {
		return domain.ErrAlreadyExists
	}
	s.listings[l.ID] = cloneListing(l)
	return nil
}

// GetByID retrieves a listing by id.
func (s *ListingStore) GetByID(_ context.Context, id string) (domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.listings[id]
	if !ok {
		return domain.Listing{}, domain.ErrNotFound
	}
	return cloneListing(l), nil
}

// List returns available listings matching the filter, newest first.
func (s *ListingStore) List(_ context.Context, f domain.ListingFilter) ([]domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Listing
	for _, l := range s.listings {
		if !l.Available {
			continue
		}
		if f.Brand != "" && !strings.Contains(strings.ToLower(l.Brand), strings.ToLower(f.Brand)) {
			continue
		}
		if f.Size != "" && l.Size != f.Size {
			continue
		}
		if f.MinPrice > 0 && l.Price < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && l.Price > f.MaxPrice {
			continue
		}
		if f.Condition != "" && l.Condition != f.Condition {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(l.Name), q) &&
				!strings.Contains(strings.ToLower(l.Brand), q) &&
				!strings.Contains(strings.ToLower(l.Colorway), q) {
				continue
			}
		}
		out = append(out, cloneListing(l))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Update rewrites an existing listing.
func (s *ListingStore) Update(_ context.Context, l domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.listings[l.ID]; !ok {
		return domain.ErrNotFound
	}
	s.listings[l.ID] = cloneListing(l)
	return nil
}

// SellerStore is an in-memory domain.SellerStore.
type SellerStore struct {
	mu      sync.RWMutex
	sellers map[string]domain.Seller
}

// NewSellerStore creates an empty in-memory seller store.
func NewSellerStore() *SellerStore {
	return &SellerStore{sellers: make(map[string]domain.Seller)}
}

// Create inserts a seller.
func (s *SellerStore) Create(_ context.Context, seller domain.Seller) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sellers[seller.ID]; ok {
		return domain.ErrAlreadyExists
	}
	for _, existing := range s.sellers {
		if existing.Email == seller.Email {
			return domain.ErrAlreadyExists
		}
	}
	s.sellers[seller.ID] = seller
	return nil
}

// GetByID retrieves a seller by id.
func (s *SellerStore) GetByID(_ context.Context, id string) (domain.Seller, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seller, ok := s.sellers[id]
	if !ok {
		return domain.Seller{}, domain.ErrNotFound
	}
	return seller, nil
}

// GetByEmail retrieves a seller by email.
func (s *SellerStore) GetByEmail(_ context.Context, email string) (domain.Seller, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, seller := range s.sellers {
		if seller.Email == email {
			return seller, nil
		}
	}
	return domain.Seller{}, domain.ErrNotFound
}

// NegotiationStore is an in-memory domain.NegotiationStore. Transcripts are
// held in their storage encoding (one JSON string per message) so reads
// exercise the same decode path as the persistent store.
type NegotiationStore struct {
	mu      sync.RWMutex
	records map[string]negotiationRecord
}

type negotiationRecord struct {
	n        domain.Negotiation
	messages []string
}

// NewNegotiationStore creates an empty in-memory negotiation store.
func NewNegotiationStore() *NegotiationStore {
	return &NegotiationStore{records: make(map[string]negotiationRecord)}
}

// Create inserts a negotiation record.
func (s *NegotiationStore) Create(_ context.Context, n domain.Negotiation) error {
	encoded, err := domain.EncodeMessages(n.Messages)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[n.ID]; ok {
		return domain.ErrAlreadyExists
	}
	bare := n
	bare.Messages = nil
	s.records[n.ID] = negotiationRecord{n: bare, messages: encoded}
	return nil
}

// GetByID retrieves a negotiation with its transcript decoded.
func (s *NegotiationStore) GetByID(_ context.Context, id string) (domain.Negotiation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.Negotiation{}, domain.ErrNotFound
	}
	return rec.decode()
}

// Put rewrites the whole negotiation record.
func (s *NegotiationStore) Put(_ context.Context, n domain.Negotiation) error {
	encoded, err := domain.EncodeMessages(n.Messages)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[n.ID]; !ok {
		return domain.ErrNotFound
	}
	bare := n
	bare.Messages = nil
	s.records[n.ID] = negotiationRecord{n: bare, messages: encoded}
	return nil
}

// ListBySneaker returns all negotiations for a listing, oldest first.
func (s *NegotiationStore) ListBySneaker(_ context.Context, sneakerID string) ([]domain.Negotiation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Negotiation
	for _, rec := range s.records {
		if rec.n.SneakerID != sneakerID {
			continue
		}
		n, err := rec.decode()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ExpireStale transitions active negotiations older than cutoff to expired.
func (s *NegotiationStore) ExpireStale(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for id, rec := range s.records {
		if rec.n.Status == domain.NegotiationActive && rec.n.UpdatedAt.Before(cutoff) {
			rec.n.Status = domain.NegotiationExpired
			rec.n.UpdatedAt = time.Now().UTC()
			s.records[id] = rec
			count++
		}
	}
	return count, nil
}

func (r negotiationRecord) decode() (domain.Negotiation, error) {
	msgs, err := domain.DecodeMessages(r.messages)
	if err != nil {
		return domain.Negotiation{}, err
	}
	n := r.n
	n.Messages = msgs
	return n, nil
}

// CartStore is an in-memory domain.CartStore.
type CartStore struct {
	mu    sync.RWMutex
	items map[string]domain.CartItem
}

// NewCartStore creates an empty in-memory cart store.
func NewCartStore() *CartStore {
	return &CartStore{items: make(map[string]domain.CartItem)}
}

// Add inserts a cart item. Re-adding the same listing bumps the quantity.
func (s *CartStore) Add(_ context.Context, item domain.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.items {
		if existing.UserID == item.UserID && existing.SneakerID == item.SneakerID {
			existing.Quantity += item.Quantity
			s.items[id] = existing
			return nil
		}
	}
	s.items[item.ID] = item
	return nil
}

// ListByUser returns the user's cart items, oldest first.
func (s *CartStore) ListByUser(_ context.Context, userID string) ([]domain.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.CartItem
	for _, item := range s.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AddedAt.Before(out[j].AddedAt) })
	return out, nil
}

// Remove deletes a user's cart entry for a listing.
func (s *CartStore) Remove(_ context.Context, userID, sneakerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, item := range s.items {
		if item.UserID == userID && item.SneakerID == sneakerID {
			delete(s.items, id)
			return nil
		}
	}
	return domain.ErrNotFound
}

func cloneListing(l domain.Listing) domain.Listing {
	out := l
	out.Images = append([]string{}, l.Images...)
	if l.OriginalPrice != nil {
		v := *l.OriginalPrice
		out.OriginalPrice = &v
	}
	return out
}

// Compile-time interface checks.
var (
	_ domain.ListingStore     = (*ListingStore)(nil)
	_ domain.SellerStore      = (*SellerStore)(nil)
	_ domain.NegotiationStore = (*NegotiationStore)(nil)
	_ domain.CartStore        = (*CartStore)(nil)
)
