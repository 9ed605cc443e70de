package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubNegotiationService returns canned values per method.
type stubNegotiationService struct {
	negotiation domain.Negotiation
	err         error
}

func (s *stubNegotiationService) Start(_ context.Context, sneakerID, buyerID string) (domain.Negotiation, error) {
	return s.negotiation, s.err
}

func (s *stubNegotiationService) Get(_ context.Context, id string) (domain.Negotiation, error) {
	return s.negotiation, s.err
}

func (s *stubNegotiationService) Continue(_ context.Context, id string) (domain.Negotiation, error) {
	return s.negotiation, s.err
}

func (s *stubNegotiationService) Accept(_ context.Context, id string) (domain.Negotiation, error) {
	return s.negotiation, s.err
}

func (s *stubNegotiationService) ListBySneaker(_ context.Context, sneakerID string) ([]domain.Negotiation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Negotiation{s.negotiation}, nil
}

// negotiationMux registers the negotiation routes the way the server does,
// so path parameters resolve in tests.
func negotiationMux(svc NegotiationService) *http.ServeMux {
	h := NewNegotiationHandler(svc, testLogger())
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/negotiations", h.StartNegotiation)
	mux.HandleFunc("GET /api/negotiations/{id}", h.GetNegotiation)
	mux.HandleFunc("PATCH /api/negotiations/{id}/continue", h.ContinueNegotiation)
	mux.HandleFunc("PATCH /api/negotiations/{id}/accept", h.AcceptNegotiation)
	return mux
}

func sampleNegotiation() domain.Negotiation {
	return domain.Negotiation{
		ID:            "neg-1",
		SneakerID:     "sn-1",
		BuyerID:       "buyer-1",
		SellerID:      "seller-1",
		OriginalPrice: 2450,
		CurrentOffer:  2150,
		Status:        domain.NegotiationActive,
		Messages: []domain.NegotiationMessage{
			{ID: "1", Type: domain.MessageAI, Message: "opening", Timestamp: "2024-05-01T12:00:00Z"},
		},
	}
}

func TestStartNegotiation(t *testing.T) {
	mux := negotiationMux(&stubNegotiationService{negotiation: sampleNegotiation()})

	req := httptest.NewRequest(http.MethodPost, "/api/negotiations",
		strings.NewReader(`{"sneakerId":"sn-1","buyerId":"buyer-1","sellerId":"sel-1"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var got domain.Negotiation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "neg-1", got.ID)
	assert.Equal(t, 2150.0, got.CurrentOffer)
	require.Len(t, got.Messages, 1)
}

func TestStartNegotiationBadRequests(t *testing.T) {
	mux := negotiationMux(&stubNegotiationService{negotiation: sampleNegotiation()})

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"unknown field", `{"sneakerId":"sn-1","buyerId":"b","bogus":true}`},
		{"missing sneaker id", `{"buyerId":"buyer-1"}`},
		{"missing buyer id", `{"sneakerId":"sn-1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/negotiations", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestNegotiationErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"no ai deal", domain.ErrAIDealUnavailable, http.StatusBadRequest},
		{"not active", domain.ErrNegotiationNotActive, http.StatusBadRequest},
		{"lock held", domain.ErrLockHeld, http.StatusConflict},
		{"unexpected", io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := negotiationMux(&stubNegotiationService{err: tt.err})

			req := httptest.NewRequest(http.MethodPatch, "/api/negotiations/neg-1/continue", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body, "error")
		})
	}
}

func TestAcceptNegotiation(t *testing.T) {
	n := sampleNegotiation()
	final := 2255.0
	n.Status = domain.NegotiationAccepted
	n.FinalPrice = &final
	mux := negotiationMux(&stubNegotiationService{negotiation: n})

	req := httptest.NewRequest(http.MethodPatch, "/api/negotiations/neg-1/accept", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Negotiation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, domain.NegotiationAccepted, got.Status)
	require.NotNil(t, got.FinalPrice)
	assert.Equal(t, 2255.0, *got.FinalPrice)
}

func TestGetNegotiation(t *testing.T) {
	mux := negotiationMux(&stubNegotiationService{negotiation: sampleNegotiation()})

	req := httptest.NewRequest(http.MethodGet, "/api/negotiations/neg-1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Negotiation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "neg-1", got.ID)
}
