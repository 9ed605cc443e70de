// Package server is the HTTP + WebSocket surface of the SneakDeal API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/RishabhV28/sneakdeal/internal/domain"
	"github.com/RishabhV28/sneakdeal/internal/server/handler"
	"github.com/RishabhV28/sneakdeal/internal/server/middleware"
	"github.com/RishabhV28/sneakdeal/internal/server/ws"
)

// Config holds the HTTP server configuration.
type Config struct {
	Port            int
	CORSOrigins     []string
	APIKey          string // if empty, authentication is disabled
	RateLimitPerMin int    // if zero or no limiter, rate limiting is disabled
}

// Handlers aggregates all HTTP handlers the server registers.
type Handlers struct {
	Health       *handler.HealthHandler
	Listings     *handler.ListingHandler
	Negotiations *handler.NegotiationHandler
	Carts        *handler.CartHandler
	Sellers      *handler.SellerHandler
	Voice        *handler.VoiceHandler
}

// Server is the storefront API server.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer registers all routes on a ServeMux and wires the middleware
// chain (auth, rate limiting, logging, CORS) around it. limiter may be nil.
func NewServer(cfg Config, handlers Handlers, wsHub *ws.Hub, limiter domain.RateLimiter, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	// Health check (no auth required on the chain level; auth is global but
	// disabled unless a key is configured).
	mux.HandleFunc("GET /api/health", handlers.Health.HealthCheck)

	// Catalog.
	mux.HandleFunc("GET /api/sneakers", handlers.Listings.ListSneakers)
	mux.HandleFunc("POST /api/sneakers", handlers.Listings.CreateSneaker)
	mux.HandleFunc("GET /api/sneakers/{id}", handlers.Listings.GetSneaker)
	mux.HandleFunc("POST /api/sneakers/{id}/images", handlers.Listings.UploadImage)
	mux.HandleFunc("GET /api/sneakers/{id}/images", handlers.Listings.ListImages)
	mux.HandleFunc("GET /api/sneakers/{id}/images/{name}", handlers.Listings.GetImage)
	mux.HandleFunc("DELETE /api/sneakers/{id}/images/{name}", handlers.Listings.DeleteImage)
	mux.HandleFunc("GET /api/sneakers/{id}/negotiations", handlers.Negotiations.ListBySneaker)
	mux.HandleFunc("GET /api/filters", handlers.Listings.GetFilters)

	// Negotiations.
	mux.HandleFunc("POST /api/negotiations", handlers.Negotiations.StartNegotiation)
	mux.HandleFunc("GET /api/negotiations/{id}", handlers.Negotiations.GetNegotiation)
	mux.HandleFunc("PATCH /api/negotiations/{id}/continue", handlers.Negotiations.ContinueNegotiation)
	mux.HandleFunc("PATCH /api/negotiations/{id}/accept", handlers.Negotiations.AcceptNegotiation)

	// Cart.
	mux.HandleFunc("POST /api/cart", handlers.Carts.AddToCart)
	mux.HandleFunc("GET /api/cart/{userId}", handlers.Carts.GetCart)
	mux.HandleFunc("DELETE /api/cart/{userId}/{sneakerId}", handlers.Carts.RemoveFromCart)

	// Sellers.
	mux.HandleFunc("POST /api/sellers/register", handlers.Sellers.Register)
	mux.HandleFunc("POST /api/sellers/login", handlers.Sellers.Login)
	mux.HandleFunc("GET /api/sellers/{id}", handlers.Sellers.GetSeller)

	// Voice assistant.
	mux.HandleFunc("POST /api/voice/process", handlers.Voice.ProcessVoice)
	mux.HandleFunc("POST /api/voice/speak", handlers.Voice.Speak)

	// Live negotiation updates.
	if wsHub != nil {
		mux.HandleFunc("GET /ws", wsHub.HandleWS)
	}

	var h http.Handler = mux
	h = middleware.Auth(cfg.APIKey)(h)
	if limiter != nil && cfg.RateLimitPerMin > 0 {
		h = middleware.RateLimit(limiter, cfg.RateLimitPerMin, time.Minute)(h)
	}
	h = middleware.Logging(logger)(h)
	h = middleware.CORS(cfg.CORSOrigins)(h)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      h,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Start begins listening for HTTP requests. It blocks until the server
// encounters an error or is shut down.
func (s *Server) Start() error {
	s.logger.Info("server: starting",
		slog.String("addr", s.httpServer.Addr),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests
// to complete within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server: shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
