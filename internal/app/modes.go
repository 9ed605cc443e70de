package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/RishabhV28/sneakdeal/internal/server"
	"github.com/RishabhV28/sneakdeal/internal/server/handler"
	"github.com/RishabhV28/sneakdeal/internal/server/ws"
	"github.com/RishabhV28/sneakdeal/internal/service"
)

// version is stamped into health responses. Overridden at build time with
// -ldflags "-X .../internal/app.version=v1.2.3".
var version = "dev"

// shutdownTimeout bounds graceful HTTP shutdown on context cancellation.
const shutdownTimeout = 10 * time.Second

// ServeMode runs the storefront API server and the WebSocket hub until the
// context is cancelled. It is used by both the postgres-backed "serve" mode
// and the self-contained "serve-memory" mode; the difference is entirely in
// what Wire put into deps.
func (a *App) ServeMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting serve mode")

	hub := ws.NewHub(a.logger)

	catalogSvc := service.NewCatalogService(
		deps.ListingStore, deps.SellerStore, deps.ListingCache,
		deps.BlobWriter, deps.BlobReader, deps.BlobDeleter, a.logger,
	)
	negotiationSvc := service.NewNegotiationService(
		deps.ListingStore, deps.NegotiationStore, deps.LockManager, hub, a.logger,
	)
	cartSvc := service.NewCartService(deps.CartStore, catalogSvc, a.logger)
	sellerSvc := service.NewSellerService(deps.SellerStore, a.logger)
	assistSvc := service.NewAssistService(deps.Interpreter, deps.Synthesizer, catalogSvc, a.logger)

	handlers := server.Handlers{
		Health:       handler.NewHealthHandler(version),
		Listings:     handler.NewListingHandler(catalogSvc, a.logger),
		Negotiations: handler.NewNegotiationHandler(negotiationSvc, a.logger),
		Carts:        handler.NewCartHandler(cartSvc, a.logger),
		Sellers:      handler.NewSellerHandler(sellerSvc, a.logger),
		Voice:        handler.NewVoiceHandler(assistSvc, a.logger),
	}

	srv := server.NewServer(server.Config{
		Port:            a.cfg.Server.Port,
		CORSOrigins:     a.cfg.Server.CORSOrigins,
		APIKey:          a.cfg.Server.APIKey,
		RateLimitPerMin: a.cfg.Server.RateLimitPerMin,
	}, handlers, hub, deps.RateLimiter, a.logger)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(ctx)
		return nil
	})

	g.Go(func() error {
		return srv.Start()
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// SeedMode loads the demo catalog into the configured stores and exits.
func (a *App) SeedMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting seed mode")
	return Seed(ctx, deps, a.logger)
}
