package app

import (
	"context"
	"fmt"
	"time"

	s3blob "github.com/RishabhV28/sneakdeal/internal/blob/s3"
	"github.com/RishabhV28/sneakdeal/internal/cache/redis"
	"github.com/RishabhV28/sneakdeal/internal/config"
	"github.com/RishabhV28/sneakdeal/internal/domain"
	"github.com/RishabhV28/sneakdeal/internal/platform/assist"
	"github.com/RishabhV28/sneakdeal/internal/store/memory"
	"github.com/RishabhV28/sneakdeal/internal/store/postgres"
)

// Dependencies bundles every domain-level dependency the application modes
// need. It is constructed by Wire and torn down by the returned cleanup
// function.
type Dependencies struct {
	// Stores
	ListingStore     domain.ListingStore
	SellerStore      domain.SellerStore
	NegotiationStore domain.NegotiationStore
	CartStore        domain.CartStore

	// Caches and coordination
	ListingCache domain.ListingCache
	RateLimiter  domain.RateLimiter
	LockManager  domain.LockManager

	// Blob storage for listing images
	BlobWriter  domain.BlobWriter
	BlobReader  domain.BlobReader
	BlobDeleter domain.BlobDeleter

	// Voice assistant
	Interpreter domain.Interpreter
	Synthesizer domain.SpeechSynthesizer
}

// needsPostgres reports whether the mode requires a database connection.
func needsPostgres(mode string) bool {
	switch mode {
	case "serve", "seed":
		return true
	default:
		return false
	}
}

// Wire constructs all concrete dependency implementations from the given
// configuration and returns them together with a cleanup function that
// should be called on shutdown to release resources.
func Wire(ctx context.Context, cfg *config.Config) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{}

	// --- PostgreSQL ---
	if needsPostgres(cfg.Mode) {
		pgClient, err := postgres.New(ctx, postgres.ClientConfig{
			DSN:      cfg.Postgres.DSN,
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Database: cfg.Postgres.Database,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			SSLMode:  cfg.Postgres.SSLMode,
			MaxConns: cfg.Postgres.PoolMaxConns,
			MinConns: cfg.Postgres.PoolMinConns,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: postgres: %w", err)
		}
		closers = append(closers, pgClient.Close)

		if cfg.Postgres.RunMigrations {
			if err := pgClient.RunMigrations(ctx); err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("wire: postgres migrations: %w", err)
			}
		}

		pool := pgClient.Pool()
		deps.ListingStore = postgres.NewListingStore(pool)
		deps.SellerStore = postgres.NewSellerStore(pool)
		deps.NegotiationStore = postgres.NewNegotiationStore(pool)
		deps.CartStore = postgres.NewCartStore(pool)
	} else {
		deps.ListingStore = memory.NewListingStore()
		deps.SellerStore = memory.NewSellerStore()
		deps.NegotiationStore = memory.NewNegotiationStore()
		deps.CartStore = memory.NewCartStore()
	}

	// --- Redis (serve mode only; memory mode runs self-contained) ---
	if cfg.Mode == "serve" {
		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { redisClient.Close() })

		cacheTTL := time.Duration(cfg.Redis.CacheTTLMinutes) * time.Minute
		deps.ListingCache = redis.NewListingCache(redisClient, cacheTTL)
		deps.RateLimiter = redis.NewRateLimiter(redisClient)
		deps.LockManager = redis.NewLockManager(redisClient)
	} else {
		deps.ListingCache = memory.NewListingCache()
		deps.LockManager = memory.NewLockManager()
		// No RateLimiter: the middleware is skipped when none is wired.
	}

	// --- S3 (optional; without it image uploads are rejected) ---
	if cfg.S3.Bucket != "" {
		s3Client, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			UseSSL:         cfg.S3.UseSSL,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: s3: %w", err)
		}
		closers = append(closers, func() { _ = s3Client.Close() })

		deps.BlobWriter = s3blob.NewWriter(s3Client)
		reader := s3blob.NewReader(s3Client)
		deps.BlobReader = reader
		deps.BlobDeleter = reader
	}

	// --- Voice assistant ---
	assistClient := assist.NewClient(assist.Config{
		BaseURL:   cfg.Assist.BaseURL,
		APIKey:    cfg.Assist.APIKey,
		ChatModel: cfg.Assist.ChatModel,
		TTSModel:  cfg.Assist.TTSModel,
		Voice:     cfg.Assist.Voice,
	})
	deps.Interpreter = assistClient
	deps.Synthesizer = assistClient

	return deps, cleanup, nil
}
