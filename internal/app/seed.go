package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

// seedPassword is the demo password shared by all seeded accounts.
const seedPassword = "password123"

type seedSeller struct {
	username string
	email    string
	avatar   string
	rating   float64
	sales    int
	verified bool
}

type seedListing struct {
	name        string
	brand       string
	model       string
	colorway    string
	price       float64
	origPrice   float64
	size        string
	condition   domain.Condition
	description string
	image       string
	seller      int // index into seedSellers
	aiDeal      bool
	featured    bool
}

var seedSellers = []seedSeller{
	{
		username: "sneakerking",
		email:    "king@example.com",
		avatar:   "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=100&h=100&fit=crop&crop=face",
		rating:   4.8, sales: 87, verified: true,
	},
	{
		username: "kickscollector",
		email:    "collector@example.com",
		avatar:   "https://images.unsplash.com/photo-1494790108755-2616b79a6e72?w=100&h=100&fit=crop&crop=face",
		rating:   4.3, sales: 52, verified: true,
	},
	{
		username: "hypebeast23",
		email:    "hype@example.com",
		avatar:   "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=100&h=100&fit=crop&crop=face",
		rating:   3.9, sales: 21, verified: false,
	},
}

var seedListings = []seedListing{
	{
		name:        `Nike Air Jordan 1 Retro High "Chicago"`,
		brand:       "Nike",
		model:       "Air Jordan 1 Retro High",
		colorway:    "Chicago",
		price:       2450.00,
		origPrice:   2450.00,
		size:        "10",
		condition:   domain.ConditionNew,
		description: "Deadstock Nike Air Jordan 1 Retro High in the iconic Chicago colorway. Includes original box and accessories.",
		image:       "https://images.unsplash.com/photo-1584735175315-9d5df23860e6?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
		seller:      0, aiDeal: true, featured: true,
	},
	{
		name:        `Adidas Yeezy Boost 350 V2 "Zebra"`,
		brand:       "Adidas",
		model:       "Yeezy Boost 350 V2",
		colorway:    "Zebra",
		price:       890.00,
		origPrice:   890.00,
		size:        "9.5",
		condition:   domain.ConditionLikeNew,
		description: "Excellent condition Yeezy Boost 350 V2 in Zebra colorway. Worn twice, no visible wear.",
		image:       "https://images.unsplash.com/photo-1552346154-21d32810aba3?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
		seller:      1,
	},
	{
		name:        `Nike Air Force 1 Low "White"`,
		brand:       "Nike",
		model:       "Air Force 1 Low",
		colorway:    "White",
		price:       120.00,
		origPrice:   150.00,
		size:        "11",
		condition:   domain.ConditionNew,
		description: "Classic Nike Air Force 1 Low in triple white. Brand new with box.",
		image:       "https://images.unsplash.com/photo-1549298916-b41d501d3772?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
		seller:      2, featured: true,
	},
	{
		name:        `Nike Air Max 90 "Infrared"`,
		brand:       "Nike",
		model:       "Air Max 90",
		colorway:    "Infrared",
		price:       185.00,
		origPrice:   185.00,
		size:        "8.5",
		condition:   domain.ConditionUsed,
		description: "Well-maintained Air Max 90 in the classic Infrared colorway. Some signs of wear but lots of life left.",
		image:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
		seller:      0, aiDeal: true,
	},
	{
		name:        "Off-White x Nike Air Jordan 1",
		brand:       "Nike",
		model:       "Air Jordan 1",
		colorway:    "Off-White Chicago",
		price:       4850.00,
		origPrice:   4850.00,
		size:        "9",
		condition:   domain.ConditionNew,
		description: "Extremely rare Off-White x Nike Air Jordan 1 collaboration. Deadstock with all accessories.",
		image:       "https://images.unsplash.com/photo-1600185365483-26d7a4cc7519?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
		seller:      1, featured: true,
	},
	{
		name:        `Adidas Stan Smith "White/Green"`,
		brand:       "Adidas",
		model:       "Stan Smith",
		colorway:    "White/Green",
		price:       75.00,
		origPrice:   75.00,
		size:        "12",
		condition:   domain.ConditionLikeNew,
		description: "Classic Adidas Stan Smith in white with green accents. Minimal wear, excellent condition.",
		image:       "https://images.unsplash.com/photo-1560769629-975ec94e6a86?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
		seller:      2,
	},
}

// Seed loads the demo catalog: three sellers and six listings, two of them
// with AI deals enabled. Re-running against an already-seeded store skips
// existing sellers by email.
func Seed(ctx context.Context, deps *Dependencies, logger *slog.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash password: %w", err)
	}

	sellerIDs := make([]string, len(seedSellers))
	for i, s := range seedSellers {
		existing, err := deps.SellerStore.GetByEmail(ctx, s.email)
		if err == nil {
			sellerIDs[i] = existing.ID
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("seed: check seller %q: %w", s.email, err)
		}

		seller := domain.Seller{
			ID:             uuid.NewString(),
			Username:       s.username,
			Email:          s.email,
			PasswordHash:   string(hash),
			Avatar:         s.avatar,
			Rating:         s.rating,
			TotalSales:     s.sales,
			VerifiedSeller: s.verified,
		}
		if err := deps.SellerStore.Create(ctx, seller); err != nil {
			return fmt.Errorf("seed: create seller %q: %w", s.username, err)
		}
		sellerIDs[i] = seller.ID
	}

	created := 0
	for _, l := range seedListings {
		orig := l.origPrice
		listing := domain.Listing{
			ID:              uuid.NewString(),
			Name:            l.name,
			Brand:           l.brand,
			Model:           l.model,
			Colorway:        l.colorway,
			Price:           l.price,
			OriginalPrice:   &orig,
			Size:            l.size,
			Condition:       l.condition,
			Description:     l.description,
			Images:          []string{l.image},
			SellerID:        sellerIDs[l.seller],
			Available:       true,
			Featured:        l.featured,
			AIDealAvailable: l.aiDeal,
			CreatedAt:       time.Now().UTC(),
		}
		if err := deps.ListingStore.Create(ctx, listing); err != nil {
			return fmt.Errorf("seed: create listing %q: %w", l.name, err)
		}
		created++
	}

	logger.InfoContext(ctx, "seed complete",
		slog.Int("sellers", len(seedSellers)),
		slog.Int("sneakers", created),
	)
	return nil
}
