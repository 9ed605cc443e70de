package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

// CatalogService handles listing browsing, creation, and image uploads.
type CatalogService struct {
	listings domain.ListingStore
	sellers  domain.SellerStore
	cache    domain.ListingCache
	images   domain.BlobWriter
	media    domain.BlobReader
	trash    domain.BlobDeleter
	logger   *slog.Logger
}

// NewCatalogService creates a CatalogService with all required dependencies.
// The blob arguments may be nil when no object storage is configured; the
// image operations return errors in that case.
func NewCatalogService(
	listings domain.ListingStore,
	sellers domain.SellerStore,
	cache domain.ListingCache,
	images domain.BlobWriter,
	media domain.BlobReader,
	trash domain.BlobDeleter,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		listings: listings,
		sellers:  sellers,
		cache:    cache,
		images:   images,
		media:    media,
		trash:    trash,
		logger:   logger,
	}
}

// ListListings returns listings matching the filter, each joined with its
// seller's public profile. Sellers are looked up once per distinct seller id.
func (s *CatalogService) ListListings(ctx context.Context, filter domain.ListingFilter) ([]domain.ListingWithSeller, error) {
	listings, err := s.listings.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("catalog_service: list: %w", err)
	}
	return s.joinSellers(ctx, listings)
}

// GetListing retrieves a listing by ID with its seller, checking the cache
// first and falling back to the persistent store on a cache miss.
func (s *CatalogService) GetListing(ctx context.Context, id string) (domain.ListingWithSeller, error) {
	listing, err := s.cache.Get(ctx, id)
	if err != nil {
		// Cache miss or error -- fall through to store.
		listing, err = s.listings.GetByID(ctx, id)
		if err != nil {
			return domain.ListingWithSeller{}, fmt.Errorf("catalog_service: get by id %q: %w", id, err)
		}

		// Back-fill cache; log but do not fail on cache write errors.
		if cacheErr := s.cache.Set(ctx, listing); cacheErr != nil {
			s.logger.WarnContext(ctx, "catalog_service: cache set failed",
				slog.String("sneaker_id", id),
				slog.String("error", cacheErr.Error()),
			)
		}
	}

	seller, err := s.sellers.GetByID(ctx, listing.SellerID)
	if err != nil {
		return domain.ListingWithSeller{}, fmt.Errorf("catalog_service: get seller %q: %w", listing.SellerID, err)
	}
	return domain.ListingWithSeller{Listing: listing, Seller: seller}, nil
}

// CreateListing validates and persists a new listing. The ID, creation time,
// and availability are assigned here; callers supply everything else.
func (s *CatalogService) CreateListing(ctx context.Context, listing domain.Listing) (domain.Listing, error) {
	if err := validateListing(listing); err != nil {
		return domain.Listing{}, err
	}

	if _, err := s.sellers.GetByID(ctx, listing.SellerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ve := &domain.ValidationError{}
			return domain.Listing{}, ve.Add("sellerId", "unknown seller")
		}
		return domain.Listing{}, fmt.Errorf("catalog_service: verify seller: %w", err)
	}

	listing.ID = uuid.NewString()
	listing.Available = true
	listing.CreatedAt = time.Now().UTC()
	if listing.Images == nil {
		listing.Images = []string{}
	}

	if err := s.listings.Create(ctx, listing); err != nil {
		return domain.Listing{}, fmt.Errorf("catalog_service: create: %w", err)
	}
	return listing, nil
}

// UploadImage stores image bytes in blob storage under the listing's prefix,
// appends the object path to the listing's image list, and invalidates the
// cached listing.
func (s *CatalogService) UploadImage(ctx context.Context, listingID, filename, contentType string, data []byte) (string, error) {
	if s.images == nil {
		return "", fmt.Errorf("catalog_service: image storage not configured")
	}

	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return "", fmt.Errorf("catalog_service: get by id %q: %w", listingID, err)
	}

	key := path.Join("sneakers", listingID, uuid.NewString()+path.Ext(filename))
	if err := s.images.Put(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return "", fmt.Errorf("catalog_service: upload image: %w", err)
	}

	listing.Images = append(listing.Images, key)
	if err := s.listings.Update(ctx, listing); err != nil {
		return "", fmt.Errorf("catalog_service: attach image: %w", err)
	}

	s.invalidate(ctx, listingID)
	return key, nil
}

// GetImage streams a stored image for a listing. name is the object's file
// name within the listing's prefix, as returned by UploadImage. The caller
// must close the returned reader.
func (s *CatalogService) GetImage(ctx context.Context, listingID, name string) (io.ReadCloser, string, error) {
	if s.media == nil {
		return nil, "", fmt.Errorf("catalog_service: image storage not configured")
	}

	key := path.Join("sneakers", listingID, name)
	body, contentType, err := s.media.Get(ctx, key)
	if err != nil {
		return nil, "", fmt.Errorf("catalog_service: get image %q: %w", key, err)
	}
	return body, contentType, nil
}

// ListImages returns storage metadata for every object under the listing's
// prefix. Unlike the listing's own image list this reflects what is actually
// in the bucket, so it also surfaces orphaned uploads.
func (s *CatalogService) ListImages(ctx context.Context, listingID string) ([]domain.BlobInfo, error) {
	if s.media == nil {
		return nil, fmt.Errorf("catalog_service: image storage not configured")
	}

	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return nil, fmt.Errorf("catalog_service: get by id %q: %w", listingID, err)
	}

	infos, err := s.media.List(ctx, path.Join("sneakers", listingID)+"/")
	if err != nil {
		return nil, fmt.Errorf("catalog_service: list images: %w", err)
	}
	return infos, nil
}

// DeleteImage removes a stored image and detaches it from the listing's
// image list, invalidating the cached listing.
func (s *CatalogService) DeleteImage(ctx context.Context, listingID, name string) error {
	if s.trash == nil {
		return fmt.Errorf("catalog_service: image storage not configured")
	}

	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return fmt.Errorf("catalog_service: get by id %q: %w", listingID, err)
	}

	key := path.Join("sneakers", listingID, name)
	if err := s.trash.Delete(ctx, key); err != nil {
		return fmt.Errorf("catalog_service: delete image %q: %w", key, err)
	}

	images := listing.Images[:0]
	for _, img := range listing.Images {
		if img != key {
			images = append(images, img)
		}
	}
	listing.Images = images
	if err := s.listings.Update(ctx, listing); err != nil {
		return fmt.Errorf("catalog_service: detach image: %w", err)
	}

	s.invalidate(ctx, listingID)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, listingID string) {
	if err := s.cache.Invalidate(ctx, listingID); err != nil {
		s.logger.WarnContext(ctx, "catalog_service: cache invalidate failed",
			slog.String("sneaker_id", listingID),
			slog.String("error", err.Error()),
		)
	}
}

// FilterOptions aggregates the distinct brands, sizes, conditions, and price
// range across available listings for the storefront sidebar.
func (s *CatalogService) FilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	listings, err := s.listings.List(ctx, domain.ListingFilter{})
	if err != nil {
		return domain.FilterOptions{}, fmt.Errorf("catalog_service: filter options: %w", err)
	}

	brandCounts := make(map[string]int)
	sizeSet := make(map[string]struct{})
	condSet := make(map[domain.Condition]struct{})
	var priceRange domain.PriceRange

	first := true
	for _, l := range listings {
		if !l.Available {
			continue
		}
		brandCounts[l.Brand]++
		sizeSet[l.Size] = struct{}{}
		condSet[l.Condition] = struct{}{}
		if first {
			priceRange.Min, priceRange.Max = l.Price, l.Price
			first = false
			continue
		}
		if l.Price < priceRange.Min {
			priceRange.Min = l.Price
		}
		if l.Price > priceRange.Max {
			priceRange.Max = l.Price
		}
	}

	brands := make([]domain.BrandCount, 0, len(brandCounts))
	for name, count := range brandCounts {
		brands = append(brands, domain.BrandCount{Name: name, Count: count})
	}
	sort.Slice(brands, func(i, j int) bool { return brands[i].Name < brands[j].Name })

	sizes := make([]string, 0, len(sizeSet))
	for size := range sizeSet {
		sizes = append(sizes, size)
	}
	// Sizes are numeric strings ("9.5"); sort by value, not lexically.
	sort.Slice(sizes, func(i, j int) bool {
		a, _ := strconv.ParseFloat(sizes[i], 64)
		b, _ := strconv.ParseFloat(sizes[j], 64)
		return a < b
	})

	conditions := make([]domain.Condition, 0, len(condSet))
	for c := range condSet {
		conditions = append(conditions, c)
	}
	sort.Slice(conditions, func(i, j int) bool { return conditions[i] < conditions[j] })

	return domain.FilterOptions{
		Brands:     brands,
		Sizes:      sizes,
		Conditions: conditions,
		PriceRange: priceRange,
	}, nil
}

// joinSellers attaches seller profiles to listings, deduplicating lookups.
func (s *CatalogService) joinSellers(ctx context.Context, listings []domain.Listing) ([]domain.ListingWithSeller, error) {
	sellersByID := make(map[string]domain.Seller)
	out := make([]domain.ListingWithSeller, 0, len(listings))
	for _, l := range listings {
		seller, ok := sellersByID[l.SellerID]
		if !ok {
			var err error
			seller, err = s.sellers.GetByID(ctx, l.SellerID)
			if err != nil {
				return nil, fmt.Errorf("catalog_service: get seller %q: %w", l.SellerID, err)
			}
			sellersByID[l.SellerID] = seller
		}
		out = append(out, domain.ListingWithSeller{Listing: l, Seller: seller})
	}
	return out, nil
}

func validateListing(l domain.Listing) error {
	ve := &domain.ValidationError{}
	if strings.TrimSpace(l.Name) == "" {
		ve.Add("name", "required")
	}
	if strings.TrimSpace(l.Brand) == "" {
		ve.Add("brand", "required")
	}
	if l.Price <= 0 {
		ve.Add("price", "must be positive")
	}
	if l.OriginalPrice != nil && *l.OriginalPrice <= 0 {
		ve.Add("originalPrice", "must be positive")
	}
	if strings.TrimSpace(l.Size) == "" {
		ve.Add("size", "required")
	}
	if !domain.ValidCondition(l.Condition) {
		ve.Add("condition", "must be one of New, Like New, Used")
	}
	if strings.TrimSpace(l.SellerID) == "" {
		ve.Add("sellerId", "required")
	}
	if ve.Empty() {
		return nil
	}
	return ve
}
