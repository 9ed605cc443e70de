package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

// maxImageUpload caps a single image upload at 8 MiB.
const maxImageUpload = 8 << 20

// CatalogService defines the methods the listing handler requires from the
// service layer. It is declared locally so the handler package does not
// depend on the concrete service implementation.
type CatalogService interface {
	ListListings(ctx context.Context, filter domain.ListingFilter) ([]domain.ListingWithSeller, error)
	GetListing(ctx context.Context, id string) (domain.ListingWithSeller, error)
	CreateListing(ctx context.Context, listing domain.Listing) (domain.Listing, error)
	UploadImage(ctx context.Context, listingID, filename, contentType string, data []byte) (string, error)
	GetImage(ctx context.Context, listingID, name string) (io.ReadCloser, string, error)
	ListImages(ctx context.Context, listingID string) ([]domain.BlobInfo, error)
	DeleteImage(ctx context.Context, listingID, name string) error
	FilterOptions(ctx context.Context) (domain.FilterOptions, error)
}

// ListingHandler serves sneaker catalog endpoints.
type ListingHandler struct {
	catalog CatalogService
	logger  *slog.Logger
}

// NewListingHandler creates a ListingHandler with the given service and logger.
func NewListingHandler(catalog CatalogService, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{catalog: catalog, logger: logger}
}

// ListSneakers returns listings matching the query-string filters.
// GET /api/sneakers?brand=Nike&size=10&condition=New&minPrice=50&maxPrice=500&search=jordan
func (h *ListingHandler) ListSneakers(w http.ResponseWriter, r *http.Request) {
	filter := parseListingFilter(r)

	listings, err := h.catalog.ListListings(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to list sneakers")
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

// GetSneaker returns a single listing with its seller.
// GET /api/sneakers/{id}
func (h *ListingHandler) GetSneaker(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing sneaker id")
		return
	}

	listing, err := h.catalog.GetListing(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to get sneaker")
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// CreateSneaker creates a new listing from the JSON body.
// POST /api/sneakers
func (h *ListingHandler) CreateSneaker(w http.ResponseWriter, r *http.Request) {
	var listing domain.Listing
	if err := decodeJSON(r, &listing); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.catalog.CreateListing(r.Context(), listing)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to create sneaker")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UploadImage attaches an image to a listing. The body is the raw image
// bytes; Content-Type and the filename query parameter describe it.
// POST /api/sneakers/{id}/images?filename=front.jpg
func (h *ListingHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing sneaker id")
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxImageUpload+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read image body")
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "empty image body")
		return
	}
	if len(data) > maxImageUpload {
		writeError(w, http.StatusRequestEntityTooLarge, "image too large")
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	key, err := h.catalog.UploadImage(r.Context(), id, r.URL.Query().Get("filename"), contentType, data)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to upload image")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"path": key})
}

// GetImage streams a listing's stored image.
// GET /api/sneakers/{id}/images/{name}
func (h *ListingHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	name := pathParam(r, "name")
	if id == "" || name == "" {
		writeError(w, http.StatusBadRequest, "missing sneaker id or image name")
		return
	}

	body, contentType, err := h.catalog.GetImage(r.Context(), id, name)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to get image")
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		h.logger.WarnContext(r.Context(), "listing_handler: image stream interrupted",
			slog.String("sneaker_id", id),
			slog.String("error", err.Error()),
		)
	}
}

// ListImages returns storage metadata for a listing's images.
// GET /api/sneakers/{id}/images
func (h *ListingHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing sneaker id")
		return
	}

	infos, err := h.catalog.ListImages(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to list images")
		return
	}
	if infos == nil {
		infos = []domain.BlobInfo{}
	}
	writeJSON(w, http.StatusOK, infos)
}

// DeleteImage removes a listing's stored image.
// DELETE /api/sneakers/{id}/images/{name}
func (h *ListingHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	name := pathParam(r, "name")
	if id == "" || name == "" {
		writeError(w, http.StatusBadRequest, "missing sneaker id or image name")
		return
	}

	if err := h.catalog.DeleteImage(r.Context(), id, name); err != nil {
		writeServiceError(w, r, h.logger, err, "failed to delete image")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetFilters returns the aggregated filter options for the sidebar.
// GET /api/filters
func (h *ListingHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	opts, err := h.catalog.FilterOptions(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to compute filters")
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func parseListingFilter(r *http.Request) domain.ListingFilter {
	q := r.URL.Query()
	filter := domain.ListingFilter{
		Brand:     q.Get("brand"),
		Size:      q.Get("size"),
		Condition: domain.Condition(q.Get("condition")),
		Search:    q.Get("search"),
	}
	if v := q.Get("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			filter.MinPrice = f
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			filter.MaxPrice = f
		}
	}
	return filter
}
