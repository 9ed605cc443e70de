package domain

import "time"

// Condition describes the wear state of a listed sneaker.
type Condition string

const (
	ConditionNew     Condition = "New"
	ConditionLikeNew Condition = "Like New"
	ConditionUsed    Condition = "Used"
)

// ValidCondition reports whether c is one of the known condition values.
func ValidCondition(c Condition) bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionUsed:
		return true
	}
	return false
}

// Listing is a sneaker offered for sale. Once created, only Available,
// Featured, and Price change.
type Listing struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Brand           string    `json:"brand"`
	Model           string    `json:"model"`
	Colorway        string    `json:"colorway"`
	Price           float64   `json:"price"`
	OriginalPrice   *float64  `json:"originalPrice,omitempty"`
	Size            string    `json:"size"`
	Condition       Condition `json:"condition"`
	Description     string    `json:"description"`
	Images          []string  `json:"images"`
	SellerID        string    `json:"sellerId"`
	Available       bool      `json:"available"`
	Featured        bool      `json:"featured"`
	AIDealAvailable bool      `json:"aiDealAvailable"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ListingWithSeller joins a listing with its seller's public profile.
type ListingWithSeller struct {
	Listing
	Seller Seller `json:"seller"`
}

// ListingFilter narrows listing queries. Zero values mean "no constraint".
// Search matches case-insensitively against name, brand, and colorway.
type ListingFilter struct {
	Brand     string
	Size      string
	MinPrice  float64
	MaxPrice  float64
	Condition Condition
	Search    string
}

// FilterOptions aggregates the distinct filterable values across available
// listings, used to render the storefront filter sidebar.
type FilterOptions struct {
	Brands     []BrandCount `json:"brands"`
	Sizes      []string     `json:"sizes"`
	Conditions []Condition  `json:"conditions"`
	PriceRange PriceRange   `json:"priceRange"`
}

// BrandCount is a brand name with the number of available listings carrying it.
type BrandCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PriceRange is the min/max price across a set of listings.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
