package domain

// Seller is a marketplace user who can list sneakers. PasswordHash is never
// serialized to API responses.
type Seller struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	PasswordHash   string  `json:"-"`
	Avatar         string  `json:"avatar,omitempty"`
	Rating         float64 `json:"rating"`
	TotalSales     int     `json:"totalSales"`
	VerifiedSeller bool    `json:"verifiedSeller"`
}
