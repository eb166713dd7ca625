package domain

import "time"

// Product is a storefront catalog item. Price is in minor currency
// units. Rating and NumReviews are derived aggregates owned by the
// review flow; product updates never touch them directly.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Category     string    `json:"category"`
	Brand        string    `json:"brand"`
	Image        string    `json:"image"`
	Images       []string  `json:"images"`
	Description  string    `json:"description"`
	Price        int64     `json:"price"`
	CountInStock int       `json:"count_in_stock"`
	Featured     bool      `json:"featured"`
	Rating       float64   `json:"rating"`
	NumReviews   int       `json:"num_reviews"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Named sort keys for storefront listings. Anything else falls back to
// the default ordering by descending id.
const (
	SortFeatured = "featured"
	SortLowest   = "lowest"
	SortHighest  = "highest"
	SortTopRated = "toprated"
	SortNewest   = "newest"
)
