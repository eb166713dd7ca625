package domain

import "time"

// Review is a customer review of a product. AuthorID is the
// authenticated user's id and enforces the one-review-per-author rule;
// AuthorName is kept for display.
type Review struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// RatingSummary is a product's review aggregates after a recompute.
type RatingSummary struct {
	Rating     float64 `json:"rating"`
	NumReviews int     `json:"num_reviews"`
}
