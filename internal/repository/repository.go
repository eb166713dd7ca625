package repository

import (
	"context"

	"github.com/itamar9ic/React-project/internal/domain"
)

// SearchFilter is the typed storefront search filter. Nil pointer
// fields mean "no constraint"; the HTTP boundary is responsible for
// translating the "all"/empty sentinels into nil before the filter
// reaches a repository.
type SearchFilter struct {
	Query     *string
	Category  *string
	MinRating *float64
	PriceMin  *int64
	PriceMax  *int64
	Sort      string
	Page      int
	PerPage   int
}

// ProductRepository provides access to the product catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)

	// Search returns one page of products matching the filter plus the
	// total match count. Count answers the same predicate standalone;
	// both are built from one condition builder so they can never
	// disagree.
	Search(ctx context.Context, filter SearchFilter) ([]domain.Product, int, error)
	Count(ctx context.Context, filter SearchFilter) (int, error)

	// ListAdmin pages through the whole catalog ignoring storefront
	// filters, newest first.
	ListAdmin(ctx context.Context, page, perPage int) ([]domain.Product, int, error)

	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error

	// ListCategories returns the distinct category labels in use.
	ListCategories(ctx context.Context) ([]string, error)
}

// ReviewRepository provides access to product reviews.
type ReviewRepository interface {
	// Create inserts the review and recomputes the product's rating
	// aggregates in a single transaction, returning the new aggregates.
	Create(ctx context.Context, review *domain.Review) (*domain.RatingSummary, error)

	HasAuthorReview(ctx context.Context, productID, authorID string) (bool, error)

	ListByProductID(ctx context.Context, productID string, page, perPage int) ([]domain.Review, int, error)
}
