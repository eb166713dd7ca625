package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/itamar9ic/React-project/internal/domain"
	"github.com/itamar9ic/React-project/pkg/database"
	apperrors "github.com/itamar9ic/React-project/pkg/errors"
)

// ReviewRepository implements repository.ReviewRepository on
// PostgreSQL.
type ReviewRepository struct {
	db database.DBTX
}

// NewReviewRepository creates a PostgreSQL-backed review repository.
func NewReviewRepository(db database.DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts the review and recomputes the product's rating and
// num_reviews in one transaction. The product row is locked first so
// concurrent submissions for the same product serialize and the
// recomputed aggregates always reflect every committed review.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.RatingSummary, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin review transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var productID string
	err = tx.QueryRow(ctx, `SELECT id FROM products WHERE id = $1 FOR UPDATE`, review.ProductID).Scan(&productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", review.ProductID)
		}
		return nil, fmt.Errorf("lock product row: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO product_reviews (id, product_id, author_id, author_name, rating, title, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		review.ID,
		review.ProductID,
		review.AuthorID,
		review.AuthorName,
		review.Rating,
		review.Title,
		review.Body,
		review.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.DuplicateReview(review.ProductID)
		}
		return nil, fmt.Errorf("insert review: %w", err)
	}

	// Single recompute from the reviews table; COALESCE keeps the
	// zero-review case at rating 0.
	var summary domain.RatingSummary
	err = tx.QueryRow(ctx, `
		UPDATE products p
		SET rating = s.avg_rating,
		    num_reviews = s.review_count,
		    updated_at = NOW()
		FROM (
			SELECT ROUND(COALESCE(AVG(rating), 0)::numeric, 2)::double precision AS avg_rating,
			       COUNT(*)::int AS review_count
			FROM product_reviews
			WHERE product_id = $1
		) s
		WHERE p.id = $1
		RETURNING p.rating, p.num_reviews`,
		review.ProductID,
	).Scan(&summary.Rating, &summary.NumReviews)
	if err != nil {
		return nil, fmt.Errorf("recompute product rating: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit review transaction: %w", err)
	}

	return &summary, nil
}

// HasAuthorReview reports whether the author already reviewed the
// product.
func (r *ReviewRepository) HasAuthorReview(ctx context.Context, productID, authorID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM product_reviews WHERE product_id = $1 AND author_id = $2)`,
		productID, authorID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check author review: %w", err)
	}

	return exists, nil
}

// ListByProductID returns one page of a product's reviews, newest
// first, with the total count.
func (r *ReviewRepository) ListByProductID(ctx context.Context, productID string, page, perPage int) ([]domain.Review, int, error) {
	limit := perPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if page > 1 {
		offset = (page - 1) * limit
	}

	query := `
		SELECT id, product_id, author_id, author_name, rating, title, body, created_at,
		       count(*) OVER() AS total_count
		FROM product_reviews
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var (
		reviews    []domain.Review
		totalCount int
	)

	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(
			&rv.ID,
			&rv.ProductID,
			&rv.AuthorID,
			&rv.AuthorName,
			&rv.Rating,
			&rv.Title,
			&rv.Body,
			&rv.CreatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate review rows: %w", err)
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}

	return reviews, totalCount, nil
}
