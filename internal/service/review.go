package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/itamar9ic/React-project/internal/domain"
	"github.com/itamar9ic/React-project/internal/repository"
	apperrors "github.com/itamar9ic/React-project/pkg/errors"
	"github.com/itamar9ic/React-project/pkg/pagination"
)

// SubmitReviewInput holds the parameters for submitting a review. The
// author fields come from the authenticated token, never the request
// body.
type SubmitReviewInput struct {
	ProductID  string
	AuthorID   string
	AuthorName string
	Rating     int
	Title      string
	Body       string
}

// SubmitReviewResult is a stored review plus the product's recomputed
// aggregates.
type SubmitReviewResult struct {
	Review     domain.Review `json:"review"`
	Rating     float64       `json:"rating"`
	NumReviews int           `json:"num_reviews"`
}

// ReviewService implements the business logic for product reviews.
type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	events   EventPublisher
	logger   *slog.Logger
}

// NewReviewService creates a review service. events may be nil.
func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository, events EventPublisher, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		products: products,
		events:   events,
		logger:   logger,
	}
}

// SubmitReview stores a review and returns it together with the
// product's updated rating and review count. An author gets one review
// per product; the repository's unique constraint backs up the
// pre-check under concurrency.
func (s *ReviewService) SubmitReview(ctx context.Context, input *SubmitReviewInput) (*SubmitReviewResult, error) {
	if input.ProductID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if input.AuthorID == "" {
		return nil, apperrors.InvalidInput("author is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}

	exists, err := s.reviews.HasAuthorReview(ctx, input.ProductID, input.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if exists {
		return nil, apperrors.DuplicateReview(input.ProductID)
	}

	review := &domain.Review{
		ID:         uuid.New().String(),
		ProductID:  input.ProductID,
		AuthorID:   input.AuthorID,
		AuthorName: input.AuthorName,
		Rating:     input.Rating,
		Title:      input.Title,
		Body:       input.Body,
		CreatedAt:  time.Now().UTC(),
	}

	summary, err := s.reviews.Create(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishReviewCreated(ctx, review, summary); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish review.created event",
				slog.String("product_id", review.ProductID),
				slog.String("review_id", review.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
		slog.Int("rating", review.Rating),
	)

	return &SubmitReviewResult{
		Review:     *review,
		Rating:     summary.Rating,
		NumReviews: summary.NumReviews,
	}, nil
}

// ListReviews returns one page of a product's reviews, newest first.
// The product must exist.
func (s *ReviewService) ListReviews(ctx context.Context, productID string, page, perPage int) (*pagination.Result[domain.Review], error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("get product for reviews: %w", err)
	}

	params := pagination.Params{Page: page, PerPage: perPage}.Clamp(20)

	reviews, total, err := s.reviews.ListByProductID(ctx, productID, params.Page, params.PerPage)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	result := pagination.NewResult(reviews, total, params)
	return &result, nil
}
