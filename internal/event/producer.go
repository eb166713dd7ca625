package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/itamar9ic/React-project/internal/domain"
	pkgkafka "github.com/itamar9ic/React-project/pkg/kafka"
)

// Kafka topics for storefront domain events.
const (
	TopicProductCreated = "storefront.product.created"
	TopicProductUpdated = "storefront.product.updated"
	TopicProductDeleted = "storefront.product.deleted"
	TopicReviewCreated  = "storefront.review.created"
)

const (
	AggregateTypeProduct = "product"
	AggregateTypeReview  = "review"
)

// Source identifier for events published by this service.
const SourceStorefront = "storefront-api"

// ProductEventData is the payload for product created and updated
// events.
type ProductEventData struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Category     string `json:"category"`
	Brand        string `json:"brand"`
	Price        int64  `json:"price"`
	CountInStock int    `json:"count_in_stock"`
	Featured     bool   `json:"featured"`
}

// ProductDeletedData is the payload for a product.deleted event.
type ProductDeletedData struct {
	ID string `json:"id"`
}

// ReviewCreatedData is the payload for a review.created event. It
// carries the recomputed aggregates so consumers need no extra lookup.
type ReviewCreatedData struct {
	ReviewID   string  `json:"review_id"`
	ProductID  string  `json:"product_id"`
	AuthorID   string  `json:"author_id"`
	ReviewRate int     `json:"review_rating"`
	Rating     float64 `json:"rating"`
	NumReviews int     `json:"num_reviews"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates an event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func productEventData(p *domain.Product) ProductEventData {
	return ProductEventData{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Category:     p.Category,
		Brand:        p.Brand,
		Price:        p.Price,
		CountInStock: p.CountInStock,
		Featured:     p.Featured,
	}
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	event, err := pkgkafka.NewEvent(TopicProductCreated, product.ID, AggregateTypeProduct, SourceStorefront, productEventData(product))
	if err != nil {
		return fmt.Errorf("create product.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductCreated, event); err != nil {
		return fmt.Errorf("publish product.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.created event",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)

	return nil
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, product *domain.Product) error {
	event, err := pkgkafka.NewEvent(TopicProductUpdated, product.ID, AggregateTypeProduct, SourceStorefront, productEventData(product))
	if err != nil {
		return fmt.Errorf("create product.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductUpdated, event); err != nil {
		return fmt.Errorf("publish product.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.updated event",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)

	return nil
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, id string) error {
	event, err := pkgkafka.NewEvent(TopicProductDeleted, id, AggregateTypeProduct, SourceStorefront, ProductDeletedData{ID: id})
	if err != nil {
		return fmt.Errorf("create product.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductDeleted, event); err != nil {
		return fmt.Errorf("publish product.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.deleted event",
		slog.String("product_id", id),
	)

	return nil
}

// PublishReviewCreated publishes a review.created event with the
// product's recomputed aggregates.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review, summary *domain.RatingSummary) error {
	data := ReviewCreatedData{
		ReviewID:   review.ID,
		ProductID:  review.ProductID,
		AuthorID:   review.AuthorID,
		ReviewRate: review.Rating,
		Rating:     summary.Rating,
		NumReviews: summary.NumReviews,
	}

	event, err := pkgkafka.NewEvent(TopicReviewCreated, review.ProductID, AggregateTypeReview, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create review.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewCreated, event); err != nil {
		return fmt.Errorf("publish review.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.created event",
		slog.String("product_id", review.ProductID),
		slog.String("review_id", review.ID),
	)

	return nil
}
