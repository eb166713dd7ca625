package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/itamar9ic/React-project/internal/domain"
	"github.com/itamar9ic/React-project/internal/repository"
	apperrors "github.com/itamar9ic/React-project/pkg/errors"
	"github.com/itamar9ic/React-project/pkg/pagination"
	"github.com/itamar9ic/React-project/pkg/slug"
)

// categoriesCacheKey is where the distinct category list is cached.
const categoriesCacheKey = "storefront:categories"

// EventPublisher publishes domain events. A nil publisher disables
// eventing; publish failures never fail the triggering operation.
type EventPublisher interface {
	PublishProductCreated(ctx context.Context, product *domain.Product) error
	PublishProductUpdated(ctx context.Context, product *domain.Product) error
	PublishProductDeleted(ctx context.Context, id string) error
	PublishReviewCreated(ctx context.Context, review *domain.Review, summary *domain.RatingSummary) error
}

// CatalogService implements the business logic for the product catalog.
type CatalogService struct {
	repo          repository.ProductRepository
	events        EventPublisher
	cache         *redis.Client
	cacheTTL      time.Duration
	logger        *slog.Logger
	pageSize      int
	adminPageSize int
}

// CatalogConfig tunes the catalog service.
type CatalogConfig struct {
	PageSize      int
	AdminPageSize int
	CacheTTL      time.Duration
}

// NewCatalogService creates a catalog service. cache may be nil to
// disable category caching.
func NewCatalogService(repo repository.ProductRepository, events EventPublisher, cache *redis.Client, cfg CatalogConfig, logger *slog.Logger) *CatalogService {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 12
	}
	if cfg.AdminPageSize <= 0 {
		cfg.AdminPageSize = 20
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &CatalogService{
		repo:          repo,
		events:        events,
		cache:         cache,
		cacheTTL:      cfg.CacheTTL,
		logger:        logger,
		pageSize:      cfg.PageSize,
		adminPageSize: cfg.AdminPageSize,
	}
}

// SearchProducts returns a filtered, sorted, paginated slice of the
// catalog. The count in the result is computed under the same predicate
// as the listing.
func (s *CatalogService) SearchProducts(ctx context.Context, filter repository.SearchFilter) (*pagination.Result[domain.Product], error) {
	params := pagination.Params{Page: filter.Page, PerPage: filter.PerPage}.Clamp(s.pageSize)
	filter.Page = params.Page
	filter.PerPage = params.PerPage

	products, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	result := pagination.NewResult(products, total, params)
	return &result, nil
}

// GetProduct retrieves a product by id or slug. Values that parse as a
// UUID are treated as ids, everything else as a slug.
func (s *CatalogService) GetProduct(ctx context.Context, idOrSlug string) (*domain.Product, error) {
	if _, err := uuid.Parse(idOrSlug); err == nil {
		product, err := s.repo.GetByID(ctx, idOrSlug)
		if err != nil {
			return nil, fmt.Errorf("get product by id: %w", err)
		}
		return product, nil
	}

	product, err := s.repo.GetBySlug(ctx, idOrSlug)
	if err != nil {
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	return product, nil
}

// CreateSampleProduct inserts a placeholder product for an admin to
// edit afterwards. The slug carries a timestamp suffix so repeated
// creates never collide.
func (s *CatalogService) CreateSampleProduct(ctx context.Context) (*domain.Product, error) {
	now := time.Now().UTC()
	name := "Sample Product"
	product := &domain.Product{
		ID:           uuid.New().String(),
		Name:         name,
		Slug:         slug.WithSuffix(name, strconv.FormatInt(now.UnixMilli(), 10)),
		Category:     "Sample Category",
		Brand:        "Sample Brand",
		Image:        "/images/p1.jpg",
		Images:       []string{},
		Description:  "Sample description",
		Price:        0,
		CountInStock: 0,
		Featured:     false,
		Rating:       0,
		NumReviews:   0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.invalidateCategoryCache(ctx)
	s.publishProductEvent(ctx, "product.created", product, func(p *domain.Product) error {
		return s.events.PublishProductCreated(ctx, p)
	})

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)

	return product, nil
}

// UpdateProductInput holds the parameters for a partial product update.
// Nil fields keep their current value. Rating aggregates are never
// updatable through here.
type UpdateProductInput struct {
	Name         *string
	Slug         *string
	Category     *string
	Brand        *string
	Image        *string
	Images       *[]string
	Description  *string
	Price        *int64
	CountInStock *int
	Featured     *bool
}

// UpdateProduct applies partial updates to an existing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input *UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("product name must not be empty")
		}
		product.Name = *input.Name
		if input.Slug == nil {
			product.Slug = slug.Generate(*input.Name)
		}
	}

	if input.Slug != nil {
		if *input.Slug == "" {
			return nil, apperrors.InvalidInput("product slug must not be empty")
		}
		product.Slug = slug.Generate(*input.Slug)
	}

	if input.Category != nil {
		product.Category = *input.Category
	}

	if input.Brand != nil {
		product.Brand = *input.Brand
	}

	if input.Image != nil {
		product.Image = *input.Image
	}

	if input.Images != nil {
		product.Images = *input.Images
	}

	if input.Description != nil {
		product.Description = *input.Description
	}

	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperrors.InvalidInput("price must not be negative")
		}
		product.Price = *input.Price
	}

	if input.CountInStock != nil {
		if *input.CountInStock < 0 {
			return nil, apperrors.InvalidInput("count in stock must not be negative")
		}
		product.CountInStock = *input.CountInStock
	}

	if input.Featured != nil {
		product.Featured = *input.Featured
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.invalidateCategoryCache(ctx)
	s.publishProductEvent(ctx, "product.updated", product, func(p *domain.Product) error {
		return s.events.PublishProductUpdated(ctx, p)
	})

	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)

	return product, nil
}

// DeleteProduct removes a product and, via the schema, its reviews.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.invalidateCategoryCache(ctx)
	if s.events != nil {
		if err := s.events.PublishProductDeleted(ctx, id); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish product.deleted event",
				slog.String("product_id", id),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", id))

	return nil
}

// ListProductsAdmin pages through the whole catalog for the admin
// screens, ignoring storefront filters.
func (s *CatalogService) ListProductsAdmin(ctx context.Context, page, perPage int) (*pagination.Result[domain.Product], error) {
	params := pagination.Params{Page: page, PerPage: perPage}.Clamp(s.adminPageSize)

	products, total, err := s.repo.ListAdmin(ctx, params.Page, params.PerPage)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	result := pagination.NewResult(products, total, params)
	return &result, nil
}

// ListCategories returns the distinct category labels, served from
// cache when one is configured.
func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, categoriesCacheKey).Bytes()
		if err == nil {
			var categories []string
			if err := json.Unmarshal(cached, &categories); err == nil {
				return categories, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.WarnContext(ctx, "category cache read failed",
				slog.String("error", err.Error()),
			)
		}
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(categories); err == nil {
			if err := s.cache.Set(ctx, categoriesCacheKey, data, s.cacheTTL).Err(); err != nil {
				s.logger.WarnContext(ctx, "category cache write failed",
					slog.String("error", err.Error()),
				)
			}
		}
	}

	return categories, nil
}

// invalidateCategoryCache drops the cached category list after a
// catalog mutation. Best effort.
func (s *CatalogService) invalidateCategoryCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, categoriesCacheKey).Err(); err != nil {
		s.logger.WarnContext(ctx, "category cache invalidation failed",
			slog.String("error", err.Error()),
		)
	}
}

// publishProductEvent publishes without failing the operation.
func (s *CatalogService) publishProductEvent(ctx context.Context, eventType string, product *domain.Product, publish func(*domain.Product) error) {
	if s.events == nil {
		return
	}
	if err := publish(product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish "+eventType+" event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}
}
