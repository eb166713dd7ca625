package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/itamar9ic/React-project/internal/domain"
	"github.com/itamar9ic/React-project/internal/repository"
	"github.com/itamar9ic/React-project/pkg/database"
	apperrors "github.com/itamar9ic/React-project/pkg/errors"
)

const productColumns = "id, name, slug, category, brand, image, images, description, price, count_in_stock, featured, rating, num_reviews, created_at, updated_at"

// ProductRepository implements repository.ProductRepository on
// PostgreSQL.
type ProductRepository struct {
	db database.DBTX
}

// NewProductRepository creates a PostgreSQL-backed product repository.
func NewProductRepository(db database.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (id, name, slug, category, brand, image, images, description, price, count_in_stock, featured, rating, num_reviews, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Slug,
		p.Category,
		p.Brand,
		p.Image,
		p.Images,
		p.Description,
		p.Price,
		p.CountInStock,
		p.Featured,
		p.Rating,
		p.NumReviews,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "slug", p.Slug)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by id.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)
	return r.scanProduct(ctx, query, id)
}

// GetBySlug retrieves a product by slug.
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE slug = $1", productColumns)
	return r.scanProduct(ctx, query, slug)
}

// buildSearchConditions translates a filter into WHERE conditions and
// their arguments. Both Search and Count go through here, so the
// listing and its count always agree on the predicate.
func buildSearchConditions(filter repository.SearchFilter) ([]string, []any) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.Query != nil {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIndex))
		args = append(args, "%"+*filter.Query+"%")
		argIndex++
	}

	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, *filter.Category)
		argIndex++
	}

	if filter.MinRating != nil {
		conditions = append(conditions, fmt.Sprintf("rating >= $%d", argIndex))
		args = append(args, *filter.MinRating)
		argIndex++
	}

	if filter.PriceMin != nil {
		conditions = append(conditions, fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, *filter.PriceMin)
		argIndex++
	}

	if filter.PriceMax != nil {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *filter.PriceMax)
		argIndex++
	}

	return conditions, args
}

// sortClause maps a named sort key to an ORDER BY clause. Every order
// carries an id tiebreaker so pagination stays deterministic; unknown
// keys fall back to descending id.
func sortClause(sort string) string {
	switch sort {
	case domain.SortFeatured:
		return "featured DESC, id DESC"
	case domain.SortLowest:
		return "price ASC, id DESC"
	case domain.SortHighest:
		return "price DESC, id DESC"
	case domain.SortTopRated:
		return "rating DESC, id DESC"
	case domain.SortNewest:
		return "created_at DESC, id DESC"
	default:
		return "id DESC"
	}
}

func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conditions, " AND ")
}

// Search returns one page of matching products and the total count
// under the same predicate.
func (r *ProductRepository) Search(ctx context.Context, filter repository.SearchFilter) ([]domain.Product, int, error) {
	conditions, args := buildSearchConditions(filter)

	limit := filter.PerPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	argIndex := len(args) + 1
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		productColumns, whereClause(conditions), sortClause(filter.Sort), argIndex, argIndex+1,
	)

	ctx, end := database.TraceQuery(ctx, "SearchProducts", query)

	rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		end(err)
		return nil, 0, fmt.Errorf("search products: %w", err)
	}

	products, err := scanProducts(rows)
	end(err)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// Count returns how many products match the filter.
func (r *ProductRepository) Count(ctx context.Context, filter repository.SearchFilter) (int, error) {
	conditions, args := buildSearchConditions(filter)
	query := fmt.Sprintf("SELECT count(*) FROM products %s", whereClause(conditions))

	var total int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}

	return total, nil
}

// ListAdmin pages through the full catalog, newest first, with the
// total count piggybacked on each row.
func (r *ProductRepository) ListAdmin(ctx context.Context, page, perPage int) ([]domain.Product, int, error) {
	limit := perPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if page > 1 {
		offset = (page - 1) * limit
	}

	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM products
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`,
		productColumns,
	)

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var (
		products   []domain.Product
		totalCount int
	)

	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Slug,
			&p.Category,
			&p.Brand,
			&p.Image,
			&p.Images,
			&p.Description,
			&p.Price,
			&p.CountInStock,
			&p.Featured,
			&p.Rating,
			&p.NumReviews,
			&p.CreatedAt,
			&p.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, totalCount, nil
}

// Update modifies a product's editable fields. Rating aggregates are
// deliberately excluded; the review flow owns them.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET name = $1, slug = $2, category = $3, brand = $4, image = $5, images = $6,
		    description = $7, price = $8, count_in_stock = $9, featured = $10, updated_at = $11
		WHERE id = $12`

	ct, err := r.db.Exec(ctx, query,
		p.Name,
		p.Slug,
		p.Category,
		p.Brand,
		p.Image,
		p.Images,
		p.Description,
		p.Price,
		p.CountInStock,
		p.Featured,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "slug", p.Slug)
		}
		return fmt.Errorf("update product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", p.ID)
	}

	return nil
}

// Delete removes a product; its reviews go with it via ON DELETE
// CASCADE.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}

	return nil
}

// ListCategories returns the distinct category labels, sorted.
func (r *ProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT category FROM products ORDER BY category ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	if categories == nil {
		categories = []string{}
	}

	return categories, nil
}

// scanProduct executes a query expected to return a single product row.
func (r *ProductRepository) scanProduct(ctx context.Context, query string, args ...any) (*domain.Product, error) {
	var p domain.Product

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Category,
		&p.Brand,
		&p.Image,
		&p.Images,
		&p.Description,
		&p.Price,
		&p.CountInStock,
		&p.Featured,
		&p.Rating,
		&p.NumReviews,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	return &p, nil
}

// scanProducts drains a multi-row product result set.
func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Slug,
			&p.Category,
			&p.Brand,
			&p.Image,
			&p.Images,
			&p.Description,
			&p.Price,
			&p.CountInStock,
			&p.Featured,
			&p.Rating,
			&p.NumReviews,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}

// isUniqueViolation checks for a PostgreSQL unique constraint violation
// (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
