package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/itamar9ic/React-project/internal/repository"
	"github.com/itamar9ic/React-project/internal/service"
	apperrors "github.com/itamar9ic/React-project/pkg/errors"
	"github.com/itamar9ic/React-project/pkg/httputil"
	"github.com/itamar9ic/React-project/pkg/validator"
)

// maxBodySize caps JSON request bodies at 1MB.
const maxBodySize = 1 << 20

// filterAll is the query-string spelling for "no filter".
const filterAll = "all"

// ProductHandler handles HTTP requests for catalog endpoints.
type ProductHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a product HTTP handler.
func NewProductHandler(svc *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// UpdateProductRequest is the JSON request body for updating a product.
type UpdateProductRequest struct {
	Name         *string   `json:"name" validate:"omitempty,min=1,max=500"`
	Slug         *string   `json:"slug" validate:"omitempty,min=1,max=500"`
	Category     *string   `json:"category" validate:"omitempty,max=200"`
	Brand        *string   `json:"brand" validate:"omitempty,max=200"`
	Image        *string   `json:"image" validate:"omitempty,max=1000"`
	Images       *[]string `json:"images" validate:"omitempty,dive,max=1000"`
	Description  *string   `json:"description"`
	Price        *int64    `json:"price" validate:"omitempty,gte=0"`
	CountInStock *int      `json:"count_in_stock" validate:"omitempty,gte=0"`
	Featured     *bool     `json:"featured"`
}

// parseSearchFilter translates storefront query parameters into a typed
// filter. "all" and the empty string mean no constraint; anything that
// should be numeric but is not gets a 400.
func parseSearchFilter(r *http.Request) (repository.SearchFilter, error) {
	q := r.URL.Query()
	filter := repository.SearchFilter{
		Sort: q.Get("sort"),
	}

	if v := q.Get("q"); v != "" && v != filterAll {
		filter.Query = &v
	}

	if v := q.Get("category"); v != "" && v != filterAll {
		filter.Category = &v
	}

	if v := q.Get("rating"); v != "" && v != filterAll {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, apperrors.InvalidInput("rating must be a valid number")
		}
		filter.MinRating = &rating
	}

	if v := q.Get("price"); v != "" && v != filterAll {
		min, max, err := parsePriceRange(v)
		if err != nil {
			return filter, err
		}
		filter.PriceMin = &min
		filter.PriceMax = &max
	}

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return filter, apperrors.InvalidInput("page must be a valid integer")
		}
		filter.Page = page
	}

	if v := q.Get("per_page"); v != "" {
		perPage, err := strconv.Atoi(v)
		if err != nil {
			return filter, apperrors.InvalidInput("per_page must be a valid integer")
		}
		filter.PerPage = perPage
	}

	return filter, nil
}

// parsePriceRange parses the "min-max" price parameter. Both bounds are
// inclusive.
func parsePriceRange(v string) (int64, int64, error) {
	parts := strings.SplitN(v, "-", 2)
	if len(parts) != 2 {
		return 0, 0, apperrors.InvalidInput(`price must use the "min-max" format`)
	}

	min, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || min < 0 {
		return 0, 0, apperrors.InvalidInput("price lower bound must be a non-negative number")
	}

	max, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || max < 0 {
		return 0, 0, apperrors.InvalidInput("price upper bound must be a non-negative number")
	}

	if min > max {
		return 0, 0, apperrors.InvalidInput("price lower bound must not exceed the upper bound")
	}

	return min, max, nil
}

// Search handles GET /api/v1/products
// @Summary Search the catalog
// @Description Returns a filtered, sorted, paginated product listing
// @Tags products
// @Produce json
// @Param q query string false "Name substring match"
// @Param category query string false "Category label, or all"
// @Param rating query number false "Minimum rating, or all"
// @Param price query string false "Inclusive price range min-max, or all"
// @Param sort query string false "Sort order" Enums(featured,lowest,highest,toprated,newest)
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page (max 100)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/products [get]
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter, err := parseSearchFilter(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	result, err := h.service.SearchProducts(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK,
		httputil.NewPaginatedResponse(result.Data, result.TotalCount, result.Page, result.PerPage))
}

// Get handles GET /api/v1/products/{idOrSlug}
// @Summary Fetch one product
// @Tags products
// @Produce json
// @Param idOrSlug path string true "Product id or slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/products/{idOrSlug} [get]
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "idOrSlug")

	product, err := h.service.GetProduct(r.Context(), idOrSlug)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// Create handles POST /api/v1/products
// @Summary Create a placeholder product
// @Description Admin only. Creates a sample product to edit afterwards.
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Router /api/v1/products [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.CreateSampleProduct(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// Update handles PUT /api/v1/products/{id}
// @Summary Update a product
// @Description Admin only. Partial update; rating aggregates are immutable here.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/products/{id} [put]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req UpdateProductRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid JSON body"), h.logger)
		return
	}

	if err := validator.Validate(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), id.String(), &service.UpdateProductInput{
		Name:         req.Name,
		Slug:         req.Slug,
		Category:     req.Category,
		Brand:        req.Brand,
		Image:        req.Image,
		Images:       req.Images,
		Description:  req.Description,
		Price:        req.Price,
		CountInStock: req.CountInStock,
		Featured:     req.Featured,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// Delete handles DELETE /api/v1/products/{id}
// @Summary Delete a product
// @Description Admin only. Removes the product and its reviews.
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/products/{id} [delete]
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"message": "product deleted"},
	})
}

// ListAdmin handles GET /api/v1/products/admin
// @Summary List the whole catalog for the admin screens
// @Description Admin only. Ignores storefront filters.
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page (max 100)"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/products/admin [get]
func (h *ProductHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var page, perPage int
	if v := q.Get("page"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			httputil.WriteError(w, r, apperrors.InvalidInput("page must be a valid integer"), h.logger)
			return
		}
		page = parsed
	}
	if v := q.Get("per_page"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			httputil.WriteError(w, r, apperrors.InvalidInput("per_page must be a valid integer"), h.logger)
			return
		}
		perPage = parsed
	}

	result, err := h.service.ListProductsAdmin(r.Context(), page, perPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK,
		httputil.NewPaginatedResponse(result.Data, result.TotalCount, result.Page, result.PerPage))
}
