package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/itamar9ic/React-project/internal/service"
	apperrors "github.com/itamar9ic/React-project/pkg/errors"
	"github.com/itamar9ic/React-project/pkg/httputil"
	"github.com/itamar9ic/React-project/pkg/middleware"
	"github.com/itamar9ic/React-project/pkg/validator"
)

// ReviewHandler handles HTTP requests for review endpoints.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// SubmitReviewRequest is the JSON request body for submitting a review.
// The author identity comes from the access token, not from here.
type SubmitReviewRequest struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Title  string `json:"title" validate:"max=200"`
	Body   string `json:"body" validate:"max=5000"`
}

// Submit handles POST /api/v1/products/{productId}/reviews
// @Summary Submit a product review
// @Description One review per author per product. Returns the review and the product's recomputed aggregates.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product UUID"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/products/{productId}/reviews [post]
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	authorID := middleware.UserIDFromContext(r.Context())
	if authorID == "" {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	var req SubmitReviewRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid JSON body"), h.logger)
		return
	}

	if err := validator.Validate(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	result, err := h.service.SubmitReview(r.Context(), &service.SubmitReviewInput{
		ProductID:  productID.String(),
		AuthorID:   authorID,
		AuthorName: middleware.UserNameFromContext(r.Context()),
		Rating:     req.Rating,
		Title:      req.Title,
		Body:       req.Body,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: result})
}

// List handles GET /api/v1/products/{productId}/reviews
// @Summary List a product's reviews
// @Tags reviews
// @Produce json
// @Param productId path string true "Product UUID"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page (max 100)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/products/{productId}/reviews [get]
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

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

	result, err := h.service.ListReviews(r.Context(), productID.String(), page, perPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK,
		httputil.NewPaginatedResponse(result.Data, result.TotalCount, result.Page, result.PerPage))
}
