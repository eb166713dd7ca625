package http

import (
	"log/slog"
	"net/http"

	"github.com/itamar9ic/React-project/internal/service"
	"github.com/itamar9ic/React-project/pkg/httputil"
)

// CategoryHandler handles HTTP requests for the category facet.
type CategoryHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCategoryHandler creates a category HTTP handler.
func NewCategoryHandler(svc *service.CatalogService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: svc,
		logger:  logger,
	}
}

// List handles GET /api/v1/categories
// @Summary List the distinct category labels
// @Tags categories
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: categories})
}
