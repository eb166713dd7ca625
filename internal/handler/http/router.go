package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itamar9ic/React-project/internal/service"
	"github.com/itamar9ic/React-project/pkg/health"
	"github.com/itamar9ic/React-project/pkg/middleware"
)

// categoryCacheMaxAge is the Cache-Control max-age for the category
// facet, in seconds.
const categoryCacheMaxAge = 60

// RouterConfig carries the router's cross-cutting dependencies.
type RouterConfig struct {
	ServiceName    string
	TokenValidator middleware.TokenValidator
	CORS           middleware.CORSConfig
	TracingEnabled bool
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	catalogService *service.CatalogService,
	reviewService *service.ReviewService,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.CORS))
	if cfg.TracingEnabled {
		r.Use(middleware.Tracing(cfg.ServiceName))
	}
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	productHandler := NewProductHandler(catalogService, logger)
	reviewHandler := NewReviewHandler(reviewService, logger)
	categoryHandler := NewCategoryHandler(catalogService, logger)

	requireAuth := middleware.Auth(cfg.TokenValidator)

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", productHandler.Search)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, middleware.RequireAdmin)

			r.Get("/admin", productHandler.ListAdmin)
			r.Post("/", productHandler.Create)
			r.Put("/{id}", productHandler.Update)
			r.Delete("/{id}", productHandler.Delete)
		})

		r.Get("/{idOrSlug}", productHandler.Get)

		r.Route("/{productId}/reviews", func(r chi.Router) {
			r.Get("/", reviewHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", reviewHandler.Submit)
			})
		})
	})

	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.With(middleware.CacheControl(categoryCacheMaxAge)).Get("/", categoryHandler.List)
	})

	return r
}

// ContentTypeJSON forces the response content type for API routes.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
