package middleware

import (
	"log/slog"
	"net/http"

	"github.com/itamar9ic/React-project/pkg/logger"
)

// RequestLogger builds a request-scoped logger enriched with
// correlation_id, user_id, and trace ids and stores it in context for
// logger.FromContext. Mount after RequestLogging (correlation id),
// Tracing (span context), and Auth (user id) where those apply.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if userID := UserIDFromContext(ctx); userID != "" {
				ctx = logger.WithUserID(ctx, userID)
			}

			enriched := logger.WithContext(ctx, base)
			ctx = logger.NewContext(ctx, enriched)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
