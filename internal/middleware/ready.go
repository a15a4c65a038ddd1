package middleware

import (
	"context"
	"net/http"
)

// RequireReady отвечает 500, пока хранилище недоступно.
func RequireReady(ready func(ctx context.Context) error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := ready(r.Context()); err != nil {
				sugar.Errorw("store is not available", "uri", r.RequestURI, "error", err)
				writeError(w, http.StatusInternalServerError, "internal_error", "database connection not established")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
