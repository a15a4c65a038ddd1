package middleware

import (
	"net/http"
	"runtime/debug"
)

// WithRecover перехватывает панику обработчика и отвечает 500 без деталей.
func WithRecover(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				sugar.Errorw("panic in handler",
					"method", r.Method,
					"uri", r.RequestURI,
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			}
		}()
		h.ServeHTTP(w, r)
	})
}
