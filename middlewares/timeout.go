package middlewares

import (
	"context"
	"net/http"
	"time"
)

// Timeout attaches a deadline to the request context. The handler keeps
// running on the server goroutine; it is expected to observe ctx.Done().
// Lifecycle operations check the context between steps, so an expired
// deadline surfaces as context.DeadlineExceeded and renders as 504.
// A non-positive timeout disables the middleware.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
