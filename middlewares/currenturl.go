package middlewares

import (
	"context"
	"net/http"
	"strings"
)

type currentURLKey struct{}

// CurrentURL stores the absolute URL of the request in its context, so
// templates can render canonical links and "return to" redirects.
// The scheme honours X-Forwarded-Proto when the server sits behind a proxy.
func CurrentURL() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), currentURLKey{}, requestURL(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCurrentURL returns the URL stored by CurrentURL, or "".
func GetCurrentURL(ctx context.Context) string {
	v, _ := ctx.Value(currentURLKey{}).(string)
	return v
}

func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
