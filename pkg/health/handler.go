package health

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/sugar/pkg/response"
)

// LivenessHandler always responds 200.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if wantsJSON(r) {
			_ = response.JSON(http.StatusOK, &Report{Status: StatusHealthy}).Encode(w, r)
			return
		}
		_ = response.Text(http.StatusOK, "OK").Encode(w, r)
	}
}

// ReadinessHandler runs checks on every request and responds 200 when all
// pass, 503 otherwise.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		report := run(r.Context(), checks, cfg)

		status, text := http.StatusOK, "OK"
		if !report.Healthy() {
			status, text = http.StatusServiceUnavailable, "Service Unavailable"
		}

		if wantsJSON(r) {
			_ = response.JSON(status, report).Encode(w, r)
			return
		}
		_ = response.Text(status, text).Encode(w, r)
	}
}

func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
