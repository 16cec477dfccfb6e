package middlewares_test

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sugar/middlewares"
	"github.com/dmitrymomot/sugar/pkg/jwt"
	"github.com/dmitrymomot/sugar/pkg/logger"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type errorBody struct {
	Error struct {
		Message   string `json:"message"`
		ErrorCode string `json:"error_code"`
		RequestID string `json:"request_id"`
		Code      int    `json:"code"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestExtractor(t *testing.T) {
	t.Parallel()

	ext := middlewares.NewExtractor(
		middlewares.FromBearerToken(),
		middlewares.FromHeader("X-Token"),
		middlewares.FromCookie("token"),
		middlewares.FromQuery("token"),
	)

	tests := []struct {
		name  string
		setup func(r *http.Request)
		want  string
		found bool
	}{
		{name: "bearer", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") }, want: "abc", found: true},
		{name: "bearer lowercase", setup: func(r *http.Request) { r.Header.Set("Authorization", "bearer abc") }, want: "abc", found: true},
		{name: "basic ignored", setup: func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") }},
		{name: "header", setup: func(r *http.Request) { r.Header.Set("X-Token", "hdr") }, want: "hdr", found: true},
		{name: "cookie", setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: "ck"}) }, want: "ck", found: true},
		{name: "query", setup: func(r *http.Request) { r.URL.RawQuery = "token=q" }, want: "q", found: true},
		{name: "none", setup: func(*http.Request) {}},
		{
			name: "order",
			setup: func(r *http.Request) {
				r.Header.Set("X-Token", "hdr")
				r.URL.RawQuery = "token=q"
			},
			want:  "hdr",
			found: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(r)
			got, ok := ext.Extract(r)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	h := middlewares.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = middlewares.GetRequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NotEmpty(t, seen)
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
	})

	t.Run("propagated", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Correlation-ID", "upstream")
		w := serve(h, r)
		assert.Equal(t, "upstream", seen)
		assert.Equal(t, "upstream", w.Header().Get("X-Request-ID"))
	})

	t.Run("custom", func(t *testing.T) {
		t.Parallel()
		var got string
		h := middlewares.RequestID(
			middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
			middlewares.WithRequestIDResponseHeader("X-Trace"),
			middlewares.WithRequestIDHeaders("X-Trace"),
		)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			got = middlewares.GetRequestID(r.Context())
		}))
		w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "fixed", got)
		assert.Equal(t, "fixed", w.Header().Get("X-Trace"))
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, middlewares.GetRequestID(context.Background()))
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, slog.LevelInfo, middlewares.RequestIDExtractor())

	h := middlewares.RequestID(
		middlewares.WithRequestIDGenerator(func() string { return "req-1" }),
	)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		log.InfoContext(r.Context(), "handled")
	}))
	serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, buf.String(), "req-1")
}

func TestCurrentURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(r *http.Request)
		want  string
	}{
		{name: "plain", setup: func(*http.Request) {}, want: "http://example.com/items?page=2"},
		{name: "tls", setup: func(r *http.Request) { r.TLS = &tls.ConnectionState{} }, want: "https://example.com/items?page=2"},
		{
			name:  "forwarded",
			setup: func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "HTTPS, http") },
			want:  "https://example.com/items?page=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got string
			h := middlewares.CurrentURL()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got = middlewares.GetCurrentURL(r.Context())
			}))
			r := httptest.NewRequest(http.MethodGet, "http://example.com/items?page=2", nil)
			tt.setup(r)
			serve(h, r)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJWT(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc, err := jwt.NewFromString(testSecret, jwt.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	expired, err := jwt.NewFromString(testSecret,
		jwt.WithClock(func() time.Time { return now.Add(-48 * time.Hour) }))
	require.NoError(t, err)

	valid, err := svc.Issue("user-1")
	require.NoError(t, err)
	stale, err := expired.Issue("user-1")
	require.NoError(t, err)

	h := middlewares.JWT[jwt.StandardClaims](svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.GetJWTClaims[jwt.StandardClaims](r.Context())
		_, _ = w.Write([]byte(claims.Subject))
	}))

	t.Run("bearer", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+valid)
		w := serve(h, r)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", w.Body.String())
	})

	t.Run("cookie", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "access_token", Value: valid})
		w := serve(h, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	tests := []struct {
		name    string
		token   string
		message string
		code    string
	}{
		{name: "missing", message: "missing authentication token", code: "missing_token"},
		{name: "expired", token: stale, message: "token expired", code: "token_expired"},
		{name: "garbage", token: "not-a-jwt", message: "invalid token", code: "invalid_token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != "" {
				r.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := serve(h, r)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tt.message, body.Error.Message)
			assert.Equal(t, tt.code, body.Error.ErrorCode)
		})
	}

	t.Run("custom extractor", func(t *testing.T) {
		t.Parallel()
		h := middlewares.JWT[jwt.StandardClaims](svc,
			middlewares.WithJWTExtractor(middlewares.NewExtractor(middlewares.FromQuery("t"))),
		)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		w := serve(h, httptest.NewRequest(http.MethodGet, "/?t="+valid, nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("claims absent", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, middlewares.GetJWTClaims[jwt.StandardClaims](context.Background()))
	})
}

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("panic becomes 500", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		var recovered *middlewares.PanicError
		h := middlewares.RequestID(
			middlewares.WithRequestIDGenerator(func() string { return "req-9" }),
		)(middlewares.Recover(
			middlewares.WithRecoverLogger(logger.NewWithWriter(&buf, slog.LevelDebug)),
			middlewares.WithOnPanic(func(_ *http.Request, pe *middlewares.PanicError) { recovered = pe }),
		)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		})))

		w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, "internal server error", body.Error.Message)
		assert.Equal(t, "req-9", body.Error.RequestID)
		assert.NotContains(t, w.Body.String(), "boom")

		require.NotNil(t, recovered)
		assert.Equal(t, "boom", recovered.Value)
		assert.NotEmpty(t, recovered.Stack)
		assert.Contains(t, buf.String(), "panic recovered")
	})

	t.Run("abort handler re-panics", func(t *testing.T) {
		t.Parallel()
		h := middlewares.Recover()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		}))
		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})

	t.Run("no panic", func(t *testing.T) {
		t.Parallel()
		h := middlewares.Recover()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))
		assert.Equal(t, http.StatusAccepted, serve(h, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	})
}

func TestPanicError(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	err := error(&middlewares.PanicError{Value: cause})

	assert.True(t, middlewares.IsPanicError(err))
	assert.ErrorIs(t, err, cause)
	pe, ok := middlewares.AsPanicError(err)
	require.True(t, ok)
	assert.Equal(t, cause, pe.Value)

	_, ok = middlewares.AsPanicError(cause)
	assert.False(t, ok)
	assert.Equal(t, "panic: cause", err.Error())
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("deadline attached", func(t *testing.T) {
		t.Parallel()
		var hasDeadline bool
		h := middlewares.Timeout(time.Second)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			_, hasDeadline = r.Context().Deadline()
		}))
		serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.True(t, hasDeadline)
	})

	t.Run("expires", func(t *testing.T) {
		t.Parallel()
		var ctxErr error
		h := middlewares.Timeout(time.Millisecond)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
			ctxErr = r.Context().Err()
		}))
		serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, ctxErr, context.DeadlineExceeded)
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		var hasDeadline bool
		h := middlewares.Timeout(0)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			_, hasDeadline = r.Context().Deadline()
		}))
		serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.False(t, hasDeadline)
	})
}
