package middlewares

import (
	"log/slog"
	"net/http"
	"runtime"

	"github.com/dmitrymomot/sugar/pkg/logger"
	"github.com/dmitrymomot/sugar/pkg/response"
)

const defaultStackSize = 4 << 10

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	Logger    *slog.Logger
	OnPanic   func(r *http.Request, pe *PanicError)
	StackSize int
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverLogger sets the logger panics are reported to.
func WithRecoverLogger(log *slog.Logger) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.Logger = log
	}
}

// WithStackSize sets the maximum stack trace size captured per panic.
func WithStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithOnPanic sets a callback invoked after a panic is recovered.
func WithOnPanic(fn func(r *http.Request, pe *PanicError)) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.OnPanic = fn
	}
}

// Recover turns a panicking handler into a 500 response and logs the panic
// with its stack. http.ErrAbortHandler is re-panicked so net/http can
// abort the connection as intended.
func Recover(opts ...RecoverOption) func(http.Handler) http.Handler {
	cfg := &RecoverConfig{
		Logger:    logger.NewNope(),
		StackSize: defaultStackSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity
					panic(rec)
				}

				stack := make([]byte, cfg.StackSize)
				stack = stack[:runtime.Stack(stack, false)]
				pe := &PanicError{Value: rec, Stack: stack}

				cfg.Logger.ErrorContext(r.Context(), "panic recovered",
					slog.Any("panic", rec),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("stack", string(stack)),
				)
				if cfg.OnPanic != nil {
					cfg.OnPanic(r, pe)
				}

				_ = response.ErrInternal("internal server error",
					response.WithError(pe),
					response.WithRequestID(GetRequestID(r.Context())),
				).Encode(w, r)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
