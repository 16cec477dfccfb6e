package sugar

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/sugar/middlewares"
	"github.com/dmitrymomot/sugar/pkg/either"
	"github.com/dmitrymomot/sugar/pkg/logger"
	"github.com/dmitrymomot/sugar/pkg/response"
)

// Respond writes enc. Encoding failures are logged with the default logger
// since the status line may already be on the wire.
func Respond(w http.ResponseWriter, r *http.Request, enc either.Encoder) {
	if err := enc.Encode(w, r); err != nil {
		slog.Default().ErrorContext(r.Context(), "encode response", slog.Any("error", err))
	}
}

// RespondError maps err with response.FromError, stamps the request ID and
// writes it. Server errors are logged with their cause.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	RespondErrorWithLogger(w, r, err, slog.Default())
}

// RespondErrorWithLogger is RespondError with an explicit logger.
func RespondErrorWithLogger(w http.ResponseWriter, r *http.Request, err error, log *slog.Logger) {
	he := response.FromError(err)
	if he == nil {
		return
	}
	if log == nil {
		log = logger.NewNope()
	}

	// FromError may return an HTTPError owned by the caller.
	out := *he
	if out.RequestID == "" {
		out.RequestID = middlewares.GetRequestID(r.Context())
	}

	if out.Code >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed",
			slog.Int("status", out.Code),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}

	if encErr := out.Encode(w, r); encErr != nil {
		log.ErrorContext(r.Context(), "encode error response", slog.Any("error", encErr))
	}
}
