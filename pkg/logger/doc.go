// Package logger builds slog loggers with request-scoped attributes and
// optional Sentry reporting.
//
// Context extractors pull values such as request IDs out of the context on
// every log call:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	log.InfoContext(r.Context(), "user created", slog.String("user_id", id))
//	// {"level":"INFO","msg":"user created","user_id":"...","request_id":"..."}
//
// NewWithSentry sends warnings and errors to Sentry as well as stdout. With an
// empty DSN it falls back to stdout only, so the same wiring works locally.
//
// NewNope discards everything and is the default for library code that
// accepts an optional *slog.Logger.
package logger
