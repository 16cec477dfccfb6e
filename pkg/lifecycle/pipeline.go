package lifecycle

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/sugar/pkg/logger"
)

// Context is the constraint for request contexts the pipeline accepts.
// *http.Request satisfies it, as do framework contexts that expose the
// underlying context.Context.
type Context interface {
	Context() context.Context
}

// Decoder turns a request context into a typed payload.
// It is called at most once per pipeline invocation.
type Decoder[C Context, P any] interface {
	Decode(c C) (P, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc[C Context, P any] func(c C) (P, error)

// Decode calls f(c).
func (f DecoderFunc[C, P]) Decode(c C) (P, error) {
	return f(c)
}

// Hook runs before the main step of an operation.
// A non-nil error aborts the operation before the payload is decoded.
type Hook[C Context] func(c C) error

// PostHook runs after the entity has been produced.
// A non-nil error aborts the operation and the entity is discarded.
type PostHook[C Context, E any] func(c C, e E) error

// NoopHook always succeeds. It is the default pre-hook.
func NoopHook[C Context](C) error {
	return nil
}

// Constructor builds a new entity from a decoded payload.
type Constructor[P, E any] func(ctx context.Context, p P) (E, error)

// Mutator applies a decoded payload to an existing entity and returns the result.
type Mutator[P, E any] func(ctx context.Context, existing E, p P) (E, error)

// Authenticator resolves an entity from login credentials.
// Any error it returns is reported to the caller as ErrAuthentication.
type Authenticator[P, E any] func(ctx context.Context, p P) (E, error)

// Identity returns a Constructor for payloads that are their own entity.
func Identity[P any]() Constructor[P, P] {
	return func(_ context.Context, p P) (P, error) {
		return p, nil
	}
}

// run is the step sequence shared by every operation:
// pre-hook, decode, apply, post-hook. Returns at the first failure.
func run[C Context, P, E any](
	c C,
	op string,
	log *slog.Logger,
	pre Hook[C],
	decoder Decoder[C, P],
	apply func(ctx context.Context, p P) (E, error),
	post PostHook[C, E],
) (E, error) {
	var zero E

	if log == nil {
		log = logger.NewNope()
	}
	if pre == nil {
		pre = NoopHook[C]
	}

	ctx := c.Context()
	fail := func(stage string, err error) (E, error) {
		log.DebugContext(ctx, "lifecycle step failed",
			slog.String("operation", op),
			slog.String("stage", stage),
			slog.Any("error", err),
		)
		return zero, err
	}

	if err := ctx.Err(); err != nil {
		return fail(StagePre, err)
	}
	if err := pre(c); err != nil {
		return fail(StagePre, &HookError{Stage: StagePre, Err: err})
	}

	if err := ctx.Err(); err != nil {
		return fail("decode", err)
	}
	payload, err := decoder.Decode(c)
	if err != nil {
		return fail("decode", &DecodingError{Err: err})
	}

	if err := ctx.Err(); err != nil {
		return fail("apply", err)
	}
	entity, err := apply(ctx, payload)
	if err != nil {
		return fail("apply", err)
	}

	if post != nil {
		if err := ctx.Err(); err != nil {
			return fail(StagePost, err)
		}
		if err := post(c, entity); err != nil {
			return fail(StagePost, &HookError{Stage: StagePost, Err: err})
		}
	}

	return entity, nil
}
