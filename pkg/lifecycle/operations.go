package lifecycle

import (
	"context"
	"errors"
	"log/slog"
)

// Creator produces a new entity from a request.
// The zero values of PreCreate, PostCreate, Logger and Name are valid defaults.
type Creator[C Context, P, E any] struct {
	Decoder    Decoder[C, P]
	Construct  Constructor[P, E]
	PreCreate  Hook[C]
	PostCreate PostHook[C, E]
	Logger     *slog.Logger
	Name       string
}

// Create runs PreCreate, decodes the payload and constructs the entity.
// Constructor failures are wrapped in a ConstructionError.
func (cr Creator[C, P, E]) Create(c C) (E, error) {
	return run(c, opName(cr.Name, "create"), cr.Logger, cr.PreCreate, cr.Decoder,
		func(ctx context.Context, p P) (E, error) {
			e, err := cr.Construct(ctx, p)
			if err != nil {
				return e, wrapConstruction(err)
			}
			return e, nil
		},
		cr.PostCreate,
	)
}

// Updater applies a request payload to an existing entity.
// The zero values of PreUpdate, PostUpdate, Logger and Name are valid defaults.
type Updater[C Context, P, E any] struct {
	Decoder    Decoder[C, P]
	Mutate     Mutator[P, E]
	PreUpdate  Hook[C]
	PostUpdate PostHook[C, E]
	Logger     *slog.Logger
	Name       string
}

// Update runs PreUpdate, decodes the payload and applies it to existing.
// On failure the zero value is returned and existing is left to the caller.
func (u Updater[C, P, E]) Update(existing E, c C) (E, error) {
	return run(c, opName(u.Name, "update"), u.Logger, u.PreUpdate, u.Decoder,
		func(ctx context.Context, p P) (E, error) {
			e, err := u.Mutate(ctx, existing, p)
			if err != nil {
				return e, wrapConstruction(err)
			}
			return e, nil
		},
		u.PostUpdate,
	)
}

// Loginer resolves an entity from login credentials in a request.
// The zero values of PreLogin, PostLogin, Logger and Name are valid defaults.
type Loginer[C Context, P, E any] struct {
	Decoder      Decoder[C, P]
	Authenticate Authenticator[P, E]
	PreLogin     Hook[C]
	PostLogin    PostHook[C, E]
	Logger       *slog.Logger
	Name         string
}

// Login runs PreLogin, decodes the credentials and authenticates them.
// Every Authenticate failure collapses to ErrAuthentication, unless the
// request context was cancelled, in which case the context error is returned.
func (l Loginer[C, P, E]) Login(c C) (E, error) {
	return run(c, opName(l.Name, "login"), l.Logger, l.PreLogin, l.Decoder,
		func(ctx context.Context, p P) (E, error) {
			e, err := l.Authenticate(ctx, p)
			if err != nil {
				var zero E
				if ctxErr := ctx.Err(); ctxErr != nil {
					return zero, ctxErr
				}
				return zero, ErrAuthentication
			}
			return e, nil
		},
		l.PostLogin,
	)
}

// wrapConstruction wraps err in a ConstructionError.
// Context errors pass through so cancellation stays recognisable.
func wrapConstruction(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &ConstructionError{Err: err}
}

func opName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
