package sugar

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/sugar/pkg/binder"
	"github.com/dmitrymomot/sugar/pkg/lifecycle"
)

// Hook runs against the incoming request before decoding.
type Hook = lifecycle.Hook[*http.Request]

// PostHook runs against the request and the produced entity.
type PostHook[E any] = lifecycle.PostHook[*http.Request, E]

type options[E any] struct {
	binder binder.Binder
	logger *slog.Logger
	pre    Hook
	post   PostHook[E]
	name   string
}

// Option configures a single Create, Update or Login call.
type Option[E any] func(*options[E])

// WithBinder replaces the default binder.Auto().
func WithBinder[E any](b binder.Binder) Option[E] {
	return func(o *options[E]) {
		if b != nil {
			o.binder = b
		}
	}
}

// WithLogger sets the logger pipeline failures are reported to at debug level.
func WithLogger[E any](l *slog.Logger) Option[E] {
	return func(o *options[E]) {
		o.logger = l
	}
}

// WithPreHook sets the hook that runs before the payload is decoded.
func WithPreHook[E any](h Hook) Option[E] {
	return func(o *options[E]) {
		o.pre = h
	}
}

// WithPostHook sets the hook that runs after the entity is produced.
// Typical uses are persisting the entity or writing an audit record.
func WithPostHook[E any](h PostHook[E]) Option[E] {
	return func(o *options[E]) {
		o.post = h
	}
}

// WithName sets the operation name used in pipeline log records.
func WithName[E any](name string) Option[E] {
	return func(o *options[E]) {
		o.name = name
	}
}

func newOptions[E any](opts []Option[E]) *options[E] {
	o := &options[E]{binder: binder.Auto()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options[E]) lifecycle() []lifecycle.Option[*http.Request, E] {
	return []lifecycle.Option[*http.Request, E]{
		lifecycle.WithPreHook[*http.Request, E](o.pre),
		lifecycle.WithPostHook(o.post),
		lifecycle.WithLogger[*http.Request, E](o.logger),
		lifecycle.WithName[*http.Request, E](o.name),
	}
}

// Create decodes P from r and builds a new entity with construct.
func Create[P, E any](r *http.Request, construct lifecycle.Constructor[P, E], opts ...Option[E]) (E, error) {
	o := newOptions(opts)
	return lifecycle.NewCreator[*http.Request, P, E](binder.Decoder[P](o.binder), construct, o.lifecycle()...).Create(r)
}

// Update decodes P from r and applies it to existing with mutate.
func Update[P, E any](existing E, r *http.Request, mutate lifecycle.Mutator[P, E], opts ...Option[E]) (E, error) {
	o := newOptions(opts)
	return lifecycle.NewUpdater[*http.Request, P, E](binder.Decoder[P](o.binder), mutate, o.lifecycle()...).Update(existing, r)
}

// Login decodes credentials P from r and resolves the entity with
// authenticate. Authentication failures are reported as
// lifecycle.ErrAuthentication regardless of their cause.
func Login[P, E any](r *http.Request, authenticate lifecycle.Authenticator[P, E], opts ...Option[E]) (E, error) {
	o := newOptions(opts)
	return lifecycle.NewLoginer[*http.Request, P, E](binder.Decoder[P](o.binder), authenticate, o.lifecycle()...).Login(r)
}
