package lifecycle

import "log/slog"

type config[C Context, E any] struct {
	pre    Hook[C]
	post   PostHook[C, E]
	logger *slog.Logger
	name   string
}

// Option configures a Creator, Updater or Loginer built by its constructor.
type Option[C Context, E any] func(*config[C, E])

// WithPreHook sets the hook that runs before the payload is decoded.
// A nil hook keeps NoopHook.
func WithPreHook[C Context, E any](h Hook[C]) Option[C, E] {
	return func(cfg *config[C, E]) {
		if h != nil {
			cfg.pre = h
		}
	}
}

// WithPostHook sets the hook that runs after the entity is produced.
// A nil hook is ignored.
func WithPostHook[C Context, E any](h PostHook[C, E]) Option[C, E] {
	return func(cfg *config[C, E]) {
		if h != nil {
			cfg.post = h
		}
	}
}

// WithLogger sets the logger step failures are reported to at debug level.
func WithLogger[C Context, E any](l *slog.Logger) Option[C, E] {
	return func(cfg *config[C, E]) {
		cfg.logger = l
	}
}

// WithName sets the operation name used in log records.
// Default: "create", "update" or "login".
func WithName[C Context, E any](name string) Option[C, E] {
	return func(cfg *config[C, E]) {
		cfg.name = name
	}
}

func newConfig[C Context, E any](opts []Option[C, E]) *config[C, E] {
	cfg := &config[C, E]{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// NewCreator returns a Creator that decodes with decoder and builds entities with construct.
func NewCreator[C Context, P, E any](decoder Decoder[C, P], construct Constructor[P, E], opts ...Option[C, E]) *Creator[C, P, E] {
	cfg := newConfig(opts)
	return &Creator[C, P, E]{
		Decoder:    decoder,
		Construct:  construct,
		PreCreate:  cfg.pre,
		PostCreate: cfg.post,
		Logger:     cfg.logger,
		Name:       cfg.name,
	}
}

// NewUpdater returns an Updater that decodes with decoder and applies payloads with mutate.
func NewUpdater[C Context, P, E any](decoder Decoder[C, P], mutate Mutator[P, E], opts ...Option[C, E]) *Updater[C, P, E] {
	cfg := newConfig(opts)
	return &Updater[C, P, E]{
		Decoder:    decoder,
		Mutate:     mutate,
		PreUpdate:  cfg.pre,
		PostUpdate: cfg.post,
		Logger:     cfg.logger,
		Name:       cfg.name,
	}
}

// NewLoginer returns a Loginer that decodes credentials with decoder and resolves them with authenticate.
func NewLoginer[C Context, P, E any](decoder Decoder[C, P], authenticate Authenticator[P, E], opts ...Option[C, E]) *Loginer[C, P, E] {
	cfg := newConfig(opts)
	return &Loginer[C, P, E]{
		Decoder:      decoder,
		Authenticate: authenticate,
		PreLogin:     cfg.pre,
		PostLogin:    cfg.post,
		Logger:       cfg.logger,
		Name:         cfg.name,
	}
}
