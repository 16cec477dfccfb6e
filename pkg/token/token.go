package token

import (
	"context"
	"time"

	"github.com/dmitrymomot/sugar/pkg/random"
)

// DefaultSize is the number of random bytes in a token.
const DefaultSize = 32

// Store issues and resolves tokens.
type Store interface {
	// Issue creates a token for subject that expires after ttl.
	Issue(ctx context.Context, subject string, ttl time.Duration) (string, error)
	// Resolve returns the subject of a live token or ErrNotFound.
	Resolve(ctx context.Context, token string) (string, error)
	// Consume resolves and deletes a token in one step. Of concurrent calls
	// with the same token at most one succeeds; the others get ErrNotFound.
	Consume(ctx context.Context, token string) (string, error)
	// Revoke deletes a token. Revoking an unknown token is not an error.
	Revoke(ctx context.Context, token string) error
	Close() error
}

// Rotate consumes token and issues a new one for the same subject.
// A token can be rotated once; later and concurrent attempts get ErrNotFound.
func Rotate(ctx context.Context, s Store, token string, ttl time.Duration) (string, string, error) {
	subject, err := s.Consume(ctx, token)
	if err != nil {
		return "", "", err
	}
	next, err := s.Issue(ctx, subject, ttl)
	if err != nil {
		return "", "", err
	}
	return next, subject, nil
}

// Option configures a store.
type Option func(*options)

type options struct {
	now             func() time.Time
	prefix          string
	cleanupInterval time.Duration
	size            int
}

func defaultOptions() *options {
	return &options{
		now:             time.Now,
		prefix:          "token:",
		cleanupInterval: time.Minute,
		size:            DefaultSize,
	}
}

// WithSize sets the number of random bytes per token. Values below 16 are ignored.
func WithSize(n int) Option {
	return func(o *options) {
		if n >= 16 {
			o.size = n
		}
	}
}

// WithPrefix sets the Redis key prefix.
// Default: "token:"
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithCleanupInterval sets how often the memory store drops expired tokens.
// Zero disables the background janitor.
// Default: 1 minute
func WithCleanupInterval(d time.Duration) Option {
	return func(o *options) {
		o.cleanupInterval = d
	}
}

// WithClock overrides the memory store's time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func generate(size int) (string, error) {
	return random.Bytes(size)
}
