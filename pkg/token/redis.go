package token

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps tokens in Redis with native key expiry.
// The client is owned by the caller; Close does not close it.
type RedisStore struct {
	client redis.UniversalClient
	opts   *options
	closed atomic.Bool
}

// NewRedisStore creates a RedisStore on client.
func NewRedisStore(client redis.UniversalClient, opts ...Option) *RedisStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &RedisStore{client: client, opts: o}
}

func (s *RedisStore) key(token string) string {
	return s.opts.prefix + token
}

func (s *RedisStore) Issue(ctx context.Context, subject string, ttl time.Duration) (string, error) {
	if s.closed.Load() {
		return "", ErrClosed
	}
	if ttl <= 0 {
		return "", ErrInvalidTTL
	}

	tok, err := generate(s.opts.size)
	if err != nil {
		return "", err
	}

	ok, err := s.client.SetNX(ctx, s.key(tok), subject, ttl).Result()
	if err != nil {
		return "", errors.Join(ErrStore, err)
	}
	if !ok {
		return "", ErrCollision
	}
	return tok, nil
}

func (s *RedisStore) Resolve(ctx context.Context, token string) (string, error) {
	if s.closed.Load() {
		return "", ErrClosed
	}

	subject, err := s.client.Get(ctx, s.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Join(ErrStore, err)
	}
	return subject, nil
}

// Consume uses GETDEL, so a token is handed out at most once.
func (s *RedisStore) Consume(ctx context.Context, token string) (string, error) {
	if s.closed.Load() {
		return "", ErrClosed
	}

	subject, err := s.client.GetDel(ctx, s.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Join(ErrStore, err)
	}
	return subject, nil
}

func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

// Close marks the store closed.
func (s *RedisStore) Close() error {
	s.closed.Store(true)
	return nil
}

var _ Store = (*RedisStore)(nil)
