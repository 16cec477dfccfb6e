package token_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sugar/pkg/token"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newStore(t *testing.T) (*token.MemoryStore, *clock) {
	t.Helper()

	clk := &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := token.NewMemoryStore(token.WithClock(clk.Now), token.WithCleanupInterval(0))
	t.Cleanup(func() { _ = s.Close() })
	return s, clk
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("issue and resolve", func(t *testing.T) {
		t.Parallel()

		s, _ := newStore(t)
		tok, err := s.Issue(ctx, "user-1", time.Hour)
		require.NoError(t, err)
		assert.Len(t, tok, 43)

		subject, err := s.Resolve(ctx, tok)
		require.NoError(t, err)
		assert.Equal(t, "user-1", subject)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		t.Parallel()

		s, _ := newStore(t)
		a, err := s.Issue(ctx, "user-1", time.Hour)
		require.NoError(t, err)
		b, err := s.Issue(ctx, "user-1", time.Hour)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("expires", func(t *testing.T) {
		t.Parallel()

		s, clk := newStore(t)
		tok, err := s.Issue(ctx, "user-1", time.Minute)
		require.NoError(t, err)

		clk.Advance(time.Minute)
		_, err = s.Resolve(ctx, tok)
		require.ErrorIs(t, err, token.ErrNotFound)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("revoke", func(t *testing.T) {
		t.Parallel()

		s, _ := newStore(t)
		tok, err := s.Issue(ctx, "user-1", time.Hour)
		require.NoError(t, err)

		require.NoError(t, s.Revoke(ctx, tok))
		require.NoError(t, s.Revoke(ctx, tok))
		_, err = s.Resolve(ctx, tok)
		require.ErrorIs(t, err, token.ErrNotFound)
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Parallel()

		s, _ := newStore(t)
		_, err := s.Issue(ctx, "user-1", 0)
		require.ErrorIs(t, err, token.ErrInvalidTTL)
	})

	t.Run("closed", func(t *testing.T) {
		t.Parallel()

		s, _ := newStore(t)
		require.NoError(t, s.Close())
		require.NoError(t, s.Close())

		_, err := s.Issue(ctx, "user-1", time.Hour)
		require.ErrorIs(t, err, token.ErrClosed)
		_, err = s.Resolve(ctx, "x")
		require.ErrorIs(t, err, token.ErrClosed)
	})

	t.Run("rotate", func(t *testing.T) {
		t.Parallel()

		s, _ := newStore(t)
		old, err := s.Issue(ctx, "user-1", time.Hour)
		require.NoError(t, err)

		next, subject, err := token.Rotate(ctx, s, old, time.Hour)
		require.NoError(t, err)
		assert.Equal(t, "user-1", subject)
		assert.NotEqual(t, old, next)

		_, err = s.Resolve(ctx, old)
		require.ErrorIs(t, err, token.ErrNotFound)

		_, _, err = token.Rotate(ctx, s, old, time.Hour)
		require.ErrorIs(t, err, token.ErrNotFound)
	})
}

func TestMemoryStoreConsume(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returns subject once", func(t *testing.T) {
		t.Parallel()

		s, _ := newStore(t)
		tok, err := s.Issue(ctx, "user-1", time.Hour)
		require.NoError(t, err)

		subject, err := s.Consume(ctx, tok)
		require.NoError(t, err)
		assert.Equal(t, "user-1", subject)

		_, err = s.Consume(ctx, tok)
		require.ErrorIs(t, err, token.ErrNotFound)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		s, clk := newStore(t)
		tok, err := s.Issue(ctx, "user-1", time.Minute)
		require.NoError(t, err)

		clk.Advance(time.Minute)
		_, err = s.Consume(ctx, tok)
		require.ErrorIs(t, err, token.ErrNotFound)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("concurrent rotate succeeds once", func(t *testing.T) {
		t.Parallel()

		s, _ := newStore(t)
		old, err := s.Issue(ctx, "user-1", time.Hour)
		require.NoError(t, err)

		const n = 32
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
			notFound  int
		)
		start := make(chan struct{})
		for range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, _, err := token.Rotate(ctx, s, old, time.Hour)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					succeeded++
				case errors.Is(err, token.ErrNotFound):
					notFound++
				}
			}()
		}
		close(start)
		wg.Wait()

		assert.Equal(t, 1, succeeded)
		assert.Equal(t, n-1, notFound)
		assert.Equal(t, 1, s.Len())
	})
}

func TestMemoryStoreJanitor(t *testing.T) {
	t.Parallel()

	s := token.NewMemoryStore(token.WithCleanupInterval(10 * time.Millisecond))
	defer s.Close()

	_, err := s.Issue(context.Background(), "user-1", 20*time.Millisecond)
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 10*time.Millisecond)
}
