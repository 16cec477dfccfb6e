package token

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	expiresAt time.Time
	subject   string
}

// MemoryStore keeps tokens in process memory. Tokens are lost on restart.
type MemoryStore struct {
	items  map[string]memEntry
	opts   *options
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

// NewMemoryStore creates a MemoryStore and starts its janitor.
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &MemoryStore{
		items: make(map[string]memEntry),
		opts:  o,
		done:  make(chan struct{}),
	}
	if o.cleanupInterval > 0 {
		go m.janitor()
	}
	return m
}

func (m *MemoryStore) Issue(_ context.Context, subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", ErrInvalidTTL
	}

	tok, err := generate(m.opts.size)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return "", ErrClosed
	}
	if _, ok := m.items[tok]; ok {
		return "", ErrCollision
	}
	m.items[tok] = memEntry{subject: subject, expiresAt: m.opts.now().Add(ttl)}
	return tok, nil
}

func (m *MemoryStore) Resolve(_ context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return "", ErrClosed
	}

	e, ok := m.items[token]
	if !ok {
		return "", ErrNotFound
	}
	if !m.opts.now().Before(e.expiresAt) {
		delete(m.items, token)
		return "", ErrNotFound
	}
	return e.subject, nil
}

func (m *MemoryStore) Consume(_ context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return "", ErrClosed
	}

	e, ok := m.items[token]
	if !ok {
		return "", ErrNotFound
	}
	delete(m.items, token)
	if !m.opts.now().Before(e.expiresAt) {
		return "", ErrNotFound
	}
	return e.subject, nil
}

func (m *MemoryStore) Revoke(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.items, token)
	return nil
}

// Len returns the number of stored tokens, including expired ones not yet cleaned up.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops the janitor. Close is idempotent.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	return nil
}

func (m *MemoryStore) janitor() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.deleteExpired()
		}
	}
}

func (m *MemoryStore) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.opts.now()
	for tok, e := range m.items {
		if !now.Before(e.expiresAt) {
			delete(m.items, tok)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
