package token

import "errors"

var (
	ErrNotFound   = errors.New("token: not found")
	ErrClosed     = errors.New("token: store is closed")
	ErrInvalidTTL = errors.New("token: ttl must be positive")
	ErrCollision  = errors.New("token: generated token already exists")
	ErrStore      = errors.New("token: store operation failed")
)
