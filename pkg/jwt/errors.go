package jwt

import "errors"

var (
	ErrSecretTooShort   = errors.New("jwt: secret must be at least 32 bytes")
	ErrInvalidConfig    = errors.New("jwt: signing method and keys are required")
	ErrExpiredToken     = errors.New("jwt: token expired")
	ErrInvalidSignature = errors.New("jwt: invalid token signature")
	ErrInvalidToken     = errors.New("jwt: invalid token")
)
