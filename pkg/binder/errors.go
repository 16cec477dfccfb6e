package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("binder: unsupported media type")
	ErrEmptyBody            = errors.New("binder: empty request body")
	ErrBodyTooLarge         = errors.New("binder: request body too large")
	ErrMalformedBody        = errors.New("binder: malformed request data")
)
