package tags

import "errors"

var (
	ErrParameterCount  = errors.New("tags: invalid parameter count")
	ErrExpectedNumber  = errors.New("tags: expected a number")
	ErrInvalidDecimals = errors.New("tags: invalid decimals")
)
