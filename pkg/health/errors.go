package health

import "errors"

// ErrCheckFailed is joined with the cause of every failed check.
var ErrCheckFailed = errors.New("health: check failed")
