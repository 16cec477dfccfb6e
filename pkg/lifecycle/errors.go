package lifecycle

import (
	"errors"
	"fmt"
)

// Stage names reported by HookError.
const (
	StagePre  = "pre"
	StagePost = "post"
)

// ErrAuthentication is returned by Loginer.Login for any lookup or credential
// verification failure. It carries no cause: a missing account and a wrong
// secret produce the same value.
var ErrAuthentication = errors.New("lifecycle: authentication failed")

// HookError wraps an error returned by a pre- or post-hook.
type HookError struct {
	Err   error  // The hook's error, surfaced unchanged
	Stage string // StagePre or StagePost
}

// Error implements the error interface.
func (e *HookError) Error() string {
	return fmt.Sprintf("lifecycle: %s-hook: %v", e.Stage, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// DecodingError wraps a payload decoding failure.
type DecodingError struct {
	Err error
}

// Error implements the error interface.
func (e *DecodingError) Error() string {
	return fmt.Sprintf("lifecycle: decode payload: %v", e.Err)
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}

// ConstructionError wraps a rejection from a constructor or mutator.
type ConstructionError struct {
	Err error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("lifecycle: construct entity: %v", e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// IsHookError returns true if the error is a HookError.
func IsHookError(err error) bool {
	var he *HookError
	return errors.As(err, &he)
}

// AsHookError extracts the HookError from an error if present.
func AsHookError(err error) (*HookError, bool) {
	var he *HookError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// IsDecodingError returns true if the error is a DecodingError.
func IsDecodingError(err error) bool {
	var de *DecodingError
	return errors.As(err, &de)
}

// AsDecodingError extracts the DecodingError from an error if present.
func AsDecodingError(err error) (*DecodingError, bool) {
	var de *DecodingError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsConstructionError returns true if the error is a ConstructionError.
func IsConstructionError(err error) bool {
	var ce *ConstructionError
	return errors.As(err, &ce)
}

// AsConstructionError extracts the ConstructionError from an error if present.
func AsConstructionError(err error) (*ConstructionError, bool) {
	var ce *ConstructionError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsAuthenticationError returns true if the error is ErrAuthentication.
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrAuthentication)
}
