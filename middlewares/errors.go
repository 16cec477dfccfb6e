package middlewares

import (
	"errors"
	"fmt"
)

// ErrPanic is matched by every PanicError via errors.Is.
var ErrPanic = errors.New("panic recovered")

// PanicError is a recovered panic together with the goroutine stack.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Is(target error) bool {
	return target == ErrPanic
}

// Unwrap exposes the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// IsPanicError reports whether err wraps a PanicError.
func IsPanicError(err error) bool {
	return errors.Is(err, ErrPanic)
}

// AsPanicError returns the PanicError in err's chain, if any.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
