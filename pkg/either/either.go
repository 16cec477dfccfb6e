// Package either provides a two-variant tagged union.
//
// An Either holds exactly one of a Left or a Right value. Handlers use it to
// return a success body or an alternate body from one code path without
// turning the alternate into a Go error:
//
//	func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
//	    var res either.Either[either.Encoder, *response.HTTPError]
//	    if u, err := h.repo.Find(r.Context(), id); err != nil {
//	        res = either.Right[either.Encoder](response.ErrNotFound("user not found"))
//	    } else {
//	        res = either.Left[either.Encoder, *response.HTTPError](response.JSON(200, u))
//	    }
//	    _ = either.Encode(res, w, r)
//	}
//
// Encode is only callable when both sides implement Encoder. Otherwise Either
// is still a plain union usable with Fold and the accessors.
package either

import (
	"errors"
	"net/http"
)

// ErrEmpty is returned when encoding the zero Either, which holds no variant.
var ErrEmpty = errors.New("either: no variant set")

type side uint8

const (
	none side = iota
	left
	right
)

// Either holds exactly one of L or R. It is immutable once constructed.
type Either[L, R any] struct {
	l    L
	r    R
	side side
}

// Left returns an Either holding l.
func Left[L, R any](l L) Either[L, R] {
	return Either[L, R]{l: l, side: left}
}

// Right returns an Either holding r.
func Right[L, R any](r R) Either[L, R] {
	return Either[L, R]{r: r, side: right}
}

// IsLeft reports whether the Left variant is active.
func (e Either[L, R]) IsLeft() bool { return e.side == left }

// IsRight reports whether the Right variant is active.
func (e Either[L, R]) IsRight() bool { return e.side == right }

// LeftValue returns the Left value and true if it is the active variant.
func (e Either[L, R]) LeftValue() (L, bool) {
	if e.side != left {
		var zero L
		return zero, false
	}
	return e.l, true
}

// RightValue returns the Right value and true if it is the active variant.
func (e Either[L, R]) RightValue() (R, bool) {
	if e.side != right {
		var zero R
		return zero, false
	}
	return e.r, true
}

// Fold dispatches on the active variant.
// The zero Either yields the zero value of T.
func Fold[L, R, T any](e Either[L, R], onLeft func(L) T, onRight func(R) T) T {
	switch e.side {
	case left:
		return onLeft(e.l)
	case right:
		return onRight(e.r)
	default:
		var zero T
		return zero
	}
}

// Encoder writes itself as an HTTP response.
type Encoder interface {
	Encode(w http.ResponseWriter, r *http.Request) error
}

// Encode writes the active variant exactly as if it were returned on its own.
func Encode[L, R Encoder](e Either[L, R], w http.ResponseWriter, r *http.Request) error {
	switch e.side {
	case left:
		return e.l.Encode(w, r)
	case right:
		return e.r.Encode(w, r)
	default:
		return ErrEmpty
	}
}

// AsEncoder wraps e so it can be passed where an Encoder is expected.
func AsEncoder[L, R Encoder](e Either[L, R]) Encoder {
	return encoder[L, R]{e: e}
}

type encoder[L, R Encoder] struct {
	e Either[L, R]
}

func (enc encoder[L, R]) Encode(w http.ResponseWriter, r *http.Request) error {
	return Encode(enc.e, w, r)
}
