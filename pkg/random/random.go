// Package random generates random strings.
//
// Two families with different guarantees live here and are not
// interchangeable:
//
//   - AlphaNumeric draws from [a-zA-Z0-9] using a caller-supplied integer
//     source. It is NOT cryptographically secure. Use it for non-sensitive
//     identifiers such as file names or display codes.
//   - Bytes and Hex read from crypto/rand. Use them for tokens, secrets and
//     anything an attacker must not guess.
package random

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	mathrand "math/rand/v2"
)

// Alphabet is the character set used by AlphaNumeric.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultLength is the length used by DefaultAlphaNumeric.
const DefaultLength = 64

// ErrInvalidLength is returned for non-positive byte counts.
var ErrInvalidLength = errors.New("random: length must be positive")

// IntSource yields uniform integers in [0, n). *math/rand/v2.Rand satisfies it.
type IntSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return mathrand.IntN(n) }

// AlphaNumeric returns a string of length characters drawn uniformly from
// Alphabet. A nil src uses the math/rand/v2 global source.
// Not suitable for secrets.
func AlphaNumeric(length int, src IntSource) string {
	if length <= 0 {
		return ""
	}
	if src == nil {
		src = globalSource{}
	}

	buf := make([]byte, length)
	for i := range buf {
		buf[i] = Alphabet[src.IntN(len(Alphabet))]
	}
	return string(buf)
}

// DefaultAlphaNumeric returns a 64 character alphanumeric string.
// Not suitable for secrets.
func DefaultAlphaNumeric() string {
	return AlphaNumeric(DefaultLength, nil)
}

// Bytes reads n cryptographically secure random bytes and returns them
// base64 (raw URL alphabet) encoded.
func Bytes(n int) (string, error) {
	b, err := read(n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Hex reads n cryptographically secure random bytes and returns them hex encoded.
func Hex(n int) (string, error) {
	b, err := read(n)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func read(n int) ([]byte, error) {
	if n <= 0 {
		return nil, ErrInvalidLength
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, errors.Join(errors.New("random: read entropy"), err)
	}
	return b, nil
}
