package lifecycle

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Credentials is implemented by login payloads carrying a username and a password.
type Credentials interface {
	GetUsername() string
	GetPassword() string
}

// FindFunc looks up an entity by username.
type FindFunc[E any] func(ctx context.Context, username string) (E, error)

// HashFunc returns the stored bcrypt hash of an entity's password.
type HashFunc[E any] func(e E) string

var errInvalidCredentials = errors.New("lifecycle: invalid credentials")

// dummyHash is compared against when the account does not exist, so both
// failure paths cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("sugar-dummy-password"), bcrypt.DefaultCost)
	return h
})

// PasswordAuthenticator returns an Authenticator that finds the entity by
// username and verifies the password against its bcrypt hash.
// Empty usernames and passwords are rejected without a lookup.
func PasswordAuthenticator[P Credentials, E any](find FindFunc[E], hash HashFunc[E]) Authenticator[P, E] {
	return func(ctx context.Context, p P) (E, error) {
		var zero E

		username, password := p.GetUsername(), p.GetPassword()
		if username == "" || password == "" {
			return zero, errInvalidCredentials
		}

		e, err := find(ctx, username)
		if err != nil {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return zero, errors.Join(errInvalidCredentials, err)
		}

		if err := bcrypt.CompareHashAndPassword([]byte(hash(e)), []byte(password)); err != nil {
			return zero, errors.Join(errInvalidCredentials, err)
		}

		return e, nil
	}
}

// HashPassword returns the bcrypt hash of password using the default cost.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
