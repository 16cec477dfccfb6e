package jwt

import (
	"errors"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultExpirationPeriod is used when WithExpirationPeriod is not given.
const DefaultExpirationPeriod = 24 * time.Hour

// MinSecretLength is the minimum HMAC secret length accepted by NewFromString.
const MinSecretLength = 32

// StandardClaims are the registered claims set by Issue.
type StandardClaims struct {
	gojwt.RegisteredClaims
}

// Option configures a Service.
type Option func(*Service)

// WithExpirationPeriod sets how long issued tokens stay valid.
func WithExpirationPeriod(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.period = d
		}
	}
}

// WithIssuer sets the iss claim on issued tokens and requires it on parsed ones.
func WithIssuer(issuer string) Option {
	return func(s *Service) {
		s.issuer = issuer
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service signs tokens that expire a fixed period after issue.
// It is safe for concurrent use.
type Service struct {
	method    gojwt.SigningMethod
	signKey   any
	verifyKey any
	now       func() time.Time
	issuer    string
	period    time.Duration
}

// New creates a Service for any signing method supported by golang-jwt.
// For HMAC methods signKey and verifyKey are the same []byte secret.
func New(method gojwt.SigningMethod, signKey, verifyKey any, opts ...Option) (*Service, error) {
	if method == nil || signKey == nil || verifyKey == nil {
		return nil, ErrInvalidConfig
	}

	s := &Service{
		method:    method,
		signKey:   signKey,
		verifyKey: verifyKey,
		period:    DefaultExpirationPeriod,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewFromString creates an HS256 Service from a shared secret.
func NewFromString(secret string, opts ...Option) (*Service, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}
	key := []byte(secret)
	return New(gojwt.SigningMethodHS256, key, key, opts...)
}

// ExpirationPeriod returns the validity period of issued tokens.
func (s *Service) ExpirationPeriod() time.Duration {
	return s.period
}

// Generate signs claims as they are.
func (s *Service) Generate(claims gojwt.Claims) (string, error) {
	token, err := gojwt.NewWithClaims(s.method, claims).SignedString(s.signKey)
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	return token, nil
}

// Issue signs StandardClaims for subject, valid for the expiration period.
func (s *Service) Issue(subject string) (string, error) {
	now := s.now()
	return s.Generate(StandardClaims{
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.period)),
		},
	})
}

// Parse verifies token and decodes it into claims, which must be a pointer.
// Tokens without an exp claim are rejected.
func (s *Service) Parse(token string, claims gojwt.Claims) error {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{s.method.Alg()}),
		gojwt.WithTimeFunc(s.now),
		gojwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.issuer))
	}

	_, err := gojwt.ParseWithClaims(token, claims, func(*gojwt.Token) (any, error) {
		return s.verifyKey, nil
	}, opts...)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, gojwt.ErrTokenExpired):
		return ErrExpiredToken
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	default:
		return errors.Join(ErrInvalidToken, err)
	}
}
