package middlewares

import (
	"context"
	"errors"
	"net/http"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/dmitrymomot/sugar/pkg/jwt"
	"github.com/dmitrymomot/sugar/pkg/response"
)

type jwtClaimsKey struct{}

// JWTConfig configures the JWT middleware.
type JWTConfig struct {
	Extractor    Extractor
	extractorSet bool
}

// JWTOption configures JWTConfig.
type JWTOption func(*JWTConfig)

// WithJWTExtractor sets a custom token extractor chain.
func WithJWTExtractor(ext Extractor) JWTOption {
	return func(cfg *JWTConfig) {
		cfg.Extractor = ext
		cfg.extractorSet = true
	}
}

// JWT extracts a token from the request, validates it and stores the parsed
// claims in the request context. T is the claims type to parse into, e.g.
// jwt.StandardClaims. Requests without a valid token get a 401.
func JWT[T any, PT interface {
	*T
	gojwt.Claims
}](svc *jwt.Service, opts ...JWTOption) func(http.Handler) http.Handler {
	cfg := &JWTConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	// Default chain: Authorization header, then the access_token cookie.
	if !cfg.extractorSet {
		cfg.Extractor = NewExtractor(
			FromBearerToken(),
			FromCookie("access_token"),
		)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			unauthorized := func(msg, code string) {
				_ = response.ErrUnauthorized(msg,
					response.WithErrorCode(code),
					response.WithRequestID(GetRequestID(r.Context())),
				).Encode(w, r)
			}

			token, ok := cfg.Extractor.Extract(r)
			if !ok {
				unauthorized("missing authentication token", "missing_token")
				return
			}

			claims := PT(new(T))
			if err := svc.Parse(token, claims); err != nil {
				if errors.Is(err, jwt.ErrExpiredToken) {
					unauthorized("token expired", "token_expired")
					return
				}
				unauthorized("invalid token", "invalid_token")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), jwtClaimsKey{}, (*T)(claims))))
		})
	}
}

// GetJWTClaims returns the claims stored by JWT, or nil if the middleware
// did not run or T does not match.
func GetJWTClaims[T any](ctx context.Context) *T {
	v, _ := ctx.Value(jwtClaimsKey{}).(*T)
	return v
}
