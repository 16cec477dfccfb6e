// Package jwt issues and verifies JSON Web Tokens with a fixed expiration period.
//
//	svc, err := jwt.NewFromString(os.Getenv("JWT_SECRET"), jwt.WithExpirationPeriod(time.Hour))
//	token, err := svc.Issue(user.ID.String())
//
//	var claims jwt.StandardClaims
//	if err := svc.Parse(token, &claims); err != nil {
//	    // jwt.ErrExpiredToken, jwt.ErrInvalidSignature or jwt.ErrInvalidToken
//	}
//
// Signing and verification are delegated to github.com/golang-jwt/jwt/v5.
package jwt
