// Package token stores opaque, expiring tokens bound to a subject, such as
// refresh tokens or password reset links.
//
// Tokens are 32 random bytes from crypto/rand, base64url encoded. Two
// backends are provided:
//
//	mem := token.NewMemoryStore(token.WithCleanupInterval(time.Minute))
//	defer mem.Close()
//
//	rds := token.NewRedisStore(client, token.WithPrefix("refresh:"))
//
//	tok, err := store.Issue(ctx, user.ID.String(), 30*24*time.Hour)
//	subject, err := store.Resolve(ctx, tok)
package token
