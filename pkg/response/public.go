package response

import (
	"context"

	"github.com/dmitrymomot/sugar/pkg/either"
)

// PublicRepresentable is implemented by entities that have a separate
// client-facing shape, e.g. a user without its password hash.
type PublicRepresentable[P any] interface {
	ConvertToPublic(ctx context.Context) (P, error)
}

// Public converts entity to its public form and encodes it as JSON.
// A conversion failure yields the mapped HTTPError on the right.
func Public[P any](ctx context.Context, code int, entity PublicRepresentable[P]) either.Either[either.Encoder, *HTTPError] {
	p, err := entity.ConvertToPublic(ctx)
	if err != nil {
		return either.Right[either.Encoder](FromError(err))
	}
	return either.Left[either.Encoder, *HTTPError](JSON(code, p))
}
