package either

import "errors"

// Promote lifts a (value, error) pair into an Either.
// A nil error gives Left(v). An error matching E (via errors.As) gives
// Right(e). Any other error is returned unchanged.
//
// Example:
//
//	res, err := either.Promote[*User, *NotFoundError](repo.Find(ctx, id))
//	if err != nil {
//	    return err // unexpected failure
//	}
func Promote[T any, E error](v T, err error) (Either[T, E], error) {
	if err == nil {
		return Left[T, E](v), nil
	}

	var target E
	if errors.As(err, &target) {
		return Right[T](target), nil
	}

	return Either[T, E]{}, err
}
