package binder

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/sugar/pkg/lifecycle"
	"github.com/dmitrymomot/sugar/pkg/sanitizer"
	"github.com/dmitrymomot/sugar/pkg/validator"
)

// Decoder returns a lifecycle decoder that binds P with bind, applies
// `sanitize` tags and then checks `validate` tags. Validation failures are
// returned as validator.ValidationErrors.
// Sanitization and validation are skipped when P is not a struct.
func Decoder[P any](bind Binder) lifecycle.DecoderFunc[*http.Request, P] {
	return func(r *http.Request) (P, error) {
		var p P
		if err := bind(r, &p); err != nil {
			return p, err
		}

		if err := sanitizer.SanitizeStruct(&p); err != nil {
			if errors.Is(err, sanitizer.ErrNotStructPointer) {
				return p, nil
			}
			return p, fmt.Errorf("sanitize: %w", err)
		}
		if err := validator.ValidateStruct(&p); err != nil {
			return p, err
		}
		return p, nil
	}
}
