package sanitizer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrNotStructPointer is returned when SanitizeStruct gets anything other
// than a non-nil pointer to a struct.
var ErrNotStructPointer = errors.New("sanitizer: expected non-nil pointer to struct")

// ErrUnknownDirective is returned for an unsupported sanitize tag directive.
var ErrUnknownDirective = errors.New("sanitizer: unknown directive")

var directives = map[string]func(string) string{
	"trim":           strings.TrimSpace,
	"lower":          strings.ToLower,
	"upper":          strings.ToUpper,
	"strip_html":     StripHTML,
	"safe_html":      SanitizeHTML,
	"collapse_space": func(s string) string { return strings.Join(strings.Fields(s), " ") },
}

// SanitizeStruct rewrites tagged string fields of the struct v points to.
// Directives run left to right. Nested structs and pointers to structs are
// walked; string slices apply the directives to every element.
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}
	return sanitizeStruct(rv.Elem())
}

func sanitizeStruct(rv reflect.Value) error {
	rt := rv.Type()
	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := rv.Field(i)

		switch {
		case fv.Kind() == reflect.Struct:
			if err := sanitizeStruct(fv); err != nil {
				return err
			}
			continue
		case fv.Kind() == reflect.Pointer && !fv.IsNil() && fv.Elem().Kind() == reflect.Struct:
			if err := sanitizeStruct(fv.Elem()); err != nil {
				return err
			}
			continue
		}

		tag := sf.Tag.Get("sanitize")
		if tag == "" || tag == "-" {
			continue
		}
		fns, err := parse(tag)
		if err != nil {
			return fmt.Errorf("field %s: %w", sf.Name, err)
		}

		switch {
		case fv.Kind() == reflect.String:
			fv.SetString(apply(fv.String(), fns))
		case fv.Kind() == reflect.Pointer && !fv.IsNil() && fv.Elem().Kind() == reflect.String:
			fv.Elem().SetString(apply(fv.Elem().String(), fns))
		case fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() == reflect.String:
			for j := range fv.Len() {
				fv.Index(j).SetString(apply(fv.Index(j).String(), fns))
			}
		}
	}
	return nil
}

func parse(tag string) ([]func(string) string, error) {
	parts := strings.Split(tag, ",")
	fns := make([]func(string) string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		fn, ok := directives[p]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDirective, p)
		}
		fns = append(fns, fn)
	}
	return fns, nil
}

func apply(s string, fns []func(string) string) string {
	for _, fn := range fns {
		s = fn(s)
	}
	return s
}
