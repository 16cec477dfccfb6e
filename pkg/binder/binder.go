package binder

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"sync"

	"github.com/go-playground/form/v4"
)

// DefaultMaxBodySize caps request bodies read by JSON and Form.
const DefaultMaxBodySize int64 = 1 << 20

// Binder fills v, a pointer to a struct, from r.
type Binder func(r *http.Request, v any) error

// Option configures a Binder.
type Option func(*options)

type options struct {
	maxBodySize int64
}

// WithMaxBodySize sets the body size limit in bytes. Non-positive values are ignored.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{maxBodySize: DefaultMaxBodySize}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var (
	formDecoder = sync.OnceValue(func() *form.Decoder {
		d := form.NewDecoder()
		d.SetTagName("form")
		return d
	})
	queryDecoder = sync.OnceValue(func() *form.Decoder {
		d := form.NewDecoder()
		d.SetTagName("query")
		return d
	})
)

// JSON binds an application/json request body.
func JSON(opts ...Option) Binder {
	o := newOptions(opts)
	return func(r *http.Request, v any) error {
		if mediaType(r) != "application/json" {
			return ErrUnsupportedMediaType
		}
		if r.Body == nil || r.Body == http.NoBody {
			return ErrEmptyBody
		}

		body := http.MaxBytesReader(nil, r.Body, o.maxBodySize)
		if err := json.NewDecoder(body).Decode(v); err != nil {
			return bodyError(err)
		}
		return nil
	}
}

// Form binds an application/x-www-form-urlencoded or multipart/form-data body.
func Form(opts ...Option) Binder {
	o := newOptions(opts)
	return func(r *http.Request, v any) error {
		mt := mediaType(r)
		if mt != "application/x-www-form-urlencoded" && mt != "multipart/form-data" {
			return ErrUnsupportedMediaType
		}
		if r.Body == nil || r.Body == http.NoBody {
			return ErrEmptyBody
		}

		r.Body = http.MaxBytesReader(nil, r.Body, o.maxBodySize)
		var err error
		if mt == "multipart/form-data" {
			err = r.ParseMultipartForm(o.maxBodySize)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			return bodyError(err)
		}

		if err := formDecoder().Decode(v, r.PostForm); err != nil {
			return errors.Join(ErrMalformedBody, err)
		}
		return nil
	}
}

// Query binds the URL query string.
func Query() Binder {
	return func(r *http.Request, v any) error {
		if err := queryDecoder().Decode(v, r.URL.Query()); err != nil {
			return errors.Join(ErrMalformedBody, err)
		}
		return nil
	}
}

// Auto picks a binder from the request: the query string for GET, HEAD and
// DELETE, otherwise the body according to its Content-Type.
func Auto(opts ...Option) Binder {
	jsonBinder, formBinder, queryBinder := JSON(opts...), Form(opts...), Query()
	return func(r *http.Request, v any) error {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodDelete:
			return queryBinder(r, v)
		}

		switch mediaType(r) {
		case "application/json":
			return jsonBinder(r, v)
		case "application/x-www-form-urlencoded", "multipart/form-data":
			return formBinder(r, v)
		case "":
			if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
				return ErrEmptyBody
			}
		}
		return ErrUnsupportedMediaType
	}
}

func mediaType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return mt
}

func bodyError(err error) error {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return ErrBodyTooLarge
	case errors.Is(err, io.EOF):
		return ErrEmptyBody
	default:
		return errors.Join(ErrMalformedBody, err)
	}
}
