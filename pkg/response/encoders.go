package response

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/sugar/pkg/either"
)

// EncoderFunc adapts a function to either.Encoder.
type EncoderFunc func(w http.ResponseWriter, r *http.Request) error

// Encode calls f(w, r).
func (f EncoderFunc) Encode(w http.ResponseWriter, r *http.Request) error {
	return f(w, r)
}

// JSON writes v as a JSON body with the given status code.
func JSON(code int, v any) either.Encoder {
	return EncoderFunc(func(w http.ResponseWriter, _ *http.Request) error {
		return writeJSON(w, code, v)
	})
}

// Text writes s as a plain text body.
func Text(code int, s string) either.Encoder {
	return EncoderFunc(func(w http.ResponseWriter, _ *http.Request) error {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(code)
		_, err := io.WriteString(w, s)
		return err
	})
}

// NoContent writes only the status code.
func NoContent(code int) either.Encoder {
	return EncoderFunc(func(w http.ResponseWriter, _ *http.Request) error {
		w.WriteHeader(code)
		return nil
	})
}

// Component renders a templ component as HTML.
func Component(code int, c templ.Component) either.Encoder {
	return EncoderFunc(func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(code)
		return c.Render(r.Context(), w)
	})
}

// Redirect sends the client to url. Requests issued by HTMX get an
// HX-Redirect header instead of a 3xx status.
func Redirect(code int, url string) either.Encoder {
	return EncoderFunc(func(w http.ResponseWriter, r *http.Request) error {
		if r.Header.Get("HX-Request") == "true" {
			w.Header().Set("HX-Redirect", url)
			w.WriteHeader(http.StatusOK)
			return nil
		}
		http.Redirect(w, r, url, code)
		return nil
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}
