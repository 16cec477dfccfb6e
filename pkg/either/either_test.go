package either_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sugar/pkg/either"
)

type jsonBody struct {
	Value any
	Code  int
}

func (b jsonBody) Encode(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(b.Code)
	return json.NewEncoder(w).Encode(b.Value)
}

type textBody string

func (b textBody) Encode(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusTeapot)
	_, err := w.Write([]byte(b))
	return err
}

func record(t *testing.T, enc func(http.ResponseWriter, *http.Request) error) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, enc(w, r))
	return w
}

func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("left encodes like the plain value", func(t *testing.T) {
		t.Parallel()

		for _, v := range []any{"alice", 42, map[string]any{"id": "1"}, nil} {
			body := jsonBody{Code: http.StatusCreated, Value: v}
			e := either.Left[jsonBody, textBody](body)

			got := record(t, func(w http.ResponseWriter, r *http.Request) error { return either.Encode(e, w, r) })
			want := record(t, body.Encode)

			assert.Equal(t, want.Code, got.Code)
			assert.Equal(t, want.Header(), got.Header())
			assert.Equal(t, want.Body.String(), got.Body.String())
		}
	})

	t.Run("right encodes like the plain value", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"", "nope", "line\nbreak"} {
			body := textBody(s)
			e := either.Right[jsonBody](body)

			got := record(t, func(w http.ResponseWriter, r *http.Request) error { return either.Encode(e, w, r) })
			want := record(t, body.Encode)

			assert.Equal(t, want.Code, got.Code)
			assert.Equal(t, want.Header(), got.Header())
			assert.Equal(t, want.Body.String(), got.Body.String())
		}
	})

	t.Run("zero value returns ErrEmpty", func(t *testing.T) {
		t.Parallel()

		var e either.Either[jsonBody, textBody]
		w := httptest.NewRecorder()
		err := either.Encode(e, w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.ErrorIs(t, err, either.ErrEmpty)
	})

	t.Run("AsEncoder delegates to the active variant", func(t *testing.T) {
		t.Parallel()

		enc := either.AsEncoder(either.Right[jsonBody](textBody("hi")))
		got := record(t, enc.Encode)
		assert.Equal(t, http.StatusTeapot, got.Code)
		assert.Equal(t, "hi", got.Body.String())
	})
}

func TestEither_Accessors(t *testing.T) {
	t.Parallel()

	l := either.Left[int, string](7)
	assert.True(t, l.IsLeft())
	assert.False(t, l.IsRight())
	v, ok := l.LeftValue()
	assert.True(t, ok)
	assert.Equal(t, 7, v)
	_, ok = l.RightValue()
	assert.False(t, ok)

	r := either.Right[int]("x")
	assert.True(t, r.IsRight())
	s, ok := r.RightValue()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	var zero either.Either[int, string]
	assert.False(t, zero.IsLeft())
	assert.False(t, zero.IsRight())
}

func TestFold(t *testing.T) {
	t.Parallel()

	show := func(e either.Either[int, string]) string {
		return either.Fold(e, strconv.Itoa, func(s string) string { return "err:" + s })
	}

	assert.Equal(t, "7", show(either.Left[int, string](7)))
	assert.Equal(t, "err:x", show(either.Right[int]("x")))
	assert.Equal(t, "", show(either.Either[int, string]{}))
}

type notFoundError struct {
	ID string
}

func (e *notFoundError) Error() string { return fmt.Sprintf("%s not found", e.ID) }

func TestPromote(t *testing.T) {
	t.Parallel()

	t.Run("success becomes left", func(t *testing.T) {
		t.Parallel()

		e, err := either.Promote[string, *notFoundError]("alice", nil)
		require.NoError(t, err)
		v, ok := e.LeftValue()
		require.True(t, ok)
		assert.Equal(t, "alice", v)
	})

	t.Run("matching error becomes right", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("lookup: %w", &notFoundError{ID: "42"})
		e, err := either.Promote[string, *notFoundError]("", wrapped)
		require.NoError(t, err)
		nf, ok := e.RightValue()
		require.True(t, ok)
		assert.Equal(t, "42", nf.ID)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		e, err := either.Promote[string, *notFoundError]("", boom)
		require.ErrorIs(t, err, boom)
		assert.False(t, e.IsLeft())
		assert.False(t, e.IsRight())
	})
}
