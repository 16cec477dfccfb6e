package sugar_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sugar"
	"github.com/dmitrymomot/sugar/middlewares"
	"github.com/dmitrymomot/sugar/pkg/binder"
	"github.com/dmitrymomot/sugar/pkg/lifecycle"
	"github.com/dmitrymomot/sugar/pkg/response"
)

type createNote struct {
	Title string `json:"title" form:"title" query:"title" validate:"required,max=40" sanitize:"trim"`
	Body  string `json:"body" form:"body" sanitize:"strip_html"`
}

type updateNote struct {
	Title string `json:"title" validate:"required" sanitize:"trim"`
}

type credentials struct {
	Email    string `json:"email" validate:"required,email" sanitize:"trim,lower"`
	Password string `json:"password" validate:"required"`
}

type note struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func newNote(_ context.Context, p createNote) (note, error) {
	return note{Title: p.Title, Body: p.Body}, nil
}

func jsonRequest(method, body string) *http.Request {
	r := httptest.NewRequest(method, "/notes", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestCreate(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		n, err := sugar.Create(jsonRequest(http.MethodPost, `{"title":"  hello ","body":"<b>hi</b>"}`), newNote)
		require.NoError(t, err)
		assert.Equal(t, note{Title: "hello", Body: "hi"}, n)
	})

	t.Run("form", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader("title=from+form"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		n, err := sugar.Create(r, newNote)
		require.NoError(t, err)
		assert.Equal(t, "from form", n.Title)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()
		_, err := sugar.Create(jsonRequest(http.MethodPost, `{"title":"   "}`), newNote)
		require.Error(t, err)
		assert.True(t, lifecycle.IsDecodingError(err))
	})

	t.Run("hooks", func(t *testing.T) {
		t.Parallel()
		var order []string
		n, err := sugar.Create(jsonRequest(http.MethodPost, `{"title":"x"}`), newNote,
			sugar.WithPreHook[note](func(*http.Request) error {
				order = append(order, "pre")
				return nil
			}),
			sugar.WithPostHook(func(_ *http.Request, n note) error {
				order = append(order, "post:"+n.Title)
				return nil
			}),
		)
		require.NoError(t, err)
		assert.Equal(t, "x", n.Title)
		assert.Equal(t, []string{"pre", "post:x"}, order)
	})

	t.Run("pre hook aborts before decode", func(t *testing.T) {
		t.Parallel()
		decoded := false
		_, err := sugar.Create(jsonRequest(http.MethodPost, `{"title":"x"}`), newNote,
			sugar.WithPreHook[note](func(*http.Request) error { return errors.New("forbidden") }),
			sugar.WithBinder[note](func(*http.Request, any) error {
				decoded = true
				return nil
			}),
		)
		require.Error(t, err)
		assert.True(t, lifecycle.IsHookError(err))
		assert.False(t, decoded)
	})

	t.Run("custom binder", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/notes?title=q", nil)
		n, err := sugar.Create(r, newNote, sugar.WithBinder[note](binder.Query()))
		require.NoError(t, err)
		assert.Equal(t, "q", n.Title)
	})
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	rename := func(_ context.Context, n note, p updateNote) (note, error) {
		n.Title = p.Title
		return n, nil
	}
	existing := note{Title: "old", Body: "kept"}

	n, err := sugar.Update(existing, jsonRequest(http.MethodPatch, `{"title":" new "}`), rename)
	require.NoError(t, err)
	assert.Equal(t, note{Title: "new", Body: "kept"}, n)
	assert.Equal(t, "old", existing.Title)

	_, err = sugar.Update(existing, jsonRequest(http.MethodPatch, `{}`), rename)
	assert.True(t, lifecycle.IsDecodingError(err))
}

func TestLogin(t *testing.T) {
	t.Parallel()

	auth := func(_ context.Context, c credentials) (string, error) {
		if c.Email == "alice@example.com" && c.Password == "secret" {
			return "alice", nil
		}
		return "", errors.New("no such user")
	}

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr func(error) bool
	}{
		{name: "ok", body: `{"email":" Alice@Example.com ","password":"secret"}`, want: "alice"},
		{name: "wrong password", body: `{"email":"alice@example.com","password":"nope"}`, wantErr: lifecycle.IsAuthenticationError},
		{name: "malformed", body: `{"email":`, wantErr: lifecycle.IsDecodingError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := sugar.Login(jsonRequest(http.MethodPost, tt.body), auth)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err))
				assert.NotContains(t, err.Error(), "no such user")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRespondError(t *testing.T) {
	t.Parallel()

	handler := func(err error) http.Handler {
		return middlewares.RequestID(
			middlewares.WithRequestIDGenerator(func() string { return "req-42" }),
		)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sugar.RespondError(w, r, err)
		}))
	}

	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "authentication", err: lifecycle.ErrAuthentication, code: http.StatusUnauthorized},
		{name: "construction", err: &lifecycle.ConstructionError{Err: errors.New("taken")}, code: http.StatusUnprocessableEntity},
		{name: "http error", err: response.ErrNotFound("note not found"), code: http.StatusNotFound},
		{name: "unknown", err: errors.New("db down"), code: http.StatusInternalServerError},
		{name: "post-hook failure", err: &lifecycle.HookError{Stage: lifecycle.StagePost, Err: errors.New("db down")}, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			handler(tt.err).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.code, w.Code)
			var body struct {
				Error response.HTTPError `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "req-42", body.Error.RequestID)
			assert.NotContains(t, w.Body.String(), "db down")
		})
	}

	t.Run("shared error untouched", func(t *testing.T) {
		t.Parallel()
		shared := response.ErrForbidden("no")
		handler(shared).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Empty(t, shared.RequestID)
	})

	t.Run("nil writes nothing", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		sugar.RespondError(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)
		assert.Empty(t, w.Body.String())
	})
}

func TestRespond(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	sugar.Respond(w, httptest.NewRequest(http.MethodGet, "/", nil), response.JSON(http.StatusCreated, note{Title: "a"}))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"title":"a","body":""}`, w.Body.String())
}
