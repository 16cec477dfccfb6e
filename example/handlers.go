package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/sugar"
	"github.com/dmitrymomot/sugar/middlewares"
	"github.com/dmitrymomot/sugar/pkg/binder"
	"github.com/dmitrymomot/sugar/pkg/either"
	"github.com/dmitrymomot/sugar/pkg/jwt"
	"github.com/dmitrymomot/sugar/pkg/lifecycle"
	"github.com/dmitrymomot/sugar/pkg/response"
	"github.com/dmitrymomot/sugar/pkg/token"
)

// signup creates an account. The post hook persists the user and rejects
// a taken email with 409.
func (a *app) signup(w http.ResponseWriter, r *http.Request) {
	user, err := sugar.Create(r, newUser,
		sugar.WithBinder[User](a.bind),
		sugar.WithLogger[User](a.log),
		sugar.WithName[User]("signup"),
		sugar.WithPostHook(func(r *http.Request, u User) error {
			taken, err := a.users.emailTaken(r.Context(), u.Email)
			if err != nil {
				return err
			}
			if taken {
				return response.ErrConflict("email already registered", response.WithErrorCode("email_taken"))
			}
			return a.users.insert(r.Context(), u)
		}),
	)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.respond(w, r, response.Public(r.Context(), http.StatusCreated, user))
}

// login checks credentials and issues an access and a refresh token.
func (a *app) login(w http.ResponseWriter, r *http.Request) {
	authenticate := lifecycle.PasswordAuthenticator[loginRequest](a.users.byEmail,
		func(u User) string { return u.PasswordHash })

	user, err := sugar.Login(r, authenticate,
		sugar.WithBinder[User](a.bind),
		sugar.WithLogger[User](a.log),
		sugar.WithPostHook(func(r *http.Request, u User) error {
			_, err := a.users.recordLogin(r.Context(), u.ID)
			return err
		}),
	)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	pair, err := a.issue(r.Context(), user.ID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	sugar.Respond(w, r, response.JSON(http.StatusOK, pair))
}

// refresh exchanges a refresh token for a new pair. The old token is consumed,
// so a replayed or concurrently reused token gets 401.
func (a *app) refresh(w http.ResponseWriter, r *http.Request) {
	p, err := binder.Decoder[refreshRequest](a.bind).Decode(r)
	if err != nil {
		a.fail(w, r, &lifecycle.DecodingError{Err: err})
		return
	}

	next, subject, err := token.Rotate(r.Context(), a.tokens, p.RefreshToken, a.refreshTTL)
	if errors.Is(err, token.ErrNotFound) {
		a.fail(w, r, response.ErrUnauthorized("invalid refresh token", response.WithErrorCode("invalid_refresh_token")))
		return
	}
	if err != nil {
		a.fail(w, r, err)
		return
	}

	access, err := a.jwt.Issue(subject)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	sugar.Respond(w, r, response.JSON(http.StatusOK, a.pair(access, next)))
}

// logout revokes a refresh token. Unknown tokens are accepted silently.
func (a *app) logout(w http.ResponseWriter, r *http.Request) {
	p, err := binder.Decoder[refreshRequest](a.bind).Decode(r)
	if err != nil {
		a.fail(w, r, &lifecycle.DecodingError{Err: err})
		return
	}
	if err := a.tokens.Revoke(r.Context(), p.RefreshToken); err != nil {
		a.fail(w, r, err)
		return
	}
	sugar.Respond(w, r, response.NoContent(http.StatusNoContent))
}

func (a *app) me(w http.ResponseWriter, r *http.Request) {
	user, err := a.currentUser(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.respond(w, r, response.Public(r.Context(), http.StatusOK, user))
}

func (a *app) updateMe(w http.ResponseWriter, r *http.Request) {
	existing, err := a.currentUser(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	user, err := sugar.Update(existing, r, applyProfile,
		sugar.WithBinder[User](a.bind),
		sugar.WithLogger[User](a.log),
		sugar.WithPostHook(func(r *http.Request, u User) error {
			return a.users.update(r.Context(), u)
		}),
	)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.respond(w, r, response.Public(r.Context(), http.StatusOK, user))
}

// profile renders the public HTML profile page.
func (a *app) profile(w http.ResponseWriter, r *http.Request) {
	var out either.Either[either.Encoder, *response.HTTPError]

	user, err := a.users.byID(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, errUserNotFound):
		out = either.Right[either.Encoder](response.ErrNotFound("user not found"))
	case err != nil:
		a.fail(w, r, err)
		return
	default:
		out = either.Left[either.Encoder, *response.HTTPError](
			response.Component(http.StatusOK, profilePage(user, middlewares.GetCurrentURL(r.Context()))))
	}
	a.respond(w, r, out)
}

func (a *app) currentUser(r *http.Request) (User, error) {
	claims := middlewares.GetJWTClaims[jwt.StandardClaims](r.Context())
	if claims == nil {
		return User{}, response.ErrUnauthorized("missing authentication token")
	}
	user, err := a.users.byID(r.Context(), claims.Subject)
	if errors.Is(err, errUserNotFound) {
		return User{}, response.ErrUnauthorized("account no longer exists", response.WithError(err))
	}
	return user, err
}

func (a *app) issue(ctx context.Context, subject string) (tokenPair, error) {
	access, err := a.jwt.Issue(subject)
	if err != nil {
		return tokenPair{}, err
	}
	refresh, err := a.tokens.Issue(ctx, subject, a.refreshTTL)
	if err != nil {
		return tokenPair{}, err
	}
	return a.pair(access, refresh), nil
}

func (a *app) pair(access, refresh string) tokenPair {
	return tokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(a.jwt.ExpirationPeriod().Seconds()),
	}
}

// respond encodes whichever side of out is set, stamping the request ID on errors.
func (a *app) respond(w http.ResponseWriter, r *http.Request, out either.Either[either.Encoder, *response.HTTPError]) {
	if he, ok := out.RightValue(); ok {
		a.fail(w, r, he)
		return
	}
	sugar.Respond(w, r, either.AsEncoder(out))
}

func (a *app) fail(w http.ResponseWriter, r *http.Request, err error) {
	sugar.RespondErrorWithLogger(w, r, err, a.log)
}
