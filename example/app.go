package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/sugar/middlewares"
	"github.com/dmitrymomot/sugar/pkg/binder"
	"github.com/dmitrymomot/sugar/pkg/db"
	"github.com/dmitrymomot/sugar/pkg/health"
	"github.com/dmitrymomot/sugar/pkg/jwt"
	"github.com/dmitrymomot/sugar/pkg/token"
)

// app holds the handler dependencies.
type app struct {
	log        *slog.Logger
	users      *userStore
	jwt        *jwt.Service
	tokens     token.Store
	bind       binder.Binder
	checks     health.Checks
	refreshTTL time.Duration
	timeout    time.Duration
}

func newApp(log *slog.Logger, conn *db.DB, signer *jwt.Service, tokens token.Store, refreshTTL time.Duration, maxBody int64) *app {
	return &app{
		log:        log,
		users:      &userStore{db: conn},
		jwt:        signer,
		tokens:     tokens,
		bind:       binder.Auto(binder.WithMaxBodySize(maxBody)),
		checks:     health.Checks{"database": db.Healthcheck(conn)},
		refreshTTL: refreshTTL,
		timeout:    10 * time.Second,
	}
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middlewares.RequestID(),
		middlewares.Recover(middlewares.WithRecoverLogger(a.log)),
		middlewares.Timeout(a.timeout),
		middlewares.CurrentURL(),
	)

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(a.checks, health.WithLogger(a.log)))

	r.Post("/users", a.signup)
	r.Get("/users/{id}", a.profile)

	r.Post("/sessions", a.login)
	r.Post("/sessions/refresh", a.refresh)
	r.Delete("/sessions", a.logout)

	r.Group(func(r chi.Router) {
		r.Use(middlewares.JWT[jwt.StandardClaims](a.jwt))
		r.Get("/me", a.me)
		r.Patch("/me", a.updateMe)
	})

	return r
}
