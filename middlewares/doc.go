// Package middlewares provides net/http middlewares that work with any
// router accepting func(http.Handler) http.Handler, including chi.
//
//	r := chi.NewRouter()
//	r.Use(
//	    middlewares.RequestID(),
//	    middlewares.Recover(middlewares.WithRecoverLogger(log)),
//	    middlewares.Timeout(10*time.Second),
//	    middlewares.CurrentURL(),
//	)
//	r.With(middlewares.JWT[jwt.StandardClaims](svc)).Get("/me", me)
//
// Values stored by a middleware are read back from the request context:
//
//	id := middlewares.GetRequestID(r.Context())
//	claims := middlewares.GetJWTClaims[jwt.StandardClaims](r.Context())
//
// Error responses are written as response.HTTPError JSON.
package middlewares
