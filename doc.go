// Package sugar wires the typed request lifecycle to net/http.
//
// The pipelines in pkg/lifecycle are generic over the request context type.
// This package fixes that type to *http.Request, decodes payloads with
// binder.Auto (JSON, forms or query, then sanitize and validate) and maps
// failures to JSON error responses:
//
//	func (h *Users) create(w http.ResponseWriter, r *http.Request) {
//	    user, err := sugar.Create(r, newUser,
//	        sugar.WithPostHook(h.save),
//	        sugar.WithLogger[User](h.log),
//	    )
//	    if err != nil {
//	        sugar.RespondError(w, r, err)
//	        return
//	    }
//	    sugar.Respond(w, r, response.JSON(http.StatusCreated, user))
//	}
//
// # Server
//
// [Server] runs an http.Handler until the context is cancelled or SIGINT or
// SIGTERM arrives, then shuts down gracefully and runs shutdown hooks:
//
//	srv := sugar.NewServer(router,
//	    sugar.WithAddress(":8080"),
//	    sugar.WithShutdownHook(db.Shutdown(conn)),
//	)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package sugar
