// Package health provides liveness and readiness HTTP handlers.
//
// Liveness always answers OK while the process runs. Readiness runs every
// registered check concurrently under a shared timeout and answers 503 if
// any of them fails:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "db":    db.Healthcheck(conn),
//	    "redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
//	}))
//
// Responses are plain text unless the client asks for JSON with
// "Accept: application/json" or "?format=json".
package health
