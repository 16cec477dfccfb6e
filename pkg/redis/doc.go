// Package redis opens go-redis clients from configuration.
//
//	client, err := redis.Open(ctx, cfg.Redis)
//	if err != nil {
//	    return err
//	}
//	store := token.NewRedisStore(client, token.WithPrefix(cfg.Redis.KeyPrefix))
//
// Open pings the server and retries with linear backoff, so a Redis that is
// still starting does not fail the application. Healthcheck and Shutdown
// return closures for readiness probes and server shutdown hooks.
package redis
