// Package redis connects emitters to the Redis pub/sub bus that socket.io
// Redis adapters subscribe to.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which pings the server with retries before handing out a client.
//   - Publisher, a thin PUBLISH wrapper that satisfies emitter.Publisher.
//   - Healthcheck, for liveness and readiness checks.
//
// Configuration is described by the Config struct whose fields can be
// populated from environment variables via github.com/caarlos0/env.
//
// # Usage
//
//	cfg := redis.Config{
//	    ConnectionURL:  "redis://localhost:6379/0",
//	    RetryAttempts:  3,
//	    RetryInterval:  5 * time.Second,
//	    ConnectTimeout: 30 * time.Second,
//	}
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // handle error, probably terminate the application
//	}
//
//	pub := redis.NewPublisher(client)
//	defer pub.Close()
//
//	err = pub.Publish(ctx, "socket.io#/#", frame)
//
// PUBLISH is fire-and-forget: a nil error means Redis accepted the message,
// not that any adapter received it.
//
// # Errors
//
// Sentinel errors (ErrRedisNotReady, ErrPublishFailed, ...) are joined with
// the underlying go-redis error using errors.Join, so both can be matched with
// errors.Is.
//
// # See Also
//
//   - https://github.com/redis/go-redis – underlying driver
package redis
