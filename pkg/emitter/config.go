package emitter

import (
	"context"

	"github.com/dmitrymomot/sioemitter/pkg/redis"
)

// Config describes how to reach the bus shared with the receiving adapters.
type Config struct {
	Redis  redis.Config
	Prefix string `env:"EMITTER_PREFIX" envDefault:"socket.io"` // Prefix must match the key configured on the receiving adapters.
}

// Connect dials Redis with retries and returns a root Emitter publishing
// through the returned Publisher. Closing the Publisher releases the
// connection; Emitter values derived from the result must not be used after.
func Connect(ctx context.Context, cfg Config, opts ...Option) (Emitter, *redis.Publisher, error) {
	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return Emitter{}, nil, err
	}
	pub := redis.NewPublisher(client)

	opts = append([]Option{WithPrefix(cfg.Prefix)}, opts...)
	return New(pub, opts...), pub, nil
}
