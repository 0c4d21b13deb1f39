package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Publisher sends payloads with PUBLISH. It satisfies emitter.Publisher.
// go-redis pools connections, so a Publisher is safe for concurrent use.
type Publisher struct {
	db redis.UniversalClient
}

// NewPublisher wraps an existing client. Closing the Publisher closes the client.
func NewPublisher(client redis.UniversalClient) *Publisher {
	return &Publisher{db: client}
}

// Publish sends payload to channel once. Failures are not retried.
func (p *Publisher) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := p.db.Publish(ctx, channel, payload).Err(); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	return nil
}

// Subscribe listens on exact channel names. Receivers and tests use it to
// observe what an emitter sends.
func (p *Publisher) Subscribe(ctx context.Context, channels ...string) *redis.PubSub {
	return p.db.Subscribe(ctx, channels...)
}

// PSubscribe listens on glob patterns such as "socket.io#/#*".
func (p *Publisher) PSubscribe(ctx context.Context, patterns ...string) *redis.PubSub {
	return p.db.PSubscribe(ctx, patterns...)
}

// Close terminates the Redis connection.
func (p *Publisher) Close() error {
	return p.db.Close()
}

// Conn returns the underlying Redis client for advanced operations.
func (p *Publisher) Conn() redis.UniversalClient {
	return p.db
}
