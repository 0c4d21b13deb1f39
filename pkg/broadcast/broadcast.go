package broadcast

import (
	"context"
	"sync"
)

// Message is a value published on a named channel.
type Message[T any] struct {
	Channel string
	Data    T
}

// Subscriber receives messages from a Broadcaster.
// Implementations must be safe for concurrent use.
type Subscriber[T any] interface {
	// Receive returns the channel messages are delivered on. It is closed
	// when the subscriber is dropped or closed.
	Receive(ctx context.Context) <-chan Message[T]

	// Close is idempotent.
	Close() error
}

// Broadcaster fans messages out to subscribers of their channel.
// Slow consumers lose messages instead of blocking publishers.
type Broadcaster[T any] interface {
	// Subscribe listens on the given channels, or on every channel when none
	// are given. Cancelling ctx removes the subscription.
	Subscribe(ctx context.Context, channels ...string) Subscriber[T]

	Broadcast(ctx context.Context, msg Message[T]) error

	// Publish is shorthand for Broadcast(ctx, Message[T]{Channel: channel, Data: data}).
	Publish(ctx context.Context, channel string, data T) error

	Close() error
}

type subscriber[T any] struct {
	ch       chan Message[T]
	channels map[string]struct{}
	closed   bool
	mu       sync.RWMutex
}

func newSubscriber[T any](bufferSize int, channels []string) *subscriber[T] {
	s := &subscriber[T]{ch: make(chan Message[T], bufferSize)}
	if len(channels) > 0 {
		s.channels = make(map[string]struct{}, len(channels))
		for _, c := range channels {
			s.channels[c] = struct{}{}
		}
	}
	return s
}

func (s *subscriber[T]) Receive(ctx context.Context) <-chan Message[T] {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

func (s *subscriber[T]) wants(channel string) bool {
	if s.channels == nil {
		return true
	}
	_, ok := s.channels[channel]
	return ok
}

// send reports false when the subscriber is closed or its buffer is full.
func (s *subscriber[T]) send(msg Message[T]) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- msg:
		return true
	default:
		return false
	}
}
