package emitter

import (
	"log/slog"

	"github.com/dmitrymomot/sioemitter/pkg/packet"
)

// Option configures an Emitter created by New.
type Option func(*options)

type options struct {
	prefix string
	codec  *packet.Codec
	logger *slog.Logger
}

func defaultOptions() *options {
	return &options{
		prefix: DefaultPrefix,
		codec:  packet.NewCodec(),
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithPrefix sets the channel prefix. Receiving adapters must be configured
// with the same value. Empty prefixes are ignored.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.prefix = prefix
		}
	}
}

// WithCodec replaces the packet codec, typically to pin the id generator.
func WithCodec(c *packet.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithLogger supplies a logger. If nil, logs are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
