package emitter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/sioemitter/pkg/logger"
	"github.com/dmitrymomot/sioemitter/pkg/msgpack"
	"github.com/dmitrymomot/sioemitter/pkg/packet"
)

// DefaultPrefix is the channel prefix used by socket.io Redis adapters.
const DefaultPrefix = "socket.io"

const delimiter = "#"

// Publisher delivers a payload to every current subscriber of channel.
// Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Emitter addresses events to a namespace and optionally a single room or
// socket id. Emitter is a value: narrowing methods return a modified copy and
// never touch the receiver, so one root Emitter can be shared by many
// goroutines.
type Emitter struct {
	pub    Publisher
	codec  *packet.Codec
	log    *slog.Logger
	prefix string

	nsp       string
	target    string
	hasTarget bool
	all       bool
	flags     packet.Flags
}

// New returns an Emitter bound to the root namespace with no target.
func New(pub Publisher, opts ...Option) Emitter {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(cfg)
	}
	return Emitter{
		pub:    pub,
		codec:  cfg.codec,
		log:    cfg.logger,
		prefix: cfg.prefix,
		nsp:    packet.RootNamespace,
	}
}

// Of returns a copy addressed to namespace nsp. A missing leading slash is
// added and an empty name selects the root namespace. The target is kept.
func (e Emitter) Of(nsp string) Emitter {
	e.nsp = normalizeNamespace(nsp)
	return e
}

// To returns a copy addressed to the room or socket id. It replaces any
// previously selected target.
func (e Emitter) To(id string) Emitter {
	e.target = id
	e.hasTarget = true
	return e
}

// In is an alias for To.
func (e Emitter) In(id string) Emitter {
	return e.To(id)
}

// Broadcast returns a copy whose packets are also delivered to every socket
// of the namespace.
func (e Emitter) Broadcast() Emitter {
	e.all = true
	return e
}

// Volatile returns a copy whose packets may be dropped by the receiving
// adapter when a client is not ready to receive them.
func (e Emitter) Volatile() Emitter {
	e.flags.Volatile = true
	return e
}

// Compress returns a copy with the compression hint set to on.
func (e Emitter) Compress(on bool) Emitter {
	e.flags.Compress = on
	return e
}

// Local returns a copy whose packets are only delivered by the adapter node
// that receives them first.
func (e Emitter) Local() Emitter {
	e.flags.Local = true
	return e
}

func (e Emitter) Namespace() string { return e.nsp }
func (e Emitter) Prefix() string    { return e.prefix }

// Target returns the selected room or socket id.
func (e Emitter) Target() (string, bool) { return e.target, e.hasTarget }

// Channel returns the bus channel for the current namespace and target:
// "<prefix>#<nsp>#" or "<prefix>#<nsp>#<target>#".
func (e Emitter) Channel() string {
	return ChannelName(e.prefix, e.nsp, e.target, e.hasTarget)
}

// Emit converts args to structured values and publishes the event.
// See EmitValues for error semantics.
func (e Emitter) Emit(ctx context.Context, event string, args ...any) error {
	values, err := msgpack.FromSlice(args)
	if err != nil {
		return err
	}
	return e.EmitValues(ctx, event, values...)
}

// EmitValues encodes the event with its arguments and performs exactly one
// publish. Encoding errors return ErrUnencodableValue and nothing is
// published. Publisher errors are returned joined with ErrTransport and are
// never retried.
func (e Emitter) EmitValues(ctx context.Context, event string, args ...msgpack.Value) error {
	if e.pub == nil {
		return ErrNoPublisher
	}

	channel := e.Channel()
	opts := packet.NewOptions(e.target, e.hasTarget, e.all, e.flags, args)

	payload, err := e.codec.Encode(e.nsp, packet.Request{Event: event, Args: args}, opts)
	if err != nil {
		return err
	}

	if err := e.pub.Publish(ctx, channel, payload); err != nil {
		e.log.WarnContext(ctx, "publish failed",
			logger.Channel(channel),
			logger.Event(event),
			logger.Error(err),
		)
		return errors.Join(ErrTransport, err)
	}

	e.log.DebugContext(ctx, "event emitted",
		logger.Channel(channel),
		logger.Namespace(e.nsp),
		logger.Event(event),
		slog.Int("size", len(payload)),
	)
	return nil
}

// ChannelName derives the bus channel. It is pure: equal inputs always give
// equal output.
func ChannelName(prefix, nsp, target string, hasTarget bool) string {
	nsp = normalizeNamespace(nsp)

	var b strings.Builder
	b.Grow(len(prefix) + len(nsp) + len(target) + 3)
	b.WriteString(prefix)
	b.WriteString(delimiter)
	b.WriteString(nsp)
	b.WriteString(delimiter)
	if hasTarget {
		b.WriteString(target)
		b.WriteString(delimiter)
	}
	return b.String()
}

func normalizeNamespace(nsp string) string {
	if nsp == "" {
		return packet.RootNamespace
	}
	if !strings.HasPrefix(nsp, "/") {
		return "/" + nsp
	}
	return nsp
}
