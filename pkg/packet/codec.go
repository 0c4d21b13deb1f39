package packet

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sioemitter/pkg/msgpack"
)

// HeaderSize is the length of the frame length prefix.
const HeaderSize = 4

// Wire keys of the packet and options records.
const (
	keyType   = "type"
	keyData   = "data"
	keyNsp    = "nsp"
	keyRooms  = "rooms"
	keyFlags  = "flags"
	keyAll    = "all"
	keyBinary = "binary"

	flagVolatile = "volatile"
	flagCompress = "compress"
	flagLocal    = "local"
)

// IDGenerator returns a fresh packet identifier.
type IDGenerator func() string

// Codec turns broadcast requests into length-prefixed frames.
// A Codec is safe for concurrent use.
type Codec struct {
	newID IDGenerator
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithIDGenerator replaces the packet identifier scheme.
// Nil generators are ignored.
func WithIDGenerator(fn IDGenerator) CodecOption {
	return func(c *Codec) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// NewCodec returns a Codec that tags every packet with a random UUIDv4.
func NewCodec(opts ...CodecOption) *Codec {
	c := &Codec{newID: uuid.NewString}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode serializes req for namespace nsp.
//
// Frame layout:
//
//	uint32 big-endian N, then N bytes of MessagePack:
//	[ id, {type, data, nsp?}, {rooms, flags, all, binary} ]
//
// The nsp key is present only for non-root namespaces.
func (c *Codec) Encode(nsp string, req Request, opts Options) ([]byte, error) {
	if req.Event == "" {
		return nil, ErrEmptyEvent
	}
	if nsp == "" {
		nsp = RootNamespace
	}

	pkt := []msgpack.Entry{
		{Key: keyType, Value: msgpack.Int(TypeEvent)},
		{Key: keyData, Value: req.Data()},
	}
	if nsp != RootNamespace {
		pkt = append(pkt, msgpack.Entry{Key: keyNsp, Value: msgpack.String(nsp)})
	}

	envelope := msgpack.Array(
		msgpack.String(c.newID()),
		msgpack.MapOf(pkt...),
		encodeOptions(opts),
	)

	buf := make([]byte, HeaderSize, 128)
	buf, err := msgpack.AppendValue(buf, envelope)
	if err != nil {
		return nil, errors.Join(ErrUnencodableValue, err)
	}
	if uint64(len(buf)-HeaderSize) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(buf)-HeaderSize)
	}
	binary.BigEndian.PutUint32(buf, uint32(len(buf)-HeaderSize))
	return buf, nil
}

func encodeOptions(opts Options) msgpack.Value {
	rooms := msgpack.Array()
	if opts.HasTarget {
		rooms = msgpack.Array(msgpack.String(opts.Target))
	}

	flags := make([]msgpack.Entry, 0, 3)
	if opts.Flags.Volatile {
		flags = append(flags, msgpack.Entry{Key: flagVolatile, Value: msgpack.Bool(true)})
	}
	if opts.Flags.Compress {
		flags = append(flags, msgpack.Entry{Key: flagCompress, Value: msgpack.Bool(true)})
	}
	if opts.Flags.Local {
		flags = append(flags, msgpack.Entry{Key: flagLocal, Value: msgpack.Bool(true)})
	}

	return msgpack.MapOf(
		msgpack.Entry{Key: keyRooms, Value: rooms},
		msgpack.Entry{Key: keyFlags, Value: msgpack.MapOf(flags...)},
		msgpack.Entry{Key: keyAll, Value: msgpack.Bool(opts.AllSockets)},
		msgpack.Entry{Key: keyBinary, Value: msgpack.Bool(opts.Binary)},
	)
}

// Decode parses a frame produced by Encode.
func Decode(frame []byte) (Packet, error) {
	if len(frame) < HeaderSize {
		return Packet{}, ErrShortFrame
	}
	n := binary.BigEndian.Uint32(frame)
	if uint64(n) != uint64(len(frame)-HeaderSize) {
		return Packet{}, fmt.Errorf("%w: header says %d, got %d", ErrFrameLength, n, len(frame)-HeaderSize)
	}

	envelope, err := msgpack.Decode(frame[HeaderSize:])
	if err != nil {
		return Packet{}, errors.Join(ErrMalformedPacket, err)
	}
	parts := envelope.AsArray()
	if envelope.Kind() != msgpack.KindArray || len(parts) != 3 {
		return Packet{}, fmt.Errorf("%w: envelope must be a 3-element array", ErrMalformedPacket)
	}
	if parts[0].Kind() != msgpack.KindString || parts[1].Kind() != msgpack.KindMap || parts[2].Kind() != msgpack.KindMap {
		return Packet{}, fmt.Errorf("%w: envelope must hold id, packet and options", ErrMalformedPacket)
	}

	p := Packet{ID: parts[0].AsString(), Namespace: RootNamespace}

	if typ, ok := parts[1].Get(keyType); ok {
		p.Type = int(typ.AsInt())
	}
	if nsp, ok := parts[1].Get(keyNsp); ok {
		p.Namespace = nsp.AsString()
	}
	data, ok := parts[1].Get(keyData)
	if !ok || data.Kind() != msgpack.KindArray || data.Len() == 0 || data.AsArray()[0].Kind() != msgpack.KindString {
		return Packet{}, fmt.Errorf("%w: data must start with the event name", ErrMalformedPacket)
	}
	p.Event = data.AsArray()[0].AsString()
	p.Args = data.AsArray()[1:]

	opts := parts[2]
	if rooms, ok := opts.Get(keyRooms); ok && rooms.Kind() == msgpack.KindArray && rooms.Len() > 0 {
		p.Target = rooms.AsArray()[0].AsString()
		p.HasTarget = true
	}
	if all, ok := opts.Get(keyAll); ok {
		p.AllSockets = all.AsBool()
	}
	if bin, ok := opts.Get(keyBinary); ok {
		p.Binary = bin.AsBool()
	}
	if flags, ok := opts.Get(keyFlags); ok {
		m := flags.AsMap()
		p.Flags = Flags{
			Volatile: m[flagVolatile].AsBool(),
			Compress: m[flagCompress].AsBool(),
			Local:    m[flagLocal].AsBool(),
		}
	}

	return p, nil
}
