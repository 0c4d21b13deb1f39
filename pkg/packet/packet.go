package packet

import (
	"github.com/dmitrymomot/sioemitter/pkg/msgpack"
)

// TypeEvent is the socket.io packet type for an event broadcast.
const TypeEvent = 2

// RootNamespace is the default namespace.
const RootNamespace = "/"

// Request is a logical broadcast: an event name and its ordered arguments.
type Request struct {
	Event string
	Args  []msgpack.Value
}

// Data returns the packet data array: the event name followed by the arguments.
func (r Request) Data() msgpack.Value {
	items := make([]msgpack.Value, 0, len(r.Args)+1)
	items = append(items, msgpack.String(r.Event))
	items = append(items, r.Args...)
	return msgpack.Array(items...)
}

// Flags are per-packet delivery hints honoured by receiving adapters.
type Flags struct {
	Volatile bool
	Compress bool
	Local    bool
}

// Options describe the reach of a packet.
type Options struct {
	Target     string
	HasTarget  bool
	AllSockets bool
	Binary     bool
	Flags      Flags
}

// NewOptions builds Options for args, setting Binary when any argument
// contains a raw byte blob.
func NewOptions(target string, hasTarget, allSockets bool, flags Flags, args []msgpack.Value) Options {
	opts := Options{
		Target:     target,
		HasTarget:  hasTarget,
		AllSockets: allSockets,
		Flags:      flags,
	}
	for _, a := range args {
		if a.HasBinary() {
			opts.Binary = true
			break
		}
	}
	return opts
}

// Packet is the decoded form of a frame.
type Packet struct {
	ID        string
	Type      int
	Namespace string
	Request
	Options
}
