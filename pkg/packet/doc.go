// Package packet encodes broadcast requests into the binary frames that
// socket.io-compatible receiving adapters read from the pub/sub bus.
//
// A frame is a 4-byte big-endian length followed by a MessagePack array of
// three elements:
//
//	[ id, packet, options ]
//
//	packet  = { "type": 2, "data": [event, args...], "nsp": "/chat" }
//	options = { "rooms": ["room42"], "flags": {"volatile": true}, "all": false, "binary": false }
//
// The "nsp" key is written only for non-root namespaces, so its absence
// unambiguously means "/". "rooms" holds zero or one entry. "flags" lists only
// the flags that are set.
//
// The id distinguishes packets from each other. Receiving adapters use it to
// drop their own echoes and for acknowledgement bookkeeping. The default
// scheme is a random UUIDv4 string; pin it with WithIDGenerator when frames
// must be reproducible.
//
// # Usage
//
//	codec := packet.NewCodec()
//
//	args := []msgpack.Value{msgpack.String("hello"), msgpack.Int(42)}
//	opts := packet.NewOptions("room42", true, false, packet.Flags{}, args)
//
//	frame, err := codec.Encode("/chat", packet.Request{Event: "message", Args: args}, opts)
//	if err != nil {
//	    // handle error
//	}
//
// Decode reads a frame back and is mostly useful in tests and debugging tools:
//
//	p, err := packet.Decode(frame)
//	fmt.Println(p.Namespace, p.Event, p.Target)
//
// # Errors
//
//   - ErrUnencodableValue: an argument has no structured representation.
//   - ErrEmptyEvent: the event name is empty.
//   - ErrShortFrame, ErrFrameLength, ErrMalformedPacket: Decode input is not a valid frame.
package packet
