package packet

import (
	"errors"

	"github.com/dmitrymomot/sioemitter/pkg/msgpack"
)

var (
	// ErrUnencodableValue aliases msgpack.ErrUnencodableValue so callers can match
	// it without importing the value package.
	ErrUnencodableValue = msgpack.ErrUnencodableValue

	ErrEmptyEvent      = errors.New("packet: event name is empty")
	ErrFrameTooLarge   = errors.New("packet: frame exceeds 4 GiB")
	ErrShortFrame      = errors.New("packet: frame shorter than length prefix")
	ErrFrameLength     = errors.New("packet: length prefix does not match frame size")
	ErrMalformedPacket = errors.New("packet: malformed packet")
)
