package msgpack

import "errors"

var (
	// ErrUnencodableValue is returned when a Go value has no structured representation.
	ErrUnencodableValue = errors.New("msgpack: value cannot be encoded")
	// ErrTruncated is returned when the input ends in the middle of a value.
	ErrTruncated = errors.New("msgpack: unexpected end of input")
	// ErrMalformed is returned for unsupported tags, non-string map keys or excessive nesting.
	ErrMalformed = errors.New("msgpack: malformed input")
	// ErrTrailingBytes is returned by Decode when data holds more than one value.
	ErrTrailingBytes = errors.New("msgpack: trailing bytes after value")
)
