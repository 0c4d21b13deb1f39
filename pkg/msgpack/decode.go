package msgpack

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	vmsgpack "github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// Decode parses a single MessagePack value that must span all of data.
func Decode(data []byte) (Value, error) {
	v, n, err := DecodePrefix(data)
	if err != nil {
		return Value{}, err
	}
	if n != len(data) {
		return Value{}, fmt.Errorf("%w: %d of %d bytes consumed", ErrTrailingBytes, n, len(data))
	}
	return v, nil
}

// DecodePrefix parses the first MessagePack value in data and returns it
// together with the number of bytes consumed.
func DecodePrefix(data []byte) (Value, int, error) {
	r := bytes.NewReader(data)
	d := decoder{r: r, dec: vmsgpack.NewDecoder(r)}
	v, err := d.value(0)
	if err != nil {
		return Value{}, 0, err
	}
	return v, len(data) - r.Len(), nil
}

type decoder struct {
	r   *bytes.Reader
	dec *vmsgpack.Decoder
}

func (d *decoder) offset() int {
	return int(d.r.Size()) - d.r.Len()
}

func (d *decoder) fail(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w at offset %d: %w", ErrTruncated, d.offset(), err)
	}
	return fmt.Errorf("%w at offset %d: %w", ErrMalformed, d.offset(), err)
}

func (d *decoder) value(depth int) (Value, error) {
	if depth > MaxDepth {
		return Value{}, fmt.Errorf("%w: nesting deeper than %d", ErrMalformed, MaxDepth)
	}
	c, err := d.dec.PeekCode()
	if err != nil {
		return Value{}, d.fail(err)
	}

	switch {
	case c == msgpcode.Nil:
		if err := d.dec.DecodeNil(); err != nil {
			return Value{}, d.fail(err)
		}
		return Nil(), nil
	case c == msgpcode.False || c == msgpcode.True:
		b, err := d.dec.DecodeBool()
		if err != nil {
			return Value{}, d.fail(err)
		}
		return Bool(b), nil
	case msgpcode.IsFixedNum(c), c == msgpcode.Int8, c == msgpcode.Int16, c == msgpcode.Int32, c == msgpcode.Int64:
		i, err := d.dec.DecodeInt64()
		if err != nil {
			return Value{}, d.fail(err)
		}
		return Int(i), nil
	case c == msgpcode.Uint8, c == msgpcode.Uint16, c == msgpcode.Uint32, c == msgpcode.Uint64:
		u, err := d.dec.DecodeUint64()
		if err != nil {
			return Value{}, d.fail(err)
		}
		return Uint(u), nil
	case c == msgpcode.Float, c == msgpcode.Double:
		f, err := d.dec.DecodeFloat64()
		if err != nil {
			return Value{}, d.fail(err)
		}
		return Float(f), nil
	case msgpcode.IsString(c):
		s, err := d.dec.DecodeString()
		if err != nil {
			return Value{}, d.fail(err)
		}
		return String(s), nil
	case msgpcode.IsBin(c):
		b, err := d.dec.DecodeBytes()
		if err != nil {
			return Value{}, d.fail(err)
		}
		return Binary(b), nil
	case msgpcode.IsFixedArray(c), c == msgpcode.Array16, c == msgpcode.Array32:
		n, err := d.dec.DecodeArrayLen()
		if err != nil {
			return Value{}, d.fail(err)
		}
		return d.arrayValue(n, depth)
	case msgpcode.IsFixedMap(c), c == msgpcode.Map16, c == msgpcode.Map32:
		n, err := d.dec.DecodeMapLen()
		if err != nil {
			return Value{}, d.fail(err)
		}
		return d.mapValue(n, depth)
	}

	return Value{}, fmt.Errorf("%w: unsupported tag 0x%02x at offset %d", ErrMalformed, c, d.offset())
}

func (d *decoder) arrayValue(n, depth int) (Value, error) {
	// Every element takes at least one byte.
	if n > d.r.Len() {
		return Value{}, fmt.Errorf("%w: array of %d elements at offset %d", ErrTruncated, n, d.offset())
	}
	items := make([]Value, n)
	for i := range items {
		v, err := d.value(depth + 1)
		if err != nil {
			return Value{}, err
		}
		items[i] = v
	}
	return Array(items...), nil
}

func (d *decoder) mapValue(n, depth int) (Value, error) {
	if 2*n > d.r.Len() {
		return Value{}, fmt.Errorf("%w: map of %d entries at offset %d", ErrTruncated, n, d.offset())
	}
	entries := make([]Entry, n)
	for i := range entries {
		c, err := d.dec.PeekCode()
		if err != nil {
			return Value{}, d.fail(err)
		}
		if !msgpcode.IsString(c) {
			return Value{}, fmt.Errorf("%w: map key tag 0x%02x at offset %d", ErrMalformed, c, d.offset())
		}
		key, err := d.dec.DecodeString()
		if err != nil {
			return Value{}, d.fail(err)
		}
		val, err := d.value(depth + 1)
		if err != nil {
			return Value{}, err
		}
		entries[i] = Entry{Key: key, Value: val}
	}
	return MapOf(entries...), nil
}
