package msgpack

import (
	"bytes"
	"fmt"

	vmsgpack "github.com/vmihailenco/msgpack/v5"
)

// Encode serializes v into MessagePack.
func Encode(v Value) ([]byte, error) {
	return AppendValue(make([]byte, 0, 64), v)
}

// AppendValue appends the MessagePack encoding of v to dst. Integers use the
// smallest representation and floats are always float64. Values nested deeper
// than MaxDepth below v fail with ErrUnencodableValue, matching the limit
// Decode enforces.
func AppendValue(dst []byte, v Value) ([]byte, error) {
	buf := bytes.NewBuffer(dst)
	enc := vmsgpack.GetEncoder()
	defer vmsgpack.PutEncoder(enc)
	enc.Reset(buf)

	if err := encodeValue(enc, v, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(enc *vmsgpack.Encoder, v Value, depth int) error {
	if depth > MaxDepth {
		return fmt.Errorf("%w: nesting deeper than %d", ErrUnencodableValue, MaxDepth)
	}

	switch v.kind {
	case KindNil:
		return enc.EncodeNil()
	case KindBool:
		return enc.EncodeBool(v.b)
	case KindInt:
		return enc.EncodeInt(v.i)
	case KindUint:
		return enc.EncodeUint(v.u)
	case KindFloat:
		return enc.EncodeFloat64(v.f)
	case KindString:
		return enc.EncodeString(v.s)
	case KindBinary:
		// EncodeBytes writes nil for a nil slice.
		if v.bin == nil {
			return enc.EncodeBytesLen(0)
		}
		return enc.EncodeBytes(v.bin)
	case KindArray:
		if err := enc.EncodeArrayLen(len(v.arr)); err != nil {
			return err
		}
		for _, item := range v.arr {
			if err := encodeValue(enc, item, depth+1); err != nil {
				return err
			}
		}
		return nil
	case KindMap:
		if err := enc.EncodeMapLen(len(v.m)); err != nil {
			return err
		}
		for _, e := range v.m {
			if err := enc.EncodeString(e.Key); err != nil {
				return err
			}
			if err := encodeValue(enc, e.Value, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: unknown kind %d", ErrUnencodableValue, v.kind)
}
