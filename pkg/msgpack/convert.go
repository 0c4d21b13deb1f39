package msgpack

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// MaxDepth bounds nesting of arrays and maps below the root value being
// encoded or decoded. Encode and Decode enforce the same limit, so every
// value Encode accepts decodes again. Self-referencing maps and slices hit
// it during conversion instead of recursing forever.
const MaxDepth = 128

// FromAny converts plain Go data into a Value.
//
// Common types (nil, bool, every integer and float width, string, []byte,
// json.Number, Value, []Value, []any, []string, map[string]any,
// map[string]string, map[string]Value) are converted directly. Other
// slices, arrays, string-keyed maps and named types over bool, numbers and
// strings are converted by reflection; nil slices and maps become empty
// arrays and maps. Functions, channels, structs, pointers, maps with
// non-string keys and cyclic data yield ErrUnencodableValue.
func FromAny(x any) (Value, error) {
	return fromAny(x, 0)
}

// FromSlice converts every element of xs with FromAny.
func FromSlice(xs []any) ([]Value, error) {
	out := make([]Value, len(xs))
	for i, x := range xs {
		v, err := fromAny(x, 0)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func fromAny(x any, depth int) (Value, error) {
	if depth > MaxDepth {
		return Value{}, fmt.Errorf("%w: nesting deeper than %d (cyclic structure?)", ErrUnencodableValue, MaxDepth)
	}

	switch t := x.(type) {
	case nil:
		return Nil(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Uint(uint64(t)), nil
	case uint8:
		return Uint(uint64(t)), nil
	case uint16:
		return Uint(uint64(t)), nil
	case uint32:
		return Uint(uint64(t)), nil
	case uint64:
		return Uint(t), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case string:
		return String(t), nil
	case []byte:
		return Binary(t), nil
	case json.Number:
		return fromNumber(t)
	case []Value:
		return Array(t...), nil
	case []string:
		items := make([]Value, len(t))
		for i, s := range t {
			items[i] = String(s)
		}
		return Array(items...), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			v, err := fromAny(item, depth+1)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Array(items...), nil
	case map[string]Value:
		return Map(t), nil
	case map[string]string:
		m := make(map[string]Value, len(t))
		for k, s := range t {
			m[k] = String(s)
		}
		return Map(m), nil
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, item := range t {
			v, err := fromAny(item, depth+1)
			if err != nil {
				return Value{}, err
			}
			m[k] = v
		}
		return Map(m), nil
	}

	return fromReflect(reflect.ValueOf(x), depth)
}

func fromReflect(rv reflect.Value, depth int) (Value, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Uint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			for i := range b {
				b[i] = byte(rv.Index(i).Uint())
			}
			return Binary(b), nil
		}
		items := make([]Value, rv.Len())
		for i := range items {
			v, err := fromAny(rv.Index(i).Interface(), depth+1)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Array(items...), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, fmt.Errorf("%w: map key type %s is not a string", ErrUnencodableValue, rv.Type().Key())
		}
		m := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			v, err := fromAny(iter.Value().Interface(), depth+1)
			if err != nil {
				return Value{}, err
			}
			m[iter.Key().String()] = v
		}
		return Map(m), nil
	}

	return Value{}, fmt.Errorf("%w: unsupported type %s", ErrUnencodableValue, rv.Type())
}

func fromNumber(n json.Number) (Value, error) {
	if i, err := n.Int64(); err == nil {
		return Int(i), nil
	}
	if u, err := strconv.ParseUint(string(n), 10, 64); err == nil {
		return Uint(u), nil
	}
	f, err := n.Float64()
	if err != nil {
		return Value{}, fmt.Errorf("%w: invalid number %q", ErrUnencodableValue, n.String())
	}
	return Float(f), nil
}
