package msgpack

import (
	"bytes"
	"math"
	"slices"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindBinary
	KindArray
	KindMap
)

var kindNames = [...]string{
	KindNil:    "nil",
	KindBool:   "bool",
	KindInt:    "int",
	KindUint:   "uint",
	KindFloat:  "float",
	KindString: "string",
	KindBinary: "binary",
	KindArray:  "array",
	KindMap:    "map",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Entry is a single key/value pair of a map Value.
type Entry struct {
	Key   string
	Value Value
}

// Value is a self-describing structured value.
// The zero Value is nil.
type Value struct {
	kind Kind
	b    bool
	i    int64
	u    uint64
	f    float64
	s    string
	bin  []byte
	arr  []Value
	m    []Entry
}

func Nil() Value                 { return Value{} }
func Bool(b bool) Value          { return Value{kind: KindBool, b: b} }
func Int(i int64) Value          { return Value{kind: KindInt, i: i} }
func Float(f float64) Value      { return Value{kind: KindFloat, f: f} }
func String(s string) Value      { return Value{kind: KindString, s: s} }
func Array(items ...Value) Value { return Value{kind: KindArray, arr: items} }

// Uint returns an integer Value. Values that fit into int64 are stored as
// KindInt so that equal integers compare equal regardless of signedness.
func Uint(u uint64) Value {
	if u <= math.MaxInt64 {
		return Int(int64(u))
	}
	return Value{kind: KindUint, u: u}
}

// Binary returns a raw byte blob Value. The slice is copied.
func Binary(b []byte) Value {
	return Value{kind: KindBinary, bin: bytes.Clone(b)}
}

// Map returns a map Value with entries sorted by key, which keeps encoding
// deterministic across runs.
func Map(m map[string]Value) Value {
	entries := make([]Entry, 0, len(m))
	for k, v := range m {
		entries = append(entries, Entry{Key: k, Value: v})
	}
	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.Key, b.Key) })
	return Value{kind: KindMap, m: entries}
}

// MapOf returns a map Value that keeps the given entry order on the wire.
func MapOf(entries ...Entry) Value {
	return Value{kind: KindMap, m: entries}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNil() bool  { return v.kind == KindNil }
func (v Value) Len() int     { return max(len(v.arr), len(v.m)) }
func (v Value) AsBool() bool { return v.b }

// AsInt returns the integer held by v. Floats are truncated.
func (v Value) AsInt() int64 {
	switch v.kind {
	case KindInt:
		return v.i
	case KindUint:
		return int64(v.u)
	case KindFloat:
		return int64(v.f)
	}
	return 0
}

func (v Value) AsUint() uint64 {
	if v.kind == KindUint {
		return v.u
	}
	return uint64(v.AsInt())
}

func (v Value) AsFloat() float64 {
	switch v.kind {
	case KindFloat:
		return v.f
	case KindInt:
		return float64(v.i)
	case KindUint:
		return float64(v.u)
	}
	return 0
}

func (v Value) AsString() string  { return v.s }
func (v Value) AsBinary() []byte   { return v.bin }
func (v Value) AsArray() []Value   { return v.arr }
func (v Value) AsEntries() []Entry { return v.m }

// AsMap returns the map entries of v keyed by name.
func (v Value) AsMap() map[string]Value {
	if v.kind != KindMap {
		return nil
	}
	out := make(map[string]Value, len(v.m))
	for _, e := range v.m {
		out[e.Key] = e.Value
	}
	return out
}

// Get looks up key in a map Value.
func (v Value) Get(key string) (Value, bool) {
	for _, e := range v.m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// HasBinary reports whether v or any nested value is a binary blob.
func (v Value) HasBinary() bool {
	switch v.kind {
	case KindBinary:
		return true
	case KindArray:
		return slices.ContainsFunc(v.arr, Value.HasBinary)
	case KindMap:
		for _, e := range v.m {
			if e.Value.HasBinary() {
				return true
			}
		}
	}
	return false
}

// Equal reports deep equality. Maps compare by key regardless of entry order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindUint:
		return v.u == o.u
	case KindFloat:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	case KindString:
		return v.s == o.s
	case KindBinary:
		return bytes.Equal(v.bin, o.bin)
	case KindArray:
		return slices.EqualFunc(v.arr, o.arr, Value.Equal)
	case KindMap:
		if len(v.m) != len(o.m) {
			return false
		}
		for _, e := range v.m {
			ov, ok := o.Get(e.Key)
			if !ok || !e.Value.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

// Interface converts v back into plain Go data: nil, bool, int64, uint64,
// float64, string, []byte, []any and map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindUint:
		return v.u
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindBinary:
		return v.bin
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for _, e := range v.m {
			out[e.Key] = e.Value.Interface()
		}
		return out
	}
	return nil
}
