package msgpack_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	refmsgpack "github.com/vmihailenco/msgpack/v5"

	"github.com/dmitrymomot/sioemitter/pkg/msgpack"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value msgpack.Value
	}{
		{"nil", msgpack.Nil()},
		{"true", msgpack.Bool(true)},
		{"false", msgpack.Bool(false)},
		{"positive fixint", msgpack.Int(7)},
		{"negative fixint", msgpack.Int(-5)},
		{"int8", msgpack.Int(-100)},
		{"int16", msgpack.Int(-1000)},
		{"int32", msgpack.Int(-100000)},
		{"int64", msgpack.Int(math.MinInt64)},
		{"uint8", msgpack.Int(200)},
		{"uint16", msgpack.Int(60000)},
		{"uint32", msgpack.Int(4000000000)},
		{"max int64", msgpack.Int(math.MaxInt64)},
		{"max uint64", msgpack.Uint(math.MaxUint64)},
		{"float", msgpack.Float(3.25)},
		{"whole float", msgpack.Float(2)},
		{"empty string", msgpack.String("")},
		{"fixstr", msgpack.String("hello")},
		{"str8", msgpack.String(strings.Repeat("a", 200))},
		{"str16", msgpack.String(strings.Repeat("b", 70000))},
		{"utf8", msgpack.String("héllo wörld ✓")},
		{"binary", msgpack.Binary([]byte{0, 1, 2, 255})},
		{"empty array", msgpack.Array()},
		{"array16", msgpack.Array(repeat(msgpack.Int(1), 20)...)},
		{"nested", msgpack.Array(
			msgpack.String("a"),
			msgpack.Array(msgpack.Int(1), msgpack.Nil()),
			msgpack.Map(map[string]msgpack.Value{
				"x": msgpack.Float(1.5),
				"y": msgpack.Binary([]byte("raw")),
			}),
		)},
		{"map16", msgpack.Map(manyEntries(20))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := msgpack.Encode(tt.value)
			require.NoError(t, err)

			decoded, err := msgpack.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, tt.value.Kind(), decoded.Kind())
			assert.True(t, tt.value.Equal(decoded), "decoded value differs")
		})
	}
}

func TestEncode_IntegerStaysInteger(t *testing.T) {
	t.Parallel()

	data, err := msgpack.Encode(msgpack.Float(42))
	require.NoError(t, err)
	decoded, err := msgpack.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, msgpack.KindFloat, decoded.Kind())

	data, err = msgpack.Encode(msgpack.Int(42))
	require.NoError(t, err)
	decoded, err = msgpack.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, msgpack.KindInt, decoded.Kind())
	assert.Equal(t, int64(42), decoded.AsInt())
}

func TestEncode_ReferenceDecoder(t *testing.T) {
	t.Parallel()

	v := msgpack.Array(
		msgpack.String("hello"),
		msgpack.Int(42),
		msgpack.Bool(true),
		msgpack.Nil(),
		msgpack.Float(0.5),
		msgpack.Binary([]byte{1, 2}),
	)
	data, err := msgpack.Encode(v)
	require.NoError(t, err)

	dec := refmsgpack.NewDecoder(bytes.NewReader(data))
	n, err := dec.DecodeArrayLen()
	require.NoError(t, err)
	require.Equal(t, 6, n)

	s, err := dec.DecodeString()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	i, err := dec.DecodeInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(42), i)

	b, err := dec.DecodeBool()
	require.NoError(t, err)
	assert.True(t, b)

	require.NoError(t, dec.DecodeNil())

	f, err := dec.DecodeFloat64()
	require.NoError(t, err)
	assert.Equal(t, 0.5, f)

	raw, err := dec.DecodeBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, raw)
}

func TestDecode_ReferenceEncoder(t *testing.T) {
	t.Parallel()

	data, err := refmsgpack.Marshal(map[string]any{
		"name":  "ping",
		"count": 3,
		"ratio": 0.25,
		"list":  []any{"a", int64(-7)},
	})
	require.NoError(t, err)

	v, err := msgpack.Decode(data)
	require.NoError(t, err)
	require.Equal(t, msgpack.KindMap, v.Kind())

	m := v.AsMap()
	assert.Equal(t, "ping", m["name"].AsString())
	assert.Equal(t, msgpack.KindInt, m["count"].Kind())
	assert.Equal(t, int64(3), m["count"].AsInt())
	assert.Equal(t, 0.25, m["ratio"].AsFloat())
	require.Len(t, m["list"].AsArray(), 2)
	assert.Equal(t, int64(-7), m["list"].AsArray()[1].AsInt())
}

func TestMap_DeterministicEncoding(t *testing.T) {
	t.Parallel()

	build := func() msgpack.Value {
		return msgpack.Map(map[string]msgpack.Value{
			"zeta":  msgpack.Int(1),
			"alpha": msgpack.Int(2),
			"mid":   msgpack.Int(3),
		})
	}

	first, err := msgpack.Encode(build())
	require.NoError(t, err)
	for range 20 {
		again, err := msgpack.Encode(build())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	entries := build().AsEntries()
	assert.Equal(t, "alpha", entries[0].Key)
	assert.Equal(t, "zeta", entries[2].Key)
}

func TestEqual_MapOrderIndependent(t *testing.T) {
	t.Parallel()

	a := msgpack.MapOf(
		msgpack.Entry{Key: "a", Value: msgpack.Int(1)},
		msgpack.Entry{Key: "b", Value: msgpack.Int(2)},
	)
	b := msgpack.MapOf(
		msgpack.Entry{Key: "b", Value: msgpack.Int(2)},
		msgpack.Entry{Key: "a", Value: msgpack.Int(1)},
	)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(msgpack.Map(map[string]msgpack.Value{"a": msgpack.Int(1)})))
}

func TestHasBinary(t *testing.T) {
	t.Parallel()

	assert.False(t, msgpack.Array(msgpack.String("x"), msgpack.Int(1), msgpack.Bool(true)).HasBinary())
	assert.True(t, msgpack.Binary(nil).HasBinary())
	assert.True(t, msgpack.Array(msgpack.Array(msgpack.Binary([]byte{1}))).HasBinary())
	assert.True(t, msgpack.Map(map[string]msgpack.Value{"f": msgpack.Binary([]byte{1})}).HasBinary())
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		err  error
	}{
		{"empty", nil, msgpack.ErrTruncated},
		{"short string", []byte{0xa5, 'a', 'b'}, msgpack.ErrTruncated},
		{"short int32", []byte{0xd2, 0x00}, msgpack.ErrTruncated},
		{"array larger than input", []byte{0xdd, 0xff, 0xff, 0xff, 0xff}, msgpack.ErrTruncated},
		{"reserved tag", []byte{0xc1}, msgpack.ErrMalformed},
		{"ext tag", []byte{0xd4, 0x01, 0x02}, msgpack.ErrMalformed},
		{"int map key", []byte{0x81, 0x01, 0x02}, msgpack.ErrMalformed},
		{"trailing", []byte{0xc0, 0xc0}, msgpack.ErrTrailingBytes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := msgpack.Decode(tt.data)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDecodePrefix(t *testing.T) {
	t.Parallel()

	v, n, err := msgpack.DecodePrefix([]byte{0x2a, 0xc0})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, int64(42), v.AsInt())
}

func TestFromAny(t *testing.T) {
	t.Parallel()

	v, err := msgpack.FromAny(map[string]any{
		"int":    7,
		"uint":   uint16(9),
		"float":  float32(1.5),
		"str":    "s",
		"bytes":  []byte("b"),
		"list":   []any{true, nil},
		"tags":   []string{"x", "y"},
		"labels": map[string]string{"k": "v"},
		"num":    json.Number("12"),
		"real":   json.Number("1.25"),
		"value":  msgpack.Int(3),
	})
	require.NoError(t, err)

	m := v.AsMap()
	assert.Equal(t, msgpack.KindInt, m["int"].Kind())
	assert.Equal(t, int64(9), m["uint"].AsInt())
	assert.Equal(t, msgpack.KindFloat, m["float"].Kind())
	assert.Equal(t, "s", m["str"].AsString())
	assert.Equal(t, []byte("b"), m["bytes"].AsBinary())
	assert.Len(t, m["list"].AsArray(), 2)
	assert.Equal(t, "y", m["tags"].AsArray()[1].AsString())
	assert.Equal(t, "v", m["labels"].AsMap()["k"].AsString())
	assert.Equal(t, msgpack.KindInt, m["num"].Kind())
	assert.Equal(t, msgpack.KindFloat, m["real"].Kind())
	assert.Equal(t, int64(3), m["value"].AsInt())
}

func TestFromAny_Unencodable(t *testing.T) {
	t.Parallel()

	cyclic := map[string]any{}
	cyclic["self"] = cyclic

	type point struct{ X int }

	tests := []struct {
		name  string
		value any
	}{
		{"function", func() {}},
		{"channel", make(chan int)},
		{"struct", point{X: 1}},
		{"pointer", &point{}},
		{"nested function", []any{1, map[string]any{"f": func() {}}}},
		{"cyclic map", cyclic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := msgpack.FromAny(tt.value)
			assert.ErrorIs(t, err, msgpack.ErrUnencodableValue)
		})
	}
}

type score int

type tags []string

type label string

type blob []byte

func TestFromAny_Collections(t *testing.T) {
	t.Parallel()

	var nilInts []int

	tests := []struct {
		name  string
		value any
		want  msgpack.Value
	}{
		{"int slice", []int{1, 2}, msgpack.Array(msgpack.Int(1), msgpack.Int(2))},
		{"float slice", []float64{1.5}, msgpack.Array(msgpack.Float(1.5))},
		{"bool slice", []bool{true}, msgpack.Array(msgpack.Bool(true))},
		{"nil slice", nilInts, msgpack.Array()},
		{"string array", [2]string{"a", "b"}, msgpack.Array(msgpack.String("a"), msgpack.String("b"))},
		{"int map", map[string]int{"a": 1}, msgpack.Map(map[string]msgpack.Value{"a": msgpack.Int(1)})},
		{"slice of maps", []map[string]any{{"a": 1}}, msgpack.Array(msgpack.Map(map[string]msgpack.Value{"a": msgpack.Int(1)}))},
		{"map of slices", map[string][]string{"k": {"v"}}, msgpack.Map(map[string]msgpack.Value{"k": msgpack.Array(msgpack.String("v"))})},
		{"named int", score(7), msgpack.Int(7)},
		{"named string", label("x"), msgpack.String("x")},
		{"named slice", tags{"x", "y"}, msgpack.Array(msgpack.String("x"), msgpack.String("y"))},
		{"named string keys", map[label]uint8{"k": 200}, msgpack.Map(map[string]msgpack.Value{"k": msgpack.Int(200)})},
		{"named bytes", blob{1, 2}, msgpack.Binary([]byte{1, 2})},
		{"byte array", [3]byte{1, 2, 3}, msgpack.Binary([]byte{1, 2, 3})},
		{"nested any", []any{[]int{1}, map[string]float32{"f": 0.5}}, msgpack.Array(
			msgpack.Array(msgpack.Int(1)),
			msgpack.Map(map[string]msgpack.Value{"f": msgpack.Float(0.5)}),
		)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, err := msgpack.FromAny(tt.value)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(v), "got %#v", v.Interface())

			data, err := msgpack.Encode(v)
			require.NoError(t, err)
			back, err := msgpack.Decode(data)
			require.NoError(t, err)
			assert.True(t, v.Equal(back))
		})
	}
}

func TestFromAny_UnencodableCollections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
	}{
		{"int keys", map[int]string{1: "a"}},
		{"slice of functions", []func(){func() {}}},
		{"map of channels", map[string]chan int{"c": make(chan int)}},
		{"slice of structs", []struct{ X int }{{X: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := msgpack.FromAny(tt.value)
			assert.ErrorIs(t, err, msgpack.ErrUnencodableValue)
		})
	}
}

func nested(levels int) msgpack.Value {
	v := msgpack.Nil()
	for range levels {
		v = msgpack.Array(v)
	}
	return v
}

func TestDepthLimit(t *testing.T) {
	t.Parallel()

	t.Run("at the limit", func(t *testing.T) {
		t.Parallel()
		data, err := msgpack.Encode(nested(msgpack.MaxDepth))
		require.NoError(t, err)
		v, err := msgpack.Decode(data)
		require.NoError(t, err)
		assert.True(t, nested(msgpack.MaxDepth).Equal(v))
	})

	t.Run("one past the limit", func(t *testing.T) {
		t.Parallel()
		_, err := msgpack.Encode(nested(msgpack.MaxDepth + 1))
		assert.ErrorIs(t, err, msgpack.ErrUnencodableValue)

		// Built by hand: MaxDepth+1 single-element arrays around nil.
		data := append(bytes.Repeat([]byte{0x91}, msgpack.MaxDepth+1), 0xc0)
		_, err = msgpack.Decode(data)
		assert.ErrorIs(t, err, msgpack.ErrMalformed)
	})
}

func TestFromSlice(t *testing.T) {
	t.Parallel()

	vs, err := msgpack.FromSlice([]any{"hello", 42, true, nil})
	require.NoError(t, err)
	require.Len(t, vs, 4)
	assert.Equal(t, msgpack.KindNil, vs[3].Kind())

	_, err = msgpack.FromSlice([]any{"ok", func() {}})
	require.ErrorIs(t, err, msgpack.ErrUnencodableValue)
	assert.Contains(t, err.Error(), "argument 1")
}

func TestInterface(t *testing.T) {
	t.Parallel()

	v := msgpack.Array(msgpack.Int(1), msgpack.Map(map[string]msgpack.Value{"k": msgpack.String("v")}))
	assert.Equal(t, []any{int64(1), map[string]any{"k": "v"}}, v.Interface())
}

func repeat(v msgpack.Value, n int) []msgpack.Value {
	out := make([]msgpack.Value, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func manyEntries(n int) map[string]msgpack.Value {
	m := make(map[string]msgpack.Value, n)
	for i := range n {
		m[strings.Repeat("k", i+1)] = msgpack.Int(int64(i))
	}
	return m
}
