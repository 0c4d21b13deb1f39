// Package msgpack implements the structured value encoding carried inside
// emitter packets.
//
// Values are modelled as a closed tagged variant: nil, bool, int, uint,
// float, string, binary, array and map (string keys only). Encode and Decode
// walk the variant and use the github.com/vmihailenco/msgpack/v5 encoder and
// decoder for every header and scalar, so any MessagePack decoder can read
// the output, and Decode reads back everything Encode writes with the kind
// preserved: integers stay integers and floats stay floats.
//
// # Usage
//
//	v := msgpack.Array(
//	    msgpack.String("hello"),
//	    msgpack.Int(42),
//	    msgpack.Map(map[string]msgpack.Value{"ok": msgpack.Bool(true)}),
//	)
//	data, err := msgpack.Encode(v)
//	if err != nil {
//	    // handle error
//	}
//	back, err := msgpack.Decode(data)
//
// Plain Go data can be converted with FromAny:
//
//	v, err := msgpack.FromAny(map[string]any{"id": 7, "tags": []string{"a"}})
//	if errors.Is(err, msgpack.ErrUnencodableValue) {
//	    // functions, channels, structs and cyclic data are rejected
//	}
//
// Typed slices, arrays, string-keyed maps and named basic types such as
// []int or map[string]float64 are converted by reflection.
//
// # Depth
//
// The root value is at depth 0 and every array element or map value is one
// level deeper. Encode rejects values nested past MaxDepth and Decode rejects
// the same input, so anything Encode produces can be decoded.
//
// # Determinism
//
// Map sorts entries by key, so the same logical value always produces the
// same bytes. MapOf keeps the caller's entry order. Floats are always written
// as float64.
//
// # Errors
//
//   - ErrUnencodableValue: the Go value has no representation.
//   - ErrTruncated: input ended inside a value.
//   - ErrMalformed: unsupported tag, non-string map key or too deep nesting.
//   - ErrTrailingBytes: Decode found bytes after the first value.
package msgpack
