// Package bytecodec provides a composable binary encode/decode codec
// built around immutable byte buffers with explicit byte order.
//
// Encoding is two-phase: an immutable encoder tree is built first,
// with every node caching its exact output width, then Encode
// allocates one buffer of exactly the total width and writes the whole
// tree into it in a single pass. Decoding runs pure decoder
// descriptions against a buffer with a cursor, composing them with
// map/andThen/loop combinators.
//
// # Core Properties
//
//   - Byte order is always explicit; nothing in the codec defaults to
//     the host order (endian.Native exists for callers that want it).
//   - Buffers are immutable values with structural equality, safe to
//     share across goroutines.
//   - Encoding is total: out-of-range numeric inputs wrap modulo
//     2^width instead of erroring, matching fixed-width container
//     semantics.
//   - Decoding fails as a result value, never a panic, and never reads
//     past the end of the buffer.
//   - No implicit framing: strings and byte segments are emitted
//     verbatim; length prefixes are composed explicitly.
//
// # Basic Usage
//
// Encoding a length-prefixed name record:
//
//	import (
//	    "github.com/arloliu/bytecodec"
//	    "github.com/arloliu/bytecodec/encode"
//	    "github.com/arloliu/bytecodec/endian"
//	)
//
//	buf := bytecodec.Encode(encode.Sequence(
//	    encode.Uint16(endian.Big(), 33),
//	    encode.Uint16(endian.Big(), uint64(len("Tom"))),
//	    encode.String("Tom"),
//	))
//
// Decoding it back:
//
//	record := decode.Map2(
//	    decode.Uint16(endian.Big()),
//	    decode.AndThen(decode.Uint16(endian.Big()), func(n uint16) decode.Decoder[string] {
//	        return decode.String(int(n))
//	    }),
//	    func(id uint16, name string) Record { return Record{ID: id, Name: name} },
//	)
//	rec, ok := bytecodec.Decode(record, buf)
//
// # Package Structure
//
// This package provides top-level wrappers over the encode and decode
// packages. The buffer, endian, compress, digest, seal, and stream
// packages are used directly.
package bytecodec

import (
	"github.com/arloliu/bytecodec/buffer"
	"github.com/arloliu/bytecodec/decode"
	"github.com/arloliu/bytecodec/encode"
)

// Encode serializes an encoder tree into a new immutable Buffer. See
// the encode package for the available constructors.
func Encode(e encode.Encoder) buffer.Buffer {
	return encode.Encode(e)
}

// Decode runs a decoder against buf starting at offset 0, returning
// (value, true) on success. See the decode package for primitives and
// combinators.
func Decode[T any](d decode.Decoder[T], buf buffer.Buffer) (T, bool) {
	return decode.Decode(d, buf)
}

// FromString creates a Buffer from the UTF-8 bytes of s.
func FromString(s string) buffer.Buffer {
	return buffer.FromString(s)
}

// FromBytes creates a Buffer holding a copy of b.
func FromBytes(b []byte) buffer.Buffer {
	return buffer.FromBytes(b)
}
