// Package encode builds immutable encoder trees and serializes them
// into buffers in a single pre-sized write pass.
//
// An Encoder is a pure description of bytes to emit: a fixed-width
// integer or float with an explicit byte order, a UTF-8 string, a raw
// buffer segment, or a sequence of child encoders. Every node caches
// its exact output width at construction, so Encode can allocate the
// whole output in one shot and write each node at a precomputed offset
// without growing or bounds-rechecking.
//
// Encoders are values: building one writes nothing, and the same tree
// can be encoded any number of times, concurrently if desired.
//
//	buf := encode.Encode(encode.Sequence(
//	    encode.Uint16(endian.Big(), 33),
//	    encode.Uint16(endian.Big(), 3),
//	    encode.String("Tom"),
//	))
//	// buf is [0x00 0x21 0x00 0x03 'T' 'o' 'm']
//
// No implicit framing is ever added: a string emits its UTF-8 bytes
// with no terminator or length prefix. Length-prefixed layouts are
// composed explicitly from the primitives, as above.
package encode

import (
	"math"

	"github.com/arloliu/bytecodec/buffer"
	"github.com/arloliu/bytecodec/endian"
)

type kind uint8

const (
	kindEmpty kind = iota
	kindUint8
	kindInt8
	kindUint16
	kindInt16
	kindUint32
	kindInt32
	kindFloat32
	kindFloat64
	kindString
	kindBytes
	kindSequence
)

// Encoder is an immutable encoding instruction. The zero value encodes
// zero bytes.
//
// Numeric constructors accept wider inputs than the target width and
// truncate modulo 2^width, matching fixed-width binary container
// semantics. This wrap-around is documented behavior, not an error:
// Uint8(256) emits 0x00, Int8(-129) emits 0x7F.
type Encoder struct {
	engine   endian.Engine
	payload  string
	children []Encoder
	bits     uint64
	width    int
	kind     kind
}

// Uint8 encodes v as a single raw binary byte.
func Uint8(v uint64) Encoder {
	return Encoder{kind: kindUint8, bits: v, width: 1}
}

// Int8 encodes v as a single two's-complement byte.
func Int8(v int64) Encoder {
	return Encoder{kind: kindInt8, bits: uint64(v), width: 1}
}

// Uint16 encodes v as two raw binary bytes in the given byte order.
func Uint16(engine endian.Engine, v uint64) Encoder {
	return Encoder{kind: kindUint16, engine: engine, bits: v, width: 2}
}

// Int16 encodes v as two two's-complement bytes in the given byte order.
func Int16(engine endian.Engine, v int64) Encoder {
	return Encoder{kind: kindInt16, engine: engine, bits: uint64(v), width: 2}
}

// Uint32 encodes v as four raw binary bytes in the given byte order.
func Uint32(engine endian.Engine, v uint64) Encoder {
	return Encoder{kind: kindUint32, engine: engine, bits: v, width: 4}
}

// Int32 encodes v as four two's-complement bytes in the given byte order.
func Int32(engine endian.Engine, v int64) Encoder {
	return Encoder{kind: kindInt32, engine: engine, bits: uint64(v), width: 4}
}

// Float32 encodes v as four bytes of IEEE-754 single precision in the
// given byte order. The float64 input is converted to single precision
// first, with the usual rounding.
func Float32(engine endian.Engine, v float64) Encoder {
	return Encoder{
		kind:   kindFloat32,
		engine: engine,
		bits:   uint64(math.Float32bits(float32(v))),
		width:  4,
	}
}

// Float64 encodes v as eight bytes of IEEE-754 double precision in the
// given byte order.
func Float64(engine endian.Engine, v float64) Encoder {
	return Encoder{
		kind:   kindFloat64,
		engine: engine,
		bits:   math.Float64bits(v),
		width:  8,
	}
}

// String encodes the UTF-8 bytes of s verbatim, with no terminator and
// no length prefix.
//
// The cached width is the UTF-8 byte length of s, which for multi-byte
// code points is larger than the rune count: String("い") has width 3.
func String(s string) Encoder {
	return Encoder{kind: kindString, payload: s, width: len(s)}
}

// Bytes encodes the contents of b verbatim.
func Bytes(b buffer.Buffer) Encoder {
	return Encoder{kind: kindBytes, payload: b.String(), width: b.Len()}
}

// Sequence encodes each child in declared order, concatenated with no
// separators. The cached width is the sum of the children's widths.
//
// The children are copied, so mutating a slice passed via variadic
// expansion does not affect the returned Encoder.
func Sequence(children ...Encoder) Encoder {
	width := 0
	owned := make([]Encoder, len(children))
	for i, c := range children {
		owned[i] = c
		width += c.width
	}

	return Encoder{kind: kindSequence, children: owned, width: width}
}

// Width returns the exact number of bytes Encode will emit for e.
// It is O(1): every node caches its width at construction.
func (e Encoder) Width() int {
	return e.width
}

// Encode serializes the tree into a new immutable Buffer.
//
// It allocates exactly once, sized by the tree's cached total width,
// then walks the tree writing each node at its running offset. The
// Buffer is published only after the walk completes, so a reader can
// never observe a partially written result.
func Encode(e Encoder) buffer.Buffer {
	out := make([]byte, e.width)
	e.writeTo(out, 0)

	return buffer.FromOwnedBytes(out)
}

// writeTo writes e's bytes into dst starting at off and returns the
// next free offset. dst must already be sized by the root's width; the
// cached widths guarantee every write lands inside its span.
func (e Encoder) writeTo(dst []byte, off int) int {
	switch e.kind {
	case kindUint8, kindInt8:
		dst[off] = byte(e.bits)
		return off + 1
	case kindUint16, kindInt16:
		e.engine.PutUint16(dst[off:off+2], uint16(e.bits))
		return off + 2
	case kindUint32, kindInt32:
		e.engine.PutUint32(dst[off:off+4], uint32(e.bits))
		return off + 4
	case kindFloat32:
		e.engine.PutUint32(dst[off:off+4], uint32(e.bits))
		return off + 4
	case kindFloat64:
		e.engine.PutUint64(dst[off:off+8], e.bits)
		return off + 8
	case kindString, kindBytes:
		return off + copy(dst[off:], e.payload)
	case kindSequence:
		for _, c := range e.children {
			off = c.writeTo(dst, off)
		}
		return off
	case kindEmpty:
		return off
	}

	return off
}
