// Package decode parses buffers with composable, cursor-driven
// decoders.
//
// A Decoder[T] is a pure description of how to consume bytes from a
// cursor and produce a T. Running one (via Decode) is the only
// effectful step, and the effect is confined to the cursor's offset
// counter. Primitives read fixed-width integers and floats with an
// explicit byte order, or fixed-length strings and byte segments;
// combinators sequence decoders, threading the offset forward on
// success and short-circuiting on the first failure.
//
//	name, ok := decode.Decode(
//	    decode.AndThen(decode.Uint16(endian.Big()), func(n uint16) decode.Decoder[string] {
//	        return decode.String(int(n))
//	    }),
//	    buf,
//	)
//
// Failure is a result, not a panic: a primitive that finds fewer bytes
// than it needs fails without advancing, and Decode reports (zero,
// false). There is no backtracking — once an earlier step advances the
// offset and a later step fails, the whole composed decoder fails.
// Callers wanting alternation re-run candidate decoders against the
// original buffer.
package decode

import (
	"math"

	"github.com/arloliu/bytecodec/buffer"
	"github.com/arloliu/bytecodec/endian"
)

// Decoder describes how to consume bytes from a cursor and produce a
// value of type T, or fail.
type Decoder[T any] struct {
	run func(c *cursor) (T, bool)
}

// cursor is a buffer plus the current read offset. It is local to a
// single Decode call and never escapes.
type cursor struct {
	data []byte
	off  int
}

// take returns the next n bytes and advances the offset. If fewer than
// n bytes remain, it returns false and leaves the offset untouched.
func (c *cursor) take(n int) ([]byte, bool) {
	if n < 0 || n > len(c.data)-c.off {
		return nil, false
	}

	b := c.data[c.off : c.off+n]
	c.off += n

	return b, true
}

// Decode runs d against buf starting at offset 0.
//
// It returns (value, true) iff every read stayed within the buffer and
// the decoder succeeded. The decoder need not consume the entire
// buffer; compose with Remain to enforce that when required.
func Decode[T any](d Decoder[T], buf buffer.Buffer) (T, bool) {
	c := cursor{data: buffer.Raw(buf)}
	return d.run(&c)
}

// Uint8 reads one byte as an unsigned integer.
func Uint8() Decoder[uint8] {
	return Decoder[uint8]{run: func(c *cursor) (uint8, bool) {
		b, ok := c.take(1)
		if !ok {
			return 0, false
		}

		return b[0], true
	}}
}

// Int8 reads one byte as a two's-complement signed integer.
func Int8() Decoder[int8] {
	return Decoder[int8]{run: func(c *cursor) (int8, bool) {
		b, ok := c.take(1)
		if !ok {
			return 0, false
		}

		return int8(b[0]), true
	}}
}

// Uint16 reads two bytes as an unsigned integer in the given byte order.
func Uint16(engine endian.Engine) Decoder[uint16] {
	return Decoder[uint16]{run: func(c *cursor) (uint16, bool) {
		b, ok := c.take(2)
		if !ok {
			return 0, false
		}

		return engine.Uint16(b), true
	}}
}

// Int16 reads two bytes as a two's-complement signed integer in the
// given byte order.
func Int16(engine endian.Engine) Decoder[int16] {
	return Decoder[int16]{run: func(c *cursor) (int16, bool) {
		b, ok := c.take(2)
		if !ok {
			return 0, false
		}

		return int16(engine.Uint16(b)), true
	}}
}

// Uint32 reads four bytes as an unsigned integer in the given byte order.
func Uint32(engine endian.Engine) Decoder[uint32] {
	return Decoder[uint32]{run: func(c *cursor) (uint32, bool) {
		b, ok := c.take(4)
		if !ok {
			return 0, false
		}

		return engine.Uint32(b), true
	}}
}

// Int32 reads four bytes as a two's-complement signed integer in the
// given byte order.
func Int32(engine endian.Engine) Decoder[int32] {
	return Decoder[int32]{run: func(c *cursor) (int32, bool) {
		b, ok := c.take(4)
		if !ok {
			return 0, false
		}

		return int32(engine.Uint32(b)), true
	}}
}

// Float32 reads four bytes as an IEEE-754 single-precision float in
// the given byte order.
func Float32(engine endian.Engine) Decoder[float32] {
	return Decoder[float32]{run: func(c *cursor) (float32, bool) {
		b, ok := c.take(4)
		if !ok {
			return 0, false
		}

		return math.Float32frombits(engine.Uint32(b)), true
	}}
}

// Float64 reads eight bytes as an IEEE-754 double-precision float in
// the given byte order.
func Float64(engine endian.Engine) Decoder[float64] {
	return Decoder[float64]{run: func(c *cursor) (float64, bool) {
		b, ok := c.take(8)
		if !ok {
			return 0, false
		}

		return math.Float64frombits(engine.Uint64(b)), true
	}}
}

// String reads exactly n bytes and returns them as a UTF-8 string.
func String(n int) Decoder[string] {
	return Decoder[string]{run: func(c *cursor) (string, bool) {
		b, ok := c.take(n)
		if !ok {
			return "", false
		}

		return string(b), true
	}}
}

// Bytes reads exactly n bytes and returns them as an immutable Buffer.
func Bytes(n int) Decoder[buffer.Buffer] {
	return Decoder[buffer.Buffer]{run: func(c *cursor) (buffer.Buffer, bool) {
		b, ok := c.take(n)
		if !ok {
			return buffer.Empty, false
		}

		return buffer.FromBytes(b), true
	}}
}

// Remain consumes zero bytes and yields the number of bytes left from
// the current offset to the end of the buffer. Compose with Fail to
// require full consumption.
func Remain() Decoder[int] {
	return Decoder[int]{run: func(c *cursor) (int, bool) {
		return len(c.data) - c.off, true
	}}
}

// Succeed consumes zero bytes and always yields v.
func Succeed[T any](v T) Decoder[T] {
	return Decoder[T]{run: func(*cursor) (T, bool) {
		return v, true
	}}
}

// Fail consumes zero bytes and always fails.
func Fail[T any]() Decoder[T] {
	return Decoder[T]{run: func(*cursor) (T, bool) {
		var zero T
		return zero, false
	}}
}
