package decode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bytecodec/buffer"
	"github.com/arloliu/bytecodec/encode"
	"github.com/arloliu/bytecodec/endian"
)

func TestPrimitiveRoundTrip(t *testing.T) {
	require := require.New(t)

	for _, engine := range []endian.Engine{endian.Little(), endian.Big()} {
		u8, ok := Decode(Uint8(), encode.Encode(encode.Uint8(200)))
		require.True(ok)
		require.Equal(uint8(200), u8)

		i8, ok := Decode(Int8(), encode.Encode(encode.Int8(-100)))
		require.True(ok)
		require.Equal(int8(-100), i8)

		u16, ok := Decode(Uint16(engine), encode.Encode(encode.Uint16(engine, 0xBEEF)))
		require.True(ok)
		require.Equal(uint16(0xBEEF), u16)

		i16, ok := Decode(Int16(engine), encode.Encode(encode.Int16(engine, -12345)))
		require.True(ok)
		require.Equal(int16(-12345), i16)

		u32, ok := Decode(Uint32(engine), encode.Encode(encode.Uint32(engine, 0xDEADBEEF)))
		require.True(ok)
		require.Equal(uint32(0xDEADBEEF), u32)

		i32, ok := Decode(Int32(engine), encode.Encode(encode.Int32(engine, -1987654321)))
		require.True(ok)
		require.Equal(int32(-1987654321), i32)

		f32, ok := Decode(Float32(engine), encode.Encode(encode.Float32(engine, 1.5)))
		require.True(ok)
		require.Equal(float32(1.5), f32)

		f64, ok := Decode(Float64(engine), encode.Encode(encode.Float64(engine, math.Pi)))
		require.True(ok)
		require.Equal(math.Pi, f64)
	}
}

func TestIntegerRoundTripRange(t *testing.T) {
	// Boundary and representative values survive the round trip in
	// both byte orders.
	values := []int64{math.MinInt16, -1, 0, 1, 127, 128, 255, 256, math.MaxInt16}

	for _, engine := range []endian.Engine{endian.Little(), endian.Big()} {
		for _, v := range values {
			got, ok := Decode(Int16(engine), encode.Encode(encode.Int16(engine, v)))
			require.True(t, ok)
			require.Equal(t, int16(v), got, "value %d", v)
		}
	}
}

func TestEmptyBufferFails(t *testing.T) {
	require := require.New(t)

	_, ok := Decode(Uint8(), buffer.Empty)
	require.False(ok)

	_, ok = Decode(Float64(endian.Big()), buffer.Empty)
	require.False(ok)
}

func TestShortBufferFails(t *testing.T) {
	buf := buffer.FromBytes([]byte{0x01, 0x02, 0x03})

	_, ok := Decode(Uint32(endian.Big()), buf)
	require.False(t, ok)

	_, ok = Decode(String(4), buf)
	require.False(t, ok)
}

func TestStringAndBytes(t *testing.T) {
	require := require.New(t)

	buf := encode.Encode(encode.String("Tomいろは"))

	s, ok := Decode(String(buf.Len()), buf)
	require.True(ok)
	require.Equal("Tomいろは", s)

	b, ok := Decode(Bytes(3), buf)
	require.True(ok)
	require.Equal(buffer.FromString("Tom"), b)

	empty, ok := Decode(Bytes(0), buffer.Empty)
	require.True(ok)
	require.Equal(buffer.Empty, empty)
}

func TestMap(t *testing.T) {
	buf := encode.Encode(encode.Uint16(endian.Big(), 21))

	doubled, ok := Decode(Map(Uint16(endian.Big()), func(v uint16) int { return int(v) * 2 }), buf)
	require.True(t, ok)
	require.Equal(t, 42, doubled)
}

func TestMap2ThreadsOffset(t *testing.T) {
	require := require.New(t)

	buf := encode.Encode(encode.Sequence(
		encode.Uint16(endian.Big(), 7),
		encode.Uint16(endian.Little(), 7),
	))

	type pair struct{ a, b uint16 }
	p, ok := Decode(Map2(
		Uint16(endian.Big()),
		Uint16(endian.Little()),
		func(a, b uint16) pair { return pair{a, b} },
	), buf)
	require.True(ok)
	require.Equal(pair{7, 7}, p)
}

func TestMap2ShortCircuits(t *testing.T) {
	// First step consumes two bytes, second step needs two more than
	// remain: the whole decoder fails with no partial result.
	buf := buffer.FromBytes([]byte{0x00, 0x01, 0x02})

	_, ok := Decode(Map2(
		Uint16(endian.Big()),
		Uint16(endian.Big()),
		func(a, b uint16) [2]uint16 { return [2]uint16{a, b} },
	), buf)
	require.False(t, ok)
}

func TestMap3Map4Map5(t *testing.T) {
	require := require.New(t)

	buf := buffer.FromBytes([]byte{1, 2, 3, 4, 5})

	sum3, ok := Decode(Map3(Uint8(), Uint8(), Uint8(), func(a, b, c uint8) int {
		return int(a) + int(b) + int(c)
	}), buf)
	require.True(ok)
	require.Equal(6, sum3)

	sum4, ok := Decode(Map4(Uint8(), Uint8(), Uint8(), Uint8(), func(a, b, c, d uint8) int {
		return int(a) + int(b) + int(c) + int(d)
	}), buf)
	require.True(ok)
	require.Equal(10, sum4)

	order5, ok := Decode(Map5(Uint8(), Uint8(), Uint8(), Uint8(), Uint8(), func(a, b, c, d, e uint8) []uint8 {
		return []uint8{a, b, c, d, e}
	}), buf)
	require.True(ok)
	require.Equal([]uint8{1, 2, 3, 4, 5}, order5)

	_, ok = Decode(Map5(Uint8(), Uint8(), Uint8(), Uint8(), Uint16(endian.Big()), func(a, b, c, d uint8, e uint16) int {
		return 0
	}), buf)
	require.False(ok, "fifth step needs two bytes but only one remains")
}

func TestAndThenLengthPrefixed(t *testing.T) {
	require := require.New(t)

	buf := encode.Encode(encode.Sequence(
		encode.Uint16(endian.Big(), uint64(len("Tom"))),
		encode.String("Tom"),
	))

	name, ok := Decode(AndThen(Uint16(endian.Big()), func(n uint16) Decoder[string] {
		return String(int(n))
	}), buf)
	require.True(ok)
	require.Equal("Tom", name)

	// A lying length prefix fails cleanly.
	bad := encode.Encode(encode.Sequence(
		encode.Uint16(endian.Big(), 100),
		encode.String("Tom"),
	))
	_, ok = Decode(AndThen(Uint16(endian.Big()), func(n uint16) Decoder[string] {
		return String(int(n))
	}), bad)
	require.False(ok)
}

func TestSucceedAndFail(t *testing.T) {
	require := require.New(t)

	v, ok := Decode(Succeed(42), buffer.Empty)
	require.True(ok)
	require.Equal(42, v)

	_, ok = Decode(Fail[int](), buffer.FromString("data"))
	require.False(ok)
}

func TestRemain(t *testing.T) {
	require := require.New(t)

	buf := buffer.FromBytes([]byte{1, 2, 3, 4})

	n, ok := Decode(Remain(), buf)
	require.True(ok)
	require.Equal(4, n)

	// After consuming two bytes, two remain.
	n, ok = Decode(Map2(Uint16(endian.Big()), Remain(), func(_ uint16, left int) int {
		return left
	}), buf)
	require.True(ok)
	require.Equal(2, n)
}

func TestDecodeDoesNotRequireFullConsumption(t *testing.T) {
	buf := buffer.FromBytes([]byte{0x2A, 0xFF, 0xFF})

	v, ok := Decode(Uint8(), buf)
	require.True(t, ok)
	require.Equal(t, uint8(0x2A), v)
}

// countdown state for fixed-count loops.
type countdown struct {
	remaining int
	acc       []int8
}

func takeInt8s(count int) Decoder[[]int8] {
	return Loop(countdown{remaining: count}, func(s countdown) Decoder[Step[countdown, []int8]] {
		if s.remaining == 0 {
			return Succeed(Done[countdown](s.acc))
		}

		return Map(Int8(), func(v int8) Step[countdown, []int8] {
			return Continue[countdown, []int8](countdown{
				remaining: s.remaining - 1,
				acc:       append(s.acc, v),
			})
		})
	})
}

func TestLoopFixedCount(t *testing.T) {
	require := require.New(t)

	buf := buffer.FromBytes([]byte{0x01, 0xFF, 0x03, 0x04})

	values, ok := Decode(takeInt8s(3), buf)
	require.True(ok)
	require.Equal([]int8{1, -1, 3}, values)

	// Buffer exhausts before the requested count: the loop fails.
	_, ok = Decode(takeInt8s(5), buf)
	require.False(ok)

	// Zero count terminates immediately, consuming nothing.
	empty, ok := Decode(takeInt8s(0), buffer.Empty)
	require.True(ok)
	require.Empty(empty)
}

func TestLoopUntilSentinel(t *testing.T) {
	// Read bytes until a zero sentinel, a caller-signaled stop.
	buf := buffer.FromBytes([]byte{'h', 'i', 0x00, 'x'})

	collect := Loop([]byte(nil), func(acc []byte) Decoder[Step[[]byte, string]] {
		return Map(Uint8(), func(b uint8) Step[[]byte, string] {
			if b == 0 {
				return Done[[]byte](string(acc))
			}
			return Continue[[]byte, string](append(acc, b))
		})
	})

	s, ok := Decode(collect, buf)
	require.True(t, ok)
	require.Equal(t, "hi", s)
}

func TestLoopFailurePropagates(t *testing.T) {
	// A sentinel loop on a buffer with no sentinel runs off the end
	// and fails.
	buf := buffer.FromBytes([]byte{1, 2, 3})

	loop := Loop(0, func(n int) Decoder[Step[int, int]] {
		return Map(Uint8(), func(uint8) Step[int, int] {
			return Continue[int, int](n + 1)
		})
	})

	_, ok := Decode(loop, buf)
	require.False(t, ok)
}

func BenchmarkDecodeRecord(b *testing.B) {
	buf := encode.Encode(encode.Sequence(
		encode.Uint16(endian.Big(), 33),
		encode.Uint16(endian.Big(), 3),
		encode.String("Tom"),
	))

	dec := Map2(
		Uint16(endian.Big()),
		AndThen(Uint16(endian.Big()), func(n uint16) Decoder[string] {
			return String(int(n))
		}),
		func(id uint16, name string) string { return name },
	)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Decode(dec, buf)
	}
}

func BenchmarkLoopInt8(b *testing.B) {
	data := make([]byte, 1024)
	buf := buffer.FromBytes(data)
	dec := takeInt8s(1024)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Decode(dec, buf)
	}
}
