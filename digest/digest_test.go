package digest

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/bytecodec/buffer"
)

func TestSum64(t *testing.T) {
	require := require.New(t)

	payload := []byte("the quick brown fox")
	require.Equal(xxhash.Sum64(payload), Sum64(buffer.FromBytes(payload)))
	require.Equal(Sum64String("the quick brown fox"), Sum64(buffer.FromBytes(payload)))

	// Equal buffers fingerprint equally; a one-byte change does not.
	a := buffer.FromString("payload")
	b := buffer.FromString("payloae")
	require.Equal(Sum64(a), Sum64(buffer.FromString("payload")))
	require.NotEqual(Sum64(a), Sum64(b))
}

func TestChecksum(t *testing.T) {
	require := require.New(t)

	buf := buffer.FromString("data")
	sum := Checksum(buf)

	require.Equal(8, sum.Len())

	// Big-endian layout: the first byte is the most significant.
	want := Sum64(buf)
	var got uint64
	for i := 0; i < 8; i++ {
		got = got<<8 | uint64(sum.At(i))
	}
	require.Equal(want, got)
}

func TestBlake3(t *testing.T) {
	require := require.New(t)

	h := Blake3(buffer.FromString("hello"))
	require.Len(h[:], HashSize)
	require.Len(h.String(), 2*HashSize)
	require.Equal(HashSize, h.Buffer().Len())

	// Deterministic, content-sensitive.
	require.Equal(h, Blake3(buffer.FromString("hello")))
	require.NotEqual(h, Blake3(buffer.FromString("hellp")))

	// Known vector: BLAKE3 of empty input.
	require.Equal(
		"af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262",
		Blake3(buffer.Empty).String(),
	)
}

func TestBlake3Keyed(t *testing.T) {
	require := require.New(t)

	var keyA, keyB Key
	copy(keyA[:], "domain-a")
	copy(keyB[:], "domain-b")

	buf := buffer.FromString("same input")

	// Same input, different domains: unrelated digests.
	require.NotEqual(Blake3Keyed(keyA, buf), Blake3Keyed(keyB, buf))

	// Keyed differs from unkeyed.
	require.NotEqual(Blake3(buf), Blake3Keyed(keyA, buf))

	// Deterministic per (key, input).
	require.Equal(Blake3Keyed(keyA, buf), Blake3Keyed(keyA, buf))
}

func BenchmarkSum64(b *testing.B) {
	payload := make([]byte, 16*1024)
	for i := range payload {
		payload[i] = byte(i)
	}
	buf := buffer.FromBytes(payload)

	b.SetBytes(int64(len(payload)))
	for i := 0; i < b.N; i++ {
		_ = Sum64(buf)
	}
}
