// Package buffer provides Buffer, an immutable fixed-length byte
// sequence with structural equality.
//
// Buffer is the exchange value at every bytecodec boundary: the encoder
// produces one, the decoder consumes one, and the digest, seal and
// stream packages accept them as payloads. Because a Buffer can never
// change after construction, it is safe to hand across goroutine
// boundaries without synchronization — a reader can never observe a
// half-written state.
//
// Two Buffers are equal iff their lengths and byte contents are equal.
// Buffer is a comparable type, so == performs exactly this structural
// comparison; Buffers work directly as map keys.
package buffer

import "unsafe"

// Buffer is an immutable, fixed-length sequence of bytes.
//
// The zero value is the empty buffer. Buffer is backed by a Go string,
// which gives immutability and structural == for free and makes Slice
// allocation-free.
type Buffer struct {
	data string
}

// Empty is the zero-length buffer.
var Empty = Buffer{}

// FromString creates a Buffer holding the UTF-8 bytes of s.
func FromString(s string) Buffer {
	return Buffer{data: s}
}

// FromBytes creates a Buffer holding a copy of b. Later mutation of b
// does not affect the returned Buffer.
func FromBytes(b []byte) Buffer {
	return Buffer{data: string(b)}
}

// FromOwnedBytes creates a Buffer that takes ownership of b without
// copying. The caller must not modify b after the call.
//
// This is the zero-copy publication path used by the encoder: it fills
// a freshly allocated slice that nothing else references, then hands it
// over. General callers should use FromBytes.
func FromOwnedBytes(b []byte) Buffer {
	if len(b) == 0 {
		return Buffer{}
	}

	return Buffer{data: unsafe.String(&b[0], len(b))}
}

// Len returns the number of bytes in the buffer.
func (b Buffer) Len() int {
	return len(b.data)
}

// IsEmpty reports whether the buffer has zero length.
func (b Buffer) IsEmpty() bool {
	return len(b.data) == 0
}

// At returns the byte at index i. It panics if i is out of range,
// matching slice indexing semantics.
func (b Buffer) At(i int) byte {
	return b.data[i]
}

// Slice returns the sub-buffer [start, end). The source buffer is never
// modified.
//
// Indices are clamped to [0, Len]: out-of-range values do not panic.
// Negative indices count from the end, so Slice(-2, Len) is the last
// two bytes. If start ends up at or beyond end, the result is empty.
func (b Buffer) Slice(start, end int) Buffer {
	n := len(b.data)

	if start < 0 {
		start += n
	}
	if end < 0 {
		end += n
	}

	start = clamp(start, n)
	end = clamp(end, n)

	if start >= end {
		return Buffer{}
	}

	return Buffer{data: b.data[start:end]}
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}

	return i
}

// Bytes returns a fresh copy of the buffer's contents as a []byte.
//
// This is the lossless conversion to the raw byte-array representation
// required by I/O primitives (hashing, ciphers, io.Writer). The
// returned slice is owned by the caller; mutating it does not affect
// the Buffer.
func (b Buffer) Bytes() []byte {
	return []byte(b.data)
}

// String returns the buffer's contents interpreted as a UTF-8 string.
func (b Buffer) String() string {
	return b.data
}

// Equal reports whether b and other have identical length and byte
// contents. It is equivalent to b == other.
func (b Buffer) Equal(other Buffer) bool {
	return b.data == other.data
}

// Concat returns a new Buffer holding the contents of b followed by
// each of parts in order.
func (b Buffer) Concat(parts ...Buffer) Buffer {
	total := len(b.data)
	for _, p := range parts {
		total += len(p.data)
	}
	if total == len(b.data) {
		return b
	}

	out := make([]byte, 0, total)
	out = append(out, b.data...)
	for _, p := range parts {
		out = append(out, p.data...)
	}

	return FromOwnedBytes(out)
}

// Raw returns a read-only view of the buffer's backing bytes without
// copying. The returned slice aliases the buffer and must not be
// modified; use Bytes when the consumer may write to the slice.
func Raw(b Buffer) []byte {
	if len(b.data) == 0 {
		return nil
	}

	return unsafe.Slice(unsafe.StringData(b.data), len(b.data))
}
