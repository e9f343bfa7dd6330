// Package stream moves buffers across io.Writer/io.Reader boundaries
// as self-describing chunks.
//
// Each chunk is a fixed 16-byte header followed by the payload:
//
//	offset  width  field
//	0       2      magic (0xB17E, big-endian)
//	2       1      compression type
//	3       1      flags (bit 0: checksum present)
//	4       4      payload length in bytes, after compression (big-endian)
//	8       8      xxHash64 checksum of the compressed payload (big-endian,
//	               zero when the checksum flag is clear)
//
// Header integers are always big-endian, never host order, so streams
// written on one machine read correctly on any other. The header is
// built with this module's own encoder tree and parsed with its
// decoder combinators.
//
// A Reader returns io.EOF only at a clean chunk boundary; a stream cut
// mid-chunk surfaces io.ErrUnexpectedEOF.
package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/bytecodec/buffer"
	"github.com/arloliu/bytecodec/compress"
	"github.com/arloliu/bytecodec/decode"
	"github.com/arloliu/bytecodec/digest"
	"github.com/arloliu/bytecodec/encode"
	"github.com/arloliu/bytecodec/endian"
	"github.com/arloliu/bytecodec/internal/options"
	"github.com/arloliu/bytecodec/internal/pool"
)

// Magic identifies a bytecodec chunk header.
const Magic uint16 = 0xB17E

// MaxChunkSize is the largest accepted payload length, before or after
// compression. It bounds the allocation a hostile header can trigger.
const MaxChunkSize = 128 * 1024 * 1024

const (
	headerSize   = 16
	flagChecksum = 0x01
)

// ErrMagic reports a chunk header whose magic field does not match.
var ErrMagic = errors.New("stream: bad chunk magic")

// ErrChecksum reports a payload whose checksum does not match its
// header.
var ErrChecksum = errors.New("stream: chunk checksum mismatch")

// ErrTooLarge reports a chunk payload exceeding MaxChunkSize.
var ErrTooLarge = errors.New("stream: chunk exceeds maximum size")

// Writer writes buffers to an io.Writer as framed chunks.
//
// A Writer is not safe for concurrent use; each chunk write is a
// single Write call on the underlying writer, so distinct Writers may
// share a destination that serializes writes itself.
type Writer struct {
	w        io.Writer
	codec    compress.Codec
	ctype    compress.Type
	checksum bool
}

// WriterOption configures a Writer.
type WriterOption = options.Option[*Writer]

// WithCompression selects the compression codec for written chunks.
// The default is no compression.
func WithCompression(t compress.Type) WriterOption {
	return options.New(func(w *Writer) error {
		codec, err := compress.GetCodec(t)
		if err != nil {
			return err
		}
		w.ctype = t
		w.codec = codec

		return nil
	})
}

// WithChecksum enables or disables the per-chunk payload checksum.
// The default is enabled.
func WithChecksum(enabled bool) WriterOption {
	return options.NoError(func(w *Writer) {
		w.checksum = enabled
	})
}

// NewWriter creates a chunk writer on w.
func NewWriter(w io.Writer, opts ...WriterOption) (*Writer, error) {
	sw := &Writer{
		w:        w,
		ctype:    compress.None,
		codec:    compress.NewNoOpCompressor(),
		checksum: true,
	}
	if err := options.Apply(sw, opts...); err != nil {
		return nil, err
	}

	return sw, nil
}

// WriteChunk compresses payload per the writer's configuration and
// writes one framed chunk. The payload buffer is not retained.
func (sw *Writer) WriteChunk(payload buffer.Buffer) error {
	if payload.Len() > MaxChunkSize {
		return ErrTooLarge
	}

	compressed, err := sw.codec.Compress(buffer.Raw(payload))
	if err != nil {
		return fmt.Errorf("stream: compress chunk: %w", err)
	}
	if len(compressed) > MaxChunkSize {
		return ErrTooLarge
	}

	var flags, sum uint64
	if sw.checksum {
		flags |= flagChecksum
		sum = digest.Sum64(buffer.FromOwnedBytes(compressed))
	}

	header := encode.Encode(encode.Sequence(
		encode.Uint16(endian.Big(), uint64(Magic)),
		encode.Uint8(uint64(sw.ctype)),
		encode.Uint8(flags),
		encode.Uint32(endian.Big(), uint64(len(compressed))),
		encode.Uint32(endian.Big(), sum>>32),
		encode.Uint32(endian.Big(), sum&0xFFFFFFFF),
	))

	// Assemble header+payload in one pooled buffer so the chunk hits
	// the underlying writer as a single Write.
	bb := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(bb)

	bb.Grow(headerSize + len(compressed))
	bb.MustWrite(buffer.Raw(header))
	bb.MustWrite(compressed)

	if _, err := bb.WriteTo(sw.w); err != nil {
		return fmt.Errorf("stream: write chunk: %w", err)
	}

	return nil
}

// Reader reads framed chunks from an io.Reader.
type Reader struct {
	r io.Reader
}

// NewReader creates a chunk reader on r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

type frameHeader struct {
	magic  uint16
	ctype  compress.Type
	flags  uint8
	length uint32
	sum    uint64
}

var headerDecoder = decode.Map5(
	decode.Uint16(endian.Big()),
	decode.Uint8(),
	decode.Uint8(),
	decode.Uint32(endian.Big()),
	decode.Map2(
		decode.Uint32(endian.Big()),
		decode.Uint32(endian.Big()),
		func(hi, lo uint32) uint64 { return uint64(hi)<<32 | uint64(lo) },
	),
	func(magic uint16, ctype, flags uint8, length uint32, sum uint64) frameHeader {
		return frameHeader{
			magic:  magic,
			ctype:  compress.Type(ctype),
			flags:  flags,
			length: length,
			sum:    sum,
		}
	},
)

// ReadChunk reads one chunk and returns its decompressed payload.
//
// It returns io.EOF when the stream ends cleanly at a chunk boundary
// and io.ErrUnexpectedEOF when it ends inside a chunk. Corruption
// surfaces as ErrMagic, ErrChecksum, ErrTooLarge, or a codec error.
func (sr *Reader) ReadChunk() (buffer.Buffer, error) {
	var raw [headerSize]byte
	if _, err := io.ReadFull(sr.r, raw[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return buffer.Empty, io.EOF
		}

		return buffer.Empty, fmt.Errorf("stream: read chunk header: %w", err)
	}

	hdr, ok := decode.Decode(headerDecoder, buffer.FromBytes(raw[:]))
	if !ok {
		// Unreachable: raw is always exactly headerSize bytes.
		return buffer.Empty, ErrMagic
	}

	if hdr.magic != Magic {
		return buffer.Empty, ErrMagic
	}
	if hdr.length > MaxChunkSize {
		return buffer.Empty, ErrTooLarge
	}
	codec, err := compress.GetCodec(hdr.ctype)
	if err != nil {
		return buffer.Empty, fmt.Errorf("stream: read chunk: %w", err)
	}

	payload := make([]byte, hdr.length)
	if _, err := io.ReadFull(sr.r, payload); err != nil {
		return buffer.Empty, fmt.Errorf("stream: read chunk payload: %w", err)
	}

	if hdr.flags&flagChecksum != 0 {
		if digest.Sum64(buffer.FromOwnedBytes(payload)) != hdr.sum {
			return buffer.Empty, ErrChecksum
		}
	}

	decompressed, err := codec.Decompress(payload)
	if err != nil {
		return buffer.Empty, fmt.Errorf("stream: decompress chunk: %w", err)
	}

	// decompressed is either freshly allocated by the codec or, for
	// the no-op codec, the payload slice this call owns; either way
	// handing ownership to the Buffer is safe.
	return buffer.FromOwnedBytes(decompressed), nil
}
