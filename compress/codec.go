// Package compress provides payload codecs for the stream package and
// for callers that compress encoded buffers before storage or
// transmission.
//
// Codecs operate on raw []byte payloads; CompressBuffer and
// DecompressBuffer adapt them to immutable buffer.Buffer values for
// callers working at the codec boundary.
package compress

import (
	"fmt"

	"github.com/arloliu/bytecodec/buffer"
)

// Type identifies a compression algorithm in frame headers and codec
// factories.
type Type uint8

const (
	None Type = 0x1 // None represents no compression.
	Zstd Type = 0x2 // Zstd represents Zstandard compression.
	S2   Type = 0x3 // S2 represents S2 compression.
	LZ4  Type = 0x4 // LZ4 represents LZ4 block compression.
)

func (t Type) String() string {
	switch t {
	case None:
		return "None"
	case Zstd:
		return "Zstd"
	case S2:
		return "S2"
	case LZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Valid reports whether t names a known compression algorithm.
func (t Type) Valid() bool {
	switch t {
	case None, Zstd, S2, LZ4:
		return true
	default:
		return false
	}
}

// Compressor compresses a payload.
//
// Memory management:
//   - The returned slice is newly allocated and owned by the caller
//     (except NoOpCompressor, which passes the input through).
//   - The input slice is not modified.
//   - Internal scratch buffers may be reused across calls.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses the corresponding Compressor.
//
// Implementations validate the input format and return an error for
// corrupted data or data produced by a different algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines compression and decompression. Implementations in
// this package are stateless values, safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec creates a Codec for the given compression type. The
// target string names the caller's usage and appears in the error for
// an unknown type.
func CreateCodec(compressionType Type, target string) (Codec, error) {
	switch compressionType {
	case None:
		return NewNoOpCompressor(), nil
	case Zstd:
		return NewZstdCompressor(), nil
	case S2:
		return NewS2Compressor(), nil
	case LZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[Type]Codec{
	None: NewNoOpCompressor(),
	Zstd: NewZstdCompressor(),
	S2:   NewS2Compressor(),
	LZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the shared built-in Codec for the given type.
func GetCodec(compressionType Type) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// CompressBuffer compresses the contents of buf with c and returns the
// result as a new immutable Buffer.
func CompressBuffer(c Compressor, buf buffer.Buffer) (buffer.Buffer, error) {
	out, err := c.Compress(buffer.Raw(buf))
	if err != nil {
		return buffer.Empty, err
	}

	return buffer.FromBytes(out), nil
}

// DecompressBuffer decompresses the contents of buf with d and returns
// the result as a new immutable Buffer.
func DecompressBuffer(d Decompressor, buf buffer.Buffer) (buffer.Buffer, error) {
	out, err := d.Decompress(buffer.Raw(buf))
	if err != nil {
		return buffer.Empty, err
	}

	return buffer.FromBytes(out), nil
}
