package compress

// ZstdCompressor implements Codec with Zstandard, favoring compression
// ratio over speed. A good default for payloads headed to storage or
// across a constrained network.
//
// The implementation is selected at build time: with cgo enabled the
// valyala/gozstd bindings are used; otherwise the pure-Go
// klauspost/compress/zstd implementation. The two produce mutually
// compatible streams.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
