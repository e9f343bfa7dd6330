// Package digest computes fingerprints and cryptographic digests of
// buffers.
//
// Sum64 (xxHash64) is fast and non-cryptographic, suitable for frame
// checksums and content fingerprints where an adversary is not in the
// threat model. Blake3 provides a 256-bit cryptographic digest, with a
// keyed variant for domain separation: keyed digests of the same bytes
// under different keys never collide across domains.
//
// All functions accept buffer.Buffer payloads; conversion to the raw
// byte representation happens here, at the boundary, without copying.
package digest

import (
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"

	"github.com/arloliu/bytecodec/buffer"
	"github.com/arloliu/bytecodec/endian"
)

// Sum64 computes the xxHash64 fingerprint of buf.
func Sum64(buf buffer.Buffer) uint64 {
	return xxhash.Sum64(buffer.Raw(buf))
}

// Sum64String computes the xxHash64 fingerprint of the UTF-8 bytes of s.
func Sum64String(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Checksum returns the xxHash64 fingerprint of buf as an 8-byte
// big-endian Buffer, ready to splice into an encoded frame.
func Checksum(buf buffer.Buffer) buffer.Buffer {
	out := endian.Big().AppendUint64(nil, Sum64(buf))
	return buffer.FromOwnedBytes(out)
}

// HashSize is the size in bytes of a BLAKE3 digest and of a keyed-hash
// key.
const HashSize = 32

// Hash is a 32-byte BLAKE3 digest.
type Hash [HashSize]byte

// Key is a 32-byte key for BLAKE3 keyed hashing. Distinct keys give
// domain separation: the same input produces unrelated digests under
// different keys.
type Key [HashSize]byte

// String returns the lowercase hex form of the digest.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Buffer returns the digest as an immutable 32-byte Buffer.
func (h Hash) Buffer() buffer.Buffer {
	return buffer.FromBytes(h[:])
}

// Blake3 computes the BLAKE3 digest of buf.
func Blake3(buf buffer.Buffer) Hash {
	return Hash(blake3.Sum256(buffer.Raw(buf)))
}

// Blake3Keyed computes the BLAKE3 keyed digest of buf under key.
func Blake3Keyed(key Key, buf buffer.Buffer) Hash {
	h, err := blake3.NewKeyed(key[:])
	if err != nil {
		// NewKeyed only rejects keys whose length differs from 32; the
		// fixed-size Key type rules that out.
		panic("digest: blake3 keyed hasher: " + err.Error())
	}

	h.Write(buffer.Raw(buf))

	var out Hash
	h.Sum(out[:0])

	return out
}
