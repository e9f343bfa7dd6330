// Package seal provides authenticated encryption of buffers with
// XChaCha20-Poly1305.
//
// A sealed buffer is laid out as nonce || ciphertext || tag: a random
// 24-byte nonce followed by the AEAD output. The random extended nonce
// makes nonce management safe without counters — the collision
// probability is negligible for any realistic number of seals under
// one key.
//
// Callers may bind additional authenticated data (AAD) to a sealed
// buffer, such as a format version byte: Open with different AAD fails
// authentication, so tampering with the bound context is detected.
package seal

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/arloliu/bytecodec/buffer"
)

// KeySize is the size in bytes of a sealing key.
const KeySize = chacha20poly1305.KeySize

// Overhead is the total byte overhead per sealed buffer:
// 24 (XChaCha20-Poly1305 nonce) + 16 (Poly1305 tag).
const Overhead = chacha20poly1305.NonceSizeX + chacha20poly1305.Overhead

// ErrTruncated reports a sealed buffer too short to contain a nonce
// and tag.
var ErrTruncated = errors.New("seal: sealed buffer truncated")

// ErrAuth reports an authentication failure: wrong key, tampered
// ciphertext, or mismatched additional data.
var ErrAuth = errors.New("seal: authentication failed")

// Key is a 32-byte symmetric sealing key.
type Key [KeySize]byte

// NewKey generates a random sealing key.
func NewKey() (Key, error) {
	var k Key
	if _, err := rand.Read(k[:]); err != nil {
		return Key{}, fmt.Errorf("seal: generate key: %w", err)
	}

	return k, nil
}

// Seal encrypts and authenticates plaintext under key, binding aad
// (which may be empty) into the authentication tag. The result is
// plaintext.Len() + Overhead bytes.
func Seal(key Key, plaintext, aad buffer.Buffer) (buffer.Buffer, error) {
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return buffer.Empty, fmt.Errorf("seal: init cipher: %w", err)
	}

	out := make([]byte, chacha20poly1305.NonceSizeX, plaintext.Len()+Overhead)
	if _, err := rand.Read(out); err != nil {
		return buffer.Empty, fmt.Errorf("seal: generate nonce: %w", err)
	}

	// Seal appends ciphertext+tag after the nonce already in out.
	out = aead.Seal(out, out[:chacha20poly1305.NonceSizeX], buffer.Raw(plaintext), buffer.Raw(aad))

	return buffer.FromOwnedBytes(out), nil
}

// Open authenticates and decrypts a buffer produced by Seal. The aad
// must match the value passed to Seal byte for byte.
func Open(key Key, sealed, aad buffer.Buffer) (buffer.Buffer, error) {
	if sealed.Len() < Overhead {
		return buffer.Empty, ErrTruncated
	}

	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return buffer.Empty, fmt.Errorf("seal: init cipher: %w", err)
	}

	raw := buffer.Raw(sealed)
	nonce := raw[:chacha20poly1305.NonceSizeX]
	ciphertext := raw[chacha20poly1305.NonceSizeX:]

	plaintext, err := aead.Open(nil, nonce, ciphertext, buffer.Raw(aad))
	if err != nil {
		return buffer.Empty, ErrAuth
	}

	return buffer.FromOwnedBytes(plaintext), nil
}
