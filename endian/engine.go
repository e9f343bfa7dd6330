// Package endian provides byte order engines for the bytecodec encoder
// and decoder packages.
//
// Every multi-byte numeric constructor in this module takes an explicit
// Engine argument; there is no implicit package-wide default. This is
// deliberate: a serialized format whose byte order depends on the host
// silently breaks the moment a buffer crosses a process or machine
// boundary. Call sites that genuinely want the host order must ask for
// it explicitly via Native().
//
// Engine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface. It is satisfied by binary.LittleEndian and
// binary.BigEndian, so anything accepting an Engine interoperates with
// existing code written in terms of the standard library types.
//
// # Usage
//
//	e := encode.Uint16(endian.Big(), 33)
//	d := decode.Uint16(endian.Big())
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The
// returned Engine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// Engine is the byte order capability threaded through every multi-byte
// encoder and decoder constructor. It merges read/write (ByteOrder) and
// append (AppendByteOrder) operations into one value.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Little returns the little-endian engine.
func Little() Engine {
	return binary.LittleEndian
}

// Big returns the big-endian engine.
func Big() Engine {
	return binary.BigEndian
}

// CheckEndianness probes the host's byte order with a fixed integer
// value and returns the matching binary.ByteOrder.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. A little-endian host stores the LSB (0x00) at the
	// lowest address; a big-endian host stores the MSB (0x01) there.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// Native returns the engine matching the host platform's byte order.
//
// Formats intended to cross machine boundaries should prefer a fixed
// order; Native exists for callers that interoperate with host-order
// data such as memory-mapped structures.
func Native() Engine {
	if CheckEndianness() == binary.BigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// IsNativeBigEndian reports whether the host is big-endian.
func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// IsNativeEngine reports whether the given engine matches the host's
// byte order.
func IsNativeEngine(engine Engine) bool {
	return engine == CheckEndianness()
}
