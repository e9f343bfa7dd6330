package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	require := require.New(t)

	result := CheckEndianness()

	// Verify the result against an independent probe.
	var testValue uint16 = 0x0102
	testBytes := (*[2]byte)(unsafe.Pointer(&testValue))

	switch testBytes[0] {
	case 0x01:
		require.Equal(binary.BigEndian, result, "CheckEndianness() should return BigEndian")
	case 0x02:
		require.Equal(binary.LittleEndian, result, "CheckEndianness() should return LittleEndian")
	default:
		require.Failf("Unexpected byte value", "got: %v", testBytes[0])
	}
}

func TestCheckEndiannessConsistency(t *testing.T) {
	first := CheckEndianness()
	for i := 0; i < 100; i++ {
		result := CheckEndianness()
		if result != first {
			t.Errorf("CheckEndianness() returned inconsistent results: first=%v, iteration %d=%v", first, i, result)
		}
	}
}

func TestNativeMatchesCheck(t *testing.T) {
	require.Equal(t, CheckEndianness(), binary.ByteOrder(Native()))
}

func TestIsNativeLittleEndian(t *testing.T) {
	result := IsNativeLittleEndian()
	expected := CheckEndianness() == binary.LittleEndian
	require.Equal(t, expected, result)
}

func TestIsNativeBigEndian(t *testing.T) {
	result := IsNativeBigEndian()
	expected := CheckEndianness() == binary.BigEndian
	require.Equal(t, expected, result)
}

func TestNativePredicatesAreInverse(t *testing.T) {
	littleEndian := IsNativeLittleEndian()
	bigEndian := IsNativeBigEndian()

	require.NotEqual(t, littleEndian, bigEndian, "exactly one native order predicate should hold")
	require.True(t, littleEndian || bigEndian)
}

func TestIsNativeEngine(t *testing.T) {
	if IsNativeLittleEndian() {
		require.True(t, IsNativeEngine(Little()))
		require.False(t, IsNativeEngine(Big()))
	} else {
		require.False(t, IsNativeEngine(Little()))
		require.True(t, IsNativeEngine(Big()))
	}
}

func TestLittle(t *testing.T) {
	engine := Little()

	require.Implements(t, (*Engine)(nil), engine)
	require.Equal(t, binary.LittleEndian, engine)

	var testValue uint16 = 0x0102
	bytes := make([]byte, 2)
	engine.PutUint16(bytes, testValue)
	require.Equal(t, byte(0x02), bytes[0], "little endian should put LSB first")
	require.Equal(t, byte(0x01), bytes[1], "little endian should put MSB second")

	require.Equal(t, testValue, engine.Uint16(bytes))
}

func TestBig(t *testing.T) {
	engine := Big()

	require.Implements(t, (*Engine)(nil), engine)
	require.Equal(t, binary.BigEndian, engine)

	var testValue uint16 = 0x0102
	bytes := make([]byte, 2)
	engine.PutUint16(bytes, testValue)
	require.Equal(t, byte(0x01), bytes[0], "big endian should put MSB first")
	require.Equal(t, byte(0x02), bytes[1], "big endian should put LSB second")

	require.Equal(t, testValue, engine.Uint16(bytes))
}

func TestAppendOperations(t *testing.T) {
	require := require.New(t)

	buf := Big().AppendUint64(nil, 0x0102030405060708)
	require.Equal([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, buf)

	buf = Little().AppendUint64(nil, 0x0102030405060708)
	require.Equal([]byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, buf)
}
