package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gridscan "github.com/gridscan/gridscan"
	"github.com/gridscan/gridscan/bitgrid"
	"github.com/gridscan/gridscan/charset"
)

func bitsToBytes(t *testing.T, bits *bitgrid.BitArray) []byte {
	t.Helper()
	for bits.Size()%8 != 0 {
		bits.AppendBit(false)
	}
	out := make([]byte, bits.SizeInBytes())
	bits.ToBytes(0, out, 0, len(out))
	return out
}

func TestDecodeBitStreamNumeric(t *testing.T) {
	v1, _ := VersionForNumber(1)
	bits := bitgrid.NewBitArray(0)
	bits.AppendBits(uint32(ModeNumeric.Bits()), 4)
	bits.AppendBits(5, 10) // count
	bits.AppendBits(123, 10)
	bits.AppendBits(45, 7)
	bits.AppendBits(uint32(ModeTerminator.Bits()), 4)

	result, err := DecodeBitStream(bitsToBytes(t, bits), v1, ECLevelL, "")
	require.NoError(t, err)
	assert.Equal(t, "12345", result.Text)
	assert.Equal(t, "L", result.ECLevel)
	assert.False(t, result.HasStructuredAppend())
	assert.Equal(t, 1, result.SymbologyModifier)
}

func TestDecodeBitStreamAlphanumeric(t *testing.T) {
	v1, _ := VersionForNumber(1)
	bits := bitgrid.NewBitArray(0)
	bits.AppendBits(uint32(ModeAlphanumeric.Bits()), 4)
	bits.AppendBits(3, 9) // count
	// "AC-" : A=10, C=12 -> 10*45+12 = 462 ; '-' = 41
	bits.AppendBits(462, 11)
	bits.AppendBits(41, 6)
	bits.AppendBits(uint32(ModeTerminator.Bits()), 4)

	result, err := DecodeBitStream(bitsToBytes(t, bits), v1, ECLevelM, "")
	require.NoError(t, err)
	assert.Equal(t, "AC-", result.Text)
}

func TestDecodeBitStreamByte(t *testing.T) {
	v1, _ := VersionForNumber(1)
	bits := bitgrid.NewBitArray(0)
	bits.AppendBits(uint32(ModeByte.Bits()), 4)
	bits.AppendBits(3, 8) // count
	for _, c := range []byte("abc") {
		bits.AppendBits(uint32(c), 8)
	}
	bits.AppendBits(uint32(ModeTerminator.Bits()), 4)

	result, err := DecodeBitStream(bitsToBytes(t, bits), v1, ECLevelL, "")
	require.NoError(t, err)
	assert.Equal(t, "abc", result.Text)
	require.Len(t, result.ByteSegments, 1)
	assert.Equal(t, []byte("abc"), result.ByteSegments[0])
}

func TestDecodeBitStreamECI(t *testing.T) {
	v1, _ := VersionForNumber(1)
	bits := bitgrid.NewBitArray(0)
	bits.AppendBits(uint32(ModeECI.Bits()), 4)
	bits.AppendBits(26, 8) // ECI 26 = UTF-8
	bits.AppendBits(uint32(ModeByte.Bits()), 4)
	payload := []byte("héllo")
	bits.AppendBits(uint32(len(payload)), 8)
	for _, c := range payload {
		bits.AppendBits(uint32(c), 8)
	}
	bits.AppendBits(uint32(ModeTerminator.Bits()), 4)

	result, err := DecodeBitStream(bitsToBytes(t, bits), v1, ECLevelL, "")
	require.NoError(t, err)
	assert.Equal(t, "héllo", result.Text)
	assert.Equal(t, 2, result.SymbologyModifier, "ECI present, no FNC1")
}

func TestDecodeBitStreamStructuredAppend(t *testing.T) {
	v1, _ := VersionForNumber(1)
	bits := bitgrid.NewBitArray(0)
	bits.AppendBits(uint32(ModeStructuredAppend.Bits()), 4)
	bits.AppendBits(0x21, 8) // symbol 3 of 2^... sequence field
	bits.AppendBits(0x55, 8) // parity
	bits.AppendBits(uint32(ModeNumeric.Bits()), 4)
	bits.AppendBits(1, 10)
	bits.AppendBits(7, 4)
	bits.AppendBits(uint32(ModeTerminator.Bits()), 4)

	result, err := DecodeBitStream(bitsToBytes(t, bits), v1, ECLevelL, "")
	require.NoError(t, err)
	assert.Equal(t, "7", result.Text)
	assert.True(t, result.HasStructuredAppend())
	assert.Equal(t, 0x21, result.StructuredAppendSequenceNumber)
	assert.Equal(t, 0x55, result.StructuredAppendParity)
}

func TestDecodeBitStreamKanji(t *testing.T) {
	v1, _ := VersionForNumber(1)
	// Shift-JIS 0x935F packs to (0x935F - 0x8140) -> 0x12*0xC0 + 0x1F = 3487.
	bits := bitgrid.NewBitArray(0)
	bits.AppendBits(uint32(ModeKanji.Bits()), 4)
	bits.AppendBits(1, 8)
	bits.AppendBits(3487, 13)
	bits.AppendBits(uint32(ModeTerminator.Bits()), 4)

	result, err := DecodeBitStream(bitsToBytes(t, bits), v1, ECLevelL, "")
	require.NoError(t, err)
	assert.Equal(t, charset.DecodeBytes([]byte{0x93, 0x5F}, "Shift_JIS"), result.Text)
}

func TestDecodeBitStreamFNC1First(t *testing.T) {
	v1, _ := VersionForNumber(1)
	bits := bitgrid.NewBitArray(0)
	bits.AppendBits(uint32(ModeFNC1FirstPosition.Bits()), 4)
	bits.AppendBits(uint32(ModeAlphanumeric.Bits()), 4)
	bits.AppendBits(3, 9)
	// "1%2": 1=1, %=38 -> 1*45+38 = 83 ; 2 -> 2
	bits.AppendBits(83, 11)
	bits.AppendBits(2, 6)
	bits.AppendBits(uint32(ModeTerminator.Bits()), 4)

	result, err := DecodeBitStream(bitsToBytes(t, bits), v1, ECLevelL, "")
	require.NoError(t, err)
	assert.Equal(t, "1\x1d2", result.Text, "single %% becomes the GS separator")
	assert.Equal(t, 3, result.SymbologyModifier)
}

func TestDecodeBitStreamTruncated(t *testing.T) {
	v1, _ := VersionForNumber(1)
	// Numeric segment announcing 3 digits with no digit bits behind it.
	data := []byte{0x10, 0x0C}
	_, err := DecodeBitStream(data, v1, ECLevelL, "")
	assert.ErrorIs(t, err, gridscan.ErrFormat)
}

func TestDecodeBitStreamBadNumeric(t *testing.T) {
	v1, _ := VersionForNumber(1)
	bits := bitgrid.NewBitArray(0)
	bits.AppendBits(uint32(ModeNumeric.Bits()), 4)
	bits.AppendBits(3, 10)
	bits.AppendBits(1001, 10) // not a valid 3-digit group
	bits.AppendBits(uint32(ModeTerminator.Bits()), 4)

	_, err := DecodeBitStream(bitsToBytes(t, bits), v1, ECLevelL, "")
	assert.ErrorIs(t, err, gridscan.ErrFormat)
}

func TestDecodeBitStreamEmptyIsTerminator(t *testing.T) {
	v1, _ := VersionForNumber(1)
	result, err := DecodeBitStream([]byte{}, v1, ECLevelL, "")
	require.NoError(t, err)
	assert.Equal(t, "", result.Text)
}
