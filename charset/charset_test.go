package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestECIByValue(t *testing.T) {
	eci, err := ECIByValue(26)
	require.NoError(t, err)
	assert.Equal(t, "UTF8", eci.Name)

	eci, err = ECIByValue(3)
	require.NoError(t, err)
	assert.Equal(t, "ISO8859_1", eci.Name, "value 3 aliases Latin-1")

	eci, err = ECIByValue(899)
	require.NoError(t, err)
	assert.Nil(t, eci, "unassigned values inside the range are not an error")

	_, err = ECIByValue(-1)
	assert.ErrorIs(t, err, ErrInvalidECI)
	_, err = ECIByValue(900)
	assert.ErrorIs(t, err, ErrInvalidECI)
}

func TestECIByName(t *testing.T) {
	assert.Equal(t, ECIByName("SJIS"), ECIByName("Shift_JIS"))
	assert.NotNil(t, ECIByName("ISO-8859-1"))
	assert.Nil(t, ECIByName("KOI8-R"))
}

func TestDecodeBytesLatin1(t *testing.T) {
	assert.Equal(t, "café", DecodeBytes([]byte{'c', 'a', 'f', 0xE9}, "ISO-8859-1"))
}

func TestDecodeBytesShiftJIS(t *testing.T) {
	// 0x935F is one Shift-JIS double-byte character.
	got := DecodeBytes([]byte{0x93, 0x5F}, "Shift_JIS")
	assert.Len(t, []rune(got), 1)
	assert.NotEqual(t, string([]byte{0x93, 0x5F}), got)
}

func TestDecodeBytesGB18030(t *testing.T) {
	// 0xB0A1 is one GB18030 double-byte character.
	got := DecodeBytes([]byte{0xB0, 0xA1}, "GB18030")
	assert.Len(t, []rune(got), 1)
}

func TestDecodeBytesUTF16(t *testing.T) {
	assert.Equal(t, "AB", DecodeBytes([]byte{0x00, 'A', 0x00, 'B'}, "UTF-16BE"))
}

func TestDecodeBytesUnknownPassesThrough(t *testing.T) {
	assert.Equal(t, "abc", DecodeBytes([]byte("abc"), "NO-SUCH-ENCODING"))
}

func TestGuessEncoding(t *testing.T) {
	assert.Equal(t, "UTF-16BE", GuessEncoding([]byte{0x00, 0x41}, "UTF-16BE"), "a hint always wins")
	assert.Equal(t, "ISO-8859-1", GuessEncoding([]byte("plain ascii"), ""))
	assert.Equal(t, "UTF-8", GuessEncoding([]byte("héllo"), ""), "valid multi-byte UTF-8")
	assert.Equal(t, "UTF-8", GuessEncoding([]byte{0xEF, 0xBB, 0xBF, 'a'}, ""), "BOM")
	assert.Equal(t, "ISO-8859-1", GuessEncoding([]byte{'c', 'a', 'f', 0xE9}, ""), "bare high byte is not UTF-8")
}
