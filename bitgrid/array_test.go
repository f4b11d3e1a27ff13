package bitgrid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitArrayGetSetFlip(t *testing.T) {
	a := NewBitArray(70)
	for i := 0; i < 70; i++ {
		assert.False(t, a.Get(i), "bit %d should start unset", i)
	}
	a.Set(0)
	a.Set(63)
	a.Set(64)
	a.Set(69)
	assert.True(t, a.Get(0))
	assert.True(t, a.Get(63))
	assert.True(t, a.Get(64))
	assert.True(t, a.Get(69))
	assert.False(t, a.Get(1))
	assert.False(t, a.Get(62))

	a.Flip(1)
	assert.True(t, a.Get(1))
	a.Flip(1)
	assert.False(t, a.Get(1))
}

func TestBitArrayGetNextSet(t *testing.T) {
	a := NewBitArray(200)
	a.Set(10)
	a.Set(130)
	assert.Equal(t, 10, a.GetNextSet(0))
	assert.Equal(t, 10, a.GetNextSet(10))
	assert.Equal(t, 130, a.GetNextSet(11), "scan must cross word boundaries")
	assert.Equal(t, 200, a.GetNextSet(131))
	assert.Equal(t, 200, a.GetNextSet(500))
}

func TestBitArrayGetNextUnset(t *testing.T) {
	a := NewBitArray(100)
	a.SetRange(0, 80)
	assert.Equal(t, 80, a.GetNextUnset(0))
	assert.Equal(t, 80, a.GetNextUnset(79))
	assert.Equal(t, 81, a.GetNextUnset(81))
}

func TestBitArraySetRange(t *testing.T) {
	a := NewBitArray(128)
	a.SetRange(30, 70)
	for i := 0; i < 128; i++ {
		assert.Equal(t, i >= 30 && i < 70, a.Get(i), "bit %d", i)
	}
	assert.True(t, a.IsRange(30, 70, true))
	assert.False(t, a.IsRange(29, 70, true))
	assert.True(t, a.IsRange(0, 30, false))
	assert.True(t, a.IsRange(40, 40, true), "empty range is vacuously uniform")

	assert.Panics(t, func() { a.SetRange(10, 5) })
	assert.Panics(t, func() { a.IsRange(0, 129, true) })
}

func TestBitArrayAppend(t *testing.T) {
	a := NewBitArray(0)
	a.AppendBit(true)
	a.AppendBit(false)
	a.AppendBit(true)
	require.Equal(t, 3, a.Size())
	assert.True(t, a.Get(0))
	assert.False(t, a.Get(1))
	assert.True(t, a.Get(2))

	a.AppendBits(0x5, 3) // 101
	require.Equal(t, 6, a.Size())
	assert.True(t, a.Get(3))
	assert.False(t, a.Get(4))
	assert.True(t, a.Get(5))

	other := NewBitArray(0)
	other.AppendBits(0x3, 2) // 11
	a.AppendBitArray(other)
	require.Equal(t, 8, a.Size())
	assert.True(t, a.Get(6))
	assert.True(t, a.Get(7))

	assert.Panics(t, func() { a.AppendBits(0, 33) })
}

func TestBitArrayToBytes(t *testing.T) {
	a := NewBitArray(0)
	a.AppendBits(0xC2, 8)
	a.AppendBits(0x5A, 8)
	got := make([]byte, 2)
	a.ToBytes(0, got, 0, 2)
	assert.Equal(t, []byte{0xC2, 0x5A}, got)
}

func TestBitArrayXor(t *testing.T) {
	a := NewBitArray(70)
	b := NewBitArray(70)
	a.Set(5)
	a.Set(65)
	b.Set(5)
	b.Set(66)
	a.Xor(b)
	assert.False(t, a.Get(5))
	assert.True(t, a.Get(65))
	assert.True(t, a.Get(66))

	assert.Panics(t, func() { a.Xor(NewBitArray(3)) })
}

func TestBitArrayReverse(t *testing.T) {
	a := NewBitArray(70)
	a.Set(0)
	a.Set(3)
	a.Set(68)
	a.Reverse()
	assert.True(t, a.Get(69))
	assert.True(t, a.Get(66))
	assert.True(t, a.Get(1))
	assert.False(t, a.Get(0))
}

func TestBitArrayReverseIsInvolution(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, size := range []int{1, 7, 32, 64, 65, 127, 128, 1000} {
		a := NewBitArray(size)
		for i := 0; i < size; i++ {
			if rng.Intn(2) == 1 {
				a.Set(i)
			}
		}
		original := a.Clone()
		a.Reverse()
		a.Reverse()
		for i := 0; i < size; i++ {
			require.Equal(t, original.Get(i), a.Get(i), "size %d bit %d", size, i)
		}
	}
}

func TestBitArrayString(t *testing.T) {
	a := NewBitArray(12)
	a.Set(0)
	a.Set(9)
	assert.Equal(t, " X....... .X..", a.String())
}
