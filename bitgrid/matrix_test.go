package bitgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitMatrixGetSet(t *testing.T) {
	m := NewBitMatrixWithSize(33, 5)
	assert.Equal(t, 33, m.Width())
	assert.Equal(t, 5, m.Height())
	m.Set(0, 0)
	m.Set(32, 4)
	assert.True(t, m.Get(0, 0))
	assert.True(t, m.Get(32, 4))
	assert.False(t, m.Get(1, 0))

	m.Flip(1, 0)
	assert.True(t, m.Get(1, 0))
	m.Unset(1, 0)
	assert.False(t, m.Get(1, 0))

	assert.Panics(t, func() { NewBitMatrixWithSize(0, 5) })
}

func TestBitMatrixSetRegion(t *testing.T) {
	m := NewBitMatrix(10)
	m.SetRegion(2, 3, 4, 5)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := x >= 2 && x < 6 && y >= 3 && y < 8
			assert.Equal(t, want, m.Get(x, y), "(%d,%d)", x, y)
		}
	}

	assert.Panics(t, func() { m.SetRegion(-1, 0, 2, 2) })
	assert.Panics(t, func() { m.SetRegion(0, 0, 0, 2) })
	assert.Panics(t, func() { m.SetRegion(8, 8, 3, 3) })
}

func TestParseBools(t *testing.T) {
	m := ParseBools([][]bool{
		{true, false, true},
		{false, true, false},
	})
	require.Equal(t, 3, m.Width())
	require.Equal(t, 2, m.Height())
	assert.True(t, m.Get(0, 0))
	assert.False(t, m.Get(1, 0))
	assert.True(t, m.Get(1, 1))

	assert.Panics(t, func() {
		ParseBools([][]bool{{true, false}, {true}})
	}, "ragged input must be rejected")
	assert.Panics(t, func() { ParseBools(nil) })
}

func TestParseStringRoundTrip(t *testing.T) {
	m := NewBitMatrix(4)
	m.Set(0, 0)
	m.Set(3, 1)
	m.Set(2, 3)
	parsed := ParseString(m.String(), "X ", "  ")
	assert.True(t, parsed.Equal(m))

	assert.Panics(t, func() { ParseString("X \nX X \n", "X ", "  ") })
}

func TestBitMatrixRowSetRow(t *testing.T) {
	m := NewBitMatrixWithSize(70, 3)
	m.Set(0, 1)
	m.Set(69, 1)
	row := m.Row(1, nil)
	assert.True(t, row.Get(0))
	assert.True(t, row.Get(69))
	assert.False(t, row.Get(1))

	m2 := NewBitMatrixWithSize(70, 3)
	m2.SetRow(2, row)
	assert.True(t, m2.Get(0, 2))
	assert.True(t, m2.Get(69, 2))
	assert.False(t, m2.Get(0, 0))
}

func TestBitMatrixTranspose(t *testing.T) {
	m := NewBitMatrixWithSize(3, 2)
	m.Set(2, 0)
	m.Set(1, 1)
	tr := m.Transpose()
	require.Equal(t, 2, tr.Width())
	require.Equal(t, 3, tr.Height())
	assert.True(t, tr.Get(0, 2))
	assert.True(t, tr.Get(1, 1))
	assert.True(t, tr.Transpose().Equal(m), "transposing twice restores the matrix")
}

func TestBitMatrixCloneEqual(t *testing.T) {
	m := NewBitMatrix(8)
	m.Set(3, 4)
	c := m.Clone()
	assert.True(t, m.Equal(c))
	c.Flip(0, 0)
	assert.False(t, m.Equal(c))
	assert.False(t, m.Equal(NewBitMatrix(9)))
}
