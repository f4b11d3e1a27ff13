package datamatrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSmallestSquare(t *testing.T) {
	si := Find(3, ShapeAny)
	require.NotNil(t, si)
	assert.False(t, si.Rectangular)
	assert.Equal(t, 10, si.MatrixWidth)
	assert.Equal(t, 10, si.MatrixHeight)
	assert.Equal(t, 8, si.MappingMatrixColumns())
	assert.Equal(t, 8, si.MappingMatrixRows())
	assert.Equal(t, 5, si.ErrorCodewords)
}

func TestFindForcedRectangle(t *testing.T) {
	si := Find(3, ShapeRectangle)
	require.NotNil(t, si)
	assert.True(t, si.Rectangular)
	assert.Equal(t, 18, si.MatrixWidth)
	assert.Equal(t, 8, si.MatrixHeight)
	assert.Equal(t, 16, si.MappingMatrixColumns())
	assert.Equal(t, 6, si.MappingMatrixRows())
	assert.Equal(t, 7, si.ErrorCodewords)
}

func TestFindForcedSquare(t *testing.T) {
	si := Find(9, ShapeSquare)
	require.NotNil(t, si)
	assert.Equal(t, 16, si.MatrixWidth)
	assert.Equal(t, 16, si.MatrixHeight)
	assert.Equal(t, 14, si.MappingMatrixColumns())
	assert.Equal(t, 14, si.MappingMatrixRows())
	assert.Equal(t, 12, si.ErrorCodewords)
}

func TestFindNoFitReturnsNil(t *testing.T) {
	assert.Nil(t, Find(1559, ShapeAny))
	assert.Nil(t, Find(50, ShapeRectangle), "largest rectangle holds 49")
}

func TestLookupNoFitFails(t *testing.T) {
	si, err := Lookup(1558, ShapeAny)
	require.NoError(t, err)
	assert.Equal(t, 144, si.MatrixWidth)

	_, err = Lookup(1559, ShapeAny)
	assert.Error(t, err)
}

func TestLookupBySize(t *testing.T) {
	si := LookupBySize(10, 10)
	require.NotNil(t, si)
	assert.Equal(t, 3, si.DataCapacity)

	si = LookupBySize(32, 8)
	require.NotNil(t, si)
	assert.True(t, si.Rectangular)
	assert.Equal(t, 10, si.DataCapacity)

	assert.Nil(t, LookupBySize(7, 7))
}

func TestInterleavedBlockCount(t *testing.T) {
	// Uniform blocks: 10x10 symbol has a single 3+5 block.
	assert.Equal(t, 1, Find(3, ShapeAny).InterleavedBlockCount())
	// 64x64 symbol: 280 data across blocks of 140.
	si := LookupBySize(64, 64)
	require.NotNil(t, si)
	assert.Equal(t, 2, si.InterleavedBlockCount())
	// The 144x144 symbol mixes 8 blocks of 156 with 2 blocks of 155.
	si = LookupBySize(144, 144)
	require.NotNil(t, si)
	assert.Equal(t, 10, si.InterleavedBlockCount())
	assert.Equal(t, 2178, si.TotalCodewords())
}

func TestMappingMatrixDimensions(t *testing.T) {
	// 32x32 uses four 14x14 data regions: 28x28 mapping matrix.
	si := LookupBySize(32, 32)
	require.NotNil(t, si)
	assert.Equal(t, 28, si.MappingMatrixColumns())
	assert.Equal(t, 28, si.MappingMatrixRows())
}
