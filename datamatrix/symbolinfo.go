// Package datamatrix holds the Data Matrix ECC-200 symbol geometry tables.
package datamatrix

import "fmt"

// SymbolShape restricts symbol selection to square or rectangular symbols.
type SymbolShape int

const (
	// ShapeAny allows either square or rectangular symbols.
	ShapeAny SymbolShape = iota
	// ShapeSquare restricts the choice to square symbols.
	ShapeSquare
	// ShapeRectangle restricts the choice to rectangular symbols.
	ShapeRectangle
)

// SymbolInfo describes one ECC-200 symbol size: overall module dimensions,
// data region layout and Reed-Solomon block structure.
type SymbolInfo struct {
	Rectangular       bool
	DataCapacity      int // data codewords across all interleaved blocks
	ErrorCodewords    int // EC codewords across all interleaved blocks
	MatrixWidth       int // symbol width in modules, finder patterns included
	MatrixHeight      int // symbol height in modules, finder patterns included
	DataRegionColumns int // data columns per data region
	DataRegionRows    int // data rows per data region
	RSBlockData       int // data codewords per RS block
	RSBlockError      int // EC codewords per RS block
	// The 144x144 symbol interleaves two block sizes.
	RSBlockData2 int // data codewords per second-size block, 0 if uniform
	NumRSBlocks2 int // number of second-size blocks, 0 if uniform
}

// TotalCodewords returns data plus error correction codewords.
func (si *SymbolInfo) TotalCodewords() int {
	return si.DataCapacity + si.ErrorCodewords
}

// InterleavedBlockCount returns the number of interleaved RS blocks.
func (si *SymbolInfo) InterleavedBlockCount() int {
	if si.RSBlockData2 == 0 {
		return si.DataCapacity / si.RSBlockData
	}
	return (si.DataCapacity-si.NumRSBlocks2*si.RSBlockData2)/si.RSBlockData + si.NumRSBlocks2
}

// MappingMatrixColumns returns the width of the mapping matrix: the symbol
// width minus the two finder columns of every data region.
func (si *SymbolInfo) MappingMatrixColumns() int {
	return si.MatrixWidth - si.MatrixWidth/(si.DataRegionColumns+2)*2
}

// MappingMatrixRows returns the height of the mapping matrix.
func (si *SymbolInfo) MappingMatrixRows() int {
	return si.MatrixHeight - si.MatrixHeight/(si.DataRegionRows+2)*2
}

func (si *SymbolInfo) String() string {
	shape := "Square"
	if si.Rectangular {
		shape = "Rectangular"
	}
	return fmt.Sprintf("%s symbol %dx%d, %d data, %d EC",
		shape, si.MatrixWidth, si.MatrixHeight, si.DataCapacity, si.ErrorCodewords)
}

// symbols lists every ECC-200 symbol size of ISO/IEC 16022 Table 7, squares
// then rectangles, each group ordered by capacity.
var symbols = []SymbolInfo{
	{false, 3, 5, 10, 10, 8, 8, 3, 5, 0, 0},
	{false, 5, 7, 12, 12, 10, 10, 5, 7, 0, 0},
	{false, 8, 10, 14, 14, 12, 12, 8, 10, 0, 0},
	{false, 12, 12, 16, 16, 14, 14, 12, 12, 0, 0},
	{false, 18, 14, 18, 18, 16, 16, 18, 14, 0, 0},
	{false, 22, 18, 20, 20, 18, 18, 22, 18, 0, 0},
	{false, 30, 20, 22, 22, 20, 20, 30, 20, 0, 0},
	{false, 36, 24, 24, 24, 22, 22, 36, 24, 0, 0},
	{false, 44, 28, 26, 26, 24, 24, 44, 28, 0, 0},
	{false, 62, 36, 32, 32, 14, 14, 62, 36, 0, 0},
	{false, 86, 42, 36, 36, 16, 16, 86, 42, 0, 0},
	{false, 114, 48, 40, 40, 18, 18, 114, 48, 0, 0},
	{false, 144, 56, 44, 44, 20, 20, 144, 56, 0, 0},
	{false, 174, 68, 48, 48, 22, 22, 174, 68, 0, 0},
	{false, 204, 84, 52, 52, 24, 24, 102, 42, 0, 0},
	{false, 280, 112, 64, 64, 14, 14, 140, 56, 0, 0},
	{false, 368, 144, 72, 72, 16, 16, 92, 36, 0, 0},
	{false, 456, 192, 80, 80, 18, 18, 114, 48, 0, 0},
	{false, 576, 224, 88, 88, 20, 20, 144, 56, 0, 0},
	{false, 696, 272, 96, 96, 22, 22, 174, 68, 0, 0},
	{false, 816, 336, 104, 104, 24, 24, 136, 56, 0, 0},
	{false, 1050, 408, 120, 120, 18, 18, 175, 68, 0, 0},
	{false, 1304, 496, 132, 132, 20, 20, 163, 62, 0, 0},
	{false, 1558, 620, 144, 144, 22, 22, 156, 62, 155, 2},

	{true, 5, 7, 18, 8, 16, 6, 5, 7, 0, 0},
	{true, 10, 11, 32, 8, 14, 6, 10, 11, 0, 0},
	{true, 16, 14, 26, 12, 24, 10, 16, 14, 0, 0},
	{true, 22, 18, 36, 12, 16, 10, 22, 18, 0, 0},
	{true, 32, 24, 36, 16, 16, 14, 32, 24, 0, 0},
	{true, 49, 28, 48, 16, 22, 14, 49, 28, 0, 0},
}

// Find returns the first symbol in table order holding dataCodewords data
// codewords, restricted by shape, or nil when none fits. Squares are tried
// before rectangles, so with ShapeAny the smallest fitting square is
// returned and a rectangle is never chosen.
func Find(dataCodewords int, shape SymbolShape) *SymbolInfo {
	for i := range symbols {
		si := &symbols[i]
		if shape == ShapeSquare && si.Rectangular {
			continue
		}
		if shape == ShapeRectangle && !si.Rectangular {
			continue
		}
		if si.DataCapacity >= dataCodewords {
			return si
		}
	}
	return nil
}

// Lookup is Find for call sites where no fitting symbol is caller error.
func Lookup(dataCodewords int, shape SymbolShape) (*SymbolInfo, error) {
	if si := Find(dataCodewords, shape); si != nil {
		return si, nil
	}
	return nil, fmt.Errorf("datamatrix: no symbol holds %d data codewords", dataCodewords)
}

// LookupBySize returns the symbol with the exact module dimensions, or nil.
func LookupBySize(matrixWidth, matrixHeight int) *SymbolInfo {
	for i := range symbols {
		si := &symbols[i]
		if si.MatrixWidth == matrixWidth && si.MatrixHeight == matrixHeight {
			return si
		}
	}
	return nil
}
