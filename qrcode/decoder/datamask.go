package decoder

import "github.com/gridscan/gridscan/bitgrid"

// MaskPredicate reports whether the module at row i, column j is inverted
// by a data mask pattern.
type MaskPredicate func(i, j int) bool

// DataMasks holds the eight mask patterns of ISO/IEC 18004, indexed by the
// 3-bit mask reference in the format information.
var DataMasks = [8]MaskPredicate{
	func(i, j int) bool { return (i+j)&1 == 0 },
	func(i, j int) bool { return i&1 == 0 },
	func(i, j int) bool { return j%3 == 0 },
	func(i, j int) bool { return (i+j)%3 == 0 },
	func(i, j int) bool { return (i/2+j/3)&1 == 0 },
	func(i, j int) bool { return (i*j)%6 == 0 },
	func(i, j int) bool { return (i*j)%6 < 3 },
	func(i, j int) bool { return (i+j+(i*j)%3)&1 == 0 },
}

// UnmaskBitMatrix flips every module the mask pattern covers. Masking is an
// involution: applying it again restores the matrix.
func UnmaskBitMatrix(bits *bitgrid.BitMatrix, dimension, maskIndex int) {
	mask := DataMasks[maskIndex]
	for i := 0; i < dimension; i++ {
		for j := 0; j < dimension; j++ {
			if mask(i, j) {
				bits.Flip(j, i)
			}
		}
	}
}
