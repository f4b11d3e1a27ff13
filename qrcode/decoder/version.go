package decoder

import (
	"fmt"
	"math/bits"

	"github.com/gridscan/gridscan/bitgrid"
)

// ECB is one run of identically-sized error correction blocks.
type ECB struct {
	Count         int
	DataCodewords int
}

// ECBlocks is the block structure of one version at one EC level.
type ECBlocks struct {
	ECCodewordsPerBlock int
	Blocks              []ECB
}

// NumBlocks returns the number of blocks across all runs.
func (e *ECBlocks) NumBlocks() int {
	total := 0
	for _, b := range e.Blocks {
		total += b.Count
	}
	return total
}

// TotalECCodewords returns the parity codeword count across all blocks.
func (e *ECBlocks) TotalECCodewords() int {
	return e.ECCodewordsPerBlock * e.NumBlocks()
}

// Version describes one of the forty QR code versions.
type Version struct {
	Number                  int
	AlignmentPatternCenters []int
	ECBlocksByLevel         [4]ECBlocks // indexed by ErrorCorrectionLevel ordinal
	TotalCodewords          int
}

// DimensionForVersion returns the module dimension of this version.
func (v *Version) DimensionForVersion() int {
	return 17 + 4*v.Number
}

// ECBlocksForLevel returns the block structure for an EC level.
func (v *Version) ECBlocksForLevel(ecLevel ErrorCorrectionLevel) *ECBlocks {
	return &v.ECBlocksByLevel[ecLevel.Ordinal()]
}

// BuildFunctionPattern marks every function module of this version: finder
// patterns with separators and format areas, alignment patterns, timing
// patterns, and the version info blocks on versions 7 and up.
func (v *Version) BuildFunctionPattern() *bitgrid.BitMatrix {
	dimension := v.DimensionForVersion()
	m := bitgrid.NewBitMatrix(dimension)

	// Finder patterns, separators and format information
	m.SetRegion(0, 0, 9, 9)
	m.SetRegion(dimension-8, 0, 8, 9)
	m.SetRegion(0, dimension-8, 9, 8)

	// Alignment patterns, skipping those over finder corners
	numCenters := len(v.AlignmentPatternCenters)
	for x := 0; x < numCenters; x++ {
		top := v.AlignmentPatternCenters[x] - 2
		for y := 0; y < numCenters; y++ {
			if (x == 0 && (y == 0 || y == numCenters-1)) || (x == numCenters-1 && y == 0) {
				continue
			}
			m.SetRegion(v.AlignmentPatternCenters[y]-2, top, 5, 5)
		}
	}

	// Timing patterns
	m.SetRegion(6, 9, 1, dimension-17)
	m.SetRegion(9, 6, dimension-17, 1)

	if v.Number > 6 {
		m.SetRegion(dimension-11, 0, 3, 6)
		m.SetRegion(0, dimension-11, 6, 3)
	}

	return m
}

// versionDecodeInfo holds the 18-bit Golay-protected version words for
// versions 7 through 40.
var versionDecodeInfo = []int{
	0x07C94, 0x085BC, 0x09A99, 0x0A4D3, 0x0BBF6,
	0x0C762, 0x0D847, 0x0E60D, 0x0F928, 0x10B78,
	0x1145D, 0x12A17, 0x13532, 0x149A6, 0x15683,
	0x168C9, 0x177EC, 0x18EC4, 0x191E1, 0x1AFAB,
	0x1B08E, 0x1CC1A, 0x1D33F, 0x1ED75, 0x1F250,
	0x209D5, 0x216F0, 0x228BA, 0x2379F, 0x24B0B,
	0x2542E, 0x26A64, 0x27541, 0x28C69,
}

// VersionForNumber returns the version with the given number (1-40).
func VersionForNumber(number int) (*Version, error) {
	if number < 1 || number > 40 {
		return nil, errInvalidVersion
	}
	return &versions[number-1], nil
}

// ProvisionalVersionForDimension derives the version from the module
// dimension alone, as done for symbols too small to carry version info.
func ProvisionalVersionForDimension(dimension int) (*Version, error) {
	if dimension%4 != 1 {
		return nil, fmt.Errorf("qrcode/decoder: invalid dimension %d", dimension)
	}
	return VersionForNumber((dimension - 17) / 4)
}

// DecodeVersionInformation matches an 18-bit version word against the
// Golay codeword table, tolerating up to 3 bit errors. Returns nil when no
// codeword is close enough.
func DecodeVersionInformation(versionBits int) *Version {
	bestDifference := 32
	bestVersion := 0
	for i, target := range versionDecodeInfo {
		if target == versionBits {
			return &versions[i+6]
		}
		if d := bits.OnesCount(uint(versionBits ^ target)); d < bestDifference {
			bestVersion = i + 7
			bestDifference = d
		}
	}
	if bestDifference <= 3 {
		return &versions[bestVersion-1]
	}
	return nil
}

func ver(number int, align []int, l, m, q, h ECBlocks) Version {
	version := Version{
		Number:                  number,
		AlignmentPatternCenters: align,
		ECBlocksByLevel:         [4]ECBlocks{l, m, q, h},
	}
	total := 0
	for _, block := range l.Blocks {
		total += block.Count * (block.DataCodewords + l.ECCodewordsPerBlock)
	}
	version.TotalCodewords = total
	return version
}

func ecb(ecPerBlock int, blocks ...ECB) ECBlocks {
	return ECBlocks{ECCodewordsPerBlock: ecPerBlock, Blocks: blocks}
}

func blk(count, dataCodewords int) ECB {
	return ECB{Count: count, DataCodewords: dataCodewords}
}

// versions holds the block tables of ISO/IEC 18004 Table 9.
var versions = [40]Version{
	ver(1, nil, ecb(7, blk(1, 19)), ecb(10, blk(1, 16)), ecb(13, blk(1, 13)), ecb(17, blk(1, 9))),
	ver(2, []int{6, 18}, ecb(10, blk(1, 34)), ecb(16, blk(1, 28)), ecb(22, blk(1, 22)), ecb(28, blk(1, 16))),
	ver(3, []int{6, 22}, ecb(15, blk(1, 55)), ecb(26, blk(1, 44)), ecb(18, blk(2, 17)), ecb(22, blk(2, 13))),
	ver(4, []int{6, 26}, ecb(20, blk(1, 80)), ecb(18, blk(2, 32)), ecb(26, blk(2, 24)), ecb(16, blk(4, 9))),
	ver(5, []int{6, 30}, ecb(26, blk(1, 108)), ecb(24, blk(2, 43)), ecb(18, blk(2, 15), blk(2, 16)), ecb(22, blk(2, 11), blk(2, 12))),
	ver(6, []int{6, 34}, ecb(18, blk(2, 68)), ecb(16, blk(4, 27)), ecb(24, blk(4, 19)), ecb(28, blk(4, 15))),
	ver(7, []int{6, 22, 38}, ecb(20, blk(2, 78)), ecb(18, blk(4, 31)), ecb(18, blk(2, 14), blk(4, 15)), ecb(26, blk(4, 13), blk(1, 14))),
	ver(8, []int{6, 24, 42}, ecb(24, blk(2, 97)), ecb(22, blk(2, 38), blk(2, 39)), ecb(22, blk(4, 18), blk(2, 19)), ecb(26, blk(4, 14), blk(2, 15))),
	ver(9, []int{6, 26, 46}, ecb(30, blk(2, 116)), ecb(22, blk(3, 36), blk(2, 37)), ecb(20, blk(4, 16), blk(4, 17)), ecb(24, blk(4, 12), blk(4, 13))),
	ver(10, []int{6, 28, 50}, ecb(18, blk(2, 68), blk(2, 69)), ecb(26, blk(4, 43), blk(1, 44)), ecb(24, blk(6, 19), blk(2, 20)), ecb(28, blk(6, 15), blk(2, 16))),
	ver(11, []int{6, 30, 54}, ecb(20, blk(4, 81)), ecb(30, blk(1, 50), blk(4, 51)), ecb(28, blk(4, 22), blk(4, 23)), ecb(24, blk(3, 12), blk(8, 13))),
	ver(12, []int{6, 32, 58}, ecb(24, blk(2, 92), blk(2, 93)), ecb(22, blk(6, 36), blk(2, 37)), ecb(26, blk(4, 20), blk(6, 21)), ecb(28, blk(7, 14), blk(4, 15))),
	ver(13, []int{6, 34, 62}, ecb(26, blk(4, 107)), ecb(22, blk(8, 37), blk(1, 38)), ecb(24, blk(8, 20), blk(4, 21)), ecb(22, blk(12, 11), blk(4, 12))),
	ver(14, []int{6, 26, 46, 66}, ecb(30, blk(3, 115), blk(1, 116)), ecb(24, blk(4, 40), blk(5, 41)), ecb(20, blk(11, 16), blk(5, 17)), ecb(24, blk(11, 12), blk(5, 13))),
	ver(15, []int{6, 26, 48, 70}, ecb(22, blk(5, 87), blk(1, 88)), ecb(24, blk(5, 41), blk(5, 42)), ecb(30, blk(5, 24), blk(7, 25)), ecb(24, blk(11, 12), blk(7, 13))),
	ver(16, []int{6, 26, 50, 74}, ecb(24, blk(5, 98), blk(1, 99)), ecb(28, blk(7, 45), blk(3, 46)), ecb(24, blk(15, 19), blk(2, 20)), ecb(30, blk(3, 15), blk(13, 16))),
	ver(17, []int{6, 30, 54, 78}, ecb(28, blk(1, 107), blk(5, 108)), ecb(28, blk(10, 46), blk(1, 47)), ecb(28, blk(1, 22), blk(15, 23)), ecb(28, blk(2, 14), blk(17, 15))),
	ver(18, []int{6, 30, 56, 82}, ecb(30, blk(5, 120), blk(1, 121)), ecb(26, blk(9, 43), blk(4, 44)), ecb(28, blk(17, 22), blk(1, 23)), ecb(28, blk(2, 14), blk(19, 15))),
	ver(19, []int{6, 30, 58, 86}, ecb(28, blk(3, 113), blk(4, 114)), ecb(26, blk(3, 44), blk(11, 45)), ecb(26, blk(17, 21), blk(4, 22)), ecb(26, blk(9, 13), blk(16, 14))),
	ver(20, []int{6, 34, 62, 90}, ecb(28, blk(3, 107), blk(5, 108)), ecb(26, blk(3, 41), blk(13, 42)), ecb(30, blk(15, 24), blk(5, 25)), ecb(28, blk(15, 15), blk(10, 16))),
	ver(21, []int{6, 28, 50, 72, 94}, ecb(28, blk(4, 116), blk(4, 117)), ecb(26, blk(17, 42)), ecb(28, blk(17, 22), blk(6, 23)), ecb(30, blk(19, 16), blk(6, 17))),
	ver(22, []int{6, 26, 50, 74, 98}, ecb(28, blk(2, 111), blk(7, 112)), ecb(28, blk(17, 46)), ecb(30, blk(7, 24), blk(16, 25)), ecb(24, blk(34, 13))),
	ver(23, []int{6, 30, 54, 78, 102}, ecb(30, blk(4, 121), blk(5, 122)), ecb(28, blk(4, 47), blk(14, 48)), ecb(30, blk(11, 24), blk(14, 25)), ecb(30, blk(16, 15), blk(14, 16))),
	ver(24, []int{6, 28, 54, 80, 106}, ecb(30, blk(6, 117), blk(4, 118)), ecb(28, blk(6, 45), blk(14, 46)), ecb(30, blk(11, 24), blk(16, 25)), ecb(30, blk(30, 16), blk(2, 17))),
	ver(25, []int{6, 32, 58, 84, 110}, ecb(26, blk(8, 106), blk(4, 107)), ecb(28, blk(8, 47), blk(13, 48)), ecb(30, blk(7, 24), blk(22, 25)), ecb(30, blk(22, 15), blk(13, 16))),
	ver(26, []int{6, 30, 58, 86, 114}, ecb(28, blk(10, 114), blk(2, 115)), ecb(28, blk(19, 46), blk(4, 47)), ecb(28, blk(28, 22), blk(6, 23)), ecb(30, blk(33, 16), blk(4, 17))),
	ver(27, []int{6, 34, 62, 90, 118}, ecb(30, blk(8, 122), blk(4, 123)), ecb(28, blk(22, 45), blk(3, 46)), ecb(30, blk(8, 23), blk(26, 24)), ecb(30, blk(12, 15), blk(28, 16))),
	ver(28, []int{6, 26, 50, 74, 98, 122}, ecb(30, blk(3, 117), blk(10, 118)), ecb(28, blk(3, 45), blk(23, 46)), ecb(30, blk(4, 24), blk(31, 25)), ecb(30, blk(11, 15), blk(31, 16))),
	ver(29, []int{6, 30, 54, 78, 102, 126}, ecb(30, blk(7, 116), blk(7, 117)), ecb(28, blk(21, 45), blk(7, 46)), ecb(30, blk(1, 23), blk(37, 24)), ecb(30, blk(19, 15), blk(26, 16))),
	ver(30, []int{6, 26, 52, 78, 104, 130}, ecb(30, blk(5, 115), blk(10, 116)), ecb(28, blk(19, 47), blk(10, 48)), ecb(30, blk(15, 24), blk(25, 25)), ecb(30, blk(23, 15), blk(25, 16))),
	ver(31, []int{6, 30, 56, 82, 108, 134}, ecb(30, blk(13, 115), blk(3, 116)), ecb(28, blk(2, 46), blk(29, 47)), ecb(30, blk(42, 24), blk(1, 25)), ecb(30, blk(23, 15), blk(28, 16))),
	ver(32, []int{6, 34, 60, 86, 112, 138}, ecb(30, blk(17, 115)), ecb(28, blk(10, 46), blk(23, 47)), ecb(30, blk(10, 24), blk(35, 25)), ecb(30, blk(19, 15), blk(35, 16))),
	ver(33, []int{6, 30, 58, 86, 114, 142}, ecb(30, blk(17, 115), blk(1, 116)), ecb(28, blk(14, 46), blk(21, 47)), ecb(30, blk(29, 24), blk(19, 25)), ecb(30, blk(11, 15), blk(46, 16))),
	ver(34, []int{6, 34, 62, 90, 118, 146}, ecb(30, blk(13, 115), blk(6, 116)), ecb(28, blk(14, 46), blk(23, 47)), ecb(30, blk(44, 24), blk(7, 25)), ecb(30, blk(59, 16), blk(1, 17))),
	ver(35, []int{6, 30, 54, 78, 102, 126, 150}, ecb(30, blk(12, 121), blk(7, 122)), ecb(28, blk(12, 47), blk(26, 48)), ecb(30, blk(39, 24), blk(14, 25)), ecb(30, blk(22, 15), blk(41, 16))),
	ver(36, []int{6, 24, 50, 76, 102, 128, 154}, ecb(30, blk(6, 121), blk(14, 122)), ecb(28, blk(6, 47), blk(34, 48)), ecb(30, blk(46, 24), blk(10, 25)), ecb(30, blk(2, 15), blk(64, 16))),
	ver(37, []int{6, 28, 54, 80, 106, 132, 158}, ecb(30, blk(17, 122), blk(4, 123)), ecb(28, blk(29, 46), blk(14, 47)), ecb(30, blk(49, 24), blk(10, 25)), ecb(30, blk(24, 15), blk(46, 16))),
	ver(38, []int{6, 32, 58, 84, 110, 136, 162}, ecb(30, blk(4, 122), blk(18, 123)), ecb(28, blk(13, 46), blk(32, 47)), ecb(30, blk(48, 24), blk(14, 25)), ecb(30, blk(42, 15), blk(32, 16))),
	ver(39, []int{6, 26, 54, 82, 110, 138, 166}, ecb(30, blk(20, 117), blk(4, 118)), ecb(28, blk(40, 47), blk(7, 48)), ecb(30, blk(43, 24), blk(22, 25)), ecb(30, blk(10, 15), blk(67, 16))),
	ver(40, []int{6, 30, 58, 86, 114, 142, 170}, ecb(30, blk(19, 118), blk(6, 119)), ecb(28, blk(18, 47), blk(31, 48)), ecb(30, blk(34, 24), blk(34, 25)), ecb(30, blk(20, 15), blk(61, 16))),
}
