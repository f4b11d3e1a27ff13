package encoder

import (
	"math"
	"strings"

	"github.com/gridscan/gridscan/bitgrid"
	"github.com/gridscan/gridscan/qrcode/decoder"
)

// ByteMatrix is the working grid during matrix construction. 0 and 1 are
// placed modules; the empty marker 0xFF means "not yet written".
type ByteMatrix struct {
	Data          [][]byte
	Width, Height int
}

const emptyCell = 0xFF

// NewByteMatrix returns a width x height matrix of empty cells.
func NewByteMatrix(width, height int) *ByteMatrix {
	data := make([][]byte, height)
	for i := range data {
		data[i] = make([]byte, width)
	}
	return &ByteMatrix{Data: data, Width: width, Height: height}
}

// Get returns the cell at (x, y).
func (m *ByteMatrix) Get(x, y int) byte { return m.Data[y][x] }

// Set writes the cell at (x, y).
func (m *ByteMatrix) Set(x, y int, value byte) { m.Data[y][x] = value }

// Fill writes value into every cell.
func (m *ByteMatrix) Fill(value byte) {
	for y := range m.Data {
		for x := range m.Data[y] {
			m.Data[y][x] = value
		}
	}
}

// String renders the matrix for debugging, "##" dark and "  " light.
func (m *ByteMatrix) String() string {
	var sb strings.Builder
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Data[y][x] == 1 {
				sb.WriteString("##")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// buildMatrix lays out function patterns, type and version info, and the
// masked data bits.
func buildMatrix(dataBits *bitgrid.BitArray, ecLevel decoder.ErrorCorrectionLevel,
	version *decoder.Version, maskPattern int, matrix *ByteMatrix) {
	matrix.Fill(emptyCell)
	embedBasicPatterns(version, matrix)
	embedTypeInfo(ecLevel, maskPattern, matrix)
	maybeEmbedVersionInfo(version, matrix)
	embedDataBits(dataBits, maskPattern, matrix)
}

var finderPattern = [7][7]byte{
	{1, 1, 1, 1, 1, 1, 1},
	{1, 0, 0, 0, 0, 0, 1},
	{1, 0, 1, 1, 1, 0, 1},
	{1, 0, 1, 1, 1, 0, 1},
	{1, 0, 1, 1, 1, 0, 1},
	{1, 0, 0, 0, 0, 0, 1},
	{1, 1, 1, 1, 1, 1, 1},
}

var alignmentPattern = [5][5]byte{
	{1, 1, 1, 1, 1},
	{1, 0, 0, 0, 1},
	{1, 0, 1, 0, 1},
	{1, 0, 0, 0, 1},
	{1, 1, 1, 1, 1},
}

func embedBasicPatterns(version *decoder.Version, matrix *ByteMatrix) {
	embedFinderPattern(0, 0, matrix)
	embedFinderPattern(matrix.Width-7, 0, matrix)
	embedFinderPattern(0, matrix.Height-7, matrix)

	embedHorizontalSeparator(0, 7, matrix)
	embedHorizontalSeparator(matrix.Width-8, 7, matrix)
	embedHorizontalSeparator(0, matrix.Height-8, matrix)

	embedVerticalSeparator(7, 0, matrix)
	embedVerticalSeparator(matrix.Width-8, 0, matrix)
	embedVerticalSeparator(7, matrix.Height-7, matrix)

	if version.Number >= 2 {
		embedAlignmentPatterns(version, matrix)
	}

	embedTimingPatterns(matrix)

	// Dark module above the bottom-left finder
	matrix.Set(8, matrix.Height-8, 1)
}

func embedFinderPattern(xStart, yStart int, matrix *ByteMatrix) {
	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			matrix.Set(xStart+x, yStart+y, finderPattern[y][x])
		}
	}
}

func embedHorizontalSeparator(xStart, yStart int, matrix *ByteMatrix) {
	for x := 0; x < 8; x++ {
		if xStart+x < matrix.Width {
			matrix.Set(xStart+x, yStart, 0)
		}
	}
}

func embedVerticalSeparator(xStart, yStart int, matrix *ByteMatrix) {
	for y := 0; y < 7; y++ {
		if yStart+y < matrix.Height {
			matrix.Set(xStart, yStart+y, 0)
		}
	}
}

func embedAlignmentPatterns(version *decoder.Version, matrix *ByteMatrix) {
	for _, cy := range version.AlignmentPatternCenters {
		for _, cx := range version.AlignmentPatternCenters {
			// Centers overlapping a finder pattern are already written.
			if matrix.Get(cx, cy) != emptyCell {
				continue
			}
			for y := 0; y < 5; y++ {
				for x := 0; x < 5; x++ {
					matrix.Set(cx-2+x, cy-2+y, alignmentPattern[y][x])
				}
			}
		}
	}
}

func embedTimingPatterns(matrix *ByteMatrix) {
	for i := 8; i < matrix.Width-8; i++ {
		bit := byte((i + 1) % 2)
		if matrix.Get(i, 6) == emptyCell {
			matrix.Set(i, 6, bit)
		}
		if matrix.Get(6, i) == emptyCell {
			matrix.Set(6, i, bit)
		}
	}
}

const (
	typeInfoPoly    = 0x537
	typeInfoMask    = 0x5412
	versionInfoPoly = 0x1F25
)

// typeInfoCoordinates lists the placement of the 15 format bits around the
// top-left finder pattern, least significant bit first.
var typeInfoCoordinates = [15][2]int{
	{8, 0}, {8, 1}, {8, 2}, {8, 3}, {8, 4}, {8, 5}, {8, 7}, {8, 8},
	{7, 8}, {5, 8}, {4, 8}, {3, 8}, {2, 8}, {1, 8}, {0, 8},
}

func embedTypeInfo(ecLevel decoder.ErrorCorrectionLevel, maskPattern int, matrix *ByteMatrix) {
	typeInfo := ecLevel.Bits()<<3 | maskPattern
	typeInfoBits := (typeInfo<<10 | bchCode(typeInfo, typeInfoPoly)) ^ typeInfoMask

	for i := 0; i < 15; i++ {
		bit := byte(typeInfoBits >> uint(i) & 1)
		coord := typeInfoCoordinates[i]
		matrix.Set(coord[0], coord[1], bit)

		// The redundant copy runs under the top-right finder and alongside
		// the bottom-left one.
		if i < 8 {
			matrix.Set(matrix.Width-1-i, 8, bit)
		} else {
			matrix.Set(8, matrix.Height-7+(i-8), bit)
		}
	}
}

func maybeEmbedVersionInfo(version *decoder.Version, matrix *ByteMatrix) {
	if version.Number < 7 {
		return
	}
	versionInfoBits := version.Number<<12 | bchCode(version.Number, versionInfoPoly)

	bitIndex := 0
	for i := 0; i < 6; i++ {
		for j := 0; j < 3; j++ {
			bit := byte(versionInfoBits >> uint(bitIndex) & 1)
			bitIndex++
			matrix.Set(i, matrix.Height-11+j, bit) // bottom-left block
			matrix.Set(matrix.Width-11+j, i, bit)  // top-right block
		}
	}
}

// embedDataBits walks the data area in the standard serpentine order,
// writing masked data bits into every empty cell.
func embedDataBits(dataBits *bitgrid.BitArray, maskPattern int, matrix *ByteMatrix) {
	bitIndex := 0
	dimension := matrix.Height

	for j := dimension - 1; j > 0; j -= 2 {
		if j == 6 {
			j-- // skip the timing column
		}
		upward := ((dimension-1-j)/2)&1 == 0
		for count := 0; count < dimension; count++ {
			i := count
			if upward {
				i = dimension - 1 - count
			}
			for col := 0; col < 2; col++ {
				x := j - col
				if matrix.Get(x, i) != emptyCell {
					continue
				}
				bit := false
				if bitIndex < dataBits.Size() {
					bit = dataBits.Get(bitIndex)
					bitIndex++
				}
				if decoder.DataMasks[maskPattern](i, x) {
					bit = !bit
				}
				if bit {
					matrix.Set(x, i, 1)
				} else {
					matrix.Set(x, i, 0)
				}
			}
		}
	}
}

// bchCode computes the BCH remainder of value for the given generator
// polynomial, as used by both the format and version information words.
func bchCode(value, poly int) int {
	msbOfPoly := msbSet(poly)
	value <<= uint(msbOfPoly - 1)
	for msbSet(value) >= msbOfPoly {
		value ^= poly << uint(msbSet(value)-msbOfPoly)
	}
	return value
}

func msbSet(value int) int {
	count := 0
	for value != 0 {
		value >>= 1
		count++
	}
	return count
}

// chooseMaskPattern scores each of the eight masks with the ISO penalty
// rules and picks the cheapest.
func chooseMaskPattern(bits *bitgrid.BitArray, ecLevel decoder.ErrorCorrectionLevel,
	version *decoder.Version, matrix *ByteMatrix) int {
	minPenalty := math.MaxInt
	best := 0
	for pattern := range decoder.DataMasks {
		buildMatrix(bits, ecLevel, version, pattern, matrix)
		if penalty := maskPenalty(matrix); penalty < minPenalty {
			minPenalty = penalty
			best = pattern
		}
	}
	return best
}

func maskPenalty(matrix *ByteMatrix) int {
	return penaltyRule1(matrix) + penaltyRule2(matrix) +
		penaltyRule3(matrix) + penaltyRule4(matrix)
}

// penaltyRule1 charges runs of five or more same-colored modules.
func penaltyRule1(matrix *ByteMatrix) int {
	return penaltyRule1Axis(matrix, true) + penaltyRule1Axis(matrix, false)
}

func penaltyRule1Axis(matrix *ByteMatrix, horizontal bool) int {
	penalty := 0
	iLimit, jLimit := matrix.Height, matrix.Width
	if !horizontal {
		iLimit, jLimit = matrix.Width, matrix.Height
	}
	for i := 0; i < iLimit; i++ {
		runLength := 0
		prev := byte(emptyCell)
		for j := 0; j < jLimit; j++ {
			var cell byte
			if horizontal {
				cell = matrix.Get(j, i)
			} else {
				cell = matrix.Get(i, j)
			}
			if cell == prev {
				runLength++
				continue
			}
			if runLength >= 5 {
				penalty += 3 + (runLength - 5)
			}
			runLength = 1
			prev = cell
		}
		if runLength >= 5 {
			penalty += 3 + (runLength - 5)
		}
	}
	return penalty
}

// penaltyRule2 charges every 2x2 block of one color.
func penaltyRule2(matrix *ByteMatrix) int {
	penalty := 0
	for y := 0; y < matrix.Height-1; y++ {
		for x := 0; x < matrix.Width-1; x++ {
			value := matrix.Get(x, y)
			if value == matrix.Get(x+1, y) && value == matrix.Get(x, y+1) && value == matrix.Get(x+1, y+1) {
				penalty += 3
			}
		}
	}
	return penalty
}

// penaltyRule3 charges finder-like 1011101 runs flanked by four light
// modules.
func penaltyRule3(matrix *ByteMatrix) int {
	penalty := 0
	for y := 0; y < matrix.Height; y++ {
		for x := 0; x < matrix.Width; x++ {
			if x+6 < matrix.Width &&
				matrix.Get(x, y) == 1 && matrix.Get(x+1, y) == 0 &&
				matrix.Get(x+2, y) == 1 && matrix.Get(x+3, y) == 1 &&
				matrix.Get(x+4, y) == 1 && matrix.Get(x+5, y) == 0 &&
				matrix.Get(x+6, y) == 1 {
				after := x+10 < matrix.Width &&
					matrix.Get(x+7, y) == 0 && matrix.Get(x+8, y) == 0 &&
					matrix.Get(x+9, y) == 0 && matrix.Get(x+10, y) == 0
				before := x >= 4 &&
					matrix.Get(x-1, y) == 0 && matrix.Get(x-2, y) == 0 &&
					matrix.Get(x-3, y) == 0 && matrix.Get(x-4, y) == 0
				if after || before {
					penalty += 40
				}
			}
			if y+6 < matrix.Height &&
				matrix.Get(x, y) == 1 && matrix.Get(x, y+1) == 0 &&
				matrix.Get(x, y+2) == 1 && matrix.Get(x, y+3) == 1 &&
				matrix.Get(x, y+4) == 1 && matrix.Get(x, y+5) == 0 &&
				matrix.Get(x, y+6) == 1 {
				after := y+10 < matrix.Height &&
					matrix.Get(x, y+7) == 0 && matrix.Get(x, y+8) == 0 &&
					matrix.Get(x, y+9) == 0 && matrix.Get(x, y+10) == 0
				before := y >= 4 &&
					matrix.Get(x, y-1) == 0 && matrix.Get(x, y-2) == 0 &&
					matrix.Get(x, y-3) == 0 && matrix.Get(x, y-4) == 0
				if after || before {
					penalty += 40
				}
			}
		}
	}
	return penalty
}

// penaltyRule4 charges deviation of the dark-module ratio from 50%.
func penaltyRule4(matrix *ByteMatrix) int {
	dark := 0
	total := matrix.Height * matrix.Width
	for y := 0; y < matrix.Height; y++ {
		for x := 0; x < matrix.Width; x++ {
			if matrix.Get(x, y) == 1 {
				dark++
			}
		}
	}
	deviation := dark*2 - total
	if deviation < 0 {
		deviation = -deviation
	}
	return deviation * 10 / total * 10
}
