package decoder

import (
	gridscan "github.com/gridscan/gridscan"
	"github.com/gridscan/gridscan/bitgrid"
)

// Parser reads version, format information and codewords off a QR module
// grid. It owns the grid for the duration of the parse and mutates it
// (unmasking, mirroring).
type Parser struct {
	matrix           *bitgrid.BitMatrix
	parsedVersion    *Version
	parsedFormatInfo *FormatInformation
	mirrored         bool
}

// NewParser validates the grid dimension and wraps it in a Parser.
func NewParser(matrix *bitgrid.BitMatrix) (*Parser, error) {
	dimension := matrix.Height()
	if dimension < 21 || dimension&3 != 1 {
		return nil, gridscan.ErrFormat
	}
	return &Parser{matrix: matrix}, nil
}

// ReadFormatInformation recovers the format word from its two redundant
// placements: the strip around the top-left finder, and the copy split
// between the top-right and bottom-left corners.
func (p *Parser) ReadFormatInformation() (*FormatInformation, error) {
	if p.parsedFormatInfo != nil {
		return p.parsedFormatInfo, nil
	}

	word1 := 0
	for i := 0; i < 6; i++ {
		word1 = p.copyBit(i, 8, word1)
	}
	word1 = p.copyBit(7, 8, word1)
	word1 = p.copyBit(8, 8, word1)
	word1 = p.copyBit(8, 7, word1)
	for j := 5; j >= 0; j-- {
		word1 = p.copyBit(8, j, word1)
	}

	dimension := p.matrix.Height()
	word2 := 0
	for j := dimension - 1; j >= dimension-7; j-- {
		word2 = p.copyBit(8, j, word2)
	}
	for i := dimension - 8; i < dimension; i++ {
		word2 = p.copyBit(i, 8, word2)
	}

	if p.parsedFormatInfo = DecodeFormatInformation(word1, word2); p.parsedFormatInfo != nil {
		return p.parsedFormatInfo, nil
	}
	return nil, gridscan.ErrFormat
}

// ReadVersion determines the version, from the dimension alone below
// version 7 and otherwise from the two 18-bit version info blocks.
func (p *Parser) ReadVersion() (*Version, error) {
	if p.parsedVersion != nil {
		return p.parsedVersion, nil
	}

	dimension := p.matrix.Height()
	provisional := (dimension - 17) / 4
	if provisional <= 6 {
		return VersionForNumber(provisional)
	}

	// Top-right block, 3 modules wide by 6 tall
	versionBits := 0
	ijMin := dimension - 11
	for j := 5; j >= 0; j-- {
		for i := dimension - 9; i >= ijMin; i-- {
			versionBits = p.copyBit(i, j, versionBits)
		}
	}
	if version := DecodeVersionInformation(versionBits); version != nil && version.DimensionForVersion() == dimension {
		p.parsedVersion = version
		return version, nil
	}

	// Bottom-left block, 6 wide by 3 tall
	versionBits = 0
	for i := 5; i >= 0; i-- {
		for j := dimension - 9; j >= ijMin; j-- {
			versionBits = p.copyBit(i, j, versionBits)
		}
	}
	if version := DecodeVersionInformation(versionBits); version != nil && version.DimensionForVersion() == dimension {
		p.parsedVersion = version
		return version, nil
	}
	return nil, gridscan.ErrFormat
}

// copyBit shifts the module at (i, j) into the low bit of accumulator,
// reading transposed coordinates in mirrored mode.
func (p *Parser) copyBit(i, j, accumulator int) int {
	var bit bool
	if p.mirrored {
		bit = p.matrix.Get(j, i)
	} else {
		bit = p.matrix.Get(i, j)
	}
	if bit {
		return accumulator<<1 | 1
	}
	return accumulator << 1
}

// ReadCodewords unmasks the data area and collects the codewords by walking
// two-module columns right to left, alternating upward and downward,
// skipping function modules.
func (p *Parser) ReadCodewords() ([]byte, error) {
	formatInfo, err := p.ReadFormatInformation()
	if err != nil {
		return nil, err
	}
	version, err := p.ReadVersion()
	if err != nil {
		return nil, err
	}

	dimension := p.matrix.Height()
	UnmaskBitMatrix(p.matrix, dimension, int(formatInfo.DataMask))

	functionPattern := version.BuildFunctionPattern()

	codewords := make([]byte, version.TotalCodewords)
	offset := 0
	currentByte := 0
	bitsRead := 0
	readingUp := true

	for j := dimension - 1; j > 0; j -= 2 {
		if j == 6 {
			j-- // skip the vertical timing column
		}
		for count := 0; count < dimension; count++ {
			i := count
			if readingUp {
				i = dimension - 1 - count
			}
			for col := 0; col < 2; col++ {
				if functionPattern.Get(j-col, i) {
					continue
				}
				bitsRead++
				currentByte <<= 1
				if p.matrix.Get(j-col, i) {
					currentByte |= 1
				}
				if bitsRead == 8 {
					codewords[offset] = byte(currentByte)
					offset++
					bitsRead = 0
					currentByte = 0
				}
			}
		}
		readingUp = !readingUp
	}

	if offset != version.TotalCodewords {
		return nil, gridscan.ErrFormat
	}
	return codewords, nil
}

// Remask re-applies the data mask, undoing the unmask done by
// ReadCodewords so the grid can be parsed again.
func (p *Parser) Remask() {
	if p.parsedFormatInfo == nil {
		return // no unmask has happened
	}
	UnmaskBitMatrix(p.matrix, p.matrix.Height(), int(p.parsedFormatInfo.DataMask))
}

// SetMirror switches the positions format and version info are read from,
// discarding any cached reads.
func (p *Parser) SetMirror(mirrored bool) {
	p.parsedVersion = nil
	p.parsedFormatInfo = nil
	p.mirrored = mirrored
}

// Mirror reflects the grid across its main diagonal in place.
func (p *Parser) Mirror() {
	for x := 0; x < p.matrix.Width(); x++ {
		for y := x + 1; y < p.matrix.Height(); y++ {
			if p.matrix.Get(x, y) != p.matrix.Get(y, x) {
				p.matrix.Flip(y, x)
				p.matrix.Flip(x, y)
			}
		}
	}
}
