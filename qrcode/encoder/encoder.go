// Package encoder implements the QR code encode path used to produce
// module grids: segment encoding, version fitting, Reed-Solomon parity and
// block interleaving. Rendering to output formats is out of scope.
package encoder

import (
	"fmt"

	gridscan "github.com/gridscan/gridscan"
	"github.com/gridscan/gridscan/bitgrid"
	"github.com/gridscan/gridscan/qrcode/decoder"
	"github.com/gridscan/gridscan/reedsolomon"
)

// QRCode is an encoded symbol ready to be rendered.
type QRCode struct {
	Mode        decoder.Mode
	ECLevel     decoder.ErrorCorrectionLevel
	Version     *decoder.Version
	MaskPattern int
	Matrix      *ByteMatrix
}

// alphanumericValues maps ASCII to the 45-character alphanumeric alphabet,
// -1 for characters outside it.
var alphanumericValues = [128]int8{
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	36, -1, -1, -1, 37, 38, -1, -1, -1, -1, 39, 40, -1, 41, 42, 43,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 44, -1, -1, -1, -1, -1,
	-1, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24,
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
}

// AlphanumericValue returns the alphanumeric code of an ASCII character, or
// -1 if it has none.
func AlphanumericValue(c int) int {
	if c < 128 {
		return int(alphanumericValues[c])
	}
	return -1
}

// ChooseMode picks the densest mode that can represent the content.
func ChooseMode(content string) decoder.Mode {
	numericOnly := true
	for i := 0; i < len(content); i++ {
		c := content[i]
		if c >= '0' && c <= '9' {
			continue
		}
		numericOnly = false
		if AlphanumericValue(int(c)) == -1 {
			return decoder.ModeByte
		}
	}
	if numericOnly && len(content) > 0 {
		return decoder.ModeNumeric
	}
	return decoder.ModeAlphanumeric
}

// Encode builds a QR symbol for content. qrVersion pins the version when
// positive and maskPattern pins the mask when in [0,7]; otherwise the
// smallest fitting version and the lowest-penalty mask are chosen.
func Encode(content string, ecLevel decoder.ErrorCorrectionLevel, qrVersion, maskPattern int) (*QRCode, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: empty contents", gridscan.ErrWriter)
	}
	mode := ChooseMode(content)

	headerBits := bitgrid.NewBitArray(0)
	headerBits.AppendBits(uint32(mode.Bits()), 4)

	dataBits := bitgrid.NewBitArray(0)
	if err := appendContent(content, mode, dataBits); err != nil {
		return nil, err
	}

	var version *decoder.Version
	var err error
	if qrVersion > 0 {
		if version, err = decoder.VersionForNumber(qrVersion); err != nil {
			return nil, err
		}
	} else if version, err = chooseVersion(mode, headerBits, dataBits, ecLevel); err != nil {
		return nil, err
	}

	headerBits.AppendBits(uint32(len(content)), mode.CharacterCountBits(version))
	headerBits.AppendBitArray(dataBits)

	ecBlocks := version.ECBlocksForLevel(ecLevel)
	totalBytes := version.TotalCodewords
	numDataBytes := totalBytes - ecBlocks.TotalECCodewords()

	if err := terminateBits(numDataBytes, headerBits); err != nil {
		return nil, err
	}

	finalBits, err := interleaveWithECBytes(headerBits, totalBytes, numDataBytes, ecBlocks.NumBlocks())
	if err != nil {
		return nil, err
	}

	dimension := version.DimensionForVersion()
	matrix := NewByteMatrix(dimension, dimension)

	if maskPattern < 0 || maskPattern >= len(decoder.DataMasks) {
		maskPattern = chooseMaskPattern(finalBits, ecLevel, version, matrix)
	}
	buildMatrix(finalBits, ecLevel, version, maskPattern, matrix)

	return &QRCode{
		Mode:        mode,
		ECLevel:     ecLevel,
		Version:     version,
		MaskPattern: maskPattern,
		Matrix:      matrix,
	}, nil
}

// chooseVersion finds the smallest version whose data capacity fits the
// segment.
func chooseVersion(mode decoder.Mode, headerBits, dataBits *bitgrid.BitArray, ecLevel decoder.ErrorCorrectionLevel) (*decoder.Version, error) {
	for number := 1; number <= 40; number++ {
		version, _ := decoder.VersionForNumber(number)
		totalBits := headerBits.Size() + mode.CharacterCountBits(version) + dataBits.Size()
		ecBlocks := version.ECBlocksForLevel(ecLevel)
		numDataBytes := version.TotalCodewords - ecBlocks.TotalECCodewords()
		if totalBits <= numDataBytes*8 {
			return version, nil
		}
	}
	return nil, fmt.Errorf("%w: data too large", gridscan.ErrWriter)
}

// terminateBits appends the terminator, pads to a byte boundary and fills
// the remaining capacity with the alternating pad codewords.
func terminateBits(numDataBytes int, bits *bitgrid.BitArray) error {
	capacity := numDataBytes * 8
	if bits.Size() > capacity {
		return fmt.Errorf("%w: data bits exceed capacity", gridscan.ErrWriter)
	}

	for i := 0; i < 4 && bits.Size() < capacity; i++ {
		bits.AppendBit(false)
	}

	if trailing := bits.Size() & 7; trailing > 0 {
		for i := trailing; i < 8; i++ {
			bits.AppendBit(false)
		}
	}

	numPaddingBytes := numDataBytes - bits.SizeInBytes()
	for i := 0; i < numPaddingBytes; i++ {
		if i&1 == 0 {
			bits.AppendBits(0xEC, 8)
		} else {
			bits.AppendBits(0x11, 8)
		}
	}
	return nil
}

func appendContent(content string, mode decoder.Mode, bits *bitgrid.BitArray) error {
	switch mode {
	case decoder.ModeNumeric:
		return appendNumeric(content, bits)
	case decoder.ModeAlphanumeric:
		return appendAlphanumeric(content, bits)
	case decoder.ModeByte:
		for i := 0; i < len(content); i++ {
			bits.AppendBits(uint32(content[i]), 8)
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported mode", gridscan.ErrWriter)
	}
}

func appendNumeric(content string, bits *bitgrid.BitArray) error {
	i := 0
	for i < len(content) {
		d1 := int(content[i] - '0')
		switch {
		case i+2 < len(content):
			d2 := int(content[i+1] - '0')
			d3 := int(content[i+2] - '0')
			bits.AppendBits(uint32(d1*100+d2*10+d3), 10)
			i += 3
		case i+1 < len(content):
			d2 := int(content[i+1] - '0')
			bits.AppendBits(uint32(d1*10+d2), 7)
			i += 2
		default:
			bits.AppendBits(uint32(d1), 4)
			i++
		}
	}
	return nil
}

func appendAlphanumeric(content string, bits *bitgrid.BitArray) error {
	i := 0
	for i < len(content) {
		c1 := AlphanumericValue(int(content[i]))
		if c1 == -1 {
			return fmt.Errorf("%w: invalid alphanumeric character", gridscan.ErrWriter)
		}
		if i+1 < len(content) {
			c2 := AlphanumericValue(int(content[i+1]))
			if c2 == -1 {
				return fmt.Errorf("%w: invalid alphanumeric character", gridscan.ErrWriter)
			}
			bits.AppendBits(uint32(c1*45+c2), 11)
			i += 2
		} else {
			bits.AppendBits(uint32(c1), 6)
			i++
		}
	}
	return nil
}

// interleaveWithECBytes splits the data into RS blocks, computes parity per
// block and interleaves data then parity column-major, mirroring the
// de-interleave on the decode side.
func interleaveWithECBytes(bits *bitgrid.BitArray, numTotalBytes, numDataBytes, numRSBlocks int) (*bitgrid.BitArray, error) {
	if bits.SizeInBytes() != numDataBytes {
		return nil, fmt.Errorf("%w: data byte count mismatch", gridscan.ErrWriter)
	}

	type rsBlock struct {
		data   []byte
		parity []byte
	}
	blocks := make([]rsBlock, numRSBlocks)
	rs := reedsolomon.NewEncoder(reedsolomon.QRField256)

	dataOffset := 0
	maxDataBytes := 0
	maxParityBytes := 0
	for i := range blocks {
		blockDataBytes, blockParityBytes := blockSizes(numTotalBytes, numDataBytes, numRSBlocks, i)

		data := make([]byte, blockDataBytes)
		bits.ToBytes(8*dataOffset, data, 0, blockDataBytes)
		blocks[i] = rsBlock{data: data, parity: parityBytes(rs, data, blockParityBytes)}

		maxDataBytes = max(maxDataBytes, blockDataBytes)
		maxParityBytes = max(maxParityBytes, blockParityBytes)
		dataOffset += blockDataBytes
	}

	result := bitgrid.NewBitArray(0)
	for i := 0; i < maxDataBytes; i++ {
		for _, block := range blocks {
			if i < len(block.data) {
				result.AppendBits(uint32(block.data[i]), 8)
			}
		}
	}
	for i := 0; i < maxParityBytes; i++ {
		for _, block := range blocks {
			if i < len(block.parity) {
				result.AppendBits(uint32(block.parity[i]), 8)
			}
		}
	}
	if result.SizeInBytes() != numTotalBytes {
		return nil, fmt.Errorf("%w: interleaved size mismatch", gridscan.ErrWriter)
	}
	return result, nil
}

// blockSizes returns the data and parity codeword counts of block blockID.
// The trailing numTotalBytes%numRSBlocks blocks are one data codeword
// longer.
func blockSizes(numTotalBytes, numDataBytes, numRSBlocks, blockID int) (blockData, blockParity int) {
	longBlocks := numTotalBytes % numRSBlocks
	shortTotal := numTotalBytes / numRSBlocks
	shortData := numDataBytes / numRSBlocks
	if blockID < numRSBlocks-longBlocks {
		return shortData, shortTotal - shortData
	}
	return shortData + 1, (shortTotal + 1) - (shortData + 1)
}

func parityBytes(rs *reedsolomon.Encoder, data []byte, numParity int) []byte {
	block := make([]int, len(data)+numParity)
	for i, d := range data {
		block[i] = int(d)
	}
	rs.Encode(block, numParity)
	parity := make([]byte, numParity)
	for i := range parity {
		parity[i] = byte(block[len(data)+i])
	}
	return parity
}

// ToBitMatrix converts the encoded symbol to a module grid suitable for the
// decoder.
func (qr *QRCode) ToBitMatrix() *bitgrid.BitMatrix {
	m := bitgrid.NewBitMatrixWithSize(qr.Matrix.Width, qr.Matrix.Height)
	for y := 0; y < qr.Matrix.Height; y++ {
		for x := 0; x < qr.Matrix.Width; x++ {
			if qr.Matrix.Get(x, y) == 1 {
				m.Set(x, y)
			}
		}
	}
	return m
}
