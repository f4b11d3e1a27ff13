package decoder

import (
	gridscan "github.com/gridscan/gridscan"
	"github.com/gridscan/gridscan/bitgrid"
	"github.com/gridscan/gridscan/internal"
	"github.com/gridscan/gridscan/reedsolomon"
)

// Metadata is attached to a DecoderResult's Other slot for out-of-band
// signals about how the symbol was read.
type Metadata struct {
	// Mirrored is set when the symbol only decoded after reflecting it
	// across the main diagonal.
	Mirrored bool
}

// Decoder decodes QR codes from a module grid.
type Decoder struct {
	rs *reedsolomon.Decoder
}

// NewDecoder returns a QR Decoder.
func NewDecoder() *Decoder {
	return &Decoder{rs: reedsolomon.NewDecoder(reedsolomon.QRField256)}
}

// Decode runs the straight read first and, when that fails, probes for a
// mirror-printed symbol and retries once on the reflected grid. A mirrored
// failure never replaces the straight-pass error.
func (d *Decoder) Decode(bits *bitgrid.BitMatrix, opts *gridscan.DecodeOptions) (*internal.DecoderResult, error) {
	parser, err := NewParser(bits)
	if err != nil {
		return nil, err
	}

	result, straightErr := d.decodeParsed(parser, opts)
	if straightErr == nil {
		return result, nil
	}

	// Undo the unmask from the straight pass, then check that a mirrored
	// reading is self-consistent before committing to the reflection.
	parser.Remask()
	parser.SetMirror(true)

	if _, err := parser.ReadVersion(); err != nil {
		return nil, straightErr
	}
	if _, err := parser.ReadFormatInformation(); err != nil {
		return nil, straightErr
	}

	parser.Mirror()

	result, err = d.decodeParsed(parser, opts)
	if err != nil {
		return nil, straightErr
	}
	result.Other = &Metadata{Mirrored: true}
	return result, nil
}

// decodeParsed runs one full pass: version and format read, codeword
// extraction, per-block error correction and bit stream interpretation.
func (d *Decoder) decodeParsed(parser *Parser, opts *gridscan.DecodeOptions) (*internal.DecoderResult, error) {
	version, err := parser.ReadVersion()
	if err != nil {
		return nil, err
	}
	formatInfo, err := parser.ReadFormatInformation()
	if err != nil {
		return nil, err
	}
	ecLevel := formatInfo.ECLevel

	rawCodewords, err := parser.ReadCodewords()
	if err != nil {
		return nil, err
	}

	dataBlocks, err := GetDataBlocks(rawCodewords, version, ecLevel)
	if err != nil {
		return nil, err
	}

	totalBytes := 0
	for _, block := range dataBlocks {
		totalBytes += block.NumDataCodewords
	}
	resultBytes := make([]byte, totalBytes)
	offset := 0
	errorsCorrected := 0

	for _, block := range dataBlocks {
		corrected, err := d.correctErrors(block.Codewords, block.NumDataCodewords)
		if err != nil {
			return nil, err
		}
		errorsCorrected += corrected
		copy(resultBytes[offset:], block.Codewords[:block.NumDataCodewords])
		offset += block.NumDataCodewords
	}

	result, err := DecodeBitStream(resultBytes, version, ecLevel, opts.CharacterSetHint())
	if err != nil {
		return nil, err
	}
	result.ErrorsCorrected = errorsCorrected
	return result, nil
}

// correctErrors runs Reed-Solomon correction over one block in place,
// translating internal decode failures to the public checksum error.
func (d *Decoder) correctErrors(codewords []byte, numDataCodewords int) (int, error) {
	block := make([]int, len(codewords))
	for i, c := range codewords {
		block[i] = int(c)
	}
	corrected, err := d.rs.Decode(block, len(codewords)-numDataCodewords)
	if err != nil {
		return 0, gridscan.ErrChecksum
	}
	for i := 0; i < numDataCodewords; i++ {
		codewords[i] = byte(block[i])
	}
	return corrected, nil
}
