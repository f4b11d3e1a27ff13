// Package internal holds result types shared by the symbology packages.
package internal

// DecoderResult is the outcome of decoding a module grid: the corrected raw
// bytes, their text interpretation, and per-symbol bookkeeping. Other is an
// open slot for out-of-band signals such as mirrored-read metadata.
type DecoderResult struct {
	RawBytes                       []byte
	NumBits                        int
	Text                           string
	ByteSegments                   [][]byte
	ECLevel                        string
	ErrorsCorrected                int
	Erasures                       int
	Other                          any
	StructuredAppendSequenceNumber int
	StructuredAppendParity         int
	SymbologyModifier              int
}

// NewDecoderResult builds a result without structured-append information.
func NewDecoderResult(rawBytes []byte, text string, byteSegments [][]byte, ecLevel string) *DecoderResult {
	return NewDecoderResultSA(rawBytes, text, byteSegments, ecLevel, -1, -1, 0)
}

// NewDecoderResultSA builds a result carrying structured-append sequence and
// parity fields (-1 when absent) and the symbology modifier.
func NewDecoderResultSA(rawBytes []byte, text string, byteSegments [][]byte,
	ecLevel string, saSequence, saParity, symbologyModifier int) *DecoderResult {
	numBits := 8 * len(rawBytes)
	return &DecoderResult{
		RawBytes:                       rawBytes,
		NumBits:                        numBits,
		Text:                           text,
		ByteSegments:                   byteSegments,
		ECLevel:                        ecLevel,
		StructuredAppendSequenceNumber: saSequence,
		StructuredAppendParity:         saParity,
		SymbologyModifier:              symbologyModifier,
	}
}

// HasStructuredAppend reports whether this symbol is part of a structured
// append sequence.
func (d *DecoderResult) HasStructuredAppend() bool {
	return d.StructuredAppendParity >= 0 && d.StructuredAppendSequenceNumber >= 0
}
