// Package gridscan is the core decoding engine of a multi-format barcode
// library. It decodes an already-binarized module grid; locating and
// binarizing symbols in an image is the job of an upstream collaborator.
package gridscan

import (
	"sort"
	"sync"

	"github.com/gridscan/gridscan/bitgrid"
	"github.com/gridscan/gridscan/internal"
)

// Format identifies a barcode symbology.
type Format int

const (
	FormatQRCode Format = iota
	FormatDataMatrix
	FormatAztec
	FormatPDF417
	FormatMaxiCode
	FormatRSSExpanded
)

// String returns the conventional name of the format.
func (f Format) String() string {
	switch f {
	case FormatQRCode:
		return "QR_CODE"
	case FormatDataMatrix:
		return "DATA_MATRIX"
	case FormatAztec:
		return "AZTEC"
	case FormatPDF417:
		return "PDF_417"
	case FormatMaxiCode:
		return "MAXICODE"
	case FormatRSSExpanded:
		return "RSS_EXPANDED"
	default:
		return "UNKNOWN"
	}
}

// DecodeOptions carries per-call hints. A nil *DecodeOptions is valid and
// means "no hints".
type DecodeOptions struct {
	// CharacterSet overrides byte-segment charset guessing when set.
	CharacterSet string
	// TryHarder is a hint for readers to spend more effort on degraded
	// input. No decoder in this module reads it.
	TryHarder bool
}

// CharacterSetHint returns the character set hint, tolerating a nil receiver.
func (o *DecodeOptions) CharacterSetHint() string {
	if o == nil {
		return ""
	}
	return o.CharacterSet
}

// MatrixDecoder decodes one 2D symbology from a module grid.
type MatrixDecoder interface {
	Decode(bits *bitgrid.BitMatrix, opts *DecodeOptions) (*internal.DecoderResult, error)
}

var (
	decodersMu sync.RWMutex
	decoders   = map[Format]MatrixDecoder{}
)

// RegisterMatrixDecoder installs the decoder for a format. Symbology packages
// call this from init(); importing a symbology package is what makes its
// format decodable.
func RegisterMatrixDecoder(format Format, d MatrixDecoder) {
	decodersMu.Lock()
	defer decodersMu.Unlock()
	decoders[format] = d
}

// MatrixDecoderFor returns the registered decoder for a format.
func MatrixDecoderFor(format Format) (MatrixDecoder, bool) {
	decodersMu.RLock()
	defer decodersMu.RUnlock()
	d, ok := decoders[format]
	return d, ok
}

// RegisteredFormats returns the formats with a registered decoder, in
// Format order.
func RegisteredFormats() []Format {
	decodersMu.RLock()
	defer decodersMu.RUnlock()
	formats := make([]Format, 0, len(decoders))
	for f := range decoders {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// DecodeMatrix decodes the module grid with the decoder registered for the
// given format.
func DecodeMatrix(format Format, bits *bitgrid.BitMatrix, opts *DecodeOptions) (*internal.DecoderResult, error) {
	d, ok := MatrixDecoderFor(format)
	if !ok {
		return nil, ErrNotFound
	}
	return d.Decode(bits, opts)
}
