// Package decoder implements QR code decoding from a module grid.
package decoder

import "errors"

var (
	errInvalidECLevel = errors.New("qrcode/decoder: invalid error correction level")
	errInvalidMode    = errors.New("qrcode/decoder: invalid mode")
	errInvalidVersion = errors.New("qrcode/decoder: invalid version number")
)

// ErrorCorrectionLevel is one of the four QR redundancy levels.
type ErrorCorrectionLevel int

const (
	ECLevelL ErrorCorrectionLevel = iota // recovers ~7% of codewords
	ECLevelM                             // ~15%
	ECLevelQ                             // ~25%
	ECLevelH                             // ~30%
)

// Bits returns the 2-bit wire encoding of the level.
func (ecl ErrorCorrectionLevel) Bits() int {
	switch ecl {
	case ECLevelL:
		return 0x01
	case ECLevelM:
		return 0x00
	case ECLevelQ:
		return 0x03
	case ECLevelH:
		return 0x02
	}
	return 0
}

// Ordinal returns the table index of the level (L=0 .. H=3).
func (ecl ErrorCorrectionLevel) Ordinal() int {
	return int(ecl)
}

func (ecl ErrorCorrectionLevel) String() string {
	switch ecl {
	case ECLevelL:
		return "L"
	case ECLevelM:
		return "M"
	case ECLevelQ:
		return "Q"
	case ECLevelH:
		return "H"
	}
	return "?"
}

// ECLevelForBits maps the 2-bit wire encoding back to a level.
func ECLevelForBits(bits int) (ErrorCorrectionLevel, error) {
	switch bits {
	case 0:
		return ECLevelM, nil
	case 1:
		return ECLevelL, nil
	case 2:
		return ECLevelH, nil
	case 3:
		return ECLevelQ, nil
	}
	return 0, errInvalidECLevel
}
