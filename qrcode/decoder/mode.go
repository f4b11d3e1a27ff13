package decoder

// Mode is a 4-bit data segment mode indicator.
type Mode int

const (
	ModeTerminator         Mode = 0x00
	ModeNumeric            Mode = 0x01
	ModeAlphanumeric       Mode = 0x02
	ModeStructuredAppend   Mode = 0x03
	ModeByte               Mode = 0x04
	ModeFNC1FirstPosition  Mode = 0x05
	ModeECI                Mode = 0x07
	ModeKanji              Mode = 0x08
	ModeFNC1SecondPosition Mode = 0x09
	ModeHanzi              Mode = 0x0D
)

// countBitsByRange holds character-count field widths for version ranges
// 1-9, 10-26 and 27-40.
var countBitsByRange = map[Mode][3]int{
	ModeTerminator:         {0, 0, 0},
	ModeNumeric:            {10, 12, 14},
	ModeAlphanumeric:       {9, 11, 13},
	ModeStructuredAppend:   {0, 0, 0},
	ModeByte:               {8, 16, 16},
	ModeECI:                {0, 0, 0},
	ModeKanji:              {8, 10, 12},
	ModeFNC1FirstPosition:  {0, 0, 0},
	ModeFNC1SecondPosition: {0, 0, 0},
	ModeHanzi:              {8, 10, 12},
}

// ModeForBits maps a 4-bit mode indicator to a Mode.
func ModeForBits(bits int) (Mode, error) {
	switch bits {
	case 0x0, 0x1, 0x2, 0x3, 0x4, 0x5, 0x7, 0x8, 0x9, 0xD:
		return Mode(bits), nil
	}
	return 0, errInvalidMode
}

// CharacterCountBits returns the width of the character count field for
// this mode in the given version.
func (m Mode) CharacterCountBits(version *Version) int {
	switch {
	case version.Number <= 9:
		return countBitsByRange[m][0]
	case version.Number <= 26:
		return countBitsByRange[m][1]
	default:
		return countBitsByRange[m][2]
	}
}

// Bits returns the 4-bit wire encoding of the mode.
func (m Mode) Bits() int {
	return int(m)
}
