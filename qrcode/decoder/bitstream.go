package decoder

import (
	"fmt"
	"strings"

	gridscan "github.com/gridscan/gridscan"
	"github.com/gridscan/gridscan/bitgrid"
	"github.com/gridscan/gridscan/charset"
	"github.com/gridscan/gridscan/internal"
)

const alphanumericChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

const gb2312Subset = 1

// DecodeBitStream interprets the corrected data codewords as a sequence of
// mode-tagged segments and assembles the text payload.
func DecodeBitStream(data []byte, version *Version, ecLevel ErrorCorrectionLevel, characterSetHint string) (*internal.DecoderResult, error) {
	src := bitgrid.NewSource(data)
	var text strings.Builder
	text.Grow(50)
	var byteSegments [][]byte
	saSequence := -1
	saParity := -1

	var currentECI *charset.ECI
	fnc1InEffect := false
	hasFNC1First := false
	hasFNC1Second := false

	for {
		var mode Mode
		if src.Available() < 4 {
			// An implicit terminator: the stream may end without one when
			// the symbol is full.
			mode = ModeTerminator
		} else {
			modeBits, err := src.ReadBits(4)
			if err != nil {
				return nil, gridscan.ErrFormat
			}
			if mode, err = ModeForBits(modeBits); err != nil {
				return nil, gridscan.ErrFormat
			}
		}

		switch mode {
		case ModeTerminator:
		case ModeFNC1FirstPosition:
			hasFNC1First = true
			fnc1InEffect = true
		case ModeFNC1SecondPosition:
			hasFNC1Second = true
			fnc1InEffect = true
		case ModeStructuredAppend:
			if src.Available() < 16 {
				return nil, gridscan.ErrFormat
			}
			saSequence, _ = src.ReadBits(8)
			saParity, _ = src.ReadBits(8)
		case ModeECI:
			value, err := parseECIValue(src)
			if err != nil {
				return nil, err
			}
			eci, eciErr := charset.ECIByValue(value)
			if eciErr != nil {
				return nil, gridscan.ErrFormat
			}
			currentECI = eci
		case ModeHanzi:
			subset, _ := src.ReadBits(4)
			count, err := src.ReadBits(mode.CharacterCountBits(version))
			if err != nil {
				return nil, gridscan.ErrFormat
			}
			if subset == gb2312Subset {
				if err := decodeHanziSegment(src, &text, count); err != nil {
					return nil, err
				}
			}
		default:
			count, err := src.ReadBits(mode.CharacterCountBits(version))
			if err != nil {
				return nil, gridscan.ErrFormat
			}
			switch mode {
			case ModeNumeric:
				if err := decodeNumericSegment(src, &text, count); err != nil {
					return nil, err
				}
			case ModeAlphanumeric:
				if err := decodeAlphanumericSegment(src, &text, count, fnc1InEffect); err != nil {
					return nil, err
				}
			case ModeByte:
				segment, err := decodeByteSegment(src, &text, count, currentECI, characterSetHint)
				if err != nil {
					return nil, err
				}
				byteSegments = append(byteSegments, segment)
			case ModeKanji:
				if err := decodeKanjiSegment(src, &text, count); err != nil {
					return nil, err
				}
			default:
				return nil, gridscan.ErrFormat
			}
		}

		if mode == ModeTerminator {
			break
		}
	}

	result := internal.NewDecoderResultSA(data, text.String(), byteSegments, ecLevel.String(),
		saSequence, saParity, symbologyModifier(currentECI != nil, hasFNC1First, hasFNC1Second))
	return result, nil
}

// symbologyModifier computes the ]Q modifier digit per ISO/IEC 18004
// Annex F from the ECI and FNC1 flags.
func symbologyModifier(hasECI, fnc1First, fnc1Second bool) int {
	switch {
	case fnc1First:
		if hasECI {
			return 4
		}
		return 3
	case fnc1Second:
		if hasECI {
			return 6
		}
		return 5
	case hasECI:
		return 2
	default:
		return 1
	}
}

func decodeHanziSegment(src *bitgrid.Source, text *strings.Builder, count int) error {
	if count*13 > src.Available() {
		return gridscan.ErrFormat
	}
	// Each 13-bit value maps to a GB2312 double byte.
	buf := make([]byte, 0, 2*count)
	for ; count > 0; count-- {
		twoBytes, _ := src.ReadBits(13)
		assembled := twoBytes/0x060<<8 | twoBytes%0x060
		if assembled < 0x00A00 {
			assembled += 0x0A1A1
		} else {
			assembled += 0x0A6A1
		}
		buf = append(buf, byte(assembled>>8), byte(assembled))
	}
	text.WriteString(charset.DecodeBytes(buf, "GB18030"))
	return nil
}

func decodeKanjiSegment(src *bitgrid.Source, text *strings.Builder, count int) error {
	if count*13 > src.Available() {
		return gridscan.ErrFormat
	}
	// Each 13-bit value maps to a Shift-JIS double byte.
	buf := make([]byte, 0, 2*count)
	for ; count > 0; count-- {
		twoBytes, _ := src.ReadBits(13)
		assembled := twoBytes/0x0C0<<8 | twoBytes%0x0C0
		if assembled < 0x01F00 {
			assembled += 0x08140
		} else {
			assembled += 0x0C140
		}
		buf = append(buf, byte(assembled>>8), byte(assembled))
	}
	text.WriteString(charset.DecodeBytes(buf, "Shift_JIS"))
	return nil
}

func decodeByteSegment(src *bitgrid.Source, text *strings.Builder, count int,
	currentECI *charset.ECI, characterSetHint string) ([]byte, error) {
	if 8*count > src.Available() {
		return nil, gridscan.ErrFormat
	}
	segment := make([]byte, count)
	for i := range segment {
		value, _ := src.ReadBits(8)
		segment[i] = byte(value)
	}

	if currentECI != nil {
		text.WriteString(currentECI.Decode(segment))
	} else {
		text.WriteString(charset.DecodeBytes(segment, charset.GuessEncoding(segment, characterSetHint)))
	}
	return segment, nil
}

func toAlphanumericChar(value int) (byte, error) {
	if value >= len(alphanumericChars) {
		return 0, gridscan.ErrFormat
	}
	return alphanumericChars[value], nil
}

func decodeAlphanumericSegment(src *bitgrid.Source, text *strings.Builder, count int, fnc1InEffect bool) error {
	start := text.Len()
	for count > 1 {
		if src.Available() < 11 {
			return gridscan.ErrFormat
		}
		pair, _ := src.ReadBits(11)
		c1, err := toAlphanumericChar(pair / 45)
		if err != nil {
			return err
		}
		c2, err := toAlphanumericChar(pair % 45)
		if err != nil {
			return err
		}
		text.WriteByte(c1)
		text.WriteByte(c2)
		count -= 2
	}
	if count == 1 {
		if src.Available() < 6 {
			return gridscan.ErrFormat
		}
		value, _ := src.ReadBits(6)
		c, err := toAlphanumericChar(value)
		if err != nil {
			return err
		}
		text.WriteByte(c)
	}
	if fnc1InEffect {
		// In GS1 mode "%" encodes the FNC1 separator and "%%" a literal "%".
		s := text.String()
		var rewritten strings.Builder
		rewritten.WriteString(s[:start])
		for i := start; i < len(s); i++ {
			if s[i] == '%' {
				if i < len(s)-1 && s[i+1] == '%' {
					rewritten.WriteByte('%')
					i++
				} else {
					rewritten.WriteByte(0x1D)
				}
			} else {
				rewritten.WriteByte(s[i])
			}
		}
		text.Reset()
		text.WriteString(rewritten.String())
	}
	return nil
}

func decodeNumericSegment(src *bitgrid.Source, text *strings.Builder, count int) error {
	for count >= 3 {
		if src.Available() < 10 {
			return gridscan.ErrFormat
		}
		threeDigits, _ := src.ReadBits(10)
		if threeDigits >= 1000 {
			return gridscan.ErrFormat
		}
		fmt.Fprintf(text, "%03d", threeDigits)
		count -= 3
	}
	if count == 2 {
		if src.Available() < 7 {
			return gridscan.ErrFormat
		}
		twoDigits, _ := src.ReadBits(7)
		if twoDigits >= 100 {
			return gridscan.ErrFormat
		}
		fmt.Fprintf(text, "%02d", twoDigits)
	} else if count == 1 {
		if src.Available() < 4 {
			return gridscan.ErrFormat
		}
		digit, _ := src.ReadBits(4)
		if digit >= 10 {
			return gridscan.ErrFormat
		}
		fmt.Fprintf(text, "%d", digit)
	}
	return nil
}

// parseECIValue reads the 1-3 byte variable-length ECI designator.
func parseECIValue(src *bitgrid.Source) (int, error) {
	first, err := src.ReadBits(8)
	if err != nil {
		return 0, gridscan.ErrFormat
	}
	switch {
	case first&0x80 == 0:
		return first & 0x7F, nil
	case first&0xC0 == 0x80:
		second, err := src.ReadBits(8)
		if err != nil {
			return 0, gridscan.ErrFormat
		}
		return (first&0x3F)<<8 | second, nil
	case first&0xE0 == 0xC0:
		rest, err := src.ReadBits(16)
		if err != nil {
			return 0, gridscan.ErrFormat
		}
		return (first&0x1F)<<16 | rest, nil
	}
	return 0, gridscan.ErrFormat
}
