// Package charset maps Extended Channel Interpretation values to text
// encodings and converts decoded byte segments to UTF-8.
package charset

import (
	"errors"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// ErrInvalidECI indicates an ECI value outside the character-set range.
var ErrInvalidECI = errors.New("charset: invalid ECI value")

// ECI is one character-set assignment from the ECI registry. enc is the
// x/text decoder for the assignment; nil means the bytes are already UTF-8
// compatible and pass through unchanged.
type ECI struct {
	Value   int
	Name    string
	enc     encoding.Encoding
	aliases []string
}

var allECIs = []*ECI{
	{0, "Cp437", charmap.CodePage437, []string{"IBM437"}},
	{1, "ISO8859_1", charmap.ISO8859_1, []string{"ISO-8859-1", "Latin1"}},
	{4, "ISO8859_2", charmap.ISO8859_2, []string{"ISO-8859-2"}},
	{5, "ISO8859_3", charmap.ISO8859_3, []string{"ISO-8859-3"}},
	{6, "ISO8859_4", charmap.ISO8859_4, []string{"ISO-8859-4"}},
	{7, "ISO8859_5", charmap.ISO8859_5, []string{"ISO-8859-5"}},
	{8, "ISO8859_6", charmap.ISO8859_6, []string{"ISO-8859-6"}},
	{9, "ISO8859_7", charmap.ISO8859_7, []string{"ISO-8859-7"}},
	{10, "ISO8859_8", charmap.ISO8859_8, []string{"ISO-8859-8"}},
	{11, "ISO8859_9", charmap.ISO8859_9, []string{"ISO-8859-9"}},
	{12, "ISO8859_10", charmap.ISO8859_10, []string{"ISO-8859-10"}},
	// ISO-8859-11 is not in x/text; windows-874 extends it compatibly.
	{13, "ISO8859_11", charmap.Windows874, []string{"ISO-8859-11"}},
	{15, "ISO8859_13", charmap.ISO8859_13, []string{"ISO-8859-13"}},
	{16, "ISO8859_14", charmap.ISO8859_14, []string{"ISO-8859-14"}},
	{17, "ISO8859_15", charmap.ISO8859_15, []string{"ISO-8859-15"}},
	{18, "ISO8859_16", charmap.ISO8859_16, []string{"ISO-8859-16"}},
	{20, "SJIS", japanese.ShiftJIS, []string{"Shift_JIS"}},
	{21, "Cp1250", charmap.Windows1250, []string{"windows-1250"}},
	{22, "Cp1251", charmap.Windows1251, []string{"windows-1251"}},
	{23, "Cp1252", charmap.Windows1252, []string{"windows-1252"}},
	{24, "Cp1256", charmap.Windows1256, []string{"windows-1256"}},
	{25, "UnicodeBigUnmarked", unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), []string{"UTF-16BE", "UnicodeBig"}},
	{26, "UTF8", nil, []string{"UTF-8"}},
	{27, "ASCII", nil, []string{"US-ASCII"}},
	{28, "Big5", traditionalchinese.Big5, nil},
	{29, "GB18030", simplifiedchinese.GB18030, []string{"GB2312", "EUC_CN", "GBK"}},
	{30, "EUC_KR", korean.EUCKR, []string{"EUC-KR"}},
}

// extraValues lists additional registry values that alias an assignment.
var extraValues = map[string][]int{
	"Cp437":     {2},
	"ISO8859_1": {3},
	"ASCII":     {170},
}

var (
	valueToECI = map[int]*ECI{}
	nameToECI  = map[string]*ECI{}
)

func init() {
	for _, eci := range allECIs {
		valueToECI[eci.Value] = eci
		for _, v := range extraValues[eci.Name] {
			valueToECI[v] = eci
		}
		nameToECI[eci.Name] = eci
		for _, alias := range eci.aliases {
			nameToECI[alias] = eci
		}
	}
}

// ECIByValue returns the assignment for an ECI value. Values inside the
// character-set range with no assignment yield nil; values outside it are
// an error.
func ECIByValue(value int) (*ECI, error) {
	if value < 0 || value >= 900 {
		return nil, ErrInvalidECI
	}
	return valueToECI[value], nil
}

// ECIByName returns the assignment for an encoding name or alias.
func ECIByName(name string) *ECI {
	return nameToECI[name]
}

// Decode converts data from this assignment's encoding to a UTF-8 string.
// Undecodable input falls back to a raw byte interpretation.
func (e *ECI) Decode(data []byte) string {
	if e == nil || e.enc == nil {
		return string(data)
	}
	decoded, err := e.enc.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

// DecodeBytes converts data from the named encoding to a UTF-8 string,
// passing unknown encodings through unchanged.
func DecodeBytes(data []byte, name string) string {
	return ECIByName(name).Decode(data)
}
