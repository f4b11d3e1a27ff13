package oned

import "github.com/gridscan/gridscan/bitgrid"

// DataCharacter is one decoded RSS data character: its 12-bit value and its
// contribution to the symbol checksum.
type DataCharacter struct {
	Value           int
	ChecksumPortion int
}

// FinderPattern identifies which of the RSS finder patterns separates a
// pair of data characters.
type FinderPattern struct {
	Value int
}

// ExpandedPair is two data characters around a finder pattern in an RSS
// Expanded symbol. The final pair of a symbol may lack its right character.
type ExpandedPair struct {
	LeftChar      *DataCharacter
	RightChar     *DataCharacter
	FinderPattern FinderPattern
}

// MustBeLast reports whether this pair can only appear at the end of a
// symbol.
func (p *ExpandedPair) MustBeLast() bool {
	return p.RightChar == nil
}

// Equal reports whether two pairs decode identically.
func (p *ExpandedPair) Equal(other *ExpandedPair) bool {
	return dataCharEqual(p.LeftChar, other.LeftChar) &&
		dataCharEqual(p.RightChar, other.RightChar) &&
		p.FinderPattern.Value == other.FinderPattern.Value
}

func dataCharEqual(a, b *DataCharacter) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Value == b.Value && a.ChecksumPortion == b.ChecksumPortion
}

// BuildBitArray serializes the data characters of the pairs into the
// general-purpose bit stream: 12 bits per character, most significant bit
// first, skipping the first pair's left character (it carries the symbol
// header, not payload).
func BuildBitArray(pairs []*ExpandedPair) *bitgrid.BitArray {
	charNumber := len(pairs)*2 - 1
	if pairs[len(pairs)-1].RightChar == nil {
		charNumber--
	}

	binary := bitgrid.NewBitArray(12 * charNumber)
	accPos := 0

	appendValue := func(value int) {
		for i := 11; i >= 0; i-- {
			if value&(1<<uint(i)) != 0 {
				binary.Set(accPos)
			}
			accPos++
		}
	}

	appendValue(pairs[0].RightChar.Value)
	for _, pair := range pairs[1:] {
		appendValue(pair.LeftChar.Value)
		if pair.RightChar != nil {
			appendValue(pair.RightChar.Value)
		}
	}
	return binary
}
