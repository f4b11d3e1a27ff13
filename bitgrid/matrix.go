package bitgrid

import "strings"

// BitMatrix is a width x height grid of bits with the origin at the top
// left. x addresses the column, y the row. Rows are packed into uint64
// words.
type BitMatrix struct {
	width    int
	height   int
	rowWords int
	words    []uint64
}

// NewBitMatrix returns a square matrix of the given dimension.
func NewBitMatrix(dimension int) *BitMatrix {
	return NewBitMatrixWithSize(dimension, dimension)
}

// NewBitMatrixWithSize returns a width x height matrix, all bits unset.
func NewBitMatrixWithSize(width, height int) *BitMatrix {
	if width < 1 || height < 1 {
		panic("bitgrid: dimensions must be greater than 0")
	}
	rowWords := wordsFor(width)
	return &BitMatrix{
		width:    width,
		height:   height,
		rowWords: rowWords,
		words:    make([]uint64, rowWords*height),
	}
}

// ParseBools builds a matrix from a rectangular 2D boolean slice. Ragged or
// empty input panics.
func ParseBools(grid [][]bool) *BitMatrix {
	if len(grid) == 0 || len(grid[0]) == 0 {
		panic("bitgrid: empty input")
	}
	height := len(grid)
	width := len(grid[0])
	m := NewBitMatrixWithSize(width, height)
	for y, row := range grid {
		if len(row) != width {
			panic("bitgrid: ragged input")
		}
		for x, v := range row {
			if v {
				m.Set(x, y)
			}
		}
	}
	return m
}

// ParseString builds a matrix from a textual rendering, using setStr and
// unsetStr as the two cell tokens. Rows are newline separated and must all
// be the same length.
func ParseString(repr, setStr, unsetStr string) *BitMatrix {
	cells := make([]bool, len(repr))
	n := 0
	rowStart := 0
	rowLength := -1
	rows := 0
	endRow := func() {
		if n > rowStart {
			if rowLength == -1 {
				rowLength = n - rowStart
			} else if n-rowStart != rowLength {
				panic("bitgrid: row lengths do not match")
			}
			rowStart = n
			rows++
		}
	}
	pos := 0
	for pos < len(repr) {
		switch {
		case repr[pos] == '\n' || repr[pos] == '\r':
			endRow()
			pos++
		case strings.HasPrefix(repr[pos:], setStr):
			pos += len(setStr)
			cells[n] = true
			n++
		case strings.HasPrefix(repr[pos:], unsetStr):
			pos += len(unsetStr)
			n++
		default:
			panic("bitgrid: illegal character encountered")
		}
	}
	endRow()
	m := NewBitMatrixWithSize(rowLength, rows)
	for i := 0; i < n; i++ {
		if cells[i] {
			m.Set(i%rowLength, i/rowLength)
		}
	}
	return m
}

// Get reports whether the bit at (x, y) is set.
func (m *BitMatrix) Get(x, y int) bool {
	return m.words[y*m.rowWords+x>>6]&(1<<uint(x&63)) != 0
}

// Set sets the bit at (x, y).
func (m *BitMatrix) Set(x, y int) {
	m.words[y*m.rowWords+x>>6] |= 1 << uint(x&63)
}

// Unset clears the bit at (x, y).
func (m *BitMatrix) Unset(x, y int) {
	m.words[y*m.rowWords+x>>6] &^= 1 << uint(x&63)
}

// Flip inverts the bit at (x, y).
func (m *BitMatrix) Flip(x, y int) {
	m.words[y*m.rowWords+x>>6] ^= 1 << uint(x&63)
}

// Clear unsets every bit.
func (m *BitMatrix) Clear() {
	for i := range m.words {
		m.words[i] = 0
	}
}

// SetRegion sets every bit in the rectangle with top-left (left, top) and
// the given width and height. The rectangle must lie inside the matrix.
func (m *BitMatrix) SetRegion(left, top, width, height int) {
	if top < 0 || left < 0 {
		panic("bitgrid: left and top must be nonnegative")
	}
	if height < 1 || width < 1 {
		panic("bitgrid: height and width must be at least 1")
	}
	right := left + width
	bottom := top + height
	if bottom > m.height || right > m.width {
		panic("bitgrid: region must fit inside the matrix")
	}
	for y := top; y < bottom; y++ {
		offset := y * m.rowWords
		for x := left; x < right; x++ {
			m.words[offset+x>>6] |= 1 << uint(x&63)
		}
	}
}

// Row copies row y into the given BitArray, allocating one if row is nil or
// too small.
func (m *BitMatrix) Row(y int, row *BitArray) *BitArray {
	if row == nil || row.Size() < m.width {
		row = NewBitArray(m.width)
	} else {
		row.Clear()
	}
	offset := y * m.rowWords
	for w := 0; w < m.rowWords; w++ {
		row.SetWord(w<<6, m.words[offset+w])
	}
	return row
}

// SetRow overwrites row y from the given BitArray.
func (m *BitMatrix) SetRow(y int, row *BitArray) {
	copy(m.words[y*m.rowWords:], row.Words()[:m.rowWords])
}

// Transpose returns a new matrix with rows and columns exchanged.
func (m *BitMatrix) Transpose() *BitMatrix {
	t := NewBitMatrixWithSize(m.height, m.width)
	for y := 0; y < m.height; y++ {
		offset := y * m.rowWords
		for x := 0; x < m.width; x++ {
			if m.words[offset+x>>6]&(1<<uint(x&63)) != 0 {
				t.Set(y, x)
			}
		}
	}
	return t
}

// Width returns the matrix width in bits.
func (m *BitMatrix) Width() int { return m.width }

// Height returns the matrix height in bits.
func (m *BitMatrix) Height() int { return m.height }

// Clone returns a deep copy.
func (m *BitMatrix) Clone() *BitMatrix {
	w := make([]uint64, len(m.words))
	copy(w, m.words)
	return &BitMatrix{width: m.width, height: m.height, rowWords: m.rowWords, words: w}
}

// Equal reports whether both matrices have the same dimensions and bits.
func (m *BitMatrix) Equal(other *BitMatrix) bool {
	if m.width != other.width || m.height != other.height {
		return false
	}
	for i := range m.words {
		if m.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// String renders the matrix with "X " for set and "  " for unset cells.
func (m *BitMatrix) String() string {
	return m.StringWithChars("X ", "  ")
}

// StringWithChars renders the matrix with the given cell tokens.
func (m *BitMatrix) StringWithChars(setStr, unsetStr string) string {
	var sb strings.Builder
	sb.Grow(m.height * (m.width + 1) * len(setStr))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.Get(x, y) {
				sb.WriteString(setStr)
			} else {
				sb.WriteString(unsetStr)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
