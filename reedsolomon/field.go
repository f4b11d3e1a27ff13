// Package reedsolomon implements Reed-Solomon error correction over GF(2^m).
package reedsolomon

import "fmt"

// Field is a Galois field GF(2^m) described by a primitive polynomial.
// Instances are immutable once built and safe to share between goroutines.
type Field struct {
	expTable      []int
	logTable      []int
	zero          *Poly
	one           *Poly
	size          int
	primitive     int
	generatorBase int
}

// The fields used by the supported symbologies. generatorBase records the
// power of alpha at which syndrome evaluation starts; symbologies whose
// generator polynomial begins at alpha^1 need a corrective factor in
// Forney's formula.
var (
	QRField256         = NewField(0x011D, 256, 0)  // x^8 + x^4 + x^3 + x^2 + 1
	DataMatrixField256 = NewField(0x012D, 256, 1)  // x^8 + x^5 + x^3 + x^2 + 1
	AztecParam         = NewField(0x0013, 16, 1)   // x^4 + x + 1
	AztecData6         = NewField(0x0043, 64, 1)   // x^6 + x + 1
	AztecData8         = DataMatrixField256
	AztecData10        = NewField(0x0409, 1024, 1) // x^10 + x^3 + 1
	AztecData12        = NewField(0x1069, 4096, 1) // x^12 + x^6 + x^5 + x^3 + 1
	MaxiCodeField64    = AztecData6
)

// NewField builds GF(size) for the given primitive polynomial, precomputing
// the exponent and logarithm tables.
func NewField(primitive, size, generatorBase int) *Field {
	f := &Field{
		primitive:     primitive,
		size:          size,
		generatorBase: generatorBase,
		expTable:      make([]int, size),
		logTable:      make([]int, size),
	}

	x := 1
	for i := 0; i < size; i++ {
		f.expTable[i] = x
		x <<= 1
		if x >= size {
			x ^= primitive
			x &= size - 1
		}
	}
	for i := 0; i < size-1; i++ {
		f.logTable[f.expTable[i]] = i
	}
	// logTable[0] stays 0 and must never be consulted.

	f.zero = newPoly(f, []int{0})
	f.one = newPoly(f, []int{1})
	return f
}

// Zero returns the zero polynomial over this field.
func (f *Field) Zero() *Poly { return f.zero }

// One returns the unit polynomial over this field.
func (f *Field) One() *Poly { return f.one }

// Monomial returns coefficient * x^degree.
func (f *Field) Monomial(degree, coefficient int) *Poly {
	if degree < 0 {
		panic("reedsolomon: negative degree")
	}
	if coefficient == 0 {
		return f.zero
	}
	coefficients := make([]int, degree+1)
	coefficients[0] = coefficient
	return newPoly(f, coefficients)
}

// AddOrSubtract returns a + b, which equals a - b in characteristic 2.
func AddOrSubtract(a, b int) int {
	return a ^ b
}

// Exp returns alpha^a.
func (f *Field) Exp(a int) int {
	return f.expTable[a%(f.size-1)]
}

// Log returns the discrete logarithm of a. a must be nonzero.
func (f *Field) Log(a int) int {
	if a == 0 {
		panic("reedsolomon: log(0)")
	}
	return f.logTable[a]
}

// Inverse returns the multiplicative inverse of a. Inverting zero is a bug
// in the caller, not bad data, and panics.
func (f *Field) Inverse(a int) int {
	if a == 0 {
		panic("reedsolomon: inverse(0)")
	}
	return f.expTable[f.size-f.logTable[a]-1]
}

// Multiply returns a * b.
func (f *Field) Multiply(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return f.expTable[(f.logTable[a]+f.logTable[b])%(f.size-1)]
}

// Size returns the number of field elements.
func (f *Field) Size() int { return f.size }

// GeneratorBase returns the starting power for syndrome evaluation.
func (f *Field) GeneratorBase() int { return f.generatorBase }

// String identifies the field by its primitive polynomial and size.
func (f *Field) String() string {
	return fmt.Sprintf("GF(0x%x,%d)", f.primitive, f.size)
}
