// Package decoder implements the PDF417 error correction layer, a
// Reed-Solomon variant over the prime field GF(929).
package decoder

// ModulusGF is a prime-order field: arithmetic is modular, not XOR-based,
// so it cannot share the characteristic-2 field implementation.
type ModulusGF struct {
	expTable []int
	logTable []int
	zero     *ModulusPoly
	one      *ModulusPoly
	modulus  int
}

// PDF417Field is the field used by PDF417: modulus 929, generator 3.
// A var initialization (not init()) so other package-level state can
// depend on it through Go's initialization ordering.
var PDF417Field = NewModulusGF(929, 3)

// NewModulusGF builds the field for a prime modulus and generator,
// precomputing the power and logarithm tables.
func NewModulusGF(modulus, generator int) *ModulusGF {
	f := &ModulusGF{
		modulus:  modulus,
		expTable: make([]int, modulus),
		logTable: make([]int, modulus),
	}

	x := 1
	for i := 0; i < modulus; i++ {
		f.expTable[i] = x
		x = x * generator % modulus
	}
	for i := 0; i < modulus-1; i++ {
		f.logTable[f.expTable[i]] = i
	}
	// logTable[0] stays 0 and must never be consulted.

	f.zero = NewModulusPoly(f, []int{0})
	f.one = NewModulusPoly(f, []int{1})
	return f
}

// Zero returns the zero polynomial over this field.
func (f *ModulusGF) Zero() *ModulusPoly { return f.zero }

// One returns the unit polynomial over this field.
func (f *ModulusGF) One() *ModulusPoly { return f.one }

// Monomial returns coefficient * x^degree.
func (f *ModulusGF) Monomial(degree, coefficient int) *ModulusPoly {
	if degree < 0 {
		panic("pdf417/decoder: negative degree")
	}
	if coefficient == 0 {
		return f.zero
	}
	coefficients := make([]int, degree+1)
	coefficients[0] = coefficient
	return NewModulusPoly(f, coefficients)
}

// Add returns (a + b) mod the field order.
func (f *ModulusGF) Add(a, b int) int {
	return (a + b) % f.modulus
}

// Subtract returns (a - b) mod the field order.
func (f *ModulusGF) Subtract(a, b int) int {
	return (f.modulus + a - b) % f.modulus
}

// Exp returns generator^a.
func (f *ModulusGF) Exp(a int) int {
	return f.expTable[a]
}

// Log returns the discrete logarithm of a. a must be nonzero.
func (f *ModulusGF) Log(a int) int {
	if a == 0 {
		panic("pdf417/decoder: log(0)")
	}
	return f.logTable[a]
}

// Inverse returns the multiplicative inverse of a. a must be nonzero.
func (f *ModulusGF) Inverse(a int) int {
	if a == 0 {
		panic("pdf417/decoder: inverse(0)")
	}
	return f.expTable[f.modulus-f.logTable[a]-1]
}

// Multiply returns a * b in this field.
func (f *ModulusGF) Multiply(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return f.expTable[(f.logTable[a]+f.logTable[b])%(f.modulus-1)]
}

// Size returns the field order.
func (f *ModulusGF) Size() int {
	return f.modulus
}
