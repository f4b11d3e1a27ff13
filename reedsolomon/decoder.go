package reedsolomon

import "errors"

// ErrDecode indicates that error correction failed: the received codewords
// hold more errors than the parity can repair, or the algebra became
// inconsistent along the way.
var ErrDecode = errors.New("reedsolomon: decoding error")

// Decoder corrects errors in Reed-Solomon encoded codeword blocks. It
// implements syndrome computation, the extended Euclidean algorithm, Chien
// search and Forney's formula over the generic Field.
type Decoder struct {
	field *Field
}

// NewDecoder returns a Decoder over the given field.
func NewDecoder(field *Field) *Decoder {
	return &Decoder{field: field}
}

// Decode repairs up to twoS/2 errors in received in place, where twoS is
// the number of error-correction codewords at the end of the block. It
// returns the number of errors corrected.
func (d *Decoder) Decode(received []int, twoS int) (int, error) {
	poly := newPoly(d.field, received)
	syndromes := make([]int, twoS)
	clean := true
	for i := 0; i < twoS; i++ {
		eval := poly.EvaluateAt(d.field.Exp(i + d.field.GeneratorBase()))
		syndromes[twoS-1-i] = eval
		if eval != 0 {
			clean = false
		}
	}
	if clean {
		return 0, nil
	}

	syndrome := newPoly(d.field, syndromes)
	sigma, omega, err := d.runEuclideanAlgorithm(d.field.Monomial(twoS, 1), syndrome, twoS)
	if err != nil {
		return 0, err
	}
	locations, err := d.findErrorLocations(sigma)
	if err != nil {
		return 0, err
	}
	magnitudes := d.findErrorMagnitudes(omega, locations)
	for i, loc := range locations {
		position := len(received) - 1 - d.field.Log(loc)
		if position < 0 {
			return 0, ErrDecode // bad error location
		}
		received[position] = AddOrSubtract(received[position], magnitudes[i])
	}
	return len(locations), nil
}

// runEuclideanAlgorithm reduces (a, b) until the remainder degree drops
// below R/2, yielding the error locator sigma and evaluator omega.
func (d *Decoder) runEuclideanAlgorithm(a, b *Poly, R int) (sigma, omega *Poly, err error) {
	if a.Degree() < b.Degree() {
		a, b = b, a
	}

	rLast, r := a, b
	tLast, t := d.field.Zero(), d.field.One()

	for 2*r.Degree() >= R {
		rLastLast, tLastLast := rLast, tLast
		rLast, tLast = r, t

		if rLast.IsZero() {
			// Division by the zero polynomial: syndrome was degenerate.
			return nil, nil, ErrDecode
		}
		q, rem := rLastLast.Divide(rLast)
		r = rem
		t = q.MultiplyPoly(tLast).AddOrSubtractPoly(tLastLast)

		if r.Degree() >= rLast.Degree() {
			return nil, nil, ErrDecode // division failed to reduce degree
		}
	}

	sigmaTildeAtZero := t.Coefficient(0)
	if sigmaTildeAtZero == 0 {
		return nil, nil, ErrDecode // sigma~(0) == 0
	}

	inverse := d.field.Inverse(sigmaTildeAtZero)
	return t.MultiplyScalar(inverse), r.MultiplyScalar(inverse), nil
}

// findErrorLocations runs a Chien search over the whole field for the roots
// of the error locator polynomial.
func (d *Decoder) findErrorLocations(errorLocator *Poly) ([]int, error) {
	numErrors := errorLocator.Degree()
	if numErrors == 1 {
		return []int{errorLocator.Coefficient(1)}, nil
	}
	locations := make([]int, 0, numErrors)
	for i := 1; i < d.field.Size() && len(locations) < numErrors; i++ {
		if errorLocator.EvaluateAt(i) == 0 {
			locations = append(locations, d.field.Inverse(i))
		}
	}
	if len(locations) != numErrors {
		return nil, ErrDecode // locator degree does not match its root count
	}
	return locations, nil
}

// findErrorMagnitudes applies Forney's formula at each error location.
func (d *Decoder) findErrorMagnitudes(errorEvaluator *Poly, locations []int) []int {
	s := len(locations)
	magnitudes := make([]int, s)
	for i := 0; i < s; i++ {
		xiInverse := d.field.Inverse(locations[i])
		denominator := 1
		for j := 0; j < s; j++ {
			if i == j {
				continue
			}
			term := d.field.Multiply(locations[j], xiInverse)
			// The denominator factor is 1 ^ term. Computed via the parity
			// of term to sidestep a historical JIT miscompilation of the
			// direct XOR; the two extra bit operations are always correct.
			termPlus1 := term | 1
			if term&1 != 0 {
				termPlus1 = term &^ 1
			}
			denominator = d.field.Multiply(denominator, termPlus1)
		}
		magnitudes[i] = d.field.Multiply(errorEvaluator.EvaluateAt(xiInverse), d.field.Inverse(denominator))
		if d.field.GeneratorBase() != 0 {
			magnitudes[i] = d.field.Multiply(magnitudes[i], xiInverse)
		}
	}
	return magnitudes
}
