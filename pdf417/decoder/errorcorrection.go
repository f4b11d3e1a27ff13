package decoder

import gridscan "github.com/gridscan/gridscan"

// ErrorCorrection corrects PDF417 codewords using Reed-Solomon decoding
// over the prime field GF(929).
type ErrorCorrection struct {
	field *ModulusGF
}

// NewErrorCorrection returns an ErrorCorrection over the PDF417 field.
func NewErrorCorrection() *ErrorCorrection {
	return &ErrorCorrection{field: PDF417Field}
}

// Decode repairs received in place given numECCodewords parity codewords
// and the known erasure positions (may be nil). It returns the number of
// errors corrected. The erasure positions do not change the correction:
// erased codewords are located like any other error and count against the
// error capacity.
func (ec *ErrorCorrection) Decode(received []int, numECCodewords int, erasures []int) (int, error) {
	poly := NewModulusPoly(ec.field, received)
	syndromes := make([]int, numECCodewords)
	clean := true
	for i := numECCodewords; i > 0; i-- {
		eval := poly.EvaluateAt(ec.field.Exp(i))
		syndromes[numECCodewords-i] = eval
		if eval != 0 {
			clean = false
		}
	}
	if clean {
		return 0, nil
	}

	// Build the erasure locator from the known positions. The Euclidean step
	// below does not use it.
	knownErrors := ec.field.One()
	for _, erasure := range erasures {
		b := ec.field.Exp(len(received) - 1 - erasure)
		term := NewModulusPoly(ec.field, []int{ec.field.Subtract(0, b), 1})
		knownErrors = knownErrors.Multiply(term)
	}

	syndrome := NewModulusPoly(ec.field, syndromes)
	sigma, omega, err := ec.runEuclideanAlgorithm(
		ec.field.Monomial(numECCodewords, 1), syndrome, numECCodewords)
	if err != nil {
		return 0, err
	}

	locations, err := ec.findErrorLocations(sigma)
	if err != nil {
		return 0, err
	}
	magnitudes := ec.findErrorMagnitudes(omega, sigma, locations)

	for i, loc := range locations {
		position := len(received) - 1 - ec.field.Log(loc)
		if position < 0 {
			return 0, gridscan.ErrChecksum
		}
		received[position] = ec.field.Subtract(received[position], magnitudes[i])
	}
	return len(locations), nil
}

// runEuclideanAlgorithm reduces (a, b) until the remainder degree drops
// below R/2, yielding the error locator and evaluator polynomials.
func (ec *ErrorCorrection) runEuclideanAlgorithm(a, b *ModulusPoly, R int) (sigma, omega *ModulusPoly, err error) {
	if a.Degree() < b.Degree() {
		a, b = b, a
	}

	rLast, r := a, b
	tLast, t := ec.field.Zero(), ec.field.One()

	for r.Degree() >= R/2 {
		rLastLast, tLastLast := rLast, tLast
		rLast, tLast = r, t

		if rLast.IsZero() {
			return nil, nil, gridscan.ErrChecksum
		}
		r = rLastLast
		q := ec.field.Zero()
		leading := rLast.Coefficient(rLast.Degree())
		inverseLeading := ec.field.Inverse(leading)
		for r.Degree() >= rLast.Degree() && !r.IsZero() {
			degreeDiff := r.Degree() - rLast.Degree()
			scale := ec.field.Multiply(r.Coefficient(r.Degree()), inverseLeading)
			q = q.Add(ec.field.Monomial(degreeDiff, scale))
			r = r.Subtract(rLast.MultiplyByMonomial(degreeDiff, scale))
		}

		t = q.Multiply(tLast).Subtract(tLastLast).Negative()
	}

	sigmaTildeAtZero := t.Coefficient(0)
	if sigmaTildeAtZero == 0 {
		return nil, nil, gridscan.ErrChecksum
	}

	inverse := ec.field.Inverse(sigmaTildeAtZero)
	return t.MultiplyScalar(inverse), r.MultiplyScalar(inverse), nil
}

// findErrorLocations runs a Chien search for the roots of the locator.
func (ec *ErrorCorrection) findErrorLocations(errorLocator *ModulusPoly) ([]int, error) {
	numErrors := errorLocator.Degree()
	locations := make([]int, 0, numErrors)
	for i := 1; i < ec.field.Size() && len(locations) < numErrors; i++ {
		if errorLocator.EvaluateAt(i) == 0 {
			locations = append(locations, ec.field.Inverse(i))
		}
	}
	if len(locations) != numErrors {
		return nil, gridscan.ErrChecksum
	}
	return locations, nil
}

// findErrorMagnitudes applies Forney's formula using the formal derivative
// of the locator, the general form required outside characteristic 2.
func (ec *ErrorCorrection) findErrorMagnitudes(errorEvaluator, errorLocator *ModulusPoly, locations []int) []int {
	degree := errorLocator.Degree()
	if degree < 1 {
		return []int{}
	}
	derivativeCoefficients := make([]int, degree)
	for i := 1; i <= degree; i++ {
		derivativeCoefficients[degree-i] = ec.field.Multiply(i, errorLocator.Coefficient(i))
	}
	derivative := NewModulusPoly(ec.field, derivativeCoefficients)

	magnitudes := make([]int, len(locations))
	for i, loc := range locations {
		xiInverse := ec.field.Inverse(loc)
		numerator := ec.field.Subtract(0, errorEvaluator.EvaluateAt(xiInverse))
		denominator := ec.field.Inverse(derivative.EvaluateAt(xiInverse))
		magnitudes[i] = ec.field.Multiply(numerator, denominator)
	}
	return magnitudes
}
