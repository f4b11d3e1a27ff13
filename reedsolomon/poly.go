package reedsolomon

// Poly is a polynomial with coefficients in a Field, stored from the
// highest-order term down. Instances are immutable; operations return new
// polynomials.
type Poly struct {
	field        *Field
	coefficients []int
}

// newPoly normalizes the coefficients by stripping leading zeros. The zero
// polynomial is represented as the single coefficient [0].
func newPoly(field *Field, coefficients []int) *Poly {
	if len(coefficients) == 0 {
		panic("reedsolomon: empty coefficients")
	}
	if len(coefficients) > 1 && coefficients[0] == 0 {
		firstNonZero := 1
		for firstNonZero < len(coefficients) && coefficients[firstNonZero] == 0 {
			firstNonZero++
		}
		if firstNonZero == len(coefficients) {
			coefficients = []int{0}
		} else {
			trimmed := make([]int, len(coefficients)-firstNonZero)
			copy(trimmed, coefficients[firstNonZero:])
			coefficients = trimmed
		}
	}
	return &Poly{field: field, coefficients: coefficients}
}

// NewPoly builds a polynomial over field from high-order-first coefficients.
func NewPoly(field *Field, coefficients []int) *Poly {
	return newPoly(field, coefficients)
}

// Coefficients returns the normalized coefficient slice, high order first.
func (p *Poly) Coefficients() []int {
	return p.coefficients
}

// Degree returns the degree of the polynomial. The zero polynomial has
// degree 0.
func (p *Poly) Degree() int {
	return len(p.coefficients) - 1
}

// IsZero reports whether this is the zero polynomial.
func (p *Poly) IsZero() bool {
	return p.coefficients[0] == 0
}

// Coefficient returns the coefficient of the x^degree term.
func (p *Poly) Coefficient(degree int) int {
	return p.coefficients[len(p.coefficients)-1-degree]
}

// EvaluateAt computes p(a) by Horner's method.
func (p *Poly) EvaluateAt(a int) int {
	if a == 0 {
		return p.Coefficient(0)
	}
	if a == 1 {
		result := 0
		for _, c := range p.coefficients {
			result = AddOrSubtract(result, c)
		}
		return result
	}
	result := p.coefficients[0]
	for _, c := range p.coefficients[1:] {
		result = AddOrSubtract(p.field.Multiply(a, result), c)
	}
	return result
}

// AddOrSubtractPoly returns p + other, which equals p - other in
// characteristic 2.
func (p *Poly) AddOrSubtractPoly(other *Poly) *Poly {
	if p.IsZero() {
		return other
	}
	if other.IsZero() {
		return p
	}

	smaller, larger := p.coefficients, other.coefficients
	if len(smaller) > len(larger) {
		smaller, larger = larger, smaller
	}

	sum := make([]int, len(larger))
	diff := len(larger) - len(smaller)
	copy(sum, larger[:diff])
	for i := diff; i < len(larger); i++ {
		sum[i] = AddOrSubtract(smaller[i-diff], larger[i])
	}
	return newPoly(p.field, sum)
}

// MultiplyPoly returns p * other.
func (p *Poly) MultiplyPoly(other *Poly) *Poly {
	if p.IsZero() || other.IsZero() {
		return p.field.Zero()
	}
	product := make([]int, len(p.coefficients)+len(other.coefficients)-1)
	for i, a := range p.coefficients {
		for j, b := range other.coefficients {
			product[i+j] = AddOrSubtract(product[i+j], p.field.Multiply(a, b))
		}
	}
	return newPoly(p.field, product)
}

// MultiplyScalar returns p scaled by the given field element.
func (p *Poly) MultiplyScalar(scalar int) *Poly {
	if scalar == 0 {
		return p.field.Zero()
	}
	if scalar == 1 {
		return p
	}
	product := make([]int, len(p.coefficients))
	for i, c := range p.coefficients {
		product[i] = p.field.Multiply(c, scalar)
	}
	return newPoly(p.field, product)
}

// MultiplyByMonomial returns p * coefficient * x^degree.
func (p *Poly) MultiplyByMonomial(degree, coefficient int) *Poly {
	if degree < 0 {
		panic("reedsolomon: negative degree")
	}
	if coefficient == 0 {
		return p.field.Zero()
	}
	product := make([]int, len(p.coefficients)+degree)
	for i, c := range p.coefficients {
		product[i] = p.field.Multiply(c, coefficient)
	}
	return newPoly(p.field, product)
}

// Divide returns the quotient and remainder of p divided by other.
func (p *Poly) Divide(other *Poly) (quotient, remainder *Poly) {
	if other.IsZero() {
		panic("reedsolomon: divide by zero")
	}

	quotient = p.field.Zero()
	remainder = p

	leadingTerm := other.Coefficient(other.Degree())
	inverseLeading := p.field.Inverse(leadingTerm)

	for remainder.Degree() >= other.Degree() && !remainder.IsZero() {
		degreeDiff := remainder.Degree() - other.Degree()
		scale := p.field.Multiply(remainder.Coefficient(remainder.Degree()), inverseLeading)
		quotient = quotient.AddOrSubtractPoly(p.field.Monomial(degreeDiff, scale))
		remainder = remainder.AddOrSubtractPoly(other.MultiplyByMonomial(degreeDiff, scale))
	}
	return quotient, remainder
}
