package decoder

// ModulusPoly is a polynomial over a ModulusGF, coefficients stored from
// the highest-order term down. Instances are immutable.
type ModulusPoly struct {
	field        *ModulusGF
	coefficients []int
}

// NewModulusPoly builds a polynomial, stripping leading zeros so the
// leading coefficient of anything but the zero polynomial is nonzero.
func NewModulusPoly(field *ModulusGF, coefficients []int) *ModulusPoly {
	if len(coefficients) == 0 {
		panic("pdf417/decoder: empty coefficients")
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
	return &ModulusPoly{field: field, coefficients: coefficients}
}

// Coefficients returns the normalized coefficients, high order first.
func (p *ModulusPoly) Coefficients() []int {
	return p.coefficients
}

// Degree returns the polynomial degree; the zero polynomial has degree 0.
func (p *ModulusPoly) Degree() int {
	return len(p.coefficients) - 1
}

// IsZero reports whether this is the zero polynomial.
func (p *ModulusPoly) IsZero() bool {
	return p.coefficients[0] == 0
}

// Coefficient returns the coefficient of the x^degree term.
func (p *ModulusPoly) Coefficient(degree int) int {
	return p.coefficients[len(p.coefficients)-1-degree]
}

// EvaluateAt computes p(a) by Horner's method.
func (p *ModulusPoly) EvaluateAt(a int) int {
	if a == 0 {
		return p.Coefficient(0)
	}
	if a == 1 {
		result := 0
		for _, c := range p.coefficients {
			result = p.field.Add(result, c)
		}
		return result
	}
	result := p.coefficients[0]
	for _, c := range p.coefficients[1:] {
		result = p.field.Add(p.field.Multiply(a, result), c)
	}
	return result
}

// Add returns p + other.
func (p *ModulusPoly) Add(other *ModulusPoly) *ModulusPoly {
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
		sum[i] = p.field.Add(smaller[i-diff], larger[i])
	}
	return NewModulusPoly(p.field, sum)
}

// Subtract returns p - other.
func (p *ModulusPoly) Subtract(other *ModulusPoly) *ModulusPoly {
	if other.IsZero() {
		return p
	}
	return p.Add(other.Negative())
}

// Multiply returns p * other.
func (p *ModulusPoly) Multiply(other *ModulusPoly) *ModulusPoly {
	if p.IsZero() || other.IsZero() {
		return p.field.Zero()
	}
	product := make([]int, len(p.coefficients)+len(other.coefficients)-1)
	for i, a := range p.coefficients {
		for j, b := range other.coefficients {
			product[i+j] = p.field.Add(product[i+j], p.field.Multiply(a, b))
		}
	}
	return NewModulusPoly(p.field, product)
}

// Negative returns -p.
func (p *ModulusPoly) Negative() *ModulusPoly {
	negated := make([]int, len(p.coefficients))
	for i, c := range p.coefficients {
		negated[i] = p.field.Subtract(0, c)
	}
	return NewModulusPoly(p.field, negated)
}

// MultiplyScalar returns p scaled by a field element.
func (p *ModulusPoly) MultiplyScalar(scalar int) *ModulusPoly {
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
	return NewModulusPoly(p.field, product)
}

// MultiplyByMonomial returns p * coefficient * x^degree.
func (p *ModulusPoly) MultiplyByMonomial(degree, coefficient int) *ModulusPoly {
	if degree < 0 {
		panic("pdf417/decoder: negative degree")
	}
	if coefficient == 0 {
		return p.field.Zero()
	}
	product := make([]int, len(p.coefficients)+degree)
	for i, c := range p.coefficients {
		product[i] = p.field.Multiply(c, coefficient)
	}
	return NewModulusPoly(p.field, product)
}
