package field

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyPoly     = errors.New("field: polynomial must have at least one coefficient")
	ErrCoeffMismatch = errors.New("field: polynomial coefficients span different fields")
	ErrZeroDivisor   = errors.New("field: division by the zero polynomial")
)

// Poly is a dense polynomial over Fp, with coefficients stored in
// descending degree order: c[0] is the leading (highest-degree)
// coefficient and c[len(c)-1] is the constant term. The zero polynomial
// is represented as a single zero coefficient, and by convention its
// Degree is 0.
type Poly struct {
	p uint64
	c []Fp
}

// NewPoly builds a polynomial from coefficients given highest-degree
// first. Leading (high-degree) zero coefficients are stripped; trailing
// ones are kept, since they are meaningful low-order terms.
func NewPoly(coeffs []Fp) (*Poly, error) {
	if len(coeffs) == 0 {
		return nil, ErrEmptyPoly
	}

	p := coeffs[0].P()
	for _, c := range coeffs[1:] {
		if c.P() != p {
			return nil, ErrCoeffMismatch
		}
	}

	cp := make([]Fp, len(coeffs))
	copy(cp, coeffs)
	poly := &Poly{p: p, c: cp}
	poly.normalize()

	return poly, nil
}

// NewConstant builds the degree-0 polynomial with value c.
func NewConstant(c Fp) *Poly {
	return &Poly{p: c.P(), c: []Fp{c}}
}

// NewMonomial builds c*x^degree.
func NewMonomial(c Fp, degree int) *Poly {
	coeffs := make([]Fp, degree+1)
	zero := c.elem(0)
	for i := range coeffs {
		coeffs[i] = zero
	}
	coeffs[0] = c

	r := &Poly{p: c.P(), c: coeffs}
	r.normalize()
	return r
}

func (p *Poly) zero() Fp {
	return Fp{p: p.p, v: 0}
}

// normalize strips leading (high-degree) zero coefficients, leaving at
// least one coefficient behind.
func (p *Poly) normalize() {
	i := 0
	for i < len(p.c)-1 && p.c[i].Value() == 0 {
		i++
	}
	p.c = p.c[i:]
}

// IsZero reports whether p is the zero polynomial.
func (p *Poly) IsZero() bool {
	return len(p.c) == 1 && p.c[0].Value() == 0
}

// Degree returns len(c)-1, which is 0 for the zero polynomial by
// convention.
func (p *Poly) Degree() int {
	return len(p.c) - 1
}

// LeadCoeff returns the highest-degree coefficient.
func (p *Poly) LeadCoeff() Fp {
	return p.c[0]
}

// Coefficient returns the coefficient of x^i, or field-zero if i exceeds
// the polynomial's degree.
func (p *Poly) Coefficient(i int) Fp {
	if i < 0 {
		return p.zero()
	}
	idx := len(p.c) - 1 - i
	if idx < 0 {
		return p.zero()
	}
	return p.c[idx]
}

func (p *Poly) sameField(q *Poly) {
	if p.p != q.p {
		panic(ErrFieldMismatch)
	}
}

// Copy returns an independent copy of p.
func (p *Poly) Copy() *Poly {
	cp := make([]Fp, len(p.c))
	copy(cp, p.c)
	return &Poly{p: p.p, c: cp}
}

// Equals is structural equality on the normalised coefficient sequence.
func (p *Poly) Equals(q *Poly) bool {
	if p.p != q.p || len(p.c) != len(q.c) {
		return false
	}
	for i := range p.c {
		if !p.c[i].Equals(q.c[i]) {
			return false
		}
	}
	return true
}

// Add returns p+q, aligning coefficients by their low-degree (constant)
// end and treating the shorter operand as zero-padded on the high-degree
// side.
func (p *Poly) Add(q *Poly) *Poly {
	p.sameField(q)

	n := max(p.Degree(), q.Degree())
	out := make([]Fp, n+1)
	for i := 0; i <= n; i++ {
		out[n-i] = p.Coefficient(i).Add(q.Coefficient(i))
	}

	r := &Poly{p: p.p, c: out}
	r.normalize()
	return r
}

// Sub returns p-q.
func (p *Poly) Sub(q *Poly) *Poly {
	p.sameField(q)

	n := max(p.Degree(), q.Degree())
	out := make([]Fp, n+1)
	for i := 0; i <= n; i++ {
		out[n-i] = p.Coefficient(i).Sub(q.Coefficient(i))
	}

	r := &Poly{p: p.p, c: out}
	r.normalize()
	return r
}

// Mul computes the schoolbook convolution of p and q: degree(p*q) =
// degree(p) + degree(q).
func (p *Poly) Mul(q *Poly) *Poly {
	p.sameField(q)

	if p.IsZero() || q.IsZero() {
		return NewConstant(p.zero())
	}

	degP, degQ := p.Degree(), q.Degree()
	zero := p.zero()
	acc := make([]Fp, degP+degQ+1) // acc[i] is the coefficient of x^i
	for i := range acc {
		acc[i] = zero
	}

	for i := 0; i <= degP; i++ {
		ai := p.Coefficient(i)
		if ai.Value() == 0 {
			continue
		}
		for j := 0; j <= degQ; j++ {
			acc[i+j] = acc[i+j].Add(ai.Mul(q.Coefficient(j)))
		}
	}

	out := make([]Fp, len(acc))
	for i, v := range acc {
		out[len(acc)-1-i] = v
	}

	r := &Poly{p: p.p, c: out}
	r.normalize()
	return r
}

// MulScalar returns p scaled by the field element s.
func (p *Poly) MulScalar(s Fp) *Poly {
	out := make([]Fp, len(p.c))
	for i, c := range p.c {
		out[i] = c.Mul(s)
	}
	r := &Poly{p: p.p, c: out}
	r.normalize()
	return r
}

// ShiftUp returns p*x^d: p with d zero low-order coefficients appended.
func (p *Poly) ShiftUp(d int) *Poly {
	if d <= 0 {
		return p.Copy()
	}
	out := make([]Fp, len(p.c)+d)
	copy(out, p.c)
	zero := p.zero()
	for i := len(p.c); i < len(out); i++ {
		out[i] = zero
	}
	r := &Poly{p: p.p, c: out}
	r.normalize()
	return r
}

// DivMod performs Euclidean division in descending-degree order,
// following the standard long-division recurrence: at each step the
// current remainder's leading term is cancelled by subtracting the
// appropriate multiple of v shifted into place. v must not be the zero
// polynomial. Dividing by a degree-0 (scalar) polynomial falls out of
// the same recurrence and always leaves a zero remainder.
func (p *Poly) DivMod(v *Poly) (quotient, remainder *Poly, err error) {
	p.sameField(v)
	if v.IsZero() {
		return nil, nil, ErrZeroDivisor
	}

	n, m := p.Degree(), v.Degree()
	if p.IsZero() || n < m {
		return NewConstant(p.zero()), p.Copy(), nil
	}

	inv := v.LeadCoeff().Inverse()
	r := p.Copy()

	qAsc := make([]Fp, n-m+1) // qAsc[i] is the coefficient of x^i
	zero := p.zero()
	for i := n - m; i >= 0; i-- {
		if !r.IsZero() && r.Degree() == m+i {
			qAsc[i] = r.LeadCoeff().Mul(inv)
			r = r.Sub(v.MulScalar(qAsc[i]).ShiftUp(i))
		} else {
			qAsc[i] = zero
		}
	}

	qDesc := make([]Fp, len(qAsc))
	for i, c := range qAsc {
		qDesc[len(qAsc)-1-i] = c
	}

	q := &Poly{p: p.p, c: qDesc}
	q.normalize()
	r.normalize()

	return q, r, nil
}

// Eval evaluates the polynomial at x using Horner's method, processing
// coefficients from highest to lowest degree.
func (p *Poly) Eval(x Fp) Fp {
	result := x.elem(0)
	for _, c := range p.c {
		result = result.Mul(x).Add(c)
	}
	return result
}

func (p *Poly) String() string {
	var b strings.Builder
	n := p.Degree()

	wroteAny := false
	for i := n; i >= 0; i-- {
		c := p.Coefficient(i)
		if c.Value() == 0 && n != 0 {
			continue
		}
		if wroteAny {
			b.WriteString(" + ")
		}
		wroteAny = true
		if i == 0 {
			fmt.Fprintf(&b, "%d", c.Value())
		} else {
			fmt.Fprintf(&b, "%d*x^%d", c.Value(), i)
		}
	}
	return b.String()
}
