// Package rs implements a systematic Reed-Solomon codec over an arbitrary
// prime field GF(p): construction of the generator polynomial, encoding,
// verification, and syndrome/Berlekamp-Massey/Chien/Forney decoding.
package rs

import (
	"errors"
	"fmt"

	"github.com/go-rscodec/rscodec/field"
)

// ErrBadParameters is returned by New when p is not prime, or n and k do
// not satisfy 0 < k < n < p, and by Verify/Decode when a word argument
// is not exactly n elements long.
var ErrBadParameters = errors.New("rs: invalid codec parameters")

// Code holds the fixed parameters of a Reed-Solomon code: the field order
// p, the codeword length n, the message length k, the field generator
// alpha, and the derived generator polynomial g. A Code is immutable once
// constructed and safe for concurrent use.
type Code struct {
	p, n, k uint64
	alpha   field.Fp
	g       *field.Poly
	h       *field.Poly
}

// New builds the code for (p, n, k), scanning for the field's smallest
// primitive element and assembling g(x) = prod_{l=1}^{n-k} (x - alpha^l).
// It also assembles the companion polynomial h(x) = prod_{l=n-k+1}^{n}
// (x - alpha^l), exposed via H for callers that want the alternate
// c*h mod (x^n - 1) == 0 cross-check. g*h equals x^n - 1, which that
// check relies on, only when n = p-1.
func New(p, n, k uint64) (*Code, error) {
	if n == 0 || k == 0 || !(k < n && n < p) {
		return nil, fmt.Errorf("%w: need 0 < k < n < p, got p=%d n=%d k=%d", ErrBadParameters, p, n, k)
	}

	alpha, err := field.PrimitiveRoot(p)
	if err != nil {
		if errors.Is(err, field.ErrBadParameters) {
			return nil, fmt.Errorf("%w: %w", ErrBadParameters, err)
		}
		return nil, fmt.Errorf("rs: finding primitive root of %d: %w", p, err)
	}

	one, err := field.NewFp(p, 1)
	if err != nil {
		return nil, err
	}

	g, err := linearFactors(alpha, one, 1, n-k)
	if err != nil {
		return nil, err
	}

	h, err := linearFactors(alpha, one, n-k+1, n)
	if err != nil {
		return nil, err
	}

	return &Code{p: p, n: n, k: k, alpha: alpha, g: g, h: h}, nil
}

// linearFactors multiplies out prod_{l=from}^{to} (x - alpha^l).
func linearFactors(alpha, one field.Fp, from, to uint64) (*field.Poly, error) {
	product := field.NewConstant(one)
	for l := from; l <= to; l++ {
		root := alpha.Pow(int64(l))
		factor, err := field.NewPoly([]field.Fp{one, root.Neg()})
		if err != nil {
			return nil, err
		}
		product = product.Mul(factor)
	}
	return product, nil
}

// P returns the field order.
func (c *Code) P() uint64 { return c.p }

// N returns the codeword length.
func (c *Code) N() uint64 { return c.n }

// K returns the message length.
func (c *Code) K() uint64 { return c.k }

// Alpha returns the code's primitive field element.
func (c *Code) Alpha() field.Fp { return c.alpha }

// MaxErrors returns s = floor((n-k)/2), the maximum number of symbol
// errors Decode is guaranteed to correct.
func (c *Code) MaxErrors() int { return int((c.n - c.k) / 2) }

// G returns a copy of the generator polynomial.
func (c *Code) G() *field.Poly { return c.g.Copy() }

// H returns a copy of the companion polynomial
// h(x) = prod_{l=n-k+1}^{n} (x - alpha^l), derived but unused by the
// default Verify path.
func (c *Code) H() *field.Poly { return c.h.Copy() }

func (c *Code) zero() field.Fp {
	z, _ := field.NewFp(c.p, 0)
	return z
}

func (c *Code) one() field.Fp {
	o, _ := field.NewFp(c.p, 1)
	return o
}

// ErrMessageTooLong is returned by Encode when the message exceeds k
// elements.
var ErrMessageTooLong = errors.New("rs: message longer than k")

// Encode performs systematic encoding: it shifts the message polynomial
// up by n-k places, subtracts its remainder modulo g, and returns the
// resulting codeword as exactly n field elements, highest degree first.
func (c *Code) Encode(message []field.Fp) ([]field.Fp, error) {
	if uint64(len(message)) > c.k {
		return nil, fmt.Errorf("%w: got %d, k=%d", ErrMessageTooLong, len(message), c.k)
	}

	m, err := c.buildPoly(message)
	if err != nil {
		return nil, err
	}

	shifted := m.ShiftUp(int(c.n - c.k))
	_, remainder, err := shifted.DivMod(c.g)
	if err != nil {
		return nil, err
	}

	codeword := shifted.Sub(remainder)
	return padCoefficients(codeword, int(c.n)), nil
}

// Verify reports whether word, an n-element sequence, is a multiple of
// the generator polynomial.
func (c *Code) Verify(word []field.Fp) (bool, error) {
	if uint64(len(word)) != c.n {
		return false, fmt.Errorf("%w: word length %d, want n=%d", ErrBadParameters, len(word), c.n)
	}

	r, err := field.NewPoly(word)
	if err != nil {
		return false, err
	}

	_, remainder, err := r.DivMod(c.g)
	if err != nil {
		return false, err
	}

	return remainder.IsZero(), nil
}

// buildPoly treats elems as the coefficients of a polynomial highest
// degree first, handling the empty message as the zero polynomial since
// field.NewPoly itself rejects an empty coefficient slice.
func (c *Code) buildPoly(elems []field.Fp) (*field.Poly, error) {
	if len(elems) == 0 {
		return field.NewConstant(c.zero()), nil
	}
	return field.NewPoly(elems)
}

// padCoefficients reads length coefficients out of p from the
// highest-degree position down, returning field-zero for any position
// beyond p's actual degree.
func padCoefficients(p *field.Poly, length int) []field.Fp {
	out := make([]field.Fp, length)
	for i := 0; i < length; i++ {
		out[i] = p.Coefficient(length - 1 - i)
	}
	return out
}
