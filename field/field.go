// Package field implements arithmetic over GF(p) for an arbitrary prime p,
// and dense univariate polynomials with coefficients in that field.
package field

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/tuneinsight/lattigo/v6/ring"
)

var (
	ErrBadParameters  = errors.New("field: order is not prime")
	ErrDomainError    = errors.New("field: value outside [0, p)")
	ErrFieldMismatch  = errors.New("field: operands belong to different fields")
	ErrDivisionByZero = errors.New("field: division by zero")
)

// Fp is an element of the prime field of order P. It is an immutable
// value type: every arithmetic method returns a freshly computed Fp
// rather than mutating the receiver.
type Fp struct {
	p uint64
	v uint64
}

// NewFp constructs a field element, rejecting a non-prime p or a value
// outside [0, p). Once a value has been validated through NewFp (or
// derived from one via arithmetic), later operations trust it and never
// re-run the primality check.
func NewFp(p, v uint64) (Fp, error) {
	if !isPrime(p) {
		return Fp{}, fmt.Errorf("%w: %d", ErrBadParameters, p)
	}
	if v >= p {
		return Fp{}, fmt.Errorf("%w: %d not in [0, %d)", ErrDomainError, v, p)
	}
	return Fp{p: p, v: v}, nil
}

// elem builds a field element of the same field as f, reducing val
// modulo p. It skips the primality check since f already carries a
// validated prime.
func (f Fp) elem(val uint64) Fp {
	return Fp{p: f.p, v: val % f.p}
}

// P returns the field order shared by this element.
func (f Fp) P() uint64 { return f.p }

// Value returns the element's residue in [0, p).
func (f Fp) Value() uint64 { return f.v }

func (f Fp) sameField(g Fp) {
	if f.p != g.p {
		panic(ErrFieldMismatch)
	}
}

// Equals compares two elements by field and value.
func (f Fp) Equals(g Fp) bool {
	return f.p == g.p && f.v == g.v
}

// Add returns f+g mod p.
func (f Fp) Add(g Fp) Fp {
	f.sameField(g)
	s := f.v + g.v
	if s >= f.p {
		s -= f.p
	}
	return Fp{p: f.p, v: s}
}

// Sub returns f-g mod p, always in [0, p).
func (f Fp) Sub(g Fp) Fp {
	f.sameField(g)
	if f.v >= g.v {
		return Fp{p: f.p, v: f.v - g.v}
	}
	return Fp{p: f.p, v: f.p - (g.v - f.v)}
}

// Neg returns -f mod p.
func (f Fp) Neg() Fp {
	if f.v == 0 {
		return f
	}
	return Fp{p: f.p, v: f.p - f.v}
}

// Mul returns f*g mod p.
func (f Fp) Mul(g Fp) Fp {
	f.sameField(g)
	return Fp{p: f.p, v: mulMod(f.v, g.v, f.p)}
}

// mulMod computes a*b mod m without overflowing 64 bits, using the
// double-width product from math/bits.
func mulMod(a, b, m uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, m)
	return rem
}

// Pow raises f to a signed integer exponent e. A negative exponent
// computes the positive power and inverts the result; raising a field
// element to another field element's power is not expressible through
// this signature, which is the point: exponents live in Z, not Z/pZ.
func (f Fp) Pow(e int64) Fp {
	neg := e < 0
	u := uint64(e)
	if neg {
		u = uint64(-e)
	}

	result := f.elem(1)
	base := f
	for u > 0 {
		if u&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		u >>= 1
	}

	if neg {
		return result.Inverse()
	}
	return result
}

// Inverse returns f^-1 via Fermat's little theorem (f^(p-2)). Inverting
// zero has no meaning in a field, and is a caller bug rather than a
// recoverable runtime condition, so it panics instead of threading an
// error through every arithmetic call site.
func (f Fp) Inverse() Fp {
	if f.v == 0 {
		panic(ErrDivisionByZero)
	}
	return f.Pow(int64(f.p - 2))
}

// Div returns f/g, i.e. f*g^-1.
func (f Fp) Div(g Fp) Fp {
	f.sameField(g)
	return f.Mul(g.Inverse())
}

func (f Fp) String() string {
	return fmt.Sprintf("%d", f.v)
}

func isPrime(p uint64) bool {
	if p < 2 {
		return false
	}
	if p == 2 {
		return true
	}
	return new(big.Int).SetUint64(p).ProbablyPrime(20)
}

// PrimitiveRoot returns the smallest generator of GF(p)'s multiplicative
// group: the smallest g in [1, p) whose powers {g^0, ..., g^(p-2)} cover
// every nonzero residue.
//
// Rather than brute-force counting distinct powers for every candidate
// (the reference implementation's approach), it factors p-1 once via
// lattigo's primitive-root search and then tests each ascending candidate
// against those factors: g is primitive iff g^((p-1)/q) != 1 for every
// prime factor q of p-1. This keeps the scan's result identical to a
// brute-force smallest-generator search while making each candidate test
// O(log p) instead of O(p).
func PrimitiveRoot(p uint64) (Fp, error) {
	if !isPrime(p) {
		return Fp{}, fmt.Errorf("%w: %d", ErrBadParameters, p)
	}

	if p == 2 {
		return Fp{p: p, v: 1}, nil
	}

	_, factors, err := ring.PrimitiveRoot(p, nil)
	if err != nil {
		return Fp{}, fmt.Errorf("field: factoring %d-1: %w", p, err)
	}

	order := p - 1
	for g := uint64(2); g < p; g++ {
		if isGenerator(g, p, order, factors) {
			return Fp{p: p, v: g}, nil
		}
	}

	return Fp{}, fmt.Errorf("field: no primitive root found for %d", p)
}

func isGenerator(g, p, order uint64, primeFactors []uint64) bool {
	base := Fp{p: p, v: g % p}
	for _, q := range primeFactors {
		if base.Pow(int64(order / q)).v == 1 {
			return false
		}
	}
	return true
}
