package rs

import (
	"errors"
	"fmt"

	"github.com/go-rscodec/rscodec/field"
)

// ErrUncorrectable is returned by DecodeStrict when the corrected word
// still fails verification. Decode itself never returns it: per the
// codec's default contract, a best-effort correction is returned even
// when more than MaxErrors positions were corrupted.
var ErrUncorrectable = errors.New("rs: residual errors after correction")

// Decode recovers the k-element message from an n-element received
// word. If word is already a codeword, its message portion is returned
// directly; otherwise the four-stage correction pipeline (syndromes,
// Berlekamp-Massey, Chien search, Forney) runs before extracting the
// message. Decode does not re-verify the corrected word: if more than
// MaxErrors positions were corrupted, the result may be wrong. Use
// DecodeStrict to detect that case.
func (c *Code) Decode(word []field.Fp) ([]field.Fp, error) {
	full, _, err := c.correct(word)
	if err != nil {
		return nil, err
	}
	return c.messagePortion(full), nil
}

// DecodeStrict behaves like Decode, but re-verifies the corrected word
// when the fast path (word already a codeword) was not taken, returning
// ErrUncorrectable if residual errors remain.
func (c *Code) DecodeStrict(word []field.Fp) ([]field.Fp, error) {
	full, wasCodeword, err := c.correct(word)
	if err != nil {
		return nil, err
	}

	if !wasCodeword {
		ok, err := c.Verify(full)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrUncorrectable
		}
	}

	return c.messagePortion(full), nil
}

// messagePortion extracts the leading k coefficients (highest degree
// first) of a full n-element codeword sequence.
func (c *Code) messagePortion(full []field.Fp) []field.Fp {
	return full[:c.k]
}

// correct runs the decode pipeline and returns the full n-element
// corrected word, along with whether word was already a valid codeword
// (in which case no correction was attempted).
func (c *Code) correct(word []field.Fp) (full []field.Fp, wasCodeword bool, err error) {
	if uint64(len(word)) != c.n {
		return nil, false, fmt.Errorf("%w: word length %d, want n=%d", ErrBadParameters, len(word), c.n)
	}

	ok, err := c.Verify(word)
	if err != nil {
		return nil, false, err
	}
	if ok {
		out := make([]field.Fp, len(word))
		copy(out, word)
		return out, true, nil
	}

	received, err := field.NewPoly(word)
	if err != nil {
		return nil, false, err
	}

	syndromes := c.syndromes(received)
	sigma, omega := c.berlekampMassey(syndromes)
	locators, positions := c.chienSearch(sigma)
	magnitudes := c.forney(omega, locators)

	errorPoly := c.buildErrorPoly(positions, magnitudes)
	corrected := received.Sub(errorPoly)

	return padCoefficients(corrected, int(c.n)), false, nil
}

// syndromes evaluates the received polynomial at alpha^l for
// l = 1..n-k, returning them as a polynomial with S_l at coefficient
// z^l (S_0 = 0 by construction).
func (c *Code) syndromes(received *field.Poly) *field.Poly {
	deg := int(c.n - c.k)
	coeffs := make([]field.Fp, deg+1)
	coeffs[deg] = c.zero() // S_0

	for l := 1; l <= deg; l++ {
		root := c.alpha.Pow(int64(l))
		coeffs[deg-l] = received.Eval(root)
	}

	s, _ := field.NewPoly(coeffs)
	return s
}

// berlekampMassey synthesises the error-locator polynomial sigma and
// error-evaluator polynomial omega from the syndrome polynomial,
// following the iterative two-rule recurrence: at each step the
// discrepancy Δ picks Rule A (shift the auxiliary polynomials) or
// Rule B (replace them with a scaled copy of the current locator/
// evaluator pair), tracked by the integer state D, B.
func (c *Code) berlekampMassey(syndromes *field.Poly) (sigma, omega *field.Poly) {
	one, zero := c.one(), c.zero()

	sigma = field.NewConstant(one)
	omega = field.NewConstant(one)
	tau := field.NewConstant(one)
	gamma := field.NewConstant(zero)
	D, B := 0, 0

	onePlusSyndromes := syndromes.Add(field.NewConstant(one))
	steps := int(c.n - c.k)

	for l := 0; l < steps; l++ {
		delta := onePlusSyndromes.Mul(sigma).Coefficient(l + 1)

		nextSigma := sigma.Sub(tau.MulScalar(delta).ShiftUp(1))
		nextOmega := omega.Sub(gamma.MulScalar(delta).ShiftUp(1))

		useRuleB := delta.Value() != 0 && (2*D < l+1 || (2*D == l+1 && B != 0))
		if useRuleB {
			deltaInv := delta.Inverse()
			newTau := sigma.MulScalar(deltaInv)
			newGamma := omega.MulScalar(deltaInv)
			D, B = l+1-D, 1-B
			tau, gamma = newTau, newGamma
		} else {
			tau = tau.ShiftUp(1)
			gamma = gamma.ShiftUp(1)
		}

		sigma, omega = nextSigma, nextOmega
	}

	return sigma, omega
}

// chienSearch evaluates sigma at every nonzero field element alpha^l,
// l = 1..p-1, recording a reciprocal locator X and an error position j
// for each root found. Position j counts from the low-degree (rightmost)
// end of the word, matching Poly.Coefficient's indexing; l = p-1
// (alpha^l = 1) is the root for position 0.
func (c *Code) chienSearch(sigma *field.Poly) (locators []field.Fp, positions []int) {
	pMinus1 := c.p - 1

	for l := uint64(1); l <= pMinus1; l++ {
		root := c.alpha.Pow(int64(l))
		if sigma.Eval(root).Value() != 0 {
			continue
		}
		locators = append(locators, root.Inverse())
		positions = append(positions, int(pMinus1-l))
	}

	return locators, positions
}

// forney recovers the error magnitude at each located position using
// Forney's formula: Y_l = omega(X_l^-1) / prod_{i != l} (1 - X_i*X_l^-1).
func (c *Code) forney(omega *field.Poly, locators []field.Fp) []field.Fp {
	magnitudes := make([]field.Fp, len(locators))

	for l, x := range locators {
		xInv := x.Inverse()
		numerator := omega.Eval(xInv)

		denominator := c.one()
		for i, xi := range locators {
			if i == l {
				continue
			}
			denominator = denominator.Mul(c.one().Sub(xi.Mul(xInv)))
		}

		magnitudes[l] = numerator.Mul(denominator.Inverse())
	}

	return magnitudes
}

// buildErrorPoly places each magnitude at its error position, sized to
// cover at least the word length n (positions beyond that only matter
// if Chien search found a spurious root, which correct's caller accepts
// as the cost of not re-verifying by default).
func (c *Code) buildErrorPoly(positions []int, magnitudes []field.Fp) *field.Poly {
	if len(positions) == 0 {
		return field.NewConstant(c.zero())
	}

	size := int(c.n)
	for _, j := range positions {
		if j+1 > size {
			size = j + 1
		}
	}

	zero := c.zero()
	coeffs := make([]field.Fp, size)
	for i := range coeffs {
		coeffs[i] = zero
	}
	for idx, j := range positions {
		coeffs[size-1-j] = magnitudes[idx]
	}

	poly, _ := field.NewPoly(coeffs)
	return poly
}
