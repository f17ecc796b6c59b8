package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrime = uint64(59)

func elem(t *testing.T, p, v uint64) Fp {
	t.Helper()
	e, err := NewFp(p, v)
	require.NoError(t, err)
	return e
}

func TestNewFpRejectsNonPrimeAndOutOfRange(t *testing.T) {
	a := assert.New(t)

	_, err := NewFp(60, 3)
	a.ErrorIs(err, ErrBadParameters)

	_, err = NewFp(59, 59)
	a.ErrorIs(err, ErrDomainError)

	_, err = NewFp(59, 58)
	a.NoError(err)
}

func TestArithmeticMatchesReferenceVectors(t *testing.T) {
	a := assert.New(t)

	three := elem(t, testPrime, 3)
	nine := elem(t, testPrime, 9)

	a.Equal(uint64(12), three.Add(nine).Value())
	a.Equal(uint64(12), nine.Add(three).Value())

	a.Equal(uint64(53), three.Sub(nine).Value())
	a.Equal(uint64(6), nine.Sub(three).Value())

	a.Equal(uint64(27), three.Mul(nine).Value())

	a.Equal(uint64(46), nine.Inverse().Value())
	a.Equal(uint64(1), nine.Mul(nine.Inverse()).Value())
	a.Equal(uint64(1), nine.Div(nine).Value())

	a.Equal(uint64(3), nine.Div(three).Value())

	a.Equal(uint64(21), nine.Pow(3).Value())
	a.Equal(uint64(36), three.Pow(9).Value())
}

func TestPowNegativeExponentInverts(t *testing.T) {
	a := assert.New(t)

	nine := elem(t, testPrime, 9)

	a.Equal(nine.Inverse().Value(), nine.Pow(-1).Value())
	a.Equal(nine.Pow(3).Inverse().Value(), nine.Pow(-3).Value())
}

func TestInverseOfZeroPanics(t *testing.T) {
	zero := elem(t, testPrime, 0)
	assert.Panics(t, func() { zero.Inverse() })
}

func TestMismatchedFieldsPanic(t *testing.T) {
	a := elem(t, testPrime, 3)
	b := elem(t, 61, 3)

	assert.Panics(t, func() { a.Add(b) })
	assert.Panics(t, func() { a.Mul(b) })
}

func TestFermatsLittleTheorem(t *testing.T) {
	for v := uint64(1); v < testPrime; v++ {
		e := elem(t, testPrime, v)
		assert.Equal(t, uint64(1), e.Pow(int64(testPrime-1)).Value(), "value %d", v)
	}
}

func TestDistributivity(t *testing.T) {
	a := elem(t, testPrime, 7)
	b := elem(t, testPrime, 23)
	c := elem(t, testPrime, 41)

	lhs := a.Mul(b.Add(c))
	rhs := a.Mul(b).Add(a.Mul(c))

	assert.True(t, lhs.Equals(rhs))
}

func TestPrimitiveRootOf59Is2(t *testing.T) {
	alpha, err := PrimitiveRoot(59)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), alpha.Value())
}

func TestPrimitiveRootGeneratesFullGroup(t *testing.T) {
	const p = uint64(157)

	alpha, err := PrimitiveRoot(p)
	require.NoError(t, err)

	seen := make(map[uint64]struct{}, p-1)
	for i := uint64(0); i < p-1; i++ {
		seen[alpha.Pow(int64(i)).Value()] = struct{}{}
	}

	assert.Len(t, seen, int(p-1))
	assert.NotContains(t, seen, uint64(0))
}

func TestPrimitiveRootRejectsNonPrime(t *testing.T) {
	_, err := PrimitiveRoot(60)
	assert.ErrorIs(t, err, ErrBadParameters)
}

func FuzzInverse(f *testing.F) {
	f.Add(uint64(1))
	f.Add(uint64(17))
	f.Add(uint64(58))

	f.Fuzz(func(t *testing.T, v uint64) {
		v %= testPrime
		if v == 0 {
			t.Skip()
		}
		e := elem(t, testPrime, v)
		if e.Mul(e.Inverse()).Value() != 1 {
			t.Fatalf("e*e^-1 != 1 for v=%d", v)
		}
	})
}

func FuzzSub(f *testing.F) {
	f.Add(uint64(0), uint64(0))
	f.Add(uint64(1), uint64(2))
	f.Add(uint64(58), uint64(58))

	f.Fuzz(func(t *testing.T, aSeed, bSeed uint64) {
		a := elem(t, testPrime, aSeed%testPrime)
		b := elem(t, testPrime, bSeed%testPrime)

		got := a.Sub(b)
		want := a.Add(b.Neg())

		if !got.Equals(want) {
			t.Fatalf("Sub mismatch: got=%v want=%v (a=%v, b=%v)", got, want, a, b)
		}
	})
}

func BenchmarkMulMod(b *testing.B) {
	x, _ := NewFp(testPrime, 37)
	y, _ := NewFp(testPrime, 51)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Mul(y)
	}
}
