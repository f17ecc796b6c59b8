package rs

import (
	"testing"

	"github.com/go-rscodec/rscodec/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testP = uint64(59)
	testN = uint64(58)
	testK = uint64(46)
)

func newTestCode(t *testing.T) *Code {
	t.Helper()
	c, err := New(testP, testN, testK)
	require.NoError(t, err)
	return c
}

func elems(t *testing.T, p uint64, values ...uint64) []field.Fp {
	t.Helper()
	out := make([]field.Fp, len(values))
	for i, v := range values {
		e, err := field.NewFp(p, v%p)
		require.NoError(t, err)
		out[i] = e
	}
	return out
}

func TestNewRejectsBadParameters(t *testing.T) {
	_, err := New(60, 58, 46) // 60 not prime
	assert.ErrorIs(t, err, ErrBadParameters)

	_, err = New(59, 46, 58) // k > n
	assert.ErrorIs(t, err, ErrBadParameters)

	_, err = New(59, 60, 46) // n >= p
	assert.ErrorIs(t, err, ErrBadParameters)
}

func TestNewUsesSmallestPrimitiveRoot(t *testing.T) {
	c := newTestCode(t)
	assert.Equal(t, uint64(2), c.Alpha().Value())
	assert.Equal(t, int(testN-testK)/2, c.MaxErrors())
	assert.Equal(t, int(testN-testK), c.G().Degree())
}

// TestEncodeProducesVerifiableWord mirrors the reference scenario
// "encode a message, nostrip" and checks the result verifies.
func TestEncodeProducesVerifiableWord(t *testing.T) {
	c := newTestCode(t)
	message := elems(t, testP, 1, 21, 10, 56, 12, 41, 5, 4, 30, 23, 10, 36)

	codeword, err := c.Encode(message)
	require.NoError(t, err)
	assert.Len(t, codeword, int(testN))

	ok, err := c.Verify(codeword)
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestVerifyDetectsSingleMutation mirrors the reference "changing any
// single character invalidates the codeword" scenario.
func TestVerifyDetectsSingleMutation(t *testing.T) {
	c := newTestCode(t)
	message := elems(t, testP, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 35)

	codeword, err := c.Encode(message)
	require.NoError(t, err)

	for i := range codeword {
		mutated := make([]field.Fp, len(codeword))
		copy(mutated, codeword)

		original := mutated[i].Value()
		replacement := (original + 1) % testP
		mutated[i], err = field.NewFp(testP, replacement)
		require.NoError(t, err)

		ok, err := c.Verify(mutated)
		require.NoError(t, err)
		assert.False(t, ok, "position %d", i)
	}
}

func TestEncodeRejectsOverlongMessage(t *testing.T) {
	c := newTestCode(t)

	one, err := field.NewFp(testP, 1)
	require.NoError(t, err)

	tooLong := make([]field.Fp, testK+1)
	for i := range tooLong {
		tooLong[i] = one
	}

	_, err = c.Encode(tooLong)
	assert.ErrorIs(t, err, ErrMessageTooLong)
}

func TestVerifyRejectsWrongLength(t *testing.T) {
	c := newTestCode(t)
	_, err := c.Verify(elems(t, testP, 1, 2, 3))
	assert.ErrorIs(t, err, ErrBadParameters)
}

func TestHIsDegreeK(t *testing.T) {
	c := newTestCode(t)
	assert.Equal(t, int(testK), c.H().Degree())
}
