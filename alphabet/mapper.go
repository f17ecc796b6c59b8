// Package alphabet provides a convenience bijection between a symbol
// alphabet and the integer values a Reed-Solomon codec operates on. It
// sits outside the codec's own contract: rs.Code never sees a Mapper.
package alphabet

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultAlphabet is the 59-symbol table used when none is supplied
// explicitly: digits, then lower-case, then upper-case, omitting the
// visually ambiguous 'l', 'I', 'O' as distinct symbols.
const DefaultAlphabet = "0123456789abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"

// DefaultEquivalences maps visually ambiguous input runes onto the
// symbol they should decode as; they are never produced on encode.
var DefaultEquivalences = map[rune]rune{
	'O': '0',
	'I': '1',
	'l': '1',
}

// ErrUnknownSymbol is returned when decoding a rune outside the
// alphabet and its equivalences.
var ErrUnknownSymbol = errors.New("alphabet: symbol not in table")

// ErrUnknownValue is returned when encoding a value with no
// corresponding symbol.
var ErrUnknownValue = errors.New("alphabet: value has no symbol")

// Mapper is a bijection between runes and integer values in
// [0, len(alphabet)), plus zero or more non-bijective equivalence rules
// consulted only when decoding.
type Mapper struct {
	toValue map[rune]uint64
	toRune  []rune
}

// New builds a Mapper from an alphabet string, where the rune at
// position i maps to value i, plus a set of decode-only equivalences
// (e.g. 'O' decoding as whatever '0' decodes as). An equivalence whose
// target is not itself in the alphabet is an error.
func New(alphabetStr string, equivalences map[rune]rune) (*Mapper, error) {
	runes := []rune(alphabetStr)
	if len(runes) == 0 {
		return nil, fmt.Errorf("alphabet: empty alphabet")
	}

	toValue := make(map[rune]uint64, len(runes)+len(equivalences))
	for i, r := range runes {
		if _, dup := toValue[r]; dup {
			return nil, fmt.Errorf("alphabet: duplicate symbol %q", r)
		}
		toValue[r] = uint64(i)
	}

	for from, to := range equivalences {
		v, ok := toValue[to]
		if !ok {
			return nil, fmt.Errorf("alphabet: equivalence %q -> %q: target not in alphabet", from, to)
		}
		toValue[from] = v
	}

	return &Mapper{toValue: toValue, toRune: runes}, nil
}

// NewDefault builds the Mapper for DefaultAlphabet and
// DefaultEquivalences.
func NewDefault() *Mapper {
	m, err := New(DefaultAlphabet, DefaultEquivalences)
	if err != nil {
		panic(err) // constant table, cannot fail
	}
	return m
}

// Base returns the size of the underlying alphabet (the field prime the
// mapped values are meant to live under).
func (m *Mapper) Base() uint64 { return uint64(len(m.toRune)) }

// PadSymbol returns the symbol at alphabet position 0, used for both
// Pad and Strip.
func (m *Mapper) PadSymbol() rune { return m.toRune[0] }

// EncodeValue returns the symbol for v.
func (m *Mapper) EncodeValue(v uint64) (rune, error) {
	if v >= uint64(len(m.toRune)) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownValue, v)
	}
	return m.toRune[v], nil
}

// DecodeSymbol returns the value for r, applying equivalences.
func (m *Mapper) DecodeSymbol(r rune) (uint64, error) {
	v, ok := m.toValue[r]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, r)
	}
	return v, nil
}

// Encode converts a sequence of values into their symbol string.
func (m *Mapper) Encode(values []uint64) (string, error) {
	var b strings.Builder
	b.Grow(len(values))
	for _, v := range values {
		r, err := m.EncodeValue(v)
		if err != nil {
			return "", err
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// Decode converts a symbol string into its value sequence.
func (m *Mapper) Decode(s string) ([]uint64, error) {
	runes := []rune(s)
	out := make([]uint64, len(runes))
	for i, r := range runes {
		v, err := m.DecodeSymbol(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Pad left-pads s with the alphabet's zero symbol until it is width
// runes long.
func (m *Mapper) Pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return strings.Repeat(string(m.PadSymbol()), width-n) + s
}

// Strip removes leading zero symbols from s.
func (m *Mapper) Strip(s string) string {
	return strings.TrimLeft(s, string(m.PadSymbol()))
}
