// Package textcodec wires rs.Code to an alphabet.Mapper, giving
// front-ends (like cmd/rscodec) a string-in, string-out Reed-Solomon
// codec. It is a convenience composition, not part of the core codec
// contract: everything here ultimately reduces to field-element
// sequences at rs.Code's boundary.
package textcodec

import (
	"errors"
	"fmt"

	"github.com/go-rscodec/rscodec/alphabet"
	"github.com/go-rscodec/rscodec/field"
	"github.com/go-rscodec/rscodec/rs"
)

// ErrMessageTooLong is returned by Encode when the input string has
// more runes than the codec's message length k.
var ErrMessageTooLong = errors.New("textcodec: message longer than k")

// Codec pairs a Reed-Solomon code with a symbol mapper.
type Codec struct {
	code   *rs.Code
	mapper *alphabet.Mapper
}

// New builds a Codec over the given code and mapper. The mapper's
// alphabet size must equal the code's field order, since every mapped
// value must be a valid field element.
func New(code *rs.Code, mapper *alphabet.Mapper) (*Codec, error) {
	if mapper.Base() != code.P() {
		return nil, fmt.Errorf("textcodec: alphabet base %d does not match field order %d", mapper.Base(), code.P())
	}
	return &Codec{code: code, mapper: mapper}, nil
}

// NewDefault builds a Codec for the given (p, n, k) code parameters
// using alphabet.NewDefault.
func NewDefault(p, n, k uint64) (*Codec, error) {
	code, err := rs.New(p, n, k)
	if err != nil {
		return nil, err
	}
	return New(code, alphabet.NewDefault())
}

// Code returns the underlying Reed-Solomon code.
func (c *Codec) Code() *rs.Code { return c.code }

// Mapper returns the underlying symbol mapper.
func (c *Codec) Mapper() *alphabet.Mapper { return c.mapper }

// Encode maps message to field elements and runs rs.Code.Encode,
// returning the n-symbol codeword string. A message shorter than k
// runes is assumed to be left-padded with the mapper's zero symbol,
// mirroring the reference implementation's unconditional pad-on-encode
// behaviour. rs.Code.Encode always returns exactly n field elements, so
// unlike the reference there is no separate truncated-output case to
// opt out of with a nostrip flag here; that flag only matters on Decode.
func (c *Codec) Encode(message string) (string, error) {
	message = c.mapper.Pad(message, int(c.code.K()))

	values, err := c.mapper.Decode(message)
	if err != nil {
		return "", err
	}
	if uint64(len(values)) > c.code.K() {
		return "", fmt.Errorf("%w: got %d, k=%d", ErrMessageTooLong, len(values), c.code.K())
	}

	elems, err := toFieldElements(values, c.code.P())
	if err != nil {
		return "", err
	}

	codeword, err := c.code.Encode(elems)
	if err != nil {
		return "", err
	}

	return c.mapper.Encode(fromFieldElements(codeword))
}

// Verify maps word to field elements and reports whether it is a valid
// codeword.
func (c *Codec) Verify(word string) (bool, error) {
	values, err := c.mapper.Decode(word)
	if err != nil {
		return false, err
	}
	elems, err := toFieldElements(values, c.code.P())
	if err != nil {
		return false, err
	}
	return c.code.Verify(elems)
}

// Decode maps word to field elements, runs rs.Code.Decode, and maps the
// recovered message back to a string. Unless nostrip is true, leading
// zero symbols are stripped from the result.
func (c *Codec) Decode(word string, nostrip bool) (string, error) {
	values, err := c.mapper.Decode(word)
	if err != nil {
		return "", err
	}
	elems, err := toFieldElements(values, c.code.P())
	if err != nil {
		return "", err
	}

	message, err := c.code.Decode(elems)
	if err != nil {
		return "", err
	}

	s, err := c.mapper.Encode(fromFieldElements(message))
	if err != nil {
		return "", err
	}
	if nostrip {
		return s, nil
	}
	return c.mapper.Strip(s), nil
}

func toFieldElements(values []uint64, p uint64) ([]field.Fp, error) {
	out := make([]field.Fp, len(values))
	for i, v := range values {
		e, err := field.NewFp(p, v)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func fromFieldElements(elems []field.Fp) []uint64 {
	out := make([]uint64, len(elems))
	for i, e := range elems {
		out[i] = e.Value()
	}
	return out
}
