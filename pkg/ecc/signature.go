package ecc

import (
	"fmt"

	"github.com/smallyu/go-ecmath/pkg/bigint"
)

// Signature is an ECDSA (r, s) pair.
type Signature struct {
	R, S  bigint.Int
	curve *Curve
}

// NewSignature wraps r and s for curve c.
func NewSignature(c *Curve, r, s bigint.Int) *Signature {
	return &Signature{R: r, S: s, curve: c}
}

func (s *Signature) Curve() *Curve { return s.curve }

// Bytes returns r || s, each fitted to the order width.
func (s *Signature) Bytes() []byte {
	size := s.curve.orderSize
	return append(s.R.PaddedBytes(size), s.S.PaddedBytes(size)...)
}

// Hex returns r || s as hex, each fitted to the order width.
func (s *Signature) Hex() string {
	size := s.curve.orderSize
	return s.R.PaddedHex(size) + s.S.PaddedHex(size)
}

// ParseSignatureHex parses the output of Signature.Hex.
func ParseSignatureHex(c *Curve, text string) (*Signature, error) {
	size := c.orderSize
	if size == 0 || len(text) != 4*size {
		return nil, fmt.Errorf("%w: want %d hex digits, got %d", ErrInvalidSignature, 4*size, len(text))
	}
	r, err := bigint.ParseUnsignedHex(text[:2*size])
	if err != nil {
		return nil, fmt.Errorf("%w: r: %v", ErrInvalidSignature, err)
	}
	s, err := bigint.ParseUnsignedHex(text[2*size:])
	if err != nil {
		return nil, fmt.Errorf("%w: s: %v", ErrInvalidSignature, err)
	}
	return &Signature{R: r, S: s, curve: c}, nil
}

// ParseSignature parses the output of Signature.Bytes.
func ParseSignature(c *Curve, b []byte) (*Signature, error) {
	size := c.orderSize
	if size == 0 || len(b) != 2*size {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidSignature, 2*size, len(b))
	}
	return &Signature{
		R:     bigint.FromUnsignedBytes(b[:size]),
		S:     bigint.FromUnsignedBytes(b[size:]),
		curve: c,
	}, nil
}
