package ecc

import (
	"encoding/json"
	"fmt"

	"github.com/smallyu/go-ecmath/internal/encoding"
	"github.com/smallyu/go-ecmath/pkg/bigint"
)

// KeyTypeEC is the JWK "kty" of elliptic curve keys.
const KeyTypeEC = "EC"

// JWK is the JSON Web Key form of a public key (RFC 7517).
type JWK struct {
	Crv string `json:"crv"`
	Kty string `json:"kty"`
	X   string `json:"x"`
	Y   string `json:"y"`
}

// JWK exports k with coordinates fitted to the field width.
func (k *PublicKey) JWK() JWK {
	c := k.point.curve
	return JWK{
		Crv: c.name,
		Kty: KeyTypeEC,
		X:   k.point.x.PaddedBase64URL(c.fieldSize),
		Y:   k.point.y.PaddedBase64URL(c.fieldSize),
	}
}

// PublicKey resolves the curve in reg and checks that the point is on it.
func (j JWK) PublicKey(reg *Registry) (*PublicKey, error) {
	if j.Kty != KeyTypeEC {
		return nil, fmt.Errorf("%w: key type %q", ErrInvalidPublicKey, j.Kty)
	}
	c, err := reg.Get(j.Crv)
	if err != nil {
		return nil, err
	}
	x, err := bigint.ParseUnsignedBase64URL(j.X)
	if err != nil {
		return nil, fmt.Errorf("%w: x: %v", ErrInvalidPublicKey, err)
	}
	y, err := bigint.ParseUnsignedBase64URL(j.Y)
	if err != nil {
		return nil, fmt.Errorf("%w: y: %v", ErrInvalidPublicKey, err)
	}
	if x.Gte(c.p) || y.Gte(c.p) {
		return nil, fmt.Errorf("%w: coordinate exceeds the field", ErrNotOnCurve)
	}
	return NewPublicKey(c.CreatePoint(x, y))
}

// ParseJWK decodes a JSON Web Key.
func ParseJWK(reg *Registry, data []byte) (*PublicKey, error) {
	var j JWK
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return j.PublicKey(reg)
}

// ParsePoint decodes the SEC 1 forms produced by AffinePoint.Bytes. Compressed
// points need p ≡ 3 (mod 4).
func ParsePoint(c *Curve, b []byte) (AffinePoint, error) {
	size := c.fieldSize
	if len(b) == 0 {
		return AffinePoint{}, fmt.Errorf("%w: empty input", ErrInvalidPublicKey)
	}
	switch {
	case len(b) == 1 && b[0] == 0x00:
		return Infinity(c), nil

	case len(b) == 1+2*size && b[0] == 0x04:
		p := c.CreatePoint(bigint.FromUnsignedBytes(b[1:1+size]), bigint.FromUnsignedBytes(b[1+size:]))
		if !c.Has(p) {
			return AffinePoint{}, fmt.Errorf("%w: %s", ErrNotOnCurve, p)
		}
		return p, nil

	case len(b) == 1+size && (b[0] == 0x02 || b[0] == 0x03):
		return c.decompress(bigint.FromUnsignedBytes(b[1:]), b[0] == 0x03)
	}
	return AffinePoint{}, fmt.Errorf("%w: %d bytes with prefix %#x", ErrInvalidPublicKey, len(b), b[0])
}

func (c *Curve) decompress(x bigint.Int, odd bool) (AffinePoint, error) {
	if !c.p.Bit(0) || !c.p.Bit(1) {
		return AffinePoint{}, fmt.Errorf("%w: compressed points need p = 3 mod 4", ErrInvalidPublicKey)
	}
	if x.Gte(c.p) {
		return AffinePoint{}, fmt.Errorf("%w: x exceeds the field", ErrNotOnCurve)
	}
	xm := c.field(x)
	rhs := c.rhs(xm)
	y := rhs.Exp(c.p.Inc().Half().Half())
	if !y.Square().Eq(rhs) {
		return AffinePoint{}, fmt.Errorf("%w: no square root for x = %s", ErrNotOnCurve, x)
	}
	if y.IsZero() && odd {
		return AffinePoint{}, fmt.Errorf("%w: odd prefix for y = 0", ErrNotOnCurve)
	}
	if y.IsOdd() != odd {
		y = y.Negate()
	}
	return AffinePoint{x: xm, y: y, curve: c}, nil
}

// ParsePublicKeyHex decodes a hex SEC 1 public key.
func ParsePublicKeyHex(c *Curve, text string) (*PublicKey, error) {
	b, err := encoding.DecodeHex(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	p, err := ParsePoint(c, b)
	if err != nil {
		return nil, err
	}
	return NewPublicKey(p)
}
