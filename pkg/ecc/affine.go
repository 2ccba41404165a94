package ecc

import (
	"fmt"

	"github.com/smallyu/go-ecmath/pkg/bigint"
	"github.com/smallyu/go-ecmath/pkg/modint"
)

// AffinePoint is a curve point (x, y) or the point at infinity.
type AffinePoint struct {
	x, y  modint.Int
	curve *Curve
	inf   bool
}

// Infinity returns the identity element of c in affine form.
func Infinity(c *Curve) AffinePoint {
	zero := modint.Zero(c.p)
	return AffinePoint{x: zero, y: zero, curve: c, inf: true}
}

// X returns the x coordinate. It is zero for the point at infinity.
func (p AffinePoint) X() modint.Int { return p.x }

// Y returns the y coordinate. It is zero for the point at infinity.
func (p AffinePoint) Y() modint.Int { return p.y }

func (p AffinePoint) Curve() *Curve { return p.curve }

func (p AffinePoint) IsInfinity() bool { return p.inf }

// Valid reports whether p lies on its curve.
func (p AffinePoint) Valid() bool { return p.curve.Has(p) }

// Equal reports whether p and q are the same point.
func (p AffinePoint) Equal(q AffinePoint) bool {
	if p.inf || q.inf {
		return p.inf == q.inf
	}
	return p.x.Eq(q.x) && p.y.Eq(q.y)
}

// Negate returns -p.
func (p AffinePoint) Negate() AffinePoint {
	if p.inf {
		return p
	}
	return AffinePoint{x: p.x, y: p.y.Negate(), curve: p.curve}
}

// Add returns p + q.
func (p AffinePoint) Add(q AffinePoint) AffinePoint {
	if p.inf {
		return q
	}
	if q.inf {
		return p
	}
	c := p.curve

	var slope modint.Int
	dx := q.x.Sub(p.x)
	if dx.IsZero() {
		if !p.y.Eq(q.y) || p.y.IsZero() {
			return Infinity(c)
		}
		num := p.x.Square().Triple().Add(c.a)
		slope = num.Mul(mustInverse(p.y.Double()))
	} else {
		slope = q.y.Sub(p.y).Mul(mustInverse(dx))
	}

	x3 := slope.Square().Sub(p.x).Sub(q.x)
	y3 := slope.Mul(p.x.Sub(x3)).Sub(p.y)
	return AffinePoint{x: x3, y: y3, curve: c}
}

// Double returns 2p.
func (p AffinePoint) Double() AffinePoint { return p.Add(p) }

// Mul returns k·p by double-and-add, least significant bit first.
func (p AffinePoint) Mul(k bigint.Int) AffinePoint {
	acc := Infinity(p.curve)
	addend := p
	mag := k.Abs()
	bits := mag.BitLen()
	for i := 0; i < bits; i++ {
		if mag.Bit(i) {
			acc = acc.Add(addend)
		}
		if i+1 < bits {
			addend = addend.Double()
		}
	}
	if k.Sign() < 0 {
		return acc.Negate()
	}
	return acc
}

// Projective returns p as (x : y : 1).
func (p AffinePoint) Projective() ProjectivePoint {
	if p.inf {
		return ProjectiveInfinity(p.curve)
	}
	return ProjectivePoint{x: p.x, y: p.y, z: modint.One(p.curve.p), curve: p.curve}
}

// Hex returns the SEC 1 encoding of p: 00 for infinity, 02/03 followed by x
// when compressed, 04 followed by x and y otherwise.
func (p AffinePoint) Hex(compress bool) string {
	return fmt.Sprintf("%x", p.Bytes(compress))
}

// Bytes returns the SEC 1 encoding of p.
func (p AffinePoint) Bytes(compress bool) []byte {
	if p.inf {
		return []byte{0x00}
	}
	size := p.curve.fieldSize
	if compress {
		prefix := byte(0x02)
		if p.y.IsOdd() {
			prefix = 0x03
		}
		return append([]byte{prefix}, p.x.Value().PaddedBytes(size)...)
	}
	out := append([]byte{0x04}, p.x.Value().PaddedBytes(size)...)
	return append(out, p.y.Value().PaddedBytes(size)...)
}

func (p AffinePoint) String() string {
	if p.inf {
		return "(inf)"
	}
	return fmt.Sprintf("(%s, %s)", p.x, p.y)
}

// mustInverse inverts a field element. The field modulus is prime and the
// callers only pass non-zero values, so failure means the curve is invalid.
func mustInverse(v modint.Int) modint.Int {
	inv, err := v.Inverse()
	if err != nil {
		panic(fmt.Errorf("ecc: %w", err))
	}
	return inv
}
