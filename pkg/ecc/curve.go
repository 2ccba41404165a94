// Package ecc implements short Weierstrass curve arithmetic, y² = x³ + ax + b
// over a prime field, together with ECDSA keys and signatures.
//
// Points come in affine and projective form. The point at infinity is an
// explicit state of both types rather than a reserved coordinate pair, so
// (0, 0) remains an ordinary point on curves where it exists.
//
// All arithmetic is variable time.
package ecc

import (
	"fmt"
	"sync"

	"github.com/smallyu/go-ecmath/pkg/bigint"
	"github.com/smallyu/go-ecmath/pkg/modint"
)

// CurveHex describes a curve with unsigned hex fields. It is the form used by
// the registry and by configuration files.
type CurveHex struct {
	Name     string `yaml:"name" json:"name"`
	Modulus  string `yaml:"modulus" json:"modulus"`
	A        string `yaml:"a" json:"a"`
	B        string `yaml:"b" json:"b"`
	Gx       string `yaml:"gx" json:"gx"`
	Gy       string `yaml:"gy" json:"gy"`
	Order    string `yaml:"order" json:"order"`
	Cofactor string `yaml:"cofactor" json:"cofactor"`
}

// Curve holds immutable domain parameters. A Curve must not be copied.
type Curve struct {
	name string
	a, b modint.Int
	p    bigint.Int
	n    bigint.Int
	h    bigint.Int
	g    AffinePoint

	fieldSize int
	orderSize int

	fixedOnce sync.Once
	fixed     *FixedBase
}

// Build parses a hex description into a Curve.
func Build(def CurveHex) (*Curve, error) {
	fields := []struct {
		name string
		src  string
	}{
		{"a", def.A}, {"b", def.B}, {"modulus", def.Modulus}, {"order", def.Order},
		{"cofactor", def.Cofactor}, {"gx", def.Gx}, {"gy", def.Gy},
	}
	vals := make([]bigint.Int, len(fields))
	for i, f := range fields {
		v, err := bigint.ParseUnsignedHex(f.src)
		if err != nil {
			return nil, fmt.Errorf("curve %s: field %s: %w", def.Name, f.name, err)
		}
		vals[i] = v
	}
	return NewCurve(def.Name, vals[0], vals[1], vals[2], vals[3], vals[4], vals[5], vals[6])
}

// NewCurve validates and builds a curve. A generator of (0, 0) means the curve
// has no generator; G then returns the point at infinity.
func NewCurve(name string, a, b, p, n, h, gx, gy bigint.Int) (*Curve, error) {
	if p.Sign() <= 0 {
		return nil, fmt.Errorf("%w: curve %s: modulus must be positive", ErrInvalidCurve, name)
	}
	if n.Sign() < 0 || h.Sign() < 0 {
		return nil, fmt.Errorf("%w: curve %s: negative order or cofactor", ErrInvalidCurve, name)
	}

	c := &Curve{
		name:      name,
		a:         modint.MustNew(a, p),
		b:         modint.MustNew(b, p),
		p:         p,
		n:         n,
		h:         h,
		fieldSize: byteLen(p),
		orderSize: byteLen(n),
	}

	if gx.IsZero() && gy.IsZero() {
		c.g = Infinity(c)
		return c, nil
	}
	c.g = c.CreatePoint(gx, gy)
	if !c.Has(c.g) {
		return nil, fmt.Errorf("%w: curve %s: generator %s", ErrNotOnCurve, name, c.g)
	}
	return c, nil
}

func byteLen(v bigint.Int) int {
	return (v.BitLen() + 7) / 8
}

func (c *Curve) Name() string { return c.name }

// A returns the linear coefficient.
func (c *Curve) A() modint.Int { return c.a }

// B returns the constant coefficient.
func (c *Curve) B() modint.Int { return c.b }

// Modulus returns the field prime p.
func (c *Curve) Modulus() bigint.Int { return c.p }

// Order returns the order n of the generator.
func (c *Curve) Order() bigint.Int { return c.n }

func (c *Curve) Cofactor() bigint.Int { return c.h }

// G returns the generator.
func (c *Curve) G() AffinePoint { return c.g }

// FieldSize returns the byte width of a serialized coordinate.
func (c *Curve) FieldSize() int { return c.fieldSize }

// OrderSize returns the byte width of a serialized scalar.
func (c *Curve) OrderSize() int { return c.orderSize }

// FixedBase returns the shared fixed-base multiplier for G.
func (c *Curve) FixedBase() *FixedBase {
	c.fixedOnce.Do(func() {
		c.fixed = NewFixedBase(c.g.Projective())
	})
	return c.fixed
}

func (c *Curve) String() string { return c.name }

func (c *Curve) field(v bigint.Int) modint.Int {
	return modint.MustNew(v, c.p)
}

// CreatePoint returns the affine point (x mod p, y mod p). It does not check
// curve membership.
func (c *Curve) CreatePoint(x, y bigint.Int) AffinePoint {
	return AffinePoint{x: c.field(x), y: c.field(y), curve: c}
}

// CreateProjective returns the projective point (x : y : z) reduced mod p.
// A zero z yields the point at infinity.
func (c *Curve) CreateProjective(x, y, z bigint.Int) ProjectivePoint {
	zm := c.field(z)
	if zm.IsZero() {
		return ProjectiveInfinity(c)
	}
	return ProjectivePoint{x: c.field(x), y: c.field(y), z: zm, curve: c}
}

// Has reports whether p satisfies the curve equation. The point at infinity
// is on every curve.
func (c *Curve) Has(p AffinePoint) bool {
	if p.inf {
		return true
	}
	left := p.y.Square()
	right := p.x.Cube().Add(c.a.Mul(p.x)).Add(c.b)
	return left.Eq(right)
}

// rhs returns x³ + ax + b.
func (c *Curve) rhs(x modint.Int) modint.Int {
	return x.Cube().Add(c.a.Mul(x)).Add(c.b)
}

// TruncateHash halves e until it is below the order. This drops low bits
// rather than reducing modulo n.
func (c *Curve) TruncateHash(e bigint.Int) bigint.Int {
	if c.n.Sign() <= 0 {
		return e
	}
	for e.Gte(c.n) {
		e = e.Half()
	}
	return e
}

// CreatePrivateKey wraps d as a private key on c.
func (c *Curve) CreatePrivateKey(d bigint.Int) (*PrivateKey, error) {
	return NewPrivateKey(c, d)
}

// CreatePublicKey derives d·G.
func (c *Curve) CreatePublicKey(d bigint.Int) (*PublicKey, error) {
	k, err := NewPrivateKey(c, d)
	if err != nil {
		return nil, err
	}
	return k.PublicKey(), nil
}
