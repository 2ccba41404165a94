package ecc

import (
	"fmt"

	"github.com/smallyu/go-ecmath/pkg/bigint"
	"github.com/smallyu/go-ecmath/pkg/modint"
)

// ProjectivePoint is a point in homogeneous coordinates (X : Y : Z) standing
// for the affine point (X/Z, Y/Z), or the point at infinity.
type ProjectivePoint struct {
	x, y, z modint.Int
	curve   *Curve
	inf     bool
}

// ProjectiveInfinity returns the identity element of c in projective form.
func ProjectiveInfinity(c *Curve) ProjectivePoint {
	zero := modint.Zero(c.p)
	return ProjectivePoint{x: zero, y: zero, z: zero, curve: c, inf: true}
}

func (p ProjectivePoint) X() modint.Int { return p.x }
func (p ProjectivePoint) Y() modint.Int { return p.y }
func (p ProjectivePoint) Z() modint.Int { return p.z }

func (p ProjectivePoint) Curve() *Curve { return p.curve }

func (p ProjectivePoint) IsInfinity() bool { return p.inf }

func (p ProjectivePoint) Valid() bool { return p.Affine().Valid() }

// Equal compares p and q without leaving projective coordinates.
func (p ProjectivePoint) Equal(q ProjectivePoint) bool {
	if p.inf || q.inf {
		return p.inf == q.inf
	}
	return p.x.Mul(q.z).Eq(q.x.Mul(p.z)) && p.y.Mul(q.z).Eq(q.y.Mul(p.z))
}

func (p ProjectivePoint) Negate() ProjectivePoint {
	if p.inf {
		return p
	}
	return ProjectivePoint{x: p.x, y: p.y.Negate(), z: p.z, curve: p.curve}
}

// Double returns 2p. A point with y == 0 has a vertical tangent and doubles
// to infinity.
func (p ProjectivePoint) Double() ProjectivePoint {
	if p.inf || p.y.IsZero() {
		return ProjectiveInfinity(p.curve)
	}
	x, y, z := p.x, p.y, p.z

	t := x.Square().Triple().Add(p.curve.a.Mul(z.Square()))
	u := y.Mul(z).Double()
	uy := u.Mul(y)
	v := x.Mul(uy).Double()
	w := t.Square().Sub(v.Double())

	return ProjectivePoint{
		x:     u.Mul(w),
		y:     t.Mul(v.Sub(w)).Sub(uy.Square().Double()),
		z:     u.Square().Mul(u),
		curve: p.curve,
	}
}

// Add returns p + q.
func (p ProjectivePoint) Add(q ProjectivePoint) ProjectivePoint {
	if p.inf {
		return q
	}
	if q.inf {
		return p
	}

	t0 := p.y.Mul(q.z)
	t1 := q.y.Mul(p.z)
	u0 := p.x.Mul(q.z)
	u1 := q.x.Mul(p.z)
	t := t0.Sub(t1)
	u := u0.Sub(u1)

	if u.IsZero() {
		if t.IsZero() {
			return p.Double()
		}
		return ProjectiveInfinity(p.curve)
	}

	u2 := u.Square()
	u3 := u.Mul(u2)
	v := p.z.Mul(q.z)
	w := t.Square().Mul(v).Sub(u2.Mul(u0.Add(u1)))

	return ProjectivePoint{
		x:     u.Mul(w),
		y:     t.Mul(u0.Mul(u2).Sub(w)).Sub(t0.Mul(u3)),
		z:     u3.Mul(v),
		curve: p.curve,
	}
}

// Mul returns k·p by double-and-add, least significant bit first.
func (p ProjectivePoint) Mul(k bigint.Int) ProjectivePoint {
	acc := ProjectiveInfinity(p.curve)
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

// Affine converts p with a single field inversion.
func (p ProjectivePoint) Affine() AffinePoint {
	if p.inf || p.z.IsZero() {
		return Infinity(p.curve)
	}
	zinv := mustInverse(p.z)
	return AffinePoint{x: p.x.Mul(zinv), y: p.y.Mul(zinv), curve: p.curve}
}

func (p ProjectivePoint) String() string {
	if p.inf {
		return "(inf)"
	}
	return fmt.Sprintf("(%s : %s : %s)", p.x, p.y, p.z)
}
