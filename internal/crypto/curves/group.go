package curves

import (
	"fmt"
	"math/big"

	"github.com/smallyu/go-ecmath/pkg/bigint"
	"github.com/smallyu/go-ecmath/pkg/ecc"
	"github.com/smallyu/go-ecmath/pkg/modint"
)

// Point represents a point on an elliptic curve.
type Point interface {
	// Bytes returns the compressed serialization of the point.
	Bytes() []byte

	// Add adds this point to another point.
	Add(p Point) Point

	// ScalarMult multiplies this point by a scalar.
	ScalarMult(s Scalar) Point

	// Equal reports whether both points are the same group element.
	Equal(p Point) bool
}

// Scalar represents a value in the curve's scalar field.
type Scalar interface {
	// Bytes returns the fixed-width big-endian serialization of the scalar.
	Bytes() []byte

	// BigInt returns the scalar as a big integer.
	BigInt() *big.Int

	// Add adds this scalar to another scalar.
	Add(s Scalar) Scalar

	// Mul multiplies this scalar by another scalar.
	Mul(s Scalar) Scalar

	// Invert returns the modular inverse of the scalar.
	Invert() (Scalar, error)
}

// Group is the point/scalar view of a prime-order curve.
type Group interface {
	// Name returns the name of the curve.
	Name() string

	// NewScalar generates a random non-zero scalar.
	NewScalar() (Scalar, error)

	// NewScalarFromBigInt reduces n into the scalar field.
	NewScalarFromBigInt(n *big.Int) Scalar

	// NewPointFromBytes deserializes a SEC 1 point.
	NewPointFromBytes(b []byte) (Point, error)

	// BasePoint returns the generator point G.
	BasePoint() Point

	// Order returns the order of the base point.
	Order() *big.Int
}

// EngineGroup implements Group on top of an ecc.Curve.
type EngineGroup struct {
	curve *ecc.Curve
}

// NewGroup returns the Group view of c. The curve must have a non-zero order.
func NewGroup(c *ecc.Curve) *EngineGroup {
	return &EngineGroup{curve: c}
}

func (g *EngineGroup) Name() string { return g.curve.Name() }

func (g *EngineGroup) Order() *big.Int { return g.curve.Order().BigInt() }

func (g *EngineGroup) NewScalar() (Scalar, error) {
	k, err := randomScalar(g.Order())
	if err != nil {
		return nil, err
	}
	return g.NewScalarFromBigInt(k), nil
}

func (g *EngineGroup) NewScalarFromBigInt(n *big.Int) Scalar {
	return &engineScalar{v: modint.MustNew(bigint.FromBig(n), g.curve.Order()), curve: g.curve}
}

func (g *EngineGroup) NewPointFromBytes(b []byte) (Point, error) {
	p, err := ecc.ParsePoint(g.curve, b)
	if err != nil {
		return nil, err
	}
	return &enginePoint{p: p.Projective()}, nil
}

func (g *EngineGroup) BasePoint() Point {
	return &enginePoint{p: g.curve.G().Projective(), base: true}
}

type engineScalar struct {
	v     modint.Int
	curve *ecc.Curve
}

func mustEngineScalar(s Scalar) *engineScalar {
	es, ok := s.(*engineScalar)
	if !ok {
		panic(fmt.Sprintf("curves: unexpected scalar type %T", s))
	}
	return es
}

func (s *engineScalar) Bytes() []byte { return s.v.Value().PaddedBytes(s.curve.OrderSize()) }

func (s *engineScalar) BigInt() *big.Int { return s.v.Value().BigInt() }

func (s *engineScalar) Add(o Scalar) Scalar {
	return &engineScalar{v: s.v.Add(mustEngineScalar(o).v), curve: s.curve}
}

func (s *engineScalar) Mul(o Scalar) Scalar {
	return &engineScalar{v: s.v.Mul(mustEngineScalar(o).v), curve: s.curve}
}

func (s *engineScalar) Invert() (Scalar, error) {
	inv, err := s.v.Inverse()
	if err != nil {
		return nil, err
	}
	return &engineScalar{v: inv, curve: s.curve}, nil
}

type enginePoint struct {
	p ecc.ProjectivePoint
	// base points multiply through the curve's fixed-base tables.
	base bool
}

func mustEnginePoint(p Point) *enginePoint {
	ep, ok := p.(*enginePoint)
	if !ok {
		panic(fmt.Sprintf("curves: unexpected point type %T", p))
	}
	return ep
}

func (p *enginePoint) Bytes() []byte { return p.p.Affine().Bytes(true) }

func (p *enginePoint) Add(o Point) Point {
	return &enginePoint{p: p.p.Add(mustEnginePoint(o).p)}
}

func (p *enginePoint) ScalarMult(s Scalar) Point {
	k := mustEngineScalar(s).v.Value()
	if p.base {
		return &enginePoint{p: p.p.Curve().FixedBase().Mul(k)}
	}
	return &enginePoint{p: p.p.Mul(k)}
}

func (p *enginePoint) Equal(o Point) bool {
	return p.p.Equal(mustEnginePoint(o).p)
}

// compile-time checks
var (
	_ Curve = (*Secp256k1)(nil)
	_ Curve = (*Engine)(nil)
	_ Group = (*EngineGroup)(nil)
)
