package curves

import (
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/smallyu/go-ecmath/pkg/bigint"
	"github.com/smallyu/go-ecmath/pkg/ecc"
)

// Curve is the big.Int view of a curve used by code written against
// crypto/elliptic. The point at infinity is (0, 0), as in crypto/elliptic.
type Curve interface {
	// Params returns the curve parameters (Order, etc.)
	Params() *elliptic.CurveParams

	// NewScalar generates a random scalar in [1, N-1]
	NewScalar() (*big.Int, error)

	// ScalarBaseMult computes k * G
	ScalarBaseMult(k *big.Int) (*big.Int, *big.Int)

	// ScalarMult computes k * P
	ScalarMult(Px, Py, k *big.Int) (*big.Int, *big.Int)

	// Add combines two points
	Add(x1, y1, x2, y2 *big.Int) (*big.Int, *big.Int)
}

// randomScalar draws from [1, n-1]. Orders below 2 leave nothing to draw.
func randomScalar(n *big.Int) (*big.Int, error) {
	if n == nil || n.Cmp(big.NewInt(2)) < 0 {
		return nil, fmt.Errorf("%w: order %v has no non-zero scalars", ecc.ErrInvalidCurve, n)
	}
	max := new(big.Int).Sub(n, big.NewInt(1))
	k, err := rand.Int(rand.Reader, max)
	if err != nil {
		return nil, err
	}
	return k.Add(k, big.NewInt(1)), nil
}

// Secp256k1 is backed by the decred implementation. It serves as a reference
// for Engine.
type Secp256k1 struct{}

func (c *Secp256k1) Params() *elliptic.CurveParams {
	return secp256k1.S256().Params()
}

func (c *Secp256k1) NewScalar() (*big.Int, error) {
	return randomScalar(c.Params().N)
}

func (c *Secp256k1) ScalarBaseMult(k *big.Int) (*big.Int, *big.Int) {
	return secp256k1.S256().ScalarBaseMult(k.Bytes())
}

func (c *Secp256k1) ScalarMult(Px, Py, k *big.Int) (*big.Int, *big.Int) {
	return secp256k1.S256().ScalarMult(Px, Py, k.Bytes())
}

func (c *Secp256k1) Add(x1, y1, x2, y2 *big.Int) (*big.Int, *big.Int) {
	return secp256k1.S256().Add(x1, y1, x2, y2)
}

// NewSecp256k1 returns the decred-backed secp256k1 curve.
func NewSecp256k1() Curve {
	return &Secp256k1{}
}

// Engine adapts an ecc.Curve to the Curve interface.
//
// The CurveParams returned by Params carry no A coefficient, and their own
// methods (IsOnCurve, Add, Double, ScalarMult, ScalarBaseMult) assume
// a = -3. Use the Engine methods instead; the params are for reading P, N,
// B, the generator and the bit size only.
type Engine struct {
	curve  *ecc.Curve
	params *elliptic.CurveParams
}

// NewEngine returns the Curve view of c.
func NewEngine(c *ecc.Curve) *Engine {
	g := c.G()
	return &Engine{
		curve: c,
		params: &elliptic.CurveParams{
			P:       c.Modulus().BigInt(),
			N:       c.Order().BigInt(),
			B:       c.B().Value().BigInt(),
			Gx:      g.X().Value().BigInt(),
			Gy:      g.Y().Value().BigInt(),
			BitSize: c.Modulus().BitLen(),
			Name:    c.Name(),
		},
	}
}

// Curve returns the wrapped curve.
func (e *Engine) Curve() *ecc.Curve { return e.curve }

func (e *Engine) Params() *elliptic.CurveParams { return e.params }

func (e *Engine) NewScalar() (*big.Int, error) {
	return randomScalar(e.params.N)
}

func (e *Engine) point(x, y *big.Int) ecc.AffinePoint {
	if x.Sign() == 0 && y.Sign() == 0 {
		return ecc.Infinity(e.curve)
	}
	return e.curve.CreatePoint(bigint.FromBig(x), bigint.FromBig(y))
}

func coords(p ecc.AffinePoint) (*big.Int, *big.Int) {
	if p.IsInfinity() {
		return new(big.Int), new(big.Int)
	}
	return p.X().Value().BigInt(), p.Y().Value().BigInt()
}

// IsOnCurve reports whether (x, y) is a finite point of the curve.
func (e *Engine) IsOnCurve(x, y *big.Int) bool {
	p := e.point(x, y)
	return !p.IsInfinity() && p.Valid()
}

func (e *Engine) ScalarBaseMult(k *big.Int) (*big.Int, *big.Int) {
	return coords(e.curve.FixedBase().Mul(bigint.FromBig(k)).Affine())
}

func (e *Engine) ScalarMult(Px, Py, k *big.Int) (*big.Int, *big.Int) {
	return coords(e.point(Px, Py).Projective().Mul(bigint.FromBig(k)).Affine())
}

func (e *Engine) Add(x1, y1, x2, y2 *big.Int) (*big.Int, *big.Int) {
	return coords(e.point(x1, y1).Projective().Add(e.point(x2, y2).Projective()).Affine())
}

// Double returns 2·(x, y).
func (e *Engine) Double(x, y *big.Int) (*big.Int, *big.Int) {
	return coords(e.point(x, y).Projective().Double().Affine())
}
