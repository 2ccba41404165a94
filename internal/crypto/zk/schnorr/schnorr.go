// Package schnorr proves possession of a private key: knowledge of x such
// that X = x * G on any curves.Group.
package schnorr

import (
	"crypto/sha256"
	"errors"
	"math/big"

	"github.com/smallyu/go-ecmath/internal/crypto/curves"
	"github.com/smallyu/go-ecmath/pkg/ecc"
)

// Proof represents a Schnorr proof of knowledge of a discrete logarithm.
type Proof struct {
	R []byte   // Commitment R = k * G, compressed
	S *big.Int // Response s = k + e * x mod n
}

// Prove generates a proof for the secret x with public key X = x*G. The
// context is bound into the challenge, so a proof made for one session does
// not verify in another.
func Prove(g curves.Group, x curves.Scalar, X curves.Point, context []byte) (*Proof, error) {
	if g == nil || x == nil || X == nil {
		return nil, errors.New("schnorr: inputs cannot be nil")
	}

	// 1. Generate random nonce k
	k, err := g.NewScalar()
	if err != nil {
		return nil, err
	}

	// 2. Compute R = k * G
	R := g.BasePoint().ScalarMult(k).Bytes()

	// 3. Compute challenge e = H(X, R, context)
	e := challenge(g, X, R, context)

	// 4. Compute s = k + e * x mod n
	s := k.Add(e.Mul(x))

	return &Proof{R: R, S: s.BigInt()}, nil
}

// ProveKey proves possession of key.
func ProveKey(key *ecc.PrivateKey, context []byte) (*Proof, error) {
	g := curves.NewGroup(key.Curve())
	x := g.NewScalarFromBigInt(key.D().Value().BigInt())
	X, err := g.NewPointFromBytes(key.PublicKey().Point().Bytes(true))
	if err != nil {
		return nil, err
	}
	return Prove(g, x, X, context)
}

// Verify checks the proof for public key X.
func (p *Proof) Verify(g curves.Group, X curves.Point, context []byte) bool {
	if p == nil || p.S == nil || g == nil || X == nil {
		return false
	}

	// Check if s is in [0, n-1]
	if p.S.Sign() < 0 || p.S.Cmp(g.Order()) >= 0 {
		return false
	}
	R, err := g.NewPointFromBytes(p.R)
	if err != nil {
		return false
	}

	e := challenge(g, X, p.R, context)

	// s*G = R + e*X
	lhs := g.BasePoint().ScalarMult(g.NewScalarFromBigInt(p.S))
	rhs := R.Add(X.ScalarMult(e))
	return lhs.Equal(rhs)
}

// VerifyKey checks the proof for pub.
func (p *Proof) VerifyKey(pub *ecc.PublicKey, context []byte) bool {
	g := curves.NewGroup(pub.Curve())
	X, err := g.NewPointFromBytes(pub.Point().Bytes(true))
	if err != nil {
		return false
	}
	return p.Verify(g, X, context)
}

// challenge computes H(name, X, R, context) mod n
func challenge(g curves.Group, X curves.Point, R, context []byte) curves.Scalar {
	h := sha256.New()
	h.Write([]byte(g.Name()))
	h.Write(X.Bytes())
	h.Write(R)
	h.Write(context)
	return g.NewScalarFromBigInt(new(big.Int).SetBytes(h.Sum(nil)))
}
