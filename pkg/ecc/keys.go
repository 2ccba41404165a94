package ecc

import (
	"errors"
	"fmt"
	"sync"

	"github.com/smallyu/go-ecmath/pkg/bigint"
	"github.com/smallyu/go-ecmath/pkg/modint"
)

// maxNonceAttempts bounds SignWithNonceSource retries.
const maxNonceAttempts = 16

// NonceSource yields the nonce for a signing attempt, counted from zero.
type NonceSource func(attempt int) (bigint.Int, error)

// PrivateKey is a scalar d in [1, n).
type PrivateKey struct {
	curve *Curve
	d     modint.Int

	pubOnce sync.Once
	pub     *PublicKey
}

// NewPrivateKey reduces d modulo the curve order.
func NewPrivateKey(c *Curve, d bigint.Int) (*PrivateKey, error) {
	if c.n.Sign() <= 0 {
		return nil, fmt.Errorf("%w: curve %s has no order", ErrInvalidCurve, c.name)
	}
	dm := modint.MustNew(d, c.n)
	if dm.IsZero() {
		return nil, fmt.Errorf("%w: scalar is zero modulo the order", ErrInvalidPrivateKey)
	}
	return &PrivateKey{curve: c, d: dm}, nil
}

func (k *PrivateKey) Curve() *Curve { return k.curve }

// D returns the secret scalar.
func (k *PrivateKey) D() modint.Int { return k.d }

// PublicKey returns d·G. It is computed once per key.
func (k *PrivateKey) PublicKey() *PublicKey {
	k.pubOnce.Do(func() {
		point := k.curve.FixedBase().Mul(k.d.Value()).Affine()
		k.pub = &PublicKey{point: point}
	})
	return k.pub
}

// Sign produces an ECDSA signature of the digest e with nonce k. It returns
// ErrDegenerateSignature when k leads to r == 0 or s == 0.
func (k *PrivateKey) Sign(e, nonce bigint.Int) (*Signature, error) {
	c := k.curve
	n := c.n
	e = c.TruncateHash(e)

	km := modint.MustNew(nonce, n)
	if km.IsZero() {
		return nil, fmt.Errorf("%w: nonce is zero modulo the order", ErrDegenerateSignature)
	}

	point := c.FixedBase().Mul(km.Value()).Affine()
	if point.IsInfinity() {
		return nil, fmt.Errorf("%w: k·G is infinity", ErrDegenerateSignature)
	}
	r := modint.MustNew(point.x.Value(), n)
	if r.IsZero() {
		return nil, fmt.Errorf("%w: r is zero", ErrDegenerateSignature)
	}

	kinv, err := km.Inverse()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateSignature, err)
	}
	s := kinv.Mul(modint.MustNew(e, n).Add(r.Mul(k.d)))
	if s.IsZero() {
		return nil, fmt.Errorf("%w: s is zero", ErrDegenerateSignature)
	}
	return &Signature{R: r.Value(), S: s.Value(), curve: c}, nil
}

// SignWithNonceSource signs e, asking src for a new nonce after each
// degenerate attempt.
func (k *PrivateKey) SignWithNonceSource(e bigint.Int, src NonceSource) (*Signature, error) {
	for attempt := 0; attempt < maxNonceAttempts; attempt++ {
		nonce, err := src(attempt)
		if err != nil {
			return nil, fmt.Errorf("nonce attempt %d: %w", attempt, err)
		}
		sig, err := k.Sign(e, nonce)
		if errors.Is(err, ErrDegenerateSignature) {
			logger.Debugw("degenerate nonce, retrying", "attempt", attempt)
			continue
		}
		return sig, err
	}
	return nil, fmt.Errorf("%w: gave up after %d nonces", ErrDegenerateSignature, maxNonceAttempts)
}

// PublicKey is a curve point Q = d·G.
type PublicKey struct {
	point AffinePoint
}

// NewPublicKey wraps p after checking that it is a finite point on its curve.
func NewPublicKey(p AffinePoint) (*PublicKey, error) {
	if p.IsInfinity() || !p.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrNotOnCurve, p)
	}
	return &PublicKey{point: p}, nil
}

func (k *PublicKey) Point() AffinePoint { return k.point }

func (k *PublicKey) Curve() *Curve { return k.point.curve }

// Hex returns the SEC 1 encoding of the key.
func (k *PublicKey) Hex(compress bool) string { return k.point.Hex(compress) }

// Equal reports whether both keys hold the same point.
func (k *PublicKey) Equal(o *PublicKey) bool {
	return o != nil && k.point.curve == o.point.curve && k.point.Equal(o.point)
}

// Verify checks an ECDSA signature of e.
func (k *PublicKey) Verify(e bigint.Int, sig *Signature) bool {
	if sig == nil {
		return false
	}
	c := k.point.curve
	n := c.n
	if n.Sign() <= 0 {
		return false
	}
	if sig.R.Sign() <= 0 || sig.R.Gte(n) || sig.S.Sign() <= 0 || sig.S.Gte(n) {
		return false
	}

	e = c.TruncateHash(e)
	w, err := modint.MustNew(sig.S, n).Inverse()
	if err != nil {
		return false
	}
	u1 := modint.MustNew(e, n).Mul(w)
	u2 := modint.MustNew(sig.R, n).Mul(w)

	sum := c.FixedBase().Mul(u1.Value()).Add(k.point.Projective().Mul(u2.Value())).Affine()
	if sum.IsInfinity() {
		return false
	}
	return modint.MustNew(sum.x.Value(), n).Value().Eq(sig.R)
}
