package pointcache

import (
	"github.com/smallyu/go-ecmath/pkg/bigint"
	"github.com/smallyu/go-ecmath/pkg/ecc"
)

// Curve wraps an ecc.Curve so that doublings and projective conversions
// reachable from its generator are looked up in a store before being
// computed.
type Curve struct {
	*ecc.Curve
	access PointAccess
}

// New returns a caching view of c whose keys live under root.<curve name>.
func New(c *ecc.Curve, root Handle) *Curve {
	return &Curve{
		Curve:  c,
		access: NewPointAccess(root.Derive(c.Name()), c),
	}
}

// Generator returns the generator with its cache key.
func (c *Curve) Generator() CachedAffine {
	return CachedAffine{AffinePoint: c.G(), access: c.access.Derive("g")}
}

// ScalarBaseMult returns k·G by double-and-add, taking every doubling of G
// from the cache.
func (c *Curve) ScalarBaseMult(k bigint.Int) ecc.ProjectivePoint {
	acc := ecc.ProjectiveInfinity(c.Curve)
	addend := c.Generator().Projective()
	mag := k.Abs()
	bits := mag.BitLen()
	for i := 0; i < bits; i++ {
		if mag.Bit(i) {
			acc = acc.Add(addend.ProjectivePoint)
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

// PublicKey derives the public key for scalar d through the cache.
func (c *Curve) PublicKey(d bigint.Int) (*ecc.PublicKey, error) {
	key, err := ecc.NewPrivateKey(c.Curve, d)
	if err != nil {
		return nil, err
	}
	return ecc.NewPublicKey(c.ScalarBaseMult(key.D().Value()).Affine())
}

// CachedAffine is an affine point that knows its cache key.
type CachedAffine struct {
	ecc.AffinePoint
	access PointAccess
}

// Key returns the cache key of the point.
func (p CachedAffine) Key() string { return p.access.Handle().Key() }

// Double returns 2p, reading or filling the "<<N" entry.
func (p CachedAffine) Double() CachedAffine {
	next := p.access.DeriveDouble()
	if hit, ok := next.GetAffine(); ok {
		return CachedAffine{AffinePoint: hit, access: next}
	}
	raw := p.AffinePoint.Double()
	next.SetAffine(raw)
	return CachedAffine{AffinePoint: raw, access: next}
}

// Projective converts p, reading or filling the ".projective" entry.
func (p CachedAffine) Projective() CachedProjective {
	next := p.access.Derive("projective")
	if hit, ok := next.GetProjective(); ok {
		return CachedProjective{ProjectivePoint: hit, access: next}
	}
	raw := p.AffinePoint.Projective()
	next.SetProjective(raw)
	return CachedProjective{ProjectivePoint: raw, access: next}
}

// CachedProjective is a projective point that knows its cache key.
type CachedProjective struct {
	ecc.ProjectivePoint
	access PointAccess
}

func (p CachedProjective) Key() string { return p.access.Handle().Key() }

// Double returns 2p, reading or filling the "<<N" entry.
func (p CachedProjective) Double() CachedProjective {
	next := p.access.DeriveDouble()
	if hit, ok := next.GetProjective(); ok {
		return CachedProjective{ProjectivePoint: hit, access: next}
	}
	raw := p.ProjectivePoint.Double()
	next.SetProjective(raw)
	return CachedProjective{ProjectivePoint: raw, access: next}
}
