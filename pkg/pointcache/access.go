package pointcache

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecmath/pkg/bigint"
	"github.com/smallyu/go-ecmath/pkg/ecc"
)

const infinityEntry = "inf"

var doubleSuffix = regexp.MustCompile(`<<(\d+)$`)

// PointAccess reads and writes serialized points of one curve at a Handle.
// Coordinates are stored as unsigned base64url joined by '|': "x|y" for
// affine points and "x|y|z" for projective points.
type PointAccess struct {
	h     Handle
	curve *ecc.Curve
}

// NewPointAccess binds h to curve c.
func NewPointAccess(h Handle, c *ecc.Curve) PointAccess {
	return PointAccess{h: h, curve: c}
}

func (a PointAccess) Handle() Handle { return a.h }

func (a PointAccess) Derive(sub string) PointAccess {
	return PointAccess{h: a.h.Derive(sub), curve: a.curve}
}

// DeriveDouble returns the access for the doubling of the current point: a
// trailing "<<N" becomes "<<N+1", otherwise "<<1" is appended.
func (a PointAccess) DeriveDouble() PointAccess {
	key := a.h.Key()
	if m := doubleSuffix.FindStringSubmatchIndex(key); m != nil {
		n, err := strconv.Atoi(key[m[2]:m[3]])
		if err == nil {
			key = key[:m[0]] + "<<" + strconv.Itoa(n+1)
			return PointAccess{h: a.h.Navigate(key), curve: a.curve}
		}
	}
	return PointAccess{h: a.h.Navigate(key + "<<1"), curve: a.curve}
}

func (a PointAccess) load(parts int) ([]bigint.Int, bool, bool) {
	raw, ok, err := a.h.Get()
	if err != nil {
		logger.Warnw("point cache read failed", "key", a.h.Key(), "error", err)
		return nil, false, false
	}
	if !ok {
		logger.Debugw("point cache miss", "key", a.h.Key())
		return nil, false, false
	}
	if raw == infinityEntry {
		return nil, true, true
	}
	coords, err := decodeCoords(raw, parts)
	if err != nil {
		a.drop(err)
		return nil, false, false
	}
	return coords, false, true
}

func (a PointAccess) drop(cause error) {
	logger.Warnw("dropping corrupt point cache entry", "key", a.h.Key(), "error", cause)
	if err := a.h.Clear(); err != nil {
		logger.Warnw("point cache delete failed", "key", a.h.Key(), "error", err)
	}
}

func (a PointAccess) store(val string) {
	if err := a.h.Set(val); err != nil {
		logger.Warnw("point cache write failed", "key", a.h.Key(), "error", err)
	}
}

func decodeCoords(raw string, parts int) ([]bigint.Int, error) {
	fields := strings.Split(raw, "|")
	if len(fields) != parts {
		return nil, errors.Errorf("want %d coordinates, got %d", parts, len(fields))
	}
	out := make([]bigint.Int, parts)
	for i, f := range fields {
		v, err := bigint.ParseUnsignedBase64URL(f)
		if err != nil {
			return nil, errors.Wrapf(err, "coordinate %d", i)
		}
		out[i] = v
	}
	return out, nil
}

// GetProjective returns the cached projective point, if any.
func (a PointAccess) GetProjective() (ecc.ProjectivePoint, bool) {
	coords, inf, ok := a.load(3)
	if !ok {
		return ecc.ProjectivePoint{}, false
	}
	if inf {
		return ecc.ProjectiveInfinity(a.curve), true
	}
	for _, v := range coords {
		if v.Gte(a.curve.Modulus()) {
			a.drop(errors.New("coordinate exceeds the field"))
			return ecc.ProjectivePoint{}, false
		}
	}
	return a.curve.CreateProjective(coords[0], coords[1], coords[2]), true
}

// SetProjective stores p.
func (a PointAccess) SetProjective(p ecc.ProjectivePoint) {
	if p.IsInfinity() {
		a.store(infinityEntry)
		return
	}
	a.store(p.X().UnsignedBase64URL() + "|" + p.Y().UnsignedBase64URL() + "|" + p.Z().UnsignedBase64URL())
}

// GetAffine returns the cached affine point, if any. Entries that are not on
// the curve are discarded.
func (a PointAccess) GetAffine() (ecc.AffinePoint, bool) {
	coords, inf, ok := a.load(2)
	if !ok {
		return ecc.AffinePoint{}, false
	}
	if inf {
		return ecc.Infinity(a.curve), true
	}
	p := a.curve.CreatePoint(coords[0], coords[1])
	if !a.curve.Has(p) {
		a.drop(ecc.ErrNotOnCurve)
		return ecc.AffinePoint{}, false
	}
	return p, true
}

// SetAffine stores p.
func (a PointAccess) SetAffine(p ecc.AffinePoint) {
	if p.IsInfinity() {
		a.store(infinityEntry)
		return
	}
	a.store(p.X().UnsignedBase64URL() + "|" + p.Y().UnsignedBase64URL())
}
