package curves

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-ecmath/pkg/bigint"
	"github.com/smallyu/go-ecmath/pkg/ecc"
	"github.com/smallyu/go-ecmath/pkg/modint"
)

func hexInt(t *testing.T, s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	require.True(t, ok)
	return v
}

func TestEngineParams(t *testing.T) {
	ref := NewSecp256k1().Params()
	got := NewEngine(ecc.Secp256k1()).Params()

	assert.Equal(t, 0, ref.P.Cmp(got.P))
	assert.Equal(t, 0, ref.N.Cmp(got.N))
	assert.Equal(t, 0, ref.B.Cmp(got.B))
	assert.Equal(t, 0, ref.Gx.Cmp(got.Gx))
	assert.Equal(t, 0, ref.Gy.Cmp(got.Gy))
	assert.Equal(t, 256, got.BitSize)
	assert.Equal(t, ecc.Secp256k1Name, got.Name)

	// The params assume a = -3; only the engine knows secp256k1 has a = 0.
	eng := NewEngine(ecc.Secp256k1())
	assert.True(t, eng.IsOnCurve(got.Gx, got.Gy))
	assert.False(t, got.IsOnCurve(got.Gx, got.Gy))
}

func TestEngineMatchesDecred(t *testing.T) {
	ref := NewSecp256k1()
	eng := NewEngine(ecc.Secp256k1())

	scalars := []*big.Int{
		big.NewInt(1),
		big.NewInt(2),
		big.NewInt(7),
		hexInt(t, "754119b222e208b4c24936bd6aae22b3f760956f905103270705e5257e467344"),
		new(big.Int).Sub(ref.Params().N, big.NewInt(1)),
	}
	for _, k := range scalars {
		rx, ry := ref.ScalarBaseMult(k)
		ex, ey := eng.ScalarBaseMult(k)
		require.Equalf(t, 0, rx.Cmp(ex), "x of %x·G", k)
		require.Equalf(t, 0, ry.Cmp(ey), "y of %x·G", k)
		assert.True(t, eng.IsOnCurve(ex, ey))
	}

	px, py := ref.ScalarBaseMult(big.NewInt(11))
	k := big.NewInt(0x1234567)
	rx, ry := ref.ScalarMult(px, py, k)
	ex, ey := eng.ScalarMult(px, py, k)
	assert.Equal(t, 0, rx.Cmp(ex))
	assert.Equal(t, 0, ry.Cmp(ey))

	gx, gy := ref.Params().Gx, ref.Params().Gy
	rx, ry = ref.Add(gx, gy, px, py)
	ex, ey = eng.Add(gx, gy, px, py)
	assert.Equal(t, 0, rx.Cmp(ex))
	assert.Equal(t, 0, ry.Cmp(ey))

	dx, dy := eng.Double(gx, gy)
	ax, ay := eng.Add(gx, gy, gx, gy)
	assert.Equal(t, 0, dx.Cmp(ax))
	assert.Equal(t, 0, dy.Cmp(ay))
}

func TestEngineInfinityIsOrigin(t *testing.T) {
	eng := NewEngine(ecc.Secp256k1())
	p := eng.Params()

	x, y := eng.ScalarBaseMult(p.N)
	assert.Zero(t, x.Sign())
	assert.Zero(t, y.Sign())
	assert.False(t, eng.IsOnCurve(x, y))

	negY := new(big.Int).Sub(p.P, p.Gy)
	x, y = eng.Add(p.Gx, p.Gy, p.Gx, negY)
	assert.Zero(t, x.Sign())
	assert.Zero(t, y.Sign())

	x, y = eng.Add(new(big.Int), new(big.Int), p.Gx, p.Gy)
	assert.Equal(t, 0, x.Cmp(p.Gx))
	assert.Equal(t, 0, y.Cmp(p.Gy))
}

func TestNewScalar(t *testing.T) {
	for _, c := range []Curve{NewSecp256k1(), NewEngine(ecc.P256())} {
		k, err := c.NewScalar()
		require.NoError(t, err)
		assert.Equal(t, 1, k.Sign())
		assert.Equal(t, -1, k.Cmp(c.Params().N))
	}
}

func TestNewScalarNeedsOrder(t *testing.T) {
	for _, n := range []int64{0, 1} {
		c, err := ecc.NewCurve("toy127",
			bigint.FromInt64(-1), bigint.FromInt64(3), bigint.FromInt64(127),
			bigint.FromInt64(n), bigint.FromInt64(0), bigint.FromInt64(16), bigint.FromInt64(20))
		require.NoError(t, err)

		_, err = NewEngine(c).NewScalar()
		assert.ErrorIsf(t, err, ecc.ErrInvalidCurve, "engine, order %d", n)
		_, err = NewGroup(c).NewScalar()
		assert.ErrorIsf(t, err, ecc.ErrInvalidCurve, "group, order %d", n)
	}
}

func toy97(t *testing.T) *ecc.Curve {
	c, err := ecc.NewCurve("toy97",
		bigint.FromInt64(2), bigint.FromInt64(3), bigint.FromInt64(97),
		bigint.FromInt64(5), bigint.FromInt64(1), bigint.FromInt64(3), bigint.FromInt64(6))
	require.NoError(t, err)
	return c
}

func TestGroupScalars(t *testing.T) {
	g := NewGroup(toy97(t))
	assert.Equal(t, "toy97", g.Name())
	assert.Equal(t, int64(5), g.Order().Int64())

	three := g.NewScalarFromBigInt(big.NewInt(8))
	assert.Equal(t, int64(3), three.BigInt().Int64())
	assert.Equal(t, []byte{3}, three.Bytes())
	assert.Equal(t, int64(1), three.Add(three).BigInt().Int64())
	assert.Equal(t, int64(4), three.Mul(three).BigInt().Int64())

	inv, err := three.Invert()
	require.NoError(t, err)
	assert.Equal(t, int64(2), inv.BigInt().Int64())

	_, err = g.NewScalarFromBigInt(big.NewInt(5)).Invert()
	assert.ErrorIs(t, err, modint.ErrNotInvertible)

	s, err := g.NewScalar()
	require.NoError(t, err)
	assert.NotZero(t, s.BigInt().Sign())
}

func TestGroupPoints(t *testing.T) {
	c := toy97(t)
	g := NewGroup(c)
	base := g.BasePoint()
	assert.Equal(t, []byte{0x02, 0x03}, base.Bytes())

	two := g.NewScalarFromBigInt(big.NewInt(2))
	p := base.ScalarMult(two)
	assert.True(t, p.Equal(base.Add(base)))
	assert.Equal(t, c.CreatePoint(bigint.FromInt64(80), bigint.FromInt64(10)).Bytes(true), p.Bytes())

	// 97 is not 3 mod 4, so only the uncompressed form decodes.
	_, err := g.NewPointFromBytes(p.Bytes())
	assert.Error(t, err)
	parsed, err := g.NewPointFromBytes(c.CreatePoint(bigint.FromInt64(80), bigint.FromInt64(10)).Bytes(false))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(p))
	assert.True(t, parsed.ScalarMult(two).Equal(base.ScalarMult(g.NewScalarFromBigInt(big.NewInt(4)))))

	assert.Equal(t, []byte{0x00}, base.ScalarMult(g.NewScalarFromBigInt(big.NewInt(5))).Bytes())

	_, err = g.NewPointFromBytes([]byte{0x05, 0x01})
	assert.Error(t, err)
}

func TestGroupSecp256k1(t *testing.T) {
	g := NewGroup(ecc.Secp256k1())
	d := g.NewScalarFromBigInt(hexInt(t, "754119b222e208b4c24936bd6aae22b3f760956f905103270705e5257e467344"))
	pub := g.BasePoint().ScalarMult(d)
	assert.Equal(t, "02334180cfb8553b774d871c36be174171003cd13cb8325ad091b4f4b10934662f",
		hex.EncodeToString(pub.Bytes()))
	assert.Len(t, d.Bytes(), 32)
}
