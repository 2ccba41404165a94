package ecc

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-ecmath/pkg/bigint"
)

func i64(v int64) bigint.Int { return bigint.FromInt64(v) }

// toy127 is y² = x³ - x + 3 over F_127 with an unknown order.
func toy127(t testing.TB) *Curve {
	c, err := NewCurve("toy127", i64(-1), i64(3), i64(127), i64(0), i64(0), i64(16), i64(20))
	require.NoError(t, err)
	return c
}

// toy97 is y² = x³ + 2x + 3 over F_97; the generator (3, 6) has order 5.
func toy97(t testing.TB) *Curve {
	c, err := NewCurve("toy97", i64(2), i64(3), i64(97), i64(5), i64(0), i64(3), i64(6))
	require.NoError(t, err)
	return c
}

func pt(c *Curve, x, y int64) AffinePoint { return c.CreatePoint(i64(x), i64(y)) }

func TestNewCurve(t *testing.T) {
	c := toy127(t)
	assert.Equal(t, "toy127", c.Name())
	assert.True(t, c.A().Value().Eq(i64(126)))
	assert.Equal(t, 1, c.FieldSize())
	assert.Equal(t, 0, c.OrderSize())
	assert.True(t, c.G().Equal(pt(c, 16, 20)))

	_, err := NewCurve("bad", i64(0), i64(7), i64(0), i64(0), i64(0), i64(0), i64(0))
	assert.True(t, errors.Is(err, ErrInvalidCurve))

	_, err = NewCurve("off", i64(-1), i64(3), i64(127), i64(0), i64(0), i64(15), i64(20))
	assert.True(t, errors.Is(err, ErrNotOnCurve))

	none, err := NewCurve("nogen", i64(-1), i64(3), i64(127), i64(0), i64(0), i64(0), i64(0))
	require.NoError(t, err)
	assert.True(t, none.G().IsInfinity())
}

func TestHas(t *testing.T) {
	c := toy127(t)
	assert.True(t, c.Has(pt(c, 16, 20)))
	assert.True(t, c.Has(pt(c, 16+127, 20-127)))
	assert.False(t, c.Has(pt(c, 15, 20)))
	assert.False(t, c.Has(pt(c, 16, 21)))
	assert.True(t, c.Has(Infinity(c)))
	assert.True(t, c.Has(Infinity(toy97(t))))
}

func TestTruncateHash(t *testing.T) {
	c := toy97(t)
	assert.True(t, c.TruncateHash(i64(3)).Eq(i64(3)))
	assert.True(t, c.TruncateHash(i64(12)).Eq(i64(3)))
	assert.True(t, c.TruncateHash(i64(5)).Eq(i64(2)))

	p256 := P256()
	max := bigint.MustParseUnsignedHex("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	want := bigint.MustParseUnsignedHex("7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	assert.True(t, p256.TruncateHash(max).Eq(want))

	// no order: unchanged
	assert.True(t, toy127(t).TruncateHash(i64(1000)).Eq(i64(1000)))
}

func TestNamedCurves(t *testing.T) {
	assert.Same(t, P256(), P256())
	assert.Same(t, Secp256k1(), Secp256k1())
	assert.Equal(t, 32, P256().FieldSize())
	assert.Equal(t, 32, Secp256k1().OrderSize())
	assert.True(t, P256().G().Valid())
	assert.True(t, Secp256k1().G().Valid())
	assert.True(t, Secp256k1().A().IsZero())
}

func TestRegistry(t *testing.T) {
	reg := DefaultRegistry()
	c, err := reg.Get(P256Name)
	require.NoError(t, err)
	assert.Same(t, P256(), c)
	assert.Equal(t, []string{P256Name, Secp256k1Name}, reg.Names())

	_, err = reg.Get("brainpool")
	assert.True(t, errors.Is(err, ErrUnknownCurve))

	require.NoError(t, reg.Register(CurveHex{
		Name: "toy97", Modulus: "61", A: "02", B: "03", Gx: "03", Gy: "06", Order: "05", Cofactor: "00",
	}))
	assert.Error(t, reg.Register(CurveHex{}))

	for _, name := range []string{P256Name, Secp256k1Name} {
		err := reg.Register(CurveHex{Name: name, Modulus: "61", A: "02", B: "03", Gx: "03", Gy: "06", Order: "05"})
		assert.Truef(t, errors.Is(err, ErrInvalidCurve), "register %s", name)
	}
	c, err = reg.Get(Secp256k1Name)
	require.NoError(t, err)
	assert.Same(t, Secp256k1(), c)
	assert.True(t, IsNamedCurve(P256Name))
	assert.False(t, IsNamedCurve("toy97"))

	var wg sync.WaitGroup
	got := make([]*Curve, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = reg.Get("toy97")
		}(i)
	}
	wg.Wait()
	for _, c := range got {
		require.NotNil(t, c)
		assert.Same(t, got[0], c)
	}

	require.NoError(t, reg.Register(CurveHex{Name: "broken", Modulus: "zz"}))
	_, err = reg.Get("broken")
	assert.True(t, errors.Is(err, bigint.ErrInvalidDigit))
}
