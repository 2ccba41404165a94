package modint

import (
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-ecmath/pkg/bigint"
)

func mod(v, m int64) Int {
	return MustNew(bigint.FromInt64(v), bigint.FromInt64(m))
}

func TestNewReduces(t *testing.T) {
	assert.True(t, mod(130, 127).Value().Eq(bigint.FromInt64(3)))
	assert.True(t, mod(-1, 127).Value().Eq(bigint.FromInt64(126)))
	assert.True(t, mod(-254, 127).IsZero())

	_, err := New(bigint.One(), bigint.Zero())
	assert.True(t, errors.Is(err, bigint.ErrDivisionByZero))
	assert.Panics(t, func() { MustNew(bigint.One(), bigint.Zero()) })
}

func TestNewRejectsNegativeModulus(t *testing.T) {
	_, err := New(bigint.FromInt64(3), bigint.FromInt64(-7))
	assert.True(t, errors.Is(err, ErrInvalidModulus))
	assert.Panics(t, func() { MustNew(bigint.FromInt64(3), bigint.FromInt64(-7)) })

	// Sums and products stay inside [0, 7).
	x, y := mod(3, 7), mod(2, 7)
	assert.True(t, x.Add(y).Value().Eq(bigint.FromInt64(5)))
	assert.True(t, mod(5, 7).Add(mod(4, 7)).Value().Eq(bigint.FromInt64(2)))
	assert.True(t, mod(5, 7).Mul(mod(4, 7)).Value().Eq(bigint.FromInt64(6)))
}

func TestFieldOps(t *testing.T) {
	tests := []struct {
		name string
		got  Int
		want int64
	}{
		{"add wraps", mod(100, 127).Add(mod(50, 127)), 23},
		{"add", mod(1, 127).Add(mod(2, 127)), 3},
		{"sub wraps", mod(3, 127).Sub(mod(10, 127)), 120},
		{"double", mod(100, 127).Double(), 73},
		{"triple", mod(100, 127).Triple(), 46},
		{"mul", mod(16, 127).Mul(mod(20, 127)), 66},
		{"mul by zero", mod(16, 127).Mul(mod(0, 127)), 0},
		{"square", mod(20, 127).Square(), 19},
		{"cube", mod(16, 127).Cube(), 32},
		{"negate", mod(20, 127).Negate(), 107},
		{"negate zero", mod(0, 127).Negate(), 0},
		{"half", mod(21, 127).Half(), 10},
		{"exp", mod(3, 97).Exp(bigint.FromInt64(96)), 1},
		{"exp zero", mod(3, 97).Exp(bigint.Zero()), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Truef(t, tt.got.Value().Eq(bigint.FromInt64(tt.want)), "got %s want %d", tt.got, tt.want)
		})
	}
}

func TestInverse(t *testing.T) {
	inv, err := mod(7, 40832).Inverse()
	require.NoError(t, err)
	assert.True(t, inv.Value().Eq(bigint.FromInt64(34999)))
	assert.True(t, inv.Mul(mod(7, 40832)).Eq(One(bigint.FromInt64(40832))))

	_, err = mod(8, 40832).Inverse()
	assert.True(t, errors.Is(err, ErrNotInvertible))

	_, err = mod(0, 127).Inverse()
	assert.True(t, errors.Is(err, ErrNotInvertible))
}

func TestParity(t *testing.T) {
	assert.True(t, mod(5, 127).IsOdd())
	assert.True(t, mod(132, 127).IsOdd())
	assert.True(t, mod(6, 127).IsEven())
	assert.Equal(t, "05", mod(5, 127).UnsignedHex())
	assert.Equal(t, "0005", mod(5, 127).PaddedHex(2))
}

func TestMulAgainstMathBig(t *testing.T) {
	p := bigint.MustParseUnsignedHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f")
	pb := p.BigInt()
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		a := new(big.Int).Rand(r, pb)
		b := new(big.Int).Rand(r, pb)
		x := MustNew(bigint.FromBig(a), p)
		y := MustNew(bigint.FromBig(b), p)

		want := new(big.Int).Mul(a, b)
		want.Mod(want, pb)
		require.Equal(t, 0, x.Mul(y).Value().BigInt().Cmp(want))

		want = new(big.Int).Add(a, b)
		want.Mod(want, pb)
		require.Equal(t, 0, x.Add(y).Value().BigInt().Cmp(want))

		want = new(big.Int).Sub(a, b)
		want.Mod(want, pb)
		require.Equal(t, 0, x.Sub(y).Value().BigInt().Cmp(want))

		if a.Sign() == 0 {
			continue
		}
		inv, err := x.Inverse()
		require.NoError(t, err)
		require.Equal(t, 0, inv.Value().BigInt().Cmp(new(big.Int).ModInverse(a, pb)))
	}
}
