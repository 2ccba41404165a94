// Package modint implements integers reduced modulo a fixed modulus on top of
// package bigint.
//
// Binary operations assume both operands share a modulus. The check is only
// performed in builds tagged modint_debug.
package modint

import (
	"errors"
	"fmt"

	"github.com/smallyu/go-ecmath/pkg/bigint"
)

var (
	// ErrNotInvertible is returned by Inverse when gcd(value, modulus) != 1.
	ErrNotInvertible = bigint.ErrNotInvertible

	// ErrInvalidModulus is returned by New for a negative modulus.
	ErrInvalidModulus = errors.New("modint: modulus must be positive")
)

// Int is a value in [0, modulus).
type Int struct {
	v bigint.Int
	m bigint.Int
}

// New reduces v into [0, m). A zero modulus fails with
// bigint.ErrDivisionByZero and a negative one with ErrInvalidModulus.
func New(v, m bigint.Int) (Int, error) {
	if m.Sign() < 0 {
		return Int{}, fmt.Errorf("%w: %s", ErrInvalidModulus, m)
	}
	r, err := v.ModAbs(m)
	if err != nil {
		return Int{}, err
	}
	return Int{v: r, m: m}, nil
}

// MustNew is like New but panics on a modulus that is not positive.
func MustNew(v, m bigint.Int) Int {
	x, err := New(v, m)
	if err != nil {
		panic(err)
	}
	return x
}

// Zero returns 0 mod m.
func Zero(m bigint.Int) Int { return Int{v: bigint.Zero(), m: m} }

// One returns 1 mod m. m must be greater than one.
func One(m bigint.Int) Int { return Int{v: bigint.One(), m: m} }

func (x Int) Value() bigint.Int { return x.v }

func (x Int) Modulus() bigint.Int { return x.m }

func (x Int) with(v bigint.Int) Int { return Int{v: v, m: x.m} }

// Add returns x + y.
func (x Int) Add(y Int) Int {
	checkModulus(x, y)
	s := x.v.Add(y.v)
	if s.Gte(x.m) {
		s = s.Sub(x.m)
	}
	return x.with(s)
}

// Sub returns x - y.
func (x Int) Sub(y Int) Int {
	checkModulus(x, y)
	d := x.v.Sub(y.v)
	if d.Sign() < 0 {
		d = d.Add(x.m)
	}
	return x.with(d)
}

func (x Int) Double() Int { return x.Add(x) }

func (x Int) Triple() Int { return x.Add(x).Add(x) }

// Mul returns x * y using modular double-and-add over the bits of y.
func (x Int) Mul(y Int) Int {
	checkModulus(x, y)
	acc := Zero(x.m)
	addend := x
	bits := y.v.BitLen()
	for i := 0; i < bits; i++ {
		if y.v.Bit(i) {
			acc = acc.Add(addend)
		}
		if i+1 < bits {
			addend = addend.Double()
		}
	}
	return acc
}

func (x Int) Square() Int { return x.Mul(x) }

func (x Int) Cube() Int { return x.Square().Mul(x) }

// Exp returns x^e for e >= 0 by square-and-multiply.
func (x Int) Exp(e bigint.Int) Int {
	acc := One(x.m)
	base := x
	for i := 0; i < e.BitLen(); i++ {
		if e.Bit(i) {
			acc = acc.Mul(base)
		}
		base = base.Square()
	}
	return acc
}

// Negate returns -x.
func (x Int) Negate() Int {
	if x.v.IsZero() {
		return x
	}
	return x.with(x.m.Sub(x.v))
}

// Half shifts the stored value right by one bit. It is not the modular half.
func (x Int) Half() Int { return x.with(x.v.Half()) }

// Inverse returns the multiplicative inverse of x.
func (x Int) Inverse() (Int, error) {
	inv, err := x.v.ModInverse(x.m)
	if err != nil {
		return Int{}, fmt.Errorf("inverse of %s mod %s: %w", x.v, x.m, err)
	}
	return x.with(inv), nil
}

func (x Int) Eq(y Int) bool { return x.v.Eq(y.v) }

func (x Int) IsZero() bool { return x.v.IsZero() }

func (x Int) IsOdd() bool { return x.v.IsOdd() }

func (x Int) IsEven() bool { return x.v.IsEven() }

func (x Int) Bit(i int) bool { return x.v.Bit(i) }

func (x Int) Len() int { return x.v.Len() }

func (x Int) String() string { return x.v.String() }

func (x Int) UnsignedHex() string { return x.v.UnsignedHex() }

func (x Int) PaddedHex(width int) string { return x.v.PaddedHex(width) }

func (x Int) UnsignedBase64URL() string { return x.v.UnsignedBase64URL() }

func (x Int) PaddedBase64URL(width int) string { return x.v.PaddedBase64URL(width) }
