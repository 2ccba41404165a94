package ecc

import (
	"sync"

	"github.com/smallyu/go-ecmath/pkg/bigint"
)

const windowBits = 4

type digitKey struct {
	window int
	digit  byte
}

// FixedBase multiplies one base point by many scalars. It memoises the
// doublings 2^e·base and, for every 4-bit window position and digit, the
// partial product digit·2^(4·window)·base. Both tables only grow and are
// shared by all callers; it is safe for concurrent use.
type FixedBase struct {
	mu     sync.Mutex
	base   ProjectivePoint
	powers []ProjectivePoint
	digits map[digitKey]ProjectivePoint
}

// NewFixedBase returns a multiplier for base.
func NewFixedBase(base ProjectivePoint) *FixedBase {
	return &FixedBase{
		base:   base,
		powers: []ProjectivePoint{base},
		digits: make(map[digitKey]ProjectivePoint),
	}
}

func (f *FixedBase) Base() ProjectivePoint { return f.base }

// Pow2 returns 2^e·base. Negative exponents are treated as zero.
func (f *FixedBase) Pow2(e int) ProjectivePoint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pow2(e)
}

func (f *FixedBase) pow2(e int) ProjectivePoint {
	if e < 0 {
		e = 0
	}
	if n := len(f.powers); n <= e {
		logger.Debugw("extending power table", "from", n, "to", e+1)
		for len(f.powers) <= e {
			f.powers = append(f.powers, f.powers[len(f.powers)-1].Double())
		}
	}
	return f.powers[e]
}

func (f *FixedBase) term(window int, digit byte) ProjectivePoint {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := digitKey{window: window, digit: digit}
	if p, ok := f.digits[key]; ok {
		return p
	}
	p := ProjectiveInfinity(f.base.curve)
	for b := 0; b < windowBits; b++ {
		if digit>>uint(b)&1 == 1 {
			p = p.Add(f.pow2(window*windowBits + b))
		}
	}
	f.digits[key] = p
	return p
}

// Mul returns k·base, walking k in 4-bit windows from the most significant
// end.
func (f *FixedBase) Mul(k bigint.Int) ProjectivePoint {
	mag := k.Abs()
	windows := (mag.BitLen() + windowBits - 1) / windowBits

	acc := ProjectiveInfinity(f.base.curve)
	for w := windows - 1; w >= 0; w-- {
		var digit byte
		for b := windowBits - 1; b >= 0; b-- {
			digit <<= 1
			if mag.Bit(w*windowBits + b) {
				digit |= 1
			}
		}
		if digit == 0 {
			continue
		}
		acc = acc.Add(f.term(w, digit))
	}
	if k.Sign() < 0 {
		return acc.Negate()
	}
	return acc
}

// CachedDigits returns the number of memoised window entries.
func (f *FixedBase) CachedDigits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.digits)
}

// CachedPowers returns the number of memoised doublings, including the base.
func (f *FixedBase) CachedPowers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.powers)
}
