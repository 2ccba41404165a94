package bigint

// Add returns x + y.
func (x Int) Add(y Int) Int {
	a, b := x.raw(), y.raw()
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	n++
	out := make([]byte, n)
	carry := 0
	for i := 0; i < n; i++ {
		s := int(at(a, i)) + int(at(b, i)) + carry
		out[n-1-i] = byte(s)
		carry = s >> 8
	}
	return Int{buf: trim(out)}
}

// Sub returns x - y.
func (x Int) Sub(y Int) Int {
	return x.Add(y.Negate())
}

// Inc returns x + 1.
func (x Int) Inc() Int {
	return x.Add(One())
}

// Negate returns -x, computed as the complement plus one.
func (x Int) Negate() Int {
	a := x.raw()
	n := len(a) + 1
	out := make([]byte, n)
	carry := 1
	for i := 0; i < n; i++ {
		s := int(^at(a, i)) + carry
		out[n-1-i] = byte(s)
		carry = s >> 8
	}
	return Int{buf: trim(out)}
}

// Abs returns |x|.
func (x Int) Abs() Int {
	if x.Sign() < 0 {
		return x.Negate()
	}
	return x
}

// Double returns 2x.
func (x Int) Double() Int {
	a := x.raw()
	n := len(a) + 1
	out := make([]byte, n)
	var carry byte
	for i := 0; i < n; i++ {
		c := at(a, i)
		out[n-1-i] = c<<1 | carry
		carry = c >> 7
	}
	return Int{buf: trim(out)}
}

// Triple returns 3x.
func (x Int) Triple() Int {
	return x.Double().Add(x)
}

// Half returns x shifted right by one bit, keeping the sign, so negative odd
// values round toward negative infinity.
func (x Int) Half() Int {
	a := x.raw()
	out := make([]byte, len(a))
	carry := signByte(a) & 0x80
	for i, c := range a {
		out[i] = c>>1 | carry
		carry = (c & 1) << 7
	}
	return Int{buf: trim(out)}
}

// Mul returns x * y by shift-and-add over the bits of |y|.
func (x Int) Mul(y Int) Int {
	if x.IsZero() || y.IsZero() {
		return Zero()
	}
	negative := x.Sign() != y.Sign()
	addend, m := x.Abs(), y.Abs()

	acc := Zero()
	bits := m.Len() * 8
	for i := 0; i < bits; i++ {
		if m.Bit(i) {
			acc = acc.Add(addend)
		}
		addend = addend.Double()
	}
	if negative {
		return acc.Negate()
	}
	return acc
}

// Square returns x * x.
func (x Int) Square() Int { return x.Mul(x) }

// Cube returns x * x * x.
func (x Int) Cube() Int { return x.Square().Mul(x) }

// DivRem returns the quotient and remainder of x / d with truncation toward
// zero: q*d + r == x, and r carries the sign of x.
func (x Int) DivRem(d Int) (q, r Int, err error) {
	if d.IsZero() {
		return Int{}, Int{}, ErrDivisionByZero
	}
	if x.IsZero() {
		return Zero(), Zero(), nil
	}
	num, den := x.Abs(), d.Abs()

	quot := make([]byte, num.Len())
	rem := Zero()
	for i := num.Len()*8 - 1; i >= 0; i-- {
		rem = rem.Double()
		if num.Bit(i) {
			rem = rem.Inc()
		}
		if rem.Cmp(den) >= 0 {
			rem = rem.Sub(den)
			quot[len(quot)-1-i/8] |= 1 << (uint(i) % 8)
		}
	}

	q = FromUnsignedBytes(quot)
	if x.Sign() != d.Sign() {
		q = q.Negate()
	}
	if x.Sign() < 0 {
		rem = rem.Negate()
	}
	return q, rem, nil
}

// Mod returns the truncated remainder of x / m.
func (x Int) Mod(m Int) (Int, error) {
	_, r, err := x.DivRem(m)
	return r, err
}

// ModAbs returns x reduced into [0, |m|).
func (x Int) ModAbs(m Int) (Int, error) {
	_, r, err := x.DivRem(m)
	if err != nil {
		return Int{}, err
	}
	if r.Sign() < 0 {
		r = r.Add(m.Abs())
	}
	return r, nil
}

// Bezout holds the result of the extended Euclidean algorithm:
// A*X + B*Y == GCD.
type Bezout struct {
	A, B Int
	X, Y Int
	GCD  Int
}

// EuclidExtended runs the iterative extended Euclidean algorithm on a and b.
func EuclidExtended(a, b Int) Bezout {
	r0, r1 := a, b
	s0, s1 := One(), Zero()
	t0, t1 := Zero(), One()
	for !r1.IsZero() {
		// r1 is non-zero, so DivRem cannot fail.
		q, r, _ := r0.DivRem(r1)
		r0, r1 = r1, r
		s0, s1 = s1, s0.Sub(q.Mul(s1))
		t0, t1 = t1, t0.Sub(q.Mul(t1))
	}
	return Bezout{A: a, B: b, X: s0, Y: t0, GCD: r0}
}

// ModInverse returns y in [0, |m|) with x*y ≡ 1 (mod m).
func (x Int) ModInverse(m Int) (Int, error) {
	v, err := x.ModAbs(m)
	if err != nil {
		return Int{}, err
	}
	e := EuclidExtended(v, m.Abs())
	if !e.GCD.Eq(One()) {
		return Int{}, ErrNotInvertible
	}
	return e.X.ModAbs(m)
}
