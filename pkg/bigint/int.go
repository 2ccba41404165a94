// Package bigint implements an arbitrary-precision signed integer stored as a
// minimal big-endian two's-complement byte sequence.
//
// An Int is immutable. Every operation returns a fresh value whose buffer has
// no redundant leading sign bytes, so two equal values always have identical
// encodings. Zero is the single byte 0x00; the zero value of Int is zero too.
//
// The arithmetic is variable time and unsuitable for secret-dependent
// workloads that need side-channel resistance.
package bigint

import (
	"bytes"
	"encoding/binary"
	"math/big"

	"github.com/smallyu/go-ecmath/internal/encoding"
)

var zeroBuf = []byte{0x00}

// Int is a signed arbitrary-precision integer.
type Int struct {
	buf []byte
}

// Zero returns 0.
func Zero() Int { return Int{buf: zeroBuf} }

// One returns 1.
func One() Int { return Int{buf: []byte{0x01}} }

// FromInt64 returns v as an Int.
func FromInt64(v int64) Int {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return Int{buf: trim(b)}
}

// FromBytes interprets b as a big-endian two's-complement number.
func FromBytes(b []byte) Int {
	if len(b) == 0 {
		return Zero()
	}
	return Int{buf: trim(append([]byte(nil), b...))}
}

// FromUnsignedBytes interprets b as an unsigned big-endian magnitude.
func FromUnsignedBytes(b []byte) Int {
	if len(b) == 0 {
		return Zero()
	}
	out := make([]byte, len(b)+1)
	copy(out[1:], b)
	return Int{buf: trim(out)}
}

// FromBig converts a math/big integer.
func FromBig(v *big.Int) Int {
	if v == nil || v.Sign() == 0 {
		return Zero()
	}
	mag := FromUnsignedBytes(v.Bytes())
	if v.Sign() < 0 {
		return mag.Negate()
	}
	return mag
}

// ParseUnsignedHex parses big-endian unsigned hex. Odd-length input is
// accepted and the empty string is zero.
func ParseUnsignedHex(s string) (Int, error) {
	b, err := encoding.DecodeHex(s)
	if err != nil {
		return Int{}, err
	}
	return FromUnsignedBytes(b), nil
}

// MustParseUnsignedHex is like ParseUnsignedHex but panics on malformed input.
// It is meant for constants.
func MustParseUnsignedHex(s string) Int {
	v, err := ParseUnsignedHex(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseUnsignedBase64URL parses unpadded base64url text holding an unsigned
// big-endian magnitude.
func ParseUnsignedBase64URL(s string) (Int, error) {
	b, err := encoding.DecodeBase64URL(s)
	if err != nil {
		return Int{}, err
	}
	return FromUnsignedBytes(b), nil
}

// trim strips redundant leading sign bytes in place and returns the
// canonical slice.
func trim(b []byte) []byte {
	if len(b) == 0 {
		return zeroBuf
	}
	i := 0
	for i < len(b)-1 {
		if b[i] == 0x00 && b[i+1] < 0x80 {
			i++
			continue
		}
		if b[i] == 0xff && b[i+1] >= 0x80 {
			i++
			continue
		}
		break
	}
	return b[i:]
}

func (x Int) raw() []byte {
	if len(x.buf) == 0 {
		return zeroBuf
	}
	return x.buf
}

func signByte(b []byte) byte {
	if b[0]&0x80 != 0 {
		return 0xff
	}
	return 0x00
}

// at returns byte i counted from the least significant end, sign-extended.
func at(b []byte, i int) byte {
	if i < len(b) {
		return b[len(b)-1-i]
	}
	return signByte(b)
}

// Bytes returns a copy of the minimal two's-complement encoding.
func (x Int) Bytes() []byte {
	return append([]byte(nil), x.raw()...)
}

// PaddedBytes returns the encoding fitted to width bytes: zero padded on the
// left, or truncated from the most significant end.
func (x Int) PaddedBytes(width int) []byte {
	return encoding.Fit(x.raw(), width)
}

// UnsignedHex returns the stored bytes as hex, including a leading 00 sign
// byte when the top bit of the magnitude is set.
func (x Int) UnsignedHex() string {
	return encoding.EncodeHex(x.raw())
}

// PaddedHex returns the stored bytes fitted to width bytes as hex.
func (x Int) PaddedHex(width int) string {
	return encoding.EncodeHexWidth(x.raw(), width)
}

// UnsignedBase64URL returns the stored bytes as unpadded base64url.
func (x Int) UnsignedBase64URL() string {
	return encoding.EncodeBase64URL(x.raw())
}

// PaddedBase64URL returns the stored bytes fitted to width bytes as unpadded
// base64url.
func (x Int) PaddedBase64URL(width int) string {
	return encoding.EncodeBase64URLWidth(x.raw(), width)
}

// BigInt converts x to a math/big integer.
func (x Int) BigInt() *big.Int {
	mag := x.Abs().raw()
	v := new(big.Int).SetBytes(mag)
	if x.Sign() < 0 {
		v.Neg(v)
	}
	return v
}

// String returns signed hex such as 0x1f or -0x1f.
func (x Int) String() string {
	if x.Sign() < 0 {
		return "-0x" + x.Negate().BigInt().Text(16)
	}
	return "0x" + x.BigInt().Text(16)
}

// Sign returns -1, 0 or 1.
func (x Int) Sign() int {
	b := x.raw()
	if b[0]&0x80 != 0 {
		return -1
	}
	if len(b) == 1 && b[0] == 0 {
		return 0
	}
	return 1
}

// IsZero reports whether x == 0.
func (x Int) IsZero() bool { return x.Sign() == 0 }

// IsOdd reports whether the lowest bit is set.
func (x Int) IsOdd() bool {
	b := x.raw()
	return b[len(b)-1]&1 == 1
}

// IsEven reports whether the lowest bit is clear.
func (x Int) IsEven() bool { return !x.IsOdd() }

// Len returns the number of stored bytes.
func (x Int) Len() int { return len(x.raw()) }

// BitLen returns the bit length of |x|.
func (x Int) BitLen() int {
	mag := x.Abs().raw()
	for i, c := range mag {
		if c != 0 {
			n := 0
			for ; c != 0; c >>= 1 {
				n++
			}
			return (len(mag)-1-i)*8 + n
		}
	}
	return 0
}

// Bit returns two's-complement bit i. Bits past the stored length repeat
// the sign bit.
func (x Int) Bit(i int) bool {
	if i < 0 {
		return false
	}
	return at(x.raw(), i/8)>>(uint(i)%8)&1 == 1
}

// Cmp returns -1, 0 or +1 as x is less than, equal to or greater than y.
func (x Int) Cmp(y Int) int {
	sx, sy := x.Sign(), y.Sign()
	if sx != sy {
		if sx < sy {
			return -1
		}
		return 1
	}
	a, b := x.raw(), y.raw()
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	// Same sign: sign-extended bytes order like unsigned digits.
	for i := n - 1; i >= 0; i-- {
		ca, cb := at(a, i), at(b, i)
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Eq reports whether x == y.
func (x Int) Eq(y Int) bool { return bytes.Equal(x.raw(), y.raw()) }

// Gte reports whether x >= y.
func (x Int) Gte(y Int) bool { return x.Cmp(y) >= 0 }
