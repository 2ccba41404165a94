// Package nonce provides ECDSA nonce sources for ecc.PrivateKey.SignWithNonceSource.
package nonce

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/smallyu/go-ecmath/pkg/bigint"
	"github.com/smallyu/go-ecmath/pkg/ecc"
)

const maxDraws = 64

var (
	ErrUnsupportedCurve = errors.New("nonce: unsupported curve")
	ErrNoCandidate      = errors.New("nonce: random source produced no usable candidate")
)

// Random draws nonces uniformly from [1, n) by rejection sampling.
func Random(r io.Reader, c *ecc.Curve) ecc.NonceSource {
	n := c.Order()
	return func(attempt int) (bigint.Int, error) {
		buf := make([]byte, c.OrderSize())
		for i := 0; i < maxDraws; i++ {
			if _, err := io.ReadFull(r, buf); err != nil {
				return bigint.Int{}, fmt.Errorf("reading nonce: %w", err)
			}
			k := bigint.FromUnsignedBytes(buf)
			if k.Sign() > 0 && k.Cmp(n) < 0 {
				return k, nil
			}
		}
		return bigint.Int{}, ErrNoCandidate
	}
}

// RFC6979 derives deterministic nonces for a secp256k1 key and digest. Each
// retry advances the generator by one extra iteration.
func RFC6979(key *ecc.PrivateKey, digest []byte) (ecc.NonceSource, error) {
	if key.Curve() != ecc.Secp256k1() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurve, key.Curve().Name())
	}
	d := key.D().Value().PaddedBytes(32)
	hash := append([]byte(nil), digest...)
	return func(attempt int) (bigint.Int, error) {
		k := secp256k1.NonceRFC6979(d, hash, nil, nil, uint32(attempt))
		b := k.Bytes()
		k.Zero()
		return bigint.FromUnsignedBytes(b[:]), nil
	}, nil
}

// ForKey returns the deterministic source for secp256k1 keys and a
// crypto/rand source for every other curve.
func ForKey(key *ecc.PrivateKey, digest []byte) ecc.NonceSource {
	if src, err := RFC6979(key, digest); err == nil {
		return src
	}
	return Random(rand.Reader, key.Curve())
}
