package benchmark

import (
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/smallyu/go-ecmath/internal/crypto/curves"
	"github.com/smallyu/go-ecmath/internal/crypto/nonce"
	"github.com/smallyu/go-ecmath/pkg/bigint"
	"github.com/smallyu/go-ecmath/pkg/ecc"
	"github.com/smallyu/go-ecmath/pkg/pointcache"
)

var scalar = bigint.MustParseUnsignedHex("754119b222e208b4c24936bd6aae22b3f760956f905103270705e5257e467344")

// namedCurves returns the built-in curves.
func namedCurves() []*ecc.Curve {
	return []*ecc.Curve{ecc.P256(), ecc.Secp256k1()}
}

func BenchmarkDoubleAndAdd(b *testing.B) {
	for _, c := range namedCurves() {
		g := c.G().Projective()
		b.Run(c.Name(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				g.Mul(scalar).Affine()
			}
		})
	}
}

func BenchmarkFixedBase(b *testing.B) {
	for _, c := range namedCurves() {
		fb := c.FixedBase()
		fb.Mul(scalar) // warm the tables
		b.Run(c.Name(), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				fb.Mul(scalar).Affine()
			}
		})
	}
}

func BenchmarkCachedScalarBaseMult(b *testing.B) {
	for _, c := range namedCurves() {
		cc := pointcache.New(c, pointcache.NewHandle(pointcache.NewMemoryBackend(0), "bench"))
		cc.ScalarBaseMult(scalar)
		b.Run(c.Name(), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				cc.ScalarBaseMult(scalar).Affine()
			}
		})
	}
}

func BenchmarkSign(b *testing.B) {
	digest := sha256.Sum256([]byte("benchmark"))
	e := bigint.FromUnsignedBytes(digest[:])
	for _, c := range namedCurves() {
		key, err := c.CreatePrivateKey(scalar)
		if err != nil {
			b.Fatal(err)
		}
		src := nonce.ForKey(key, digest[:])
		b.Run(c.Name(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := key.SignWithNonceSource(e, src); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkVerify(b *testing.B) {
	digest := sha256.Sum256([]byte("benchmark"))
	e := bigint.FromUnsignedBytes(digest[:])
	for _, c := range namedCurves() {
		key, err := c.CreatePrivateKey(scalar)
		if err != nil {
			b.Fatal(err)
		}
		sig, err := key.SignWithNonceSource(e, nonce.ForKey(key, digest[:]))
		if err != nil {
			b.Fatal(err)
		}
		pub := key.PublicKey()
		b.Run(c.Name(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if !pub.Verify(e, sig) {
					b.Fatal("verification failed")
				}
			}
		})
	}
}

// BenchmarkScalarBaseMultDecred compares the engine against the decred
// implementation through the same interface.
func BenchmarkScalarBaseMultDecred(b *testing.B) {
	k := scalar.BigInt()
	for name, c := range map[string]curves.Curve{
		"engine": curves.NewEngine(ecc.Secp256k1()),
		"decred": curves.NewSecp256k1(),
	} {
		b.Run(fmt.Sprintf("secp256k1/%s", name), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				c.ScalarBaseMult(k)
			}
		})
	}
}
