package schnorr

import (
	"math/big"
	"testing"

	"github.com/smallyu/go-ecmath/internal/crypto/curves"
	"github.com/smallyu/go-ecmath/pkg/bigint"
	"github.com/smallyu/go-ecmath/pkg/ecc"
)

func TestSchnorrProof(t *testing.T) {
	for _, c := range []*ecc.Curve{ecc.Secp256k1(), ecc.P256()} {
		g := curves.NewGroup(c)

		// 1. Generate a random secret x
		x, err := g.NewScalar()
		if err != nil {
			t.Fatalf("Failed to generate secret: %v", err)
		}

		// 2. Compute public key X = x * G
		X := g.BasePoint().ScalarMult(x)

		// 3. Generate Proof
		proof, err := Prove(g, x, X, []byte("session-1"))
		if err != nil {
			t.Fatalf("Prove failed: %v", err)
		}

		// 4. Verify Proof
		if !proof.Verify(g, X, []byte("session-1")) {
			t.Fatalf("%s: Verify failed for valid proof", c.Name())
		}
		if proof.Verify(g, X, []byte("session-2")) {
			t.Fatalf("%s: proof verified under another context", c.Name())
		}
	}
}

func TestSchnorrProofInvalid(t *testing.T) {
	g := curves.NewGroup(ecc.Secp256k1())
	x := g.NewScalarFromBigInt(big.NewInt(12345))
	X := g.BasePoint().ScalarMult(x)

	proof, err := Prove(g, x, X, nil)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}

	// Wrong public key
	Y := g.BasePoint().ScalarMult(g.NewScalarFromBigInt(big.NewInt(54321)))
	if proof.Verify(g, Y, nil) {
		t.Fatal("Verify succeeded for wrong public key")
	}

	// Tampered response
	bad := &Proof{R: proof.R, S: new(big.Int).Add(proof.S, big.NewInt(1))}
	bad.S.Mod(bad.S, g.Order())
	if bad.Verify(g, X, nil) {
		t.Fatal("Verify succeeded for tampered response")
	}

	// Out of range response
	if (&Proof{R: proof.R, S: g.Order()}).Verify(g, X, nil) {
		t.Fatal("Verify accepted s = n")
	}

	// Malformed commitment
	if (&Proof{R: []byte{0x07}, S: proof.S}).Verify(g, X, nil) {
		t.Fatal("Verify accepted a malformed commitment")
	}

	if _, err := Prove(g, nil, X, nil); err == nil {
		t.Fatal("Prove accepted a nil secret")
	}
}

func TestProveKey(t *testing.T) {
	key, err := ecc.Secp256k1().CreatePrivateKey(
		bigint.MustParseUnsignedHex("8ce00ada2dffcfe03bd4775e90588f9f039bd4b5ac6b9e58da2a1c2e2a4672e8"))
	if err != nil {
		t.Fatalf("CreatePrivateKey failed: %v", err)
	}
	proof, err := ProveKey(key, []byte("owner"))
	if err != nil {
		t.Fatalf("ProveKey failed: %v", err)
	}
	if !proof.VerifyKey(key.PublicKey(), []byte("owner")) {
		t.Fatal("VerifyKey failed for valid proof")
	}

	other, err := ecc.Secp256k1().CreatePublicKey(bigint.FromInt64(3))
	if err != nil {
		t.Fatalf("CreatePublicKey failed: %v", err)
	}
	if proof.VerifyKey(other, []byte("owner")) {
		t.Fatal("VerifyKey succeeded for another key")
	}
}
