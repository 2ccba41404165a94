//go:build js && wasm

package main

import (
	"encoding/hex"
	"fmt"
	"syscall/js"

	"golang.org/x/crypto/sha3"

	"github.com/smallyu/go-ecmath/internal/crypto/nonce"
	"github.com/smallyu/go-ecmath/pkg/bigint"
	"github.com/smallyu/go-ecmath/pkg/ecc"
)

var registry = ecc.DefaultRegistry()

func main() {
	c := make(chan struct{}, 0)

	fmt.Println("Go ECMath WASM Initialized")

	// Expose Go functions to JS
	js.Global().Set("GoECMath", map[string]interface{}{
		"digest":    js.FuncOf(Digest),
		"publicKey": js.FuncOf(PublicKey),
		"sign":      js.FuncOf(Sign),
		"verify":    js.FuncOf(Verify),
	})

	<-c
}

// Digest hashes a UTF-8 message with SHA3-256.
// Arguments:
// 0: message (string)
// Returns:
// hex digest
func Digest(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (message)"
	}
	sum := sha3.Sum256([]byte(args[0].String()))
	return hex.EncodeToString(sum[:])
}

func privateKey(curveName, dHex string) (*ecc.PrivateKey, error) {
	c, err := registry.Get(curveName)
	if err != nil {
		return nil, err
	}
	d, err := bigint.ParseUnsignedHex(dHex)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %v", err)
	}
	return c.CreatePrivateKey(d)
}

// PublicKey derives the SEC 1 public key.
// Arguments:
// 0: curve name ("P-256" or "secp256k1")
// 1: private key (hex)
// 2: compressed (bool, optional)
func PublicKey(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return "error: expected 2 arguments (curve, privateKeyHex)"
	}
	key, err := privateKey(args[0].String(), args[1].String())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	compress := len(args) > 2 && args[2].Truthy()
	return key.PublicKey().Hex(compress)
}

// Sign signs a digest. secp256k1 keys use RFC 6979 nonces.
// Arguments:
// 0: curve name
// 1: private key (hex)
// 2: digest (hex)
// Returns:
// r || s (hex)
func Sign(this js.Value, args []js.Value) interface{} {
	if len(args) != 3 {
		return "error: expected 3 arguments (curve, privateKeyHex, digestHex)"
	}
	key, err := privateKey(args[0].String(), args[1].String())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	digest, err := hex.DecodeString(args[2].String())
	if err != nil {
		return fmt.Sprintf("error: invalid digest: %v", err)
	}
	sig, err := key.SignWithNonceSource(bigint.FromUnsignedBytes(digest), nonce.ForKey(key, digest))
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return sig.Hex()
}

// Verify checks a signature.
// Arguments:
// 0: curve name
// 1: public key (SEC 1 hex)
// 2: digest (hex)
// 3: signature r || s (hex)
// Returns:
// bool, or an error string
func Verify(this js.Value, args []js.Value) interface{} {
	if len(args) != 4 {
		return "error: expected 4 arguments (curve, publicKeyHex, digestHex, signatureHex)"
	}
	c, err := registry.Get(args[0].String())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	pub, err := ecc.ParsePublicKeyHex(c, args[1].String())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	digest, err := hex.DecodeString(args[2].String())
	if err != nil {
		return fmt.Sprintf("error: invalid digest: %v", err)
	}
	sig, err := ecc.ParseSignatureHex(c, args[3].String())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return pub.Verify(bigint.FromUnsignedBytes(digest), sig)
}
