package ecc

import "errors"

var (
	// ErrDegenerateSignature means the nonce produced r == 0 or s == 0.
	// Sign again with a different nonce.
	ErrDegenerateSignature = errors.New("ecc: degenerate signature, retry with a fresh nonce")

	ErrNotOnCurve        = errors.New("ecc: point is not on the curve")
	ErrInvalidCurve      = errors.New("ecc: invalid curve parameters")
	ErrUnknownCurve      = errors.New("ecc: unknown curve")
	ErrInvalidPrivateKey = errors.New("ecc: invalid private key")
	ErrInvalidPublicKey  = errors.New("ecc: invalid public key encoding")
	ErrInvalidSignature  = errors.New("ecc: invalid signature encoding")
)
