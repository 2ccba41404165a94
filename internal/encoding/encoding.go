// Package encoding holds the text codecs used for integer and point
// serialization: unsigned big-endian hex and unpadded base64url, each with an
// optional fixed output width.
package encoding

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDigit is returned when a hex or base64url string contains a
// character outside its alphabet.
var ErrInvalidDigit = errors.New("encoding: invalid digit")

// Fit returns b resized to exactly width bytes. Shorter input is left padded
// with zero bytes; longer input loses its most significant bytes.
func Fit(b []byte, width int) []byte {
	if width < 0 {
		width = 0
	}
	out := make([]byte, width)
	if len(b) >= width {
		copy(out, b[len(b)-width:])
	} else {
		copy(out[width-len(b):], b)
	}
	return out
}

// EncodeHex returns the lowercase hex form of b.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// EncodeHexWidth returns the lowercase hex form of b fitted to width bytes.
func EncodeHexWidth(b []byte, width int) string {
	return hex.EncodeToString(Fit(b, width))
}

// DecodeHex parses s as big-endian hex. Odd-length input is read as if it
// carried a leading '0'. The empty string decodes to an empty slice.
func DecodeHex(s string) ([]byte, error) {
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDigit, err)
	}
	return b, nil
}

// EncodeBase64URL returns the unpadded base64url form of b.
func EncodeBase64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// EncodeBase64URLWidth returns the unpadded base64url form of b fitted to
// width bytes.
func EncodeBase64URLWidth(b []byte, width int) string {
	return base64.RawURLEncoding.EncodeToString(Fit(b, width))
}

const base64URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// DecodeBase64URL parses unpadded base64url text. Every byte must belong to
// the URL-safe alphabet. A lone trailing digit (length 1 mod 4) yields one
// more byte holding its six bits in the high end.
func DecodeBase64URL(s string) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(base64URLAlphabet, s[i]) < 0 {
			return nil, fmt.Errorf("%w: %q at offset %d", ErrInvalidDigit, s[i], i)
		}
	}
	var tail []byte
	if len(s)%4 == 1 {
		tail = []byte{byte(strings.IndexByte(base64URLAlphabet, s[len(s)-1])) << 2}
		s = s[:len(s)-1]
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDigit, err)
	}
	return append(b, tail...), nil
}
