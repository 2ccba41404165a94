package bigint

import (
	"errors"

	"github.com/smallyu/go-ecmath/internal/encoding"
)

var (
	// ErrDivisionByZero is returned by division and reduction with a zero divisor.
	ErrDivisionByZero = errors.New("bigint: division by zero")

	// ErrInvalidDigit is returned when hex or base64url input is malformed.
	ErrInvalidDigit = encoding.ErrInvalidDigit

	// ErrNotInvertible is returned when a value shares a factor with the modulus.
	ErrNotInvertible = errors.New("bigint: value is not invertible")
)
