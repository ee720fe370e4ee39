package gate

import "errors"

var (
	// ErrMalformedPIN indicates the input is not exactly four digits.
	ErrMalformedPIN = errors.New("pin must be exactly 4 digits")
	// ErrInvalidPIN indicates a well-formed pin that does not match.
	ErrInvalidPIN = errors.New("invalid pin")
)
