package finderinfo

import (
	"errors"
	"fmt"
)

// Identifies the reason a hex dump could not be decoded into a record
type ValidationKind int

const (

	// The hex dump was not valid hexadecimal
	MalformedHex ValidationKind = iota + 1

	// The decoded record was larger than Size bytes
	LengthExceeded
)

// Sentinel errors for use with errors.Is()
var (
	ErrMalformedHex   = errors.New("malformed hex dump")
	ErrLengthExceeded = errors.New("record exceeds expected length")
)

// Describes a hex dump that could not be decoded into a record
type ValidationError struct {

	// The reason the record was rejected
	Kind ValidationKind

	// The observed length (in bytes for LengthExceeded, in hex digits for MalformedHex)
	Length int

	// The underlying decoding error, if any
	Err error
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case LengthExceeded:
		return fmt.Sprintf("%s: got %d bytes, want at most %d", ErrLengthExceeded, e.Length, Size)
	default:
		return fmt.Sprintf("%s: %v", ErrMalformedHex, e.Err)
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Allows errors.Is() to match the sentinel for the validation kind
func (e *ValidationError) Is(target error) bool {
	switch e.Kind {
	case LengthExceeded:
		return target == ErrLengthExceeded
	case MalformedHex:
		return target == ErrMalformedHex
	}
	return false
}
