package strand

import (
	"errors"
	"fmt"
)

// Errors returned by construction and conversion operations.
var (
	// ErrMalformedLength reports a byte length that is not a multiple of the
	// encoding's natural unit width.
	ErrMalformedLength = errors.New("byte length is not a multiple of the encoding's unit width")

	// ErrTooLarge reports a requested buffer beyond the maximum representable
	// size.
	ErrTooLarge = errors.New("requested buffer exceeds maximum string size")

	// ErrOutOfBounds reports a region outside the addressed storage.
	ErrOutOfBounds = errors.New("region out of bounds")

	// ErrUnrepresentable reports a codepoint the target encoding cannot
	// encode under a strict transcoding policy.
	ErrUnrepresentable = errors.New("codepoint not representable in target encoding")

	// ErrMalformedInput reports malformed source content encountered under a
	// strict transcoding policy.
	ErrMalformedInput = errors.New("malformed input sequence")
)

// maxByteLength bounds every storage allocation.
const maxByteLength = 1<<31 - 1

// ParseReason identifies why numeric parsing failed.
type ParseReason uint8

const (
	ReasonEmpty ParseReason = iota
	ReasonInvalidCodePoint
	ReasonLoneSign
	ReasonOverflow
	ReasonMultiplePoints
	ReasonUnsupportedRadix
	ReasonMalformedSeparator
)

// String returns a human-readable name for the reason.
func (r ParseReason) String() string {
	switch r {
	case ReasonEmpty:
		return "empty input"
	case ReasonInvalidCodePoint:
		return "invalid codepoint"
	case ReasonLoneSign:
		return "lone sign character"
	case ReasonOverflow:
		return "value overflows"
	case ReasonMultiplePoints:
		return "multiple decimal points"
	case ReasonUnsupportedRadix:
		return "unsupported radix"
	case ReasonMalformedSeparator:
		return "malformed digit separator"
	default:
		return "unknown"
	}
}

// NumberParseError is the structured failure returned by ParseInt and
// ParseFloat. Offset and Length identify the offending byte region of the
// source string; Length is zero when no specific region applies.
type NumberParseError struct {
	Reason ParseReason
	Offset int
	Length int
}

// Error implements the error interface.
func (e *NumberParseError) Error() string {
	if e.Length > 0 {
		return fmt.Sprintf("number parse: %s at bytes [%d,%d)", e.Reason, e.Offset, e.Offset+e.Length)
	}
	return fmt.Sprintf("number parse: %s", e.Reason)
}

func parseErr(reason ParseReason, offset, length int) error {
	return &NumberParseError{Reason: reason, Offset: offset, Length: length}
}
