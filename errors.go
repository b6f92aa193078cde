package hll

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates the small, fixed set of ways an operation on a Sketch can
// fail. Every failure returned by this package carries one of these.
type Kind int

const (
	// InvalidArgument means a parameter was out of range: a bad precision,
	// mismatched merge settings, or an out-of-range register value.
	InvalidArgument Kind = iota
	// OutOfBounds means a register index was outside [0, m).
	OutOfBounds
	// DecodeError means serialised bytes were malformed or truncated.
	DecodeError
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case OutOfBounds:
		return "out of bounds"
	case DecodeError:
		return "decode error"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type returned by every exported operation in
// this package. It is never returned half-formed: an *Error always has a
// valid Kind.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.cause)
}

// Unwrap exposes the wrapped cause so callers can use errors.Is/errors.As
// against sentinels such as ErrDecode.
func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, cause: cause}
}

func invalidArgumentf(format string, args ...interface{}) *Error {
	return newError(InvalidArgument, fmt.Errorf(format, args...))
}

func outOfBoundsf(format string, args ...interface{}) *Error {
	return newError(OutOfBounds, fmt.Errorf(format, args...))
}

// Sentinel causes, wrapped inside an *Error, so that callers who only care
// about "was this a truncation" or "were the settings incompatible" can test
// with errors.Is without switching on Kind.
var (
	// ErrDecode marks a decode failure whose cause is a malformed or
	// truncated byte slice.
	ErrDecode = errors.New("hll: malformed or truncated sketch bytes")
	// ErrIncompatiblePrecision marks a Merge between sketches whose
	// precisions differ.
	ErrIncompatiblePrecision = errors.New("hll: cannot merge sketches with different precision")
	// ErrIncompatibleSeed marks a Merge between sketches whose seeds differ.
	ErrIncompatibleSeed = errors.New("hll: cannot merge sketches with different seed")
)

// decodeErr wraps ErrDecode with additional context so Decode's various
// validation failures still satisfy errors.Is(err, ErrDecode).
func decodeErr(context string) *Error {
	return newError(DecodeError, errors.Wrap(ErrDecode, context))
}
