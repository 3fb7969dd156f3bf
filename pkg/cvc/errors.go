package cvc

import (
	"errors"
	"fmt"
)

// Kind identifies the cause of a failed operation.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidParams
	KindInvalidKey1
	KindInvalidKey2
	KindResultZero
	KindExtractionFailed
	KindInvalidKey1Length
	KindInvalidKey2Length
	KindInvalidPoint1
	KindInvalidPoint2
	KindPoint1AtInfinity
	KindPoint2AtInfinity
	KindResultAtInfinity
	KindResultConversionFailed
	KindInsufficientBuffer
	KindExpandFailed
	KindExpansionTooLarge
	KindInputTooLarge
	KindHashToFieldFailed
	KindZeroScalar
	KindRandomFailed
)

var kindNames = map[Kind]string{
	KindUnknown:                "unknown",
	KindInvalidParams:          "invalid parameters",
	KindInvalidKey1:            "invalid key 1",
	KindInvalidKey2:            "invalid key 2",
	KindResultZero:             "result is zero",
	KindExtractionFailed:       "key material extraction failed",
	KindInvalidKey1Length:      "invalid key 1 length",
	KindInvalidKey2Length:      "invalid key 2 length",
	KindInvalidPoint1:          "invalid point 1",
	KindInvalidPoint2:          "invalid point 2",
	KindPoint1AtInfinity:       "point 1 at infinity",
	KindPoint2AtInfinity:       "point 2 at infinity",
	KindResultAtInfinity:       "result at infinity",
	KindResultConversionFailed: "result conversion failed",
	KindInsufficientBuffer:     "insufficient buffer",
	KindExpandFailed:           "message expansion failed",
	KindExpansionTooLarge:      "expansion too large",
	KindInputTooLarge:          "input too large",
	KindHashToFieldFailed:      "hash to field failed",
	KindZeroScalar:             "derived scalar is zero",
	KindRandomFailed:           "entropy source failed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Class groups kinds by how a caller should react to them.
type Class int

const (
	ClassUnknown Class = iota
	// ClassValidation covers malformed or out-of-range inputs, detected
	// before any arithmetic.
	ClassValidation
	// ClassArithmetic covers results that are cryptographically unusable;
	// the caller must choose different inputs.
	ClassArithmetic
	// ClassCapacity covers size limits on inputs, expansions and buffers.
	ClassCapacity
	// ClassPrimitive covers unexpected failures of the hash or curve engine.
	ClassPrimitive
)

func (c Class) String() string {
	switch c {
	case ClassValidation:
		return "validation"
	case ClassArithmetic:
		return "arithmetic"
	case ClassCapacity:
		return "capacity"
	case ClassPrimitive:
		return "primitive"
	default:
		return "unknown"
	}
}

// Class returns the class k belongs to.
func (k Kind) Class() Class {
	switch k {
	case KindInvalidParams, KindInvalidKey1, KindInvalidKey2,
		KindInvalidKey1Length, KindInvalidKey2Length,
		KindInvalidPoint1, KindInvalidPoint2,
		KindPoint1AtInfinity, KindPoint2AtInfinity:
		return ClassValidation
	case KindResultZero, KindResultAtInfinity, KindZeroScalar:
		return ClassArithmetic
	case KindInsufficientBuffer, KindExpansionTooLarge, KindInputTooLarge:
		return ClassCapacity
	case KindExtractionFailed, KindResultConversionFailed,
		KindExpandFailed, KindHashToFieldFailed, KindRandomFailed:
		return ClassPrimitive
	default:
		return ClassUnknown
	}
}

// Error wraps an underlying error with the failing operation and its Kind.
type Error struct {
	Op   string // Operation that failed
	Kind Kind   // Cause of the failure
	Err  error  // Underlying error, may be nil
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cvc.%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("cvc.%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same Kind, so the Err* values below work
// with errors.Is regardless of Op and the wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinel values for errors.Is.
var (
	ErrInvalidParams          = &Error{Kind: KindInvalidParams}
	ErrInvalidKey1            = &Error{Kind: KindInvalidKey1}
	ErrInvalidKey2            = &Error{Kind: KindInvalidKey2}
	ErrResultZero             = &Error{Kind: KindResultZero}
	ErrExtractionFailed       = &Error{Kind: KindExtractionFailed}
	ErrInvalidKey1Length      = &Error{Kind: KindInvalidKey1Length}
	ErrInvalidKey2Length      = &Error{Kind: KindInvalidKey2Length}
	ErrInvalidPoint1          = &Error{Kind: KindInvalidPoint1}
	ErrInvalidPoint2          = &Error{Kind: KindInvalidPoint2}
	ErrPoint1AtInfinity       = &Error{Kind: KindPoint1AtInfinity}
	ErrPoint2AtInfinity       = &Error{Kind: KindPoint2AtInfinity}
	ErrResultAtInfinity       = &Error{Kind: KindResultAtInfinity}
	ErrResultConversionFailed = &Error{Kind: KindResultConversionFailed}
	ErrInsufficientBuffer     = &Error{Kind: KindInsufficientBuffer}
	ErrExpandFailed           = &Error{Kind: KindExpandFailed}
	ErrExpansionTooLarge      = &Error{Kind: KindExpansionTooLarge}
	ErrInputTooLarge          = &Error{Kind: KindInputTooLarge}
	ErrHashToFieldFailed      = &Error{Kind: KindHashToFieldFailed}
	ErrZeroScalar             = &Error{Kind: KindZeroScalar}
	ErrRandomFailed           = &Error{Kind: KindRandomFailed}
)

func newError(op string, kind Kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or
// KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ClassOf returns the Class of err's Kind.
func ClassOf(err error) Class {
	return KindOf(err).Class()
}

// IsValidationError reports whether err was caused by malformed input.
func IsValidationError(err error) bool { return ClassOf(err) == ClassValidation }

// IsArithmeticError reports whether err signals an unusable result.
func IsArithmeticError(err error) bool { return ClassOf(err) == ClassArithmetic }

// IsCapacityError reports whether err was caused by a size limit.
func IsCapacityError(err error) bool { return ClassOf(err) == ClassCapacity }

// IsPrimitiveError reports whether err was caused by the hash or curve engine.
func IsPrimitiveError(err error) bool { return ClassOf(err) == ClassPrimitive }

// IsKeyError reports whether err concerns one of the key operands.
func IsKeyError(err error) bool {
	switch KindOf(err) {
	case KindInvalidKey1, KindInvalidKey2, KindInvalidKey1Length, KindInvalidKey2Length,
		KindInvalidPoint1, KindInvalidPoint2, KindPoint1AtInfinity, KindPoint2AtInfinity:
		return true
	}
	return false
}
