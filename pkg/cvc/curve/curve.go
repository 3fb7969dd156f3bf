package curve

import (
	"errors"

	"github.com/MyNextID/cvc-go/pkg/cvc/internal/backend"
)

// Curve represents an elliptic curve for cryptographic operations.
type Curve int

const (
	Unknown Curve = Curve(backend.Unknown)
	P256    Curve = Curve(backend.P256)
)

// Encoding sizes for P256.
const (
	ScalarSize            = backend.ScalarSize
	CoordinateSize        = backend.CoordinateSize
	UncompressedPointSize = backend.UncompressedPointSize
	UncompressedTag       = backend.UncompressedTag
)

var (
	ErrBadLength          = errors.New("curve: bad length")
	ErrZeroScalar         = errors.New("curve: scalar is zero")
	ErrNotLessThanOrder   = errors.New("curve: scalar not less than curve order")
	ErrNotOnCurve         = errors.New("curve: point is not on the curve")
	ErrAtInfinity         = errors.New("curve: point is at infinity")
	ErrExtractionFailed   = errors.New("curve: key material extraction failed")
	ErrInsufficientRandom = errors.New("curve: could not sample a scalar")
)

// String returns a human-readable name for the curve.
func (c Curve) String() string {
	switch c {
	case P256:
		return "P-256"
	default:
		return "Unknown"
	}
}

// Order returns the big-endian group order n of the curve.
func (c Curve) Order() ([]byte, error) {
	e, err := backend.ForCurve(backend.Curve(c))
	if err != nil {
		return nil, err
	}
	return e.Order(), nil
}

// engine is the arithmetic backend for the fixed P-256 curve.
func engine() backend.Engine {
	e, err := backend.ForCurve(backend.P256)
	if err != nil {
		panic(err) // P256 is always compiled in
	}
	return e
}
