package backend

import "errors"

// Curve identifies the group an Engine operates on.
type Curve int

const (
	Unknown Curve = iota
	P256
)

// Sizes of the P-256 encodings handled by the engine.
const (
	ScalarSize            = 32
	CoordinateSize        = 32
	UncompressedPointSize = 1 + 2*CoordinateSize

	// UncompressedTag prefixes a SEC1 uncompressed point.
	UncompressedTag = 0x04
	// IdentityTag is the one-byte SEC1 encoding of the point at infinity.
	IdentityTag = 0x00
)

var (
	ErrUnsupportedCurve = errors.New("backend: unsupported curve")
	ErrScalarLength     = errors.New("backend: scalar has wrong length")
	ErrScalarRange      = errors.New("backend: scalar not less than group order")
	ErrInvalidPoint     = errors.New("backend: invalid point encoding")
	ErrEncoding         = errors.New("backend: unexpected encoding length")
)
