package curve

import (
	"crypto/subtle"
	"errors"
	"runtime"

	"github.com/MyNextID/cvc-go/pkg/cvc/internal/backend"
)

// Point is an affine P-256 point or the point at infinity.
//
// Points decoded with NewPointFromBytes are always finite and on the curve.
// The result of Add may be the point at infinity; check IsInfinity before
// encoding it.
type Point struct {
	// enc is the SEC1 encoding: UncompressedPointSize bytes for a finite
	// point, a single backend.IdentityTag byte for infinity.
	enc []byte
}

var errNilPoint = errors.New("curve: nil point")

// generator is the uncompressed encoding of the P-256 base point G.
var generator = []byte{
	0x04,
	0x6b, 0x17, 0xd1, 0xf2, 0xe1, 0x2c, 0x42, 0x47,
	0xf8, 0xbc, 0xe6, 0xe5, 0x63, 0xa4, 0x40, 0xf2,
	0x77, 0x03, 0x7d, 0x81, 0x2d, 0xeb, 0x33, 0xa0,
	0xf4, 0xa1, 0x39, 0x45, 0xd8, 0x98, 0xc2, 0x96,
	0x4f, 0xe3, 0x42, 0xe2, 0xfe, 0x1a, 0x7f, 0x9b,
	0x8e, 0xe7, 0xeb, 0x4a, 0x7c, 0x0f, 0x9e, 0x16,
	0x2b, 0xce, 0x33, 0x57, 0x6b, 0x31, 0x5e, 0xce,
	0xcb, 0xb6, 0x40, 0x68, 0x37, 0xbf, 0x51, 0xf5,
}

// Generator returns the curve base point G.
func Generator() *Point {
	enc := make([]byte, len(generator))
	copy(enc, generator)
	return &Point{enc: enc}
}

// NewPointFromBytes decodes a 65-byte uncompressed point 0x04 || X || Y.
//
// It fails with ErrBadLength unless len(b) == UncompressedPointSize, with
// ErrAtInfinity when X and Y are both zero, and with ErrNotOnCurve when the
// tag is not 0x04 or (X, Y) does not satisfy the curve equation.
// The input is copied.
func NewPointFromBytes(b []byte) (*Point, error) {
	if len(b) != UncompressedPointSize {
		return nil, ErrBadLength
	}
	if engine().ScalarIsZero(b[1:]) {
		return nil, ErrAtInfinity
	}
	if b[0] != UncompressedTag {
		return nil, ErrNotOnCurve
	}
	if err := engine().PointCheck(b); err != nil {
		return nil, ErrNotOnCurve
	}
	enc := make([]byte, UncompressedPointSize)
	copy(enc, b)
	return &Point{enc: enc}, nil
}

// NewPointFromCoordinates decodes a point from its 32-byte big-endian affine
// coordinates. Validation is the same as NewPointFromBytes.
func NewPointFromCoordinates(x, y []byte) (*Point, error) {
	if len(x) != CoordinateSize || len(y) != CoordinateSize {
		return nil, ErrBadLength
	}
	buf := make([]byte, 0, UncompressedPointSize)
	buf = append(buf, UncompressedTag)
	buf = append(buf, x...)
	buf = append(buf, y...)
	return NewPointFromBytes(buf)
}

// MulGenerator returns s·G. The scalar must be below the group order; zero
// yields the point at infinity.
func MulGenerator(s *Scalar) (*Point, error) {
	if s == nil || len(s.Bytes) != ScalarSize {
		return nil, ErrBadLength
	}
	enc, err := engine().MulGenerator(s.Bytes)
	runtime.KeepAlive(s)
	if err != nil {
		if errors.Is(err, backend.ErrScalarRange) {
			return nil, ErrNotLessThanOrder
		}
		return nil, err
	}
	return &Point{enc: enc}, nil
}

// Bytes serializes the point to its 65-byte uncompressed encoding.
// Returns a defensive copy. The point at infinity has no such encoding and
// yields ErrAtInfinity.
func (p *Point) Bytes() ([]byte, error) {
	if p == nil || len(p.enc) == 0 {
		return nil, errNilPoint
	}
	if p.IsInfinity() {
		return nil, ErrAtInfinity
	}
	if len(p.enc) != UncompressedPointSize {
		return nil, backend.ErrEncoding
	}
	out := make([]byte, UncompressedPointSize)
	copy(out, p.enc)
	return out, nil
}

// IsInfinity reports whether p is the point at infinity.
func (p *Point) IsInfinity() bool {
	return p != nil && engine().PointIsIdentity(p.enc)
}

// X returns a copy of the 32-byte big-endian affine X coordinate, or nil for
// the point at infinity.
func (p *Point) X() []byte {
	if p == nil || len(p.enc) != UncompressedPointSize {
		return nil
	}
	out := make([]byte, CoordinateSize)
	copy(out, p.enc[1:1+CoordinateSize])
	return out
}

// Y returns a copy of the 32-byte big-endian affine Y coordinate, or nil for
// the point at infinity.
func (p *Point) Y() []byte {
	if p == nil || len(p.enc) != UncompressedPointSize {
		return nil
	}
	out := make([]byte, CoordinateSize)
	copy(out, p.enc[1+CoordinateSize:])
	return out
}

// Add returns p + q. The sum of a point and its negation is the point at
// infinity, which is returned without error.
func (p *Point) Add(q *Point) (*Point, error) {
	if p == nil || len(p.enc) == 0 || q == nil || len(q.enc) == 0 {
		return nil, errNilPoint
	}
	enc, err := engine().PointAdd(p.enc, q.enc)
	if err != nil {
		return nil, err
	}
	return &Point{enc: enc}, nil
}

// Equal reports whether p and q encode the same point.
func (p *Point) Equal(q *Point) bool {
	if p == nil || q == nil {
		return p == q
	}
	return subtle.ConstantTimeCompare(p.enc, q.enc) == 1
}

// Curve returns the curve for this point.
func (p *Point) Curve() Curve {
	if p == nil || len(p.enc) == 0 {
		return Unknown
	}
	return P256
}
