package curve

import (
	"fmt"
	"runtime"
)

// KeyMaterial is a P-256 private scalar together with the affine coordinates
// of its public point, public = private·G.
//
// A KeyMaterial is only produced by ExtractKeyMaterial. Accessors have value
// receivers and return copies; only Zeroize mutates.
type KeyMaterial struct {
	priv [ScalarSize]byte
	x    [CoordinateSize]byte
	y    [CoordinateSize]byte
	ok   bool
}

// ExtractKeyMaterial computes public = s·G and packages the private scalar
// with the public coordinates. The scalar must be in [1, n-1]; any failure to
// compute or serialize the public point yields ErrExtractionFailed.
func ExtractKeyMaterial(s *Scalar) (KeyMaterial, error) {
	if s == nil || len(s.Bytes) != ScalarSize || s.IsZero() {
		return KeyMaterial{}, ErrExtractionFailed
	}
	pub, err := MulGenerator(s)
	if err != nil {
		return KeyMaterial{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	if pub.IsInfinity() {
		return KeyMaterial{}, ErrExtractionFailed
	}
	x, y := pub.X(), pub.Y()
	if len(x) != CoordinateSize || len(y) != CoordinateSize {
		return KeyMaterial{}, ErrExtractionFailed
	}

	var km KeyMaterial
	copy(km.priv[:], s.Bytes)
	copy(km.x[:], x)
	copy(km.y[:], y)
	km.ok = true
	runtime.KeepAlive(s)
	return km, nil
}

// Valid reports whether km was produced by ExtractKeyMaterial and has not
// been zeroized.
func (km KeyMaterial) Valid() bool {
	return km.ok
}

// PrivateKeyBytes returns a copy of the 32-byte big-endian private scalar.
func (km KeyMaterial) PrivateKeyBytes() []byte {
	out := make([]byte, ScalarSize)
	copy(out, km.priv[:])
	return out
}

// PublicKeyXBytes returns a copy of the 32-byte big-endian public X coordinate.
func (km KeyMaterial) PublicKeyXBytes() []byte {
	out := make([]byte, CoordinateSize)
	copy(out, km.x[:])
	return out
}

// PublicKeyYBytes returns a copy of the 32-byte big-endian public Y coordinate.
func (km KeyMaterial) PublicKeyYBytes() []byte {
	out := make([]byte, CoordinateSize)
	copy(out, km.y[:])
	return out
}

// PublicKey returns the 65-byte uncompressed encoding 0x04 || X || Y.
func (km KeyMaterial) PublicKey() []byte {
	out := make([]byte, 0, UncompressedPointSize)
	out = append(out, UncompressedTag)
	out = append(out, km.x[:]...)
	return append(out, km.y[:]...)
}

// Scalar returns the private key as a Scalar. Free it when done.
func (km KeyMaterial) Scalar() (*Scalar, error) {
	if !km.Valid() {
		return nil, ErrExtractionFailed
	}
	return NewScalarFromBytes(km.priv[:])
}

// Point returns the public key as a Point.
func (km KeyMaterial) Point() (*Point, error) {
	if !km.Valid() {
		return nil, ErrExtractionFailed
	}
	return NewPointFromBytes(km.PublicKey())
}

// Zeroize clears the private scalar and marks km invalid.
func (km *KeyMaterial) Zeroize() {
	if km == nil {
		return
	}
	zeroizeBytes(km.priv[:])
	km.ok = false
}
