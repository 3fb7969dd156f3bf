// Package curve provides the NIST P-256 value types used by the cvc
// operations: scalars, affine points and the key material derived from them.
//
// # Key Types
//
//   - Curve: Enum naming the supported curve (P256)
//   - Scalar: A 32-byte big-endian integer mod the group order
//   - Point: An affine point, encoded as 65 bytes 0x04 || X || Y
//   - KeyMaterial: A private scalar together with its public coordinates
//
// # Validation
//
// Decoding is strict. NewScalarFromBytes accepts exactly 32 bytes encoding a
// value in [1, n-1]; NewPointFromBytes accepts exactly 65 bytes encoding a
// finite point on the curve. Both report distinct sentinel errors so callers
// can tell length, range and validity failures apart:
//
//	s, err := curve.NewScalarFromBytes(buf)
//	if errors.Is(err, curve.ErrZeroScalar) {
//	    // caller must pick another key
//	}
//
// # Memory Management
//
// Scalars hold secret material. Call Free when done to zero the bytes:
//
//	s, err := curve.RandomScalar(nil)
//	if err != nil {
//	    return err
//	}
//	defer s.Free()
package curve
