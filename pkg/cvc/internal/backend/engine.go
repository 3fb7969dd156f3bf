package backend

// Engine exposes the scalar and point arithmetic of a prime-order curve.
//
// Scalars are ScalarSize-byte big-endian strings. Points are SEC1 encodings:
// UncompressedPointSize bytes for finite points and the single byte
// IdentityTag for the point at infinity. Implementations hold no mutable
// state and are safe for concurrent use.
type Engine interface {
	Curve() Curve

	// Order returns the big-endian group order n.
	Order() []byte

	// ScalarAdd returns (a + b) mod n. Both operands must be below n.
	ScalarAdd(a, b []byte) ([]byte, error)
	// ScalarReduce interprets b as a big-endian integer of any length and
	// returns it reduced mod n.
	ScalarReduce(b []byte) []byte
	ScalarIsZero(a []byte) bool
	// ScalarBelowOrder reports whether a encodes an integer strictly below n.
	ScalarBelowOrder(a []byte) bool

	// PointCheck reports ErrInvalidPoint unless p encodes a point on the curve.
	PointCheck(p []byte) error
	PointIsIdentity(p []byte) bool
	PointAdd(p, q []byte) ([]byte, error)
	// MulGenerator returns k·G.
	MulGenerator(k []byte) ([]byte, error)
}

// ForCurve returns the engine bound to c.
// This is the only place where curves are mapped to implementations.
func ForCurve(c Curve) (Engine, error) {
	switch c {
	case P256:
		return p256, nil
	default:
		return nil, ErrUnsupportedCurve
	}
}
