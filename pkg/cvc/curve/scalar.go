package curve

import (
	"crypto/subtle"
	"math/big"
	"runtime"
)

// Scalar is an integer mod the P-256 group order, stored as ScalarSize
// big-endian bytes.
//
// The Bytes field is publicly accessible for read-only access. Do not mutate
// it; derive a new Scalar instead. Scalars returned by NewScalarFromBytes are
// always in [1, n-1]. Scalars produced by Add or ReduceScalar may be zero and
// must be checked with IsZero before being used as private keys.
type Scalar struct {
	Bytes []byte
}

// zeroizeBytes overwrites the provided slice with zeros and prevents compiler
// dead store elimination using runtime.KeepAlive.
func zeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}

func newScalar(b []byte) *Scalar {
	s := &Scalar{Bytes: b}
	runtime.SetFinalizer(s, (*Scalar).Free)
	return s
}

// NewScalarFromBytes decodes a private-key scalar.
// It fails with ErrBadLength unless len(b) == ScalarSize, with ErrZeroScalar
// for zero and with ErrNotLessThanOrder for values >= n.
// The input is copied.
func NewScalarFromBytes(b []byte) (*Scalar, error) {
	if len(b) != ScalarSize {
		return nil, ErrBadLength
	}
	e := engine()
	if e.ScalarIsZero(b) {
		return nil, ErrZeroScalar
	}
	if !e.ScalarBelowOrder(b) {
		return nil, ErrNotLessThanOrder
	}
	out := make([]byte, ScalarSize)
	copy(out, b)
	return newScalar(out), nil
}

// ReduceScalar interprets b as a big-endian integer of any length and
// returns it mod n. The result may be zero.
func ReduceScalar(b []byte) *Scalar {
	return newScalar(engine().ScalarReduce(b))
}

// Encode returns a defensive copy of the canonical ScalarSize-byte encoding.
func (s *Scalar) Encode() []byte {
	if s == nil || len(s.Bytes) == 0 {
		return nil
	}
	out := make([]byte, len(s.Bytes))
	copy(out, s.Bytes)
	return out
}

// IsZero reports whether s is zero. A freed scalar reads as zero.
func (s *Scalar) IsZero() bool {
	if s == nil || len(s.Bytes) == 0 {
		return true
	}
	return engine().ScalarIsZero(s.Bytes)
}

// Equal compares two scalars in constant time.
func (s *Scalar) Equal(other *Scalar) bool {
	if s == nil || other == nil {
		return s == other
	}
	return subtle.ConstantTimeCompare(s.Bytes, other.Bytes) == 1
}

// Add returns (s + other) mod n. The sum may be zero.
func (s *Scalar) Add(other *Scalar) (*Scalar, error) {
	if s == nil || len(s.Bytes) == 0 || other == nil || len(other.Bytes) == 0 {
		return nil, ErrBadLength
	}
	sum, err := engine().ScalarAdd(s.Bytes, other.Bytes)
	if err != nil {
		return nil, err
	}
	runtime.KeepAlive(s)
	runtime.KeepAlive(other)
	return newScalar(sum), nil
}

// BigInt returns the Scalar as a big.Int.
// WARNING: big.Int operations are NOT constant-time. This is provided for
// interoperability with crypto/ecdsa and for tests.
func (s *Scalar) BigInt() *big.Int {
	if s == nil || len(s.Bytes) == 0 {
		return big.NewInt(0)
	}
	return new(big.Int).SetBytes(s.Bytes)
}

// Free zeroizes the scalar bytes and releases references.
func (s *Scalar) Free() {
	if s == nil || len(s.Bytes) == 0 {
		return
	}
	zeroizeBytes(s.Bytes)
	s.Bytes = nil
	runtime.SetFinalizer(s, nil)
}

// String returns the decimal representation of the scalar.
// WARNING: this exposes secret material; use only for tests and debugging.
func (s *Scalar) String() string {
	return s.BigInt().String()
}
