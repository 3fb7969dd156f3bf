package curve

import (
	"crypto/rand"
	"fmt"
	"io"
)

// maxSampleAttempts bounds rejection sampling. The probability that a
// uniform 32-byte string is >= n is about 2^-32, so exhausting this means
// the reader is broken.
const maxSampleAttempts = 64

// RandomScalar samples a uniform scalar in [1, n-1] by rejection sampling
// from r. A nil reader uses crypto/rand.Reader.
func RandomScalar(r io.Reader) (*Scalar, error) {
	if r == nil {
		r = rand.Reader
	}
	e := engine()
	buf := make([]byte, ScalarSize)
	defer zeroizeBytes(buf)
	for i := 0; i < maxSampleAttempts; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("curve: read random scalar: %w", err)
		}
		if e.ScalarIsZero(buf) || !e.ScalarBelowOrder(buf) {
			continue
		}
		out := make([]byte, ScalarSize)
		copy(out, buf)
		return newScalar(out), nil
	}
	return nil, ErrInsufficientRandom
}
