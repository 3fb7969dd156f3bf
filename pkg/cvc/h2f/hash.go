package h2f

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/sha3"
)

// Family selects a hash function family.
type Family int

const (
	SHA2 Family = 2
	SHA3 Family = 3
)

// String returns a human-readable name for the family.
func (f Family) String() string {
	switch f {
	case SHA2:
		return "SHA2"
	case SHA3:
		return "SHA3"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// Hash is a hash function resolved from a family and output size.
type Hash struct {
	Family Family
	Size   int
	fn     func() hash.Hash
}

// Lookup resolves a family and output size (32, 48 or 64 bytes).
func Lookup(f Family, size int) (Hash, error) {
	var fn func() hash.Hash
	switch f {
	case SHA2:
		switch size {
		case sha256.Size:
			fn = sha256.New
		case sha512.Size384:
			fn = sha512.New384
		case sha512.Size:
			fn = sha512.New
		}
	case SHA3:
		switch size {
		case 32:
			fn = func() hash.Hash { return sha3.New256() }
		case 48:
			fn = func() hash.Hash { return sha3.New384() }
		case 64:
			fn = func() hash.Hash { return sha3.New512() }
		}
	}
	if fn == nil {
		return Hash{}, fmt.Errorf("%w: unsupported hash %v/%d", ErrInvalidParams, f, size)
	}
	return Hash{Family: f, Size: size, fn: fn}, nil
}

// New returns a fresh hash state.
func (h Hash) New() hash.Hash {
	return h.fn()
}

// Name returns a short label such as "SHA2-256".
func (h Hash) Name() string {
	return fmt.Sprintf("%v-%d", h.Family, h.Size*8)
}
