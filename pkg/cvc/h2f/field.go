package h2f

import (
	"errors"
	"fmt"
	"math/big"
)

const (
	// ElementSize is the encoded size of a P-256 base field element.
	ElementSize = 32
	// L is the number of expanded bytes consumed per field element,
	// ceil((ceil(log2(p)) + k) / 8) with k = 128.
	L = 48
)

// fieldPrime is the P-256 base field modulus p = 2^256 - 2^224 + 2^192 + 2^96 - 1.
var fieldPrime, _ = new(big.Int).SetString("ffffffff00000001000000000000000000000000ffffffffffffffffffffffff", 16)

// FieldElement is a big-endian integer in [0, p).
type FieldElement [ElementSize]byte

// Bytes returns a copy of the big-endian encoding.
func (e FieldElement) Bytes() []byte {
	out := make([]byte, ElementSize)
	copy(out, e[:])
	return out
}

// BigInt returns the element as a big.Int.
func (e FieldElement) BigInt() *big.Int {
	return new(big.Int).SetBytes(e[:])
}

// MaxElements returns the largest count HashToField accepts for h.
func MaxElements(h Hash) int {
	return MaxExpansionLength(h) / L
}

// HashToField hashes msg to count elements of the P-256 base field
// (RFC 9380, section 5.2) with expand_message_xmd over the hash selected
// by family and size.
//
// It fails with ErrInvalidParams for an unsupported hash, an empty DST or a
// non-positive count, with ErrExpansionTooLarge when count*L exceeds
// MaxExpansionLength, and with ErrExpandFailed if expansion fails.
func HashToField(family Family, size int, dst, msg []byte, count int) ([]FieldElement, error) {
	h, err := Lookup(family, size)
	if err != nil {
		return nil, err
	}
	return HashToFieldWith(h, dst, msg, count)
}

// HashToFieldWith is HashToField with a resolved hash.
func HashToFieldWith(h Hash, dst, msg []byte, count int) ([]FieldElement, error) {
	if len(dst) == 0 || count <= 0 {
		return nil, ErrInvalidParams
	}
	if count > MaxElements(h) {
		return nil, fmt.Errorf("%w: %d elements with %s", ErrExpansionTooLarge, count, h.Name())
	}

	uniform, err := ExpandMessageXMD(h, dst, msg, count*L)
	if err != nil {
		if errors.Is(err, ErrExpansionTooLarge) || errors.Is(err, ErrInvalidParams) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrExpandFailed, err)
	}

	out := make([]FieldElement, count)
	v := new(big.Int)
	for i := range out {
		v.SetBytes(uniform[i*L : (i+1)*L])
		v.Mod(v, fieldPrime)
		v.FillBytes(out[i][:])
	}
	return out, nil
}
