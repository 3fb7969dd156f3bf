package h2f

import (
	"errors"
	"fmt"
	"hash"
)

var (
	ErrInvalidParams     = errors.New("h2f: invalid parameters")
	ErrExpandFailed      = errors.New("h2f: message expansion failed")
	ErrExpansionTooLarge = errors.New("h2f: expansion length too large")
)

const (
	// maxDSTLen is the longest DST used verbatim; longer tags are hashed.
	maxDSTLen = 255
	// maxBlocks bounds ell, the number of hash blocks in one expansion.
	maxBlocks = 255
	// maxExpandLen is the largest length I2OSP(len, 2) can encode.
	maxExpandLen = 1<<16 - 1

	oversizeDSTPrefix = "H2C-OVERSIZE-DST-"
)

// MaxExpansionLength returns the largest output length ExpandMessageXMD
// accepts for h: min(255 * h.Size, 65535).
func MaxExpansionLength(h Hash) int {
	return min(maxBlocks*h.Size, maxExpandLen)
}

// ExpandMessageXMD implements expand_message_xmd (RFC 9380, section 5.3.1)
// and returns n uniform bytes. A DST longer than 255 bytes is replaced by
// H("H2C-OVERSIZE-DST-" || DST) per section 5.3.3.
func ExpandMessageXMD(h Hash, dst, msg []byte, n int) ([]byte, error) {
	if h.fn == nil || len(dst) == 0 || n <= 0 {
		return nil, ErrInvalidParams
	}
	if n > MaxExpansionLength(h) {
		return nil, fmt.Errorf("%w: %d bytes with %s", ErrExpansionTooLarge, n, h.Name())
	}

	H := h.New()
	if len(dst) > maxDSTLen {
		H.Write([]byte(oversizeDSTPrefix))
		H.Write(dst)
		dst = H.Sum(nil)
		H.Reset()
	}
	dstPrime := make([]byte, 0, len(dst)+1)
	dstPrime = append(dstPrime, dst...)
	dstPrime = append(dstPrime, byte(len(dst)))

	ell := (n + h.Size - 1) / h.Size

	// b_0 = H(Z_pad || msg || l_i_b_str || I2OSP(0, 1) || DST_prime)
	H.Write(make([]byte, H.BlockSize()))
	H.Write(msg)
	H.Write([]byte{byte(n >> 8), byte(n)})
	H.Write([]byte{0})
	H.Write(dstPrime)
	b0 := H.Sum(nil)

	out := make([]byte, 0, ell*h.Size)
	bi := blockHash(H, b0, nil, 1, dstPrime)
	out = append(out, bi...)
	for i := 2; i <= ell; i++ {
		bi = blockHash(H, b0, bi, byte(i), dstPrime)
		out = append(out, bi...)
	}
	if len(out) < n {
		return nil, ErrExpandFailed
	}
	return out[:n], nil
}

// blockHash computes b_i = H(strxor(b_0, b_(i-1)) || I2OSP(i, 1) || DST_prime).
// A nil prev yields b_1 = H(b_0 || 0x01 || DST_prime).
func blockHash(H hash.Hash, b0, prev []byte, i byte, dstPrime []byte) []byte {
	x := make([]byte, len(b0))
	copy(x, b0)
	for j := range prev {
		x[j] ^= prev[j]
	}
	H.Reset()
	H.Write(x)
	H.Write([]byte{i})
	H.Write(dstPrime)
	return H.Sum(nil)
}
