// Package rng provides a deterministic CSPRNG seeded once from caller
// entropy, for use with cvc.GenerateSecretKey and curve.RandomScalar.
//
// The seed is expanded with HKDF-SHA256 into a ChaCha20 key. After every
// Read the generator replaces its key with fresh keystream, so earlier
// output cannot be recovered from a later state. A Reader is safe for
// concurrent use; draws are serialized by a mutex.
package rng

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/hkdf"
)

// MinSeedSize is the minimum accepted seed length in bytes.
const MinSeedSize = 32

// maxReadSize keeps a single draw well inside the ChaCha20 block counter.
const maxReadSize = 1 << 30

var (
	ErrInsufficientEntropy = errors.New("rng: seed shorter than 32 bytes")
	ErrClosed              = errors.New("rng: reader closed")
	ErrReadTooLarge        = errors.New("rng: read exceeds 1 GiB")
)

var info = []byte("cvc-go rng v1")

// Reader is a seeded CSPRNG implementing io.Reader.
type Reader struct {
	mu     sync.Mutex
	key    [chacha20.KeySize]byte
	closed bool
}

// New returns a Reader seeded from seed, which must hold at least
// MinSeedSize bytes of entropy. The seed is not retained.
func New(seed []byte) (*Reader, error) {
	if len(seed) < MinSeedSize {
		return nil, ErrInsufficientEntropy
	}
	r := &Reader{}
	kdf := hkdf.New(sha256.New, seed, nil, info)
	if _, err := io.ReadFull(kdf, r.key[:]); err != nil {
		return nil, fmt.Errorf("rng: expand seed: %w", err)
	}
	return r, nil
}

// Read fills p with keystream and rekeys.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) > maxReadSize {
		return 0, ErrReadTooLarge
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, ErrClosed
	}

	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(r.key[:], nonce[:])
	if err != nil {
		return 0, fmt.Errorf("rng: %w", err)
	}
	// The first block of keystream becomes the next key.
	r.key = [chacha20.KeySize]byte{}
	c.XORKeyStream(r.key[:], r.key[:])
	for i := range p {
		p[i] = 0
	}
	c.XORKeyStream(p, p)
	return len(p), nil
}

// Close erases the key. Subsequent reads fail with ErrClosed.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.key {
		r.key[i] = 0
	}
	runtime.KeepAlive(&r.key)
	r.closed = true
	return nil
}
