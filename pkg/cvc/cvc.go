package cvc

import (
	"errors"
	"io"

	"github.com/MyNextID/cvc-go/pkg/cvc/curve"
	"github.com/MyNextID/cvc-go/pkg/cvc/h2f"
)

// CombineSecretKeys returns the key material for (key1 + key2) mod n.
//
// Each key must be a 32-byte big-endian scalar in [1, n-1]; failures are
// reported as ErrInvalidKey1 or ErrInvalidKey2 wrapping the curve error.
// A zero sum fails with ErrResultZero.
func CombineSecretKeys(key1, key2 []byte) (KeyMaterial, error) {
	const op = "CombineSecretKeys"

	s1, err := curve.NewScalarFromBytes(key1)
	if err != nil {
		return KeyMaterial{}, newError(op, KindInvalidKey1, err)
	}
	defer s1.Free()
	s2, err := curve.NewScalarFromBytes(key2)
	if err != nil {
		return KeyMaterial{}, newError(op, KindInvalidKey2, err)
	}
	defer s2.Free()

	sum, err := s1.Add(s2)
	if err != nil {
		return KeyMaterial{}, newError(op, KindExtractionFailed, err)
	}
	defer sum.Free()
	if sum.IsZero() {
		return KeyMaterial{}, newError(op, KindResultZero, nil)
	}

	km, err := curve.ExtractKeyMaterial(sum)
	if err != nil {
		return KeyMaterial{}, newError(op, KindExtractionFailed, err)
	}
	return km, nil
}

// CombinePublicKeys returns the 65-byte uncompressed encoding of key1 + key2.
//
// Each key must be a 65-byte uncompressed point 0x04 || X || Y. A wrong
// length fails with ErrInvalidKey1Length or ErrInvalidKey2Length, an
// off-curve point with ErrInvalidPoint1 or ErrInvalidPoint2 and an all-zero
// point with ErrPoint1AtInfinity or ErrPoint2AtInfinity. A sum at infinity
// fails with ErrResultAtInfinity.
func CombinePublicKeys(key1, key2 []byte) ([]byte, error) {
	return combinePublicKeys("CombinePublicKeys", key1, key2)
}

// CombinePublicKeysInto is CombinePublicKeys writing the result into dst.
// It returns the number of bytes written. A dst shorter than
// UncompressedKeySize fails with ErrInsufficientBuffer and is left untouched.
func CombinePublicKeysInto(dst, key1, key2 []byte) (int, error) {
	const op = "CombinePublicKeysInto"

	out, err := combinePublicKeys(op, key1, key2)
	if err != nil {
		return 0, err
	}
	if len(dst) < len(out) {
		return 0, newError(op, KindInsufficientBuffer, nil)
	}
	return copy(dst, out), nil
}

func combinePublicKeys(op string, key1, key2 []byte) ([]byte, error) {
	if len(key1) != UncompressedKeySize {
		return nil, newError(op, KindInvalidKey1Length, curve.ErrBadLength)
	}
	if len(key2) != UncompressedKeySize {
		return nil, newError(op, KindInvalidKey2Length, curve.ErrBadLength)
	}

	p1, err := curve.NewPointFromBytes(key1)
	if err != nil {
		return nil, newError(op, pointErrorKind(err, KindPoint1AtInfinity, KindInvalidPoint1), err)
	}
	p2, err := curve.NewPointFromBytes(key2)
	if err != nil {
		return nil, newError(op, pointErrorKind(err, KindPoint2AtInfinity, KindInvalidPoint2), err)
	}

	sum, err := p1.Add(p2)
	if err != nil {
		return nil, newError(op, KindResultConversionFailed, err)
	}
	if sum.IsInfinity() {
		return nil, newError(op, KindResultAtInfinity, nil)
	}
	out, err := sum.Bytes()
	if err != nil {
		return nil, newError(op, KindResultConversionFailed, err)
	}
	if len(out) != UncompressedKeySize {
		return nil, newError(op, KindResultConversionFailed, nil)
	}
	return out, nil
}

func pointErrorKind(err error, atInfinity, invalid Kind) Kind {
	if errors.Is(err, curve.ErrAtInfinity) {
		return atInfinity
	}
	return invalid
}

// HashToField hashes msg to count elements of the P-256 base field using
// expand_message_xmd with the hash selected by family and size (32, 48 or 64
// bytes). See h2f.HashToField.
func HashToField(family HashFamily, size int, dst, msg []byte, count int) ([]FieldElement, error) {
	const op = "HashToField"

	u, err := h2f.HashToField(family, size, dst, msg, count)
	switch {
	case err == nil:
		return u, nil
	case errors.Is(err, h2f.ErrInvalidParams):
		return nil, newError(op, KindInvalidParams, err)
	case errors.Is(err, h2f.ErrExpansionTooLarge):
		return nil, newError(op, KindExpansionTooLarge, err)
	default:
		return nil, newError(op, KindExpandFailed, err)
	}
}

// DeriveSecretKey derives key material from master key bytes and a context
// under the default configuration. See Config.DeriveSecretKey.
func DeriveSecretKey(masterKey, context, dst []byte) (KeyMaterial, error) {
	return DefaultConfig().DeriveSecretKey(masterKey, context, dst)
}

// DeriveSecretKey deterministically derives key material:
//
//	k = HashToField(dst, masterKey || context, 1)[0] mod n
//
// Empty inputs fail with ErrInvalidParams and inputs over the configured
// limits with ErrInputTooLarge. A zero k fails with ErrZeroScalar; the
// caller must vary the inputs.
func (c Config) DeriveSecretKey(masterKey, context, dst []byte) (KeyMaterial, error) {
	const op = "DeriveSecretKey"

	if err := c.Validate(); err != nil {
		return KeyMaterial{}, newError(op, KindInvalidParams, err)
	}
	if len(masterKey) == 0 || len(context) == 0 || len(dst) == 0 {
		return KeyMaterial{}, newError(op, KindInvalidParams, nil)
	}
	if len(masterKey) > c.MaxMasterKeySize || len(context) > c.MaxContextSize ||
		len(dst) > c.MaxDSTSize || len(masterKey)+len(context) > c.MaxCombinedInputSize {
		return KeyMaterial{}, newError(op, KindInputTooLarge, nil)
	}

	msg := make([]byte, 0, len(masterKey)+len(context))
	msg = append(msg, masterKey...)
	msg = append(msg, context...)
	defer ZeroizeBytes(msg)

	u, err := h2f.HashToField(c.HashFamily, c.HashSize, dst, msg, 1)
	if err != nil {
		return KeyMaterial{}, newError(op, KindHashToFieldFailed, err)
	}

	k := curve.ReduceScalar(u[0][:])
	defer k.Free()
	ZeroizeBytes(u[0][:])
	if k.IsZero() {
		return KeyMaterial{}, newError(op, KindZeroScalar, nil)
	}

	km, err := curve.ExtractKeyMaterial(k)
	if err != nil {
		return KeyMaterial{}, newError(op, KindExtractionFailed, err)
	}
	return km, nil
}

// GenerateSecretKey returns key material for a uniform scalar in [1, n-1]
// drawn from r. A nil r uses crypto/rand.Reader. A failing reader is
// reported as ErrRandomFailed. Readers shared between
// goroutines must be safe for concurrent use; see package rng.
func GenerateSecretKey(r io.Reader) (KeyMaterial, error) {
	const op = "GenerateSecretKey"

	s, err := curve.RandomScalar(r)
	if err != nil {
		return KeyMaterial{}, newError(op, KindRandomFailed, err)
	}
	defer s.Free()

	km, err := curve.ExtractKeyMaterial(s)
	if err != nil {
		return KeyMaterial{}, newError(op, KindExtractionFailed, err)
	}
	return km, nil
}

// IsKeyValid reports whether key is a 32-byte private key in [1, n-1] or a
// 65-byte uncompressed public key on the curve.
func IsKeyValid(key []byte) bool {
	switch len(key) {
	case KeySize:
		s, err := curve.NewScalarFromBytes(key)
		if err != nil {
			return false
		}
		s.Free()
		return true
	case UncompressedKeySize:
		_, err := curve.NewPointFromBytes(key)
		return err == nil
	default:
		return false
	}
}
