package jwk

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-jose/go-jose/v4"

	"github.com/MyNextID/cvc-go/pkg/cvc"
	"github.com/MyNextID/cvc-go/pkg/cvc/curve"
)

const (
	// KeyAlgorithm is the JWE key management algorithm used by Encrypt.
	KeyAlgorithm = jose.ECDH_ES
	// ContentEncryption is the JWE content encryption used by Encrypt.
	ContentEncryption = jose.A256GCM
)

var (
	ErrNilKey         = errors.New("jwk: key is nil")
	ErrUnsupportedKey = errors.New("jwk: key is not an ECDSA key")
	ErrNotP256        = errors.New("jwk: key is not on P-256")
	ErrNotPrivate     = errors.New("jwk: key has no private part")
	ErrInvalidKey     = errors.New("jwk: invalid key")
	ErrMasterTooLarge = errors.New("jwk: master key JSON too large")
)

// FromKeyMaterial returns a private P-256 JWK for km.
func FromKeyMaterial(km cvc.KeyMaterial) (*jose.JSONWebKey, error) {
	if !km.Valid() {
		return nil, fmt.Errorf("jwk: %w", cvc.ErrExtractionFailed)
	}
	priv, err := ecdsa.ParseRawPrivateKey(elliptic.P256(), km.PrivateKeyBytes())
	if err != nil {
		return nil, fmt.Errorf("jwk: build private key: %w", err)
	}
	return &jose.JSONWebKey{Key: priv, Algorithm: string(jose.ES256), Use: "sig"}, nil
}

// PublicFromKeyMaterial returns the public P-256 JWK for km.
func PublicFromKeyMaterial(km cvc.KeyMaterial) (*jose.JSONWebKey, error) {
	if !km.Valid() {
		return nil, fmt.Errorf("jwk: %w", cvc.ErrExtractionFailed)
	}
	return FromPublicKeyBytes(km.PublicKey())
}

// FromPublicKeyBytes returns a public JWK for a 65-byte uncompressed point.
func FromPublicKeyBytes(b []byte) (*jose.JSONWebKey, error) {
	pub, err := ecdsa.ParseUncompressedPublicKey(elliptic.P256(), b)
	if err != nil {
		return nil, fmt.Errorf("jwk: parse public key: %w", err)
	}
	return &jose.JSONWebKey{Key: pub, Algorithm: string(jose.ES256), Use: "sig"}, nil
}

// PrivateKeyBytes returns the 32-byte private scalar held by key.
func PrivateKeyBytes(key *jose.JSONWebKey) ([]byte, error) {
	if key == nil || key.Key == nil {
		return nil, ErrNilKey
	}
	priv, ok := key.Key.(*ecdsa.PrivateKey)
	if !ok {
		if _, isPub := key.Key.(*ecdsa.PublicKey); isPub {
			return nil, ErrNotPrivate
		}
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKey, key.Key)
	}
	if priv.Curve != elliptic.P256() {
		return nil, ErrNotP256
	}
	b, err := priv.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: encode private key: %w", ErrInvalidKey, err)
	}
	return b, nil
}

// PublicKeyBytes returns the 65-byte uncompressed public point of key,
// which may be a private or a public JWK.
func PublicKeyBytes(key *jose.JSONWebKey) ([]byte, error) {
	if key == nil || key.Key == nil {
		return nil, ErrNilKey
	}
	var pub *ecdsa.PublicKey
	switch k := key.Key.(type) {
	case *ecdsa.PrivateKey:
		pub = &k.PublicKey
	case *ecdsa.PublicKey:
		pub = k
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKey, key.Key)
	}
	if pub.Curve != elliptic.P256() {
		return nil, ErrNotP256
	}
	b, err := pub.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: encode public key: %w", ErrInvalidKey, err)
	}
	return b, nil
}

// GenerateSecretKey returns a new private P-256 JWK drawn from r.
// A nil r uses crypto/rand.Reader.
func GenerateSecretKey(r io.Reader) (*jose.JSONWebKey, error) {
	km, err := cvc.GenerateSecretKey(r)
	if err != nil {
		return nil, err
	}
	defer km.Zeroize()
	return FromKeyMaterial(km)
}

// AddSecretKeys returns the private JWK for the sum of the private scalars
// of key1 and key2. See cvc.CombineSecretKeys.
func AddSecretKeys(key1, key2 *jose.JSONWebKey) (*jose.JSONWebKey, error) {
	b1, err := PrivateKeyBytes(key1)
	if err != nil {
		return nil, fmt.Errorf("first key: %w", err)
	}
	defer cvc.ZeroizeBytes(b1)
	b2, err := PrivateKeyBytes(key2)
	if err != nil {
		return nil, fmt.Errorf("second key: %w", err)
	}
	defer cvc.ZeroizeBytes(b2)

	km, err := cvc.CombineSecretKeys(b1, b2)
	if err != nil {
		return nil, err
	}
	defer km.Zeroize()
	return FromKeyMaterial(km)
}

// AddPublicKeys returns the public JWK for the sum of the public points of
// key1 and key2. Private JWKs contribute their public part. See
// cvc.CombinePublicKeys.
func AddPublicKeys(key1, key2 *jose.JSONWebKey) (*jose.JSONWebKey, error) {
	b1, err := PublicKeyBytes(key1)
	if err != nil {
		return nil, fmt.Errorf("first key: %w", err)
	}
	b2, err := PublicKeyBytes(key2)
	if err != nil {
		return nil, fmt.Errorf("second key: %w", err)
	}

	sum, err := cvc.CombinePublicKeys(b1, b2)
	if err != nil {
		return nil, err
	}
	return FromPublicKeyBytes(sum)
}

// DeriveSecretKey derives a private JWK from the JSON serialization of
// master, the context and the DST. See cvc.DeriveSecretKey.
func DeriveSecretKey(master *jose.JSONWebKey, context, dst []byte) (*jose.JSONWebKey, error) {
	return DeriveSecretKeyWithConfig(cvc.DefaultConfig(), master, context, dst)
}

// DeriveSecretKeyWithConfig is DeriveSecretKey with explicit limits.
func DeriveSecretKeyWithConfig(cfg cvc.Config, master *jose.JSONWebKey, context, dst []byte) (*jose.JSONWebKey, error) {
	if master == nil || master.Key == nil {
		return nil, ErrNilKey
	}
	masterBytes, err := Marshal(master)
	if err != nil {
		return nil, err
	}
	defer cvc.ZeroizeBytes(masterBytes)
	if len(masterBytes) > cfg.MaxMasterKeySize {
		return nil, fmt.Errorf("%w: %d bytes", ErrMasterTooLarge, len(masterBytes))
	}

	km, err := cfg.DeriveSecretKey(masterBytes, context, dst)
	if err != nil {
		return nil, err
	}
	defer km.Zeroize()
	return FromKeyMaterial(km)
}

// IsKeyValid returns nil if key is a P-256 JWK whose public point lies on
// the curve and, for private keys, whose scalar is in [1, n-1] and matches
// the public point.
func IsKeyValid(key *jose.JSONWebKey) error {
	pub, err := PublicKeyBytes(key)
	if err != nil {
		return err
	}
	if _, err := curve.NewPointFromBytes(pub); err != nil {
		return fmt.Errorf("%w: public key: %w", ErrInvalidKey, err)
	}
	if _, ok := key.Key.(*ecdsa.PrivateKey); !ok {
		return nil
	}

	priv, err := PrivateKeyBytes(key)
	if err != nil {
		return err
	}
	defer cvc.ZeroizeBytes(priv)
	s, err := curve.NewScalarFromBytes(priv)
	if err != nil {
		return fmt.Errorf("%w: private key: %w", ErrInvalidKey, err)
	}
	defer s.Free()
	km, err := curve.ExtractKeyMaterial(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	defer km.Zeroize()
	if !bytes.Equal(km.PublicKey(), pub) {
		return fmt.Errorf("%w: public key does not match private key", ErrInvalidKey)
	}
	return nil
}

// Marshal returns the JSON serialization of key.
func Marshal(key *jose.JSONWebKey) ([]byte, error) {
	if key == nil || key.Key == nil {
		return nil, ErrNilKey
	}
	b, err := json.Marshal(key)
	if err != nil {
		return nil, fmt.Errorf("jwk: marshal: %w", err)
	}
	return b, nil
}

// Parse decodes a JWK and checks that it is a valid P-256 key.
func Parse(data []byte) (*jose.JSONWebKey, error) {
	var key jose.JSONWebKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("jwk: parse: %w", err)
	}
	if err := IsKeyValid(&key); err != nil {
		return nil, err
	}
	return &key, nil
}
