package jwk

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/go-jose/go-jose/v4"
)

// Encrypt encrypts payload to the P-256 public key of recipient
// (ECDH-ES with A256GCM) and returns the JWE compact serialization.
// A private JWK encrypts to its public part.
func Encrypt(payload []byte, recipient *jose.JSONWebKey) (string, error) {
	if payload == nil {
		return "", fmt.Errorf("jwk: payload cannot be nil")
	}
	if err := IsKeyValid(recipient); err != nil {
		return "", err
	}
	var pub *ecdsa.PublicKey
	switch k := recipient.Key.(type) {
	case *ecdsa.PrivateKey:
		pub = &k.PublicKey
	case *ecdsa.PublicKey:
		pub = k
	}

	enc, err := jose.NewEncrypter(ContentEncryption, jose.Recipient{
		Algorithm: KeyAlgorithm,
		Key:       pub,
		KeyID:     recipient.KeyID,
	}, &jose.EncrypterOptions{Compression: jose.NONE})
	if err != nil {
		return "", fmt.Errorf("jwk: create encrypter: %w", err)
	}
	obj, err := enc.Encrypt(payload)
	if err != nil {
		return "", fmt.Errorf("jwk: encrypt: %w", err)
	}
	out, err := obj.CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("jwk: serialize: %w", err)
	}
	return out, nil
}

// Decrypt decrypts a JWE produced by Encrypt with the private JWK key.
func Decrypt(token string, key *jose.JSONWebKey) ([]byte, error) {
	if token == "" {
		return nil, fmt.Errorf("jwk: JWE cannot be empty")
	}
	if key == nil || key.Key == nil {
		return nil, ErrNilKey
	}
	priv, ok := key.Key.(*ecdsa.PrivateKey)
	if !ok {
		return nil, ErrNotPrivate
	}

	obj, err := jose.ParseEncrypted(token,
		[]jose.KeyAlgorithm{KeyAlgorithm},
		[]jose.ContentEncryption{ContentEncryption})
	if err != nil {
		return nil, fmt.Errorf("jwk: parse JWE: %w", err)
	}
	plaintext, err := obj.Decrypt(priv)
	if err != nil {
		return nil, fmt.Errorf("jwk: decrypt: %w", err)
	}
	return plaintext, nil
}
