package provider

import (
	"context"
	"fmt"

	"github.com/go-jose/go-jose/v4"

	"github.com/MyNextID/cvc-go/pkg/cvc"
	"github.com/MyNextID/cvc-go/pkg/cvc/jwk"
)

// MasterKeyStore supplies the master key. The Provider asks for it on every
// derivation, so an implementation can keep the key in an HSM-backed vault
// or a secrets manager instead of process memory.
//
// A store must return the same key for as long as issued key IDs are
// expected to be redeemed.
type MasterKeyStore interface {
	MasterKey(ctx context.Context) (*jose.JSONWebKey, error)
}

// MasterKeyFunc adapts a function to MasterKeyStore.
type MasterKeyFunc func(ctx context.Context) (*jose.JSONWebKey, error)

func (f MasterKeyFunc) MasterKey(ctx context.Context) (*jose.JSONWebKey, error) {
	return f(ctx)
}

// StaticKeyStore serves one in-memory key.
type StaticKeyStore struct {
	Key *jose.JSONWebKey
}

func (s StaticKeyStore) MasterKey(context.Context) (*jose.JSONWebKey, error) {
	if s.Key == nil {
		return nil, ErrNoMasterKey
	}
	return s.Key, nil
}

func checkMasterKey(key *jose.JSONWebKey) error {
	if key == nil {
		return ErrNoMasterKey
	}
	if err := jwk.IsKeyValid(key); err != nil {
		return fmt.Errorf("provider: master key: %w", err)
	}
	priv, err := jwk.PrivateKeyBytes(key)
	if err != nil {
		return fmt.Errorf("provider: master key: %w", err)
	}
	cvc.ZeroizeBytes(priv)
	return nil
}
