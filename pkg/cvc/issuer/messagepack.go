package issuer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-jose/go-jose/v4"
	"github.com/google/uuid"

	"github.com/MyNextID/cvc-go/pkg/cvc/builder"
	"github.com/MyNextID/cvc-go/pkg/cvc/jwk"
)

// MessagePack is delivered to the recipient alongside a credential.
type MessagePack struct {
	WpGenerateSecretKeysURL string          `json:"wp_generate_secret_keys_url"`
	KeyID                   string          `json:"key_id"`
	Salt                    []byte          `json:"salt"`
	Email                   string          `json:"email"`
	// DisplayMap is an encoded builder.Presentation.
	DisplayMap              json.RawMessage `json:"display_map,omitempty"`
	// EncVC is the signed credential encrypted to the credential key.
	EncVC string `json:"enc_vc"`
	// EncVCSecKey is the credential secret JWK encrypted to the
	// wallet-provider key.
	EncVCSecKey string `json:"enc_vc_sec_key"`
}

// PrepareMessagePack encrypts signedCredential for the user. AddCnfToPayload
// must have been called for id first. A nil display omits the display map;
// otherwise it must pass builder validation.
func (i *Issuer) PrepareMessagePack(signedCredential []byte, id uuid.UUID, users map[uuid.UUID]*UserData, display *builder.Presentation) (*MessagePack, error) {
	user, ok := users[id]
	if !ok || user == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUser, id)
	}
	if user.WpPubKey == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, id)
	}
	if user.VcSecKey == nil || user.VcPubKey == nil {
		return nil, fmt.Errorf("issuer: user %s has no credential key", id)
	}
	if len(signedCredential) == 0 {
		return nil, fmt.Errorf("issuer: signed credential cannot be empty")
	}
	var displayMap json.RawMessage
	if display != nil {
		var err error
		if displayMap, err = display.Create(); err != nil {
			return nil, fmt.Errorf("issuer: display map: %w", err)
		}
	}

	encVC, err := jwk.Encrypt(signedCredential, user.VcPubKey)
	if err != nil {
		return nil, fmt.Errorf("issuer: encrypt credential: %w", err)
	}
	secJSON, err := jwk.Marshal(user.VcSecKey)
	if err != nil {
		return nil, err
	}
	encSec, err := jwk.Encrypt(secJSON, user.WpPubKey)
	clear(secJSON)
	if err != nil {
		return nil, fmt.Errorf("issuer: encrypt credential key: %w", err)
	}

	return &MessagePack{
		WpGenerateSecretKeysURL: i.cfg.SecretKeysURL,
		KeyID:                   user.KeyID,
		Salt:                    user.Salt,
		Email:                   user.Email,
		DisplayMap:              displayMap,
		EncVC:                   encVC,
		EncVCSecKey:             encSec,
	}, nil
}

// Opened is the result of OpenMessagePack.
type Opened struct {
	// Credential is the decrypted signed credential.
	Credential []byte
	// CnfSecKey is the confirmation secret key, vcSec + wpSec.
	CnfSecKey *jose.JSONWebKey
	// Display is the parsed display map, nil if the pack carried none.
	Display *builder.Presentation
}

// OpenMessagePack is the recipient side: it fetches the wallet-provider
// secret key from the URL in mp, recovers the credential secret key and
// combines both into the confirmation secret key.
func OpenMessagePack(ctx context.Context, client *ProviderClient, mp *MessagePack) (*Opened, error) {
	if mp == nil {
		return nil, fmt.Errorf("issuer: message pack cannot be nil")
	}
	if mp.WpGenerateSecretKeysURL == "" {
		return nil, ErrNoSecretKeysURL
	}
	var display *builder.Presentation
	if len(mp.DisplayMap) > 0 {
		var err error
		if display, err = builder.Parse(mp.DisplayMap); err != nil {
			return nil, fmt.Errorf("issuer: display map: %w", err)
		}
	}

	wpSec, err := client.SecretKey(ctx, mp.WpGenerateSecretKeysURL, mp.KeyID, UserHash(mp.Email, mp.Salt))
	if err != nil {
		return nil, err
	}
	secJSON, err := jwk.Decrypt(mp.EncVCSecKey, wpSec)
	if err != nil {
		return nil, fmt.Errorf("issuer: decrypt credential key: %w", err)
	}
	vcSec, err := jwk.Parse(secJSON)
	clear(secJSON)
	if err != nil {
		return nil, err
	}
	credential, err := jwk.Decrypt(mp.EncVC, vcSec)
	if err != nil {
		return nil, fmt.Errorf("issuer: decrypt credential: %w", err)
	}
	cnf, err := jwk.AddSecretKeys(vcSec, wpSec)
	if err != nil {
		return nil, fmt.Errorf("issuer: combine confirmation key: %w", err)
	}
	return &Opened{Credential: credential, CnfSecKey: cnf, Display: display}, nil
}
