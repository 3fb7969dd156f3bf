package issuer

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-jose/go-jose/v4"
	"github.com/google/uuid"

	"github.com/MyNextID/cvc-go/pkg/cvc/jwk"
	"github.com/MyNextID/cvc-go/pkg/cvc/logging"
)

// SaltSize is the length of the per-user salt.
const SaltSize = 32

var (
	ErrNoPublicKeysURL = errors.New("issuer: wallet provider public-keys URL is required")
	ErrNoSecretKeysURL = errors.New("issuer: wallet provider secret-keys URL is required")
	ErrNoUsers         = errors.New("issuer: no users")
	ErrUnknownUser     = errors.New("issuer: unknown user")
	ErrMissingKey      = errors.New("issuer: user has no wallet provider key")
	ErrMissingResponse = errors.New("issuer: provider response is missing a hash")
	ErrNilPayload      = errors.New("issuer: payload cannot be nil")
	ErrEmptyEmail      = errors.New("issuer: empty e-mail address")
)

// Config configures an Issuer.
type Config struct {
	// PublicKeysURL is the provider's POST /v1/public-keys endpoint.
	PublicKeysURL string `mapstructure:"public_keys_url" json:"public_keys_url" yaml:"public_keys_url"`
	// SecretKeysURL is the provider's POST /v1/secret-keys endpoint. It is
	// placed in every message pack.
	SecretKeysURL string `mapstructure:"secret_keys_url" json:"secret_keys_url" yaml:"secret_keys_url"`
	// Client configures retries and timeouts for provider calls.
	Client ClientConfig `mapstructure:"client" json:"client" yaml:"client"`
	// Logger is optional; defaults to logging.Nop().
	Logger logging.Logger `mapstructure:"-" json:"-" yaml:"-"`
	// Rand is the entropy source for salts and credential keys; nil means
	// crypto/rand.
	Rand io.Reader `mapstructure:"-" json:"-" yaml:"-"`
}

// UserData is what the issuer tracks for one recipient.
type UserData struct {
	Email    string
	KeyID    string
	Salt     []byte
	WpPubKey *jose.JSONWebKey
	VcSecKey *jose.JSONWebKey
	VcPubKey *jose.JSONWebKey
}

// Issuer obtains wallet-provider keys and binds credentials to them.
type Issuer struct {
	cfg    Config
	client *ProviderClient
	logger logging.Logger
	rand   io.Reader
}

// New validates cfg and returns an Issuer.
func New(cfg Config) (*Issuer, error) {
	if cfg.PublicKeysURL == "" {
		return nil, ErrNoPublicKeysURL
	}
	if cfg.SecretKeysURL == "" {
		return nil, ErrNoSecretKeysURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	r := cfg.Rand
	if r == nil {
		r = rand.Reader
	}
	return &Issuer{
		cfg:    cfg,
		client: NewProviderClient(cfg.Client, logger),
		logger: logger.With("component", "issuer"),
		rand:   r,
	}, nil
}

// UserHash returns base64(SHA-256(email || salt)), the identifier sent to
// the provider in place of the e-mail address.
func UserHash(email string, salt []byte) string {
	h := sha256.New()
	h.Write([]byte(email))
	h.Write(salt)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// GetPublicKeysFromWalletProvider salts and hashes every e-mail in emails
// (keyed by user ID), requests wallet-provider keys for the hashes and
// returns the resulting user records keyed by the same IDs.
func (i *Issuer) GetPublicKeysFromWalletProvider(ctx context.Context, emails map[uuid.UUID]string) (map[uuid.UUID]*UserData, error) {
	if len(emails) == 0 {
		return nil, ErrNoUsers
	}

	users := make(map[uuid.UUID]*UserData, len(emails))
	byHash := make(map[string]uuid.UUID, len(emails))
	hashes := make([]string, 0, len(emails))
	for id, email := range emails {
		if email == "" {
			return nil, fmt.Errorf("%w: user %s", ErrEmptyEmail, id)
		}
		salt := make([]byte, SaltSize)
		if _, err := io.ReadFull(i.rand, salt); err != nil {
			return nil, fmt.Errorf("issuer: generate salt: %w", err)
		}
		hash := UserHash(email, salt)
		users[id] = &UserData{Email: email, Salt: salt}
		byHash[hash] = id
		hashes = append(hashes, hash)
	}

	resp, err := i.client.PublicKeys(ctx, i.cfg.PublicKeysURL, hashes)
	if err != nil {
		return nil, err
	}

	for hash, id := range byHash {
		kd, ok := resp[hash]
		if !ok {
			return nil, fmt.Errorf("%w: user %s", ErrMissingResponse, id)
		}
		pub, err := jwk.Parse(kd.WpPubKey)
		if err != nil {
			return nil, fmt.Errorf("issuer: user %s: %w", id, err)
		}
		if !pub.IsPublic() {
			return nil, fmt.Errorf("issuer: user %s: provider returned a private key", id)
		}
		users[id].KeyID = kd.KeyID
		users[id].WpPubKey = pub
	}
	i.logger.Info(ctx, "wallet provider keys received", "users", len(users))
	return users, nil
}

// AddCnfToPayload generates a credential key for the user and sets
// payload["cnf"] to {"jwk": vcPub + wpPub}.
func (i *Issuer) AddCnfToPayload(id uuid.UUID, payload map[string]any, users map[uuid.UUID]*UserData) error {
	if subtle.ConstantTimeCompare(id[:], uuid.Nil[:]) == 1 {
		return fmt.Errorf("%w: nil user ID", ErrUnknownUser)
	}
	if payload == nil {
		return ErrNilPayload
	}
	user, ok := users[id]
	if !ok || user == nil {
		return fmt.Errorf("%w: %s", ErrUnknownUser, id)
	}
	if user.WpPubKey == nil {
		return fmt.Errorf("%w: %s", ErrMissingKey, id)
	}

	vcSec, err := jwk.GenerateSecretKey(i.rand)
	if err != nil {
		return fmt.Errorf("issuer: generate credential key: %w", err)
	}
	vcPub := vcSec.Public()
	cnf, err := jwk.AddPublicKeys(&vcPub, user.WpPubKey)
	if err != nil {
		return fmt.Errorf("issuer: combine confirmation key: %w", err)
	}

	user.VcSecKey = vcSec
	user.VcPubKey = &vcPub
	payload["cnf"] = map[string]any{"jwk": cnf}
	return nil
}

// ConfirmationKey returns the public confirmation key stored in payload by
// AddCnfToPayload, after a JSON round trip.
func ConfirmationKey(payload map[string]any) (*jose.JSONWebKey, error) {
	raw, err := json.Marshal(payload["cnf"])
	if err != nil {
		return nil, err
	}
	var cnf struct {
		JWK json.RawMessage `json:"jwk"`
	}
	if err := json.Unmarshal(raw, &cnf); err != nil {
		return nil, fmt.Errorf("issuer: decode cnf: %w", err)
	}
	if len(cnf.JWK) == 0 {
		return nil, fmt.Errorf("issuer: payload has no cnf.jwk")
	}
	return jwk.Parse(cnf.JWK)
}
