package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/google/uuid"

	"github.com/MyNextID/cvc-go/pkg/cvc"
	"github.com/MyNextID/cvc-go/pkg/cvc/jwk"
	"github.com/MyNextID/cvc-go/pkg/cvc/logging"
)

// DefaultMaxHashes bounds the number of hashes in one GeneratePublicKeys call.
const DefaultMaxHashes = 1000

var (
	ErrNoMasterKey    = errors.New("provider: master key is required")
	ErrKeySourceBoth  = errors.New("provider: set either MasterKey or KeyStore, not both")
	ErrNoDST          = errors.New("provider: domain separation tag is required")
	ErrInvalidRequest = errors.New("provider: invalid request")
	ErrTooManyHashes  = errors.New("provider: too many hashes")
)

// KeyData is the provider's answer for one user hash.
type KeyData struct {
	KeyID    string          `json:"key_id"`
	WpPubKey json.RawMessage `json:"wp_pub_key"`
}

// Config configures a Provider.
type Config struct {
	// MasterKey is the private JWK all user keys are derived from.
	MasterKey *jose.JSONWebKey
	// KeyStore supplies the master key on demand instead of MasterKey.
	KeyStore MasterKeyStore
	// DST is the domain separation tag used for derivation.
	DST string
	// Limits bounds derivation inputs. Zero value means cvc.DefaultConfig().
	Limits cvc.Config
	// MaxHashes bounds a single GeneratePublicKeys call (default: DefaultMaxHashes).
	MaxHashes int
	// Logger is optional; defaults to logging.Nop().
	Logger logging.Logger
	// Metrics is optional.
	Metrics *Metrics
}

// Provider derives per-user keys from a master key.
type Provider struct {
	keys      MasterKeyStore
	dst       []byte
	limits    cvc.Config
	maxHashes int
	logger    logging.Logger
	metrics   *Metrics
	newID     func() string
}

// New validates cfg and returns a Provider.
func New(cfg Config) (*Provider, error) {
	keys := cfg.KeyStore
	switch {
	case cfg.MasterKey != nil && keys != nil:
		return nil, ErrKeySourceBoth
	case cfg.MasterKey != nil:
		if err := checkMasterKey(cfg.MasterKey); err != nil {
			return nil, err
		}
		keys = StaticKeyStore{Key: cfg.MasterKey}
	case keys == nil:
		return nil, ErrNoMasterKey
	}
	if cfg.DST == "" {
		return nil, ErrNoDST
	}
	limits := cfg.Limits
	if limits == (cvc.Config{}) {
		limits = cvc.DefaultConfig()
	}
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.DST) > limits.MaxDSTSize {
		return nil, fmt.Errorf("provider: DST longer than %d bytes", limits.MaxDSTSize)
	}
	maxHashes := cfg.MaxHashes
	if maxHashes <= 0 {
		maxHashes = DefaultMaxHashes
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &Provider{
		keys:      keys,
		dst:       []byte(cfg.DST),
		limits:    limits,
		maxHashes: maxHashes,
		logger:    logger.With("component", "provider"),
		metrics:   cfg.Metrics,
		newID:     uuid.NewString,
	}, nil
}

func derivationContext(keyID, hash string) []byte {
	ctx := make([]byte, 0, len(keyID)+len(hash))
	ctx = append(ctx, keyID...)
	return append(ctx, hash...)
}

func (p *Provider) masterKey(ctx context.Context) (*jose.JSONWebKey, error) {
	master, err := p.keys.MasterKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("provider: load master key: %w", err)
	}
	if err := checkMasterKey(master); err != nil {
		return nil, err
	}
	return master, nil
}

func (p *Provider) derive(master *jose.JSONWebKey, keyID, hash string) (*jose.JSONWebKey, error) {
	key, err := jwk.DeriveSecretKeyWithConfig(p.limits, master, derivationContext(keyID, hash), p.dst)
	if err != nil {
		return nil, err
	}
	key.KeyID = keyID
	return key, nil
}

// GeneratePublicKeys assigns a new key ID to every distinct hash and returns
// the public key derived for it.
func (p *Provider) GeneratePublicKeys(ctx context.Context, hashes []string) (out map[string]KeyData, err error) {
	defer p.metrics.observe(OpGeneratePublicKeys, time.Now(), &err)

	if len(hashes) == 0 {
		return nil, fmt.Errorf("%w: no hashes", ErrInvalidRequest)
	}
	if len(hashes) > p.maxHashes {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyHashes, len(hashes), p.maxHashes)
	}

	master, err := p.masterKey(ctx)
	if err != nil {
		p.logger.Error(ctx, "master key unavailable", "error", err)
		return nil, err
	}

	out = make(map[string]KeyData, len(hashes))
	for _, hash := range hashes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if hash == "" {
			return nil, fmt.Errorf("%w: empty hash", ErrInvalidRequest)
		}
		if _, dup := out[hash]; dup {
			continue
		}

		keyID := p.newID()
		priv, err := p.derive(master, keyID, hash)
		if err != nil {
			p.logger.Error(ctx, "derive public key failed", "key_id", keyID, "error", err)
			return nil, err
		}
		pub := priv.Public()
		pubJSON, err := jwk.Marshal(&pub)
		if err != nil {
			return nil, err
		}
		out[hash] = KeyData{KeyID: keyID, WpPubKey: pubJSON}
	}

	p.logger.Info(ctx, "generated public keys", "count", len(out))
	return out, nil
}

// GenerateSecretKey re-derives the private key issued for keyID and hash by
// an earlier GeneratePublicKeys call.
func (p *Provider) GenerateSecretKey(ctx context.Context, keyID, hash string) (key *jose.JSONWebKey, err error) {
	defer p.metrics.observe(OpGenerateSecretKey, time.Now(), &err)

	if _, err := uuid.Parse(keyID); err != nil {
		return nil, fmt.Errorf("%w: key_id: %v", ErrInvalidRequest, err)
	}
	if hash == "" {
		return nil, fmt.Errorf("%w: empty hash", ErrInvalidRequest)
	}

	master, err := p.masterKey(ctx)
	if err != nil {
		p.logger.Error(ctx, "master key unavailable", "error", err)
		return nil, err
	}
	key, err = p.derive(master, keyID, hash)
	if err != nil {
		p.logger.Error(ctx, "derive secret key failed", "key_id", keyID, "error", err)
		return nil, err
	}
	p.logger.Debug(ctx, "secret key issued", "key_id", keyID, logging.Redacted("jwk"))
	return key, nil
}
