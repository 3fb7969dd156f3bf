package cli

import (
	"encoding/hex"
	"strconv"

	"github.com/MyNextID/cvc-go/pkg/cvc"
)

type keyResult struct {
	PrivateKey string `json:"private_key" yaml:"private_key"`
	PublicKeyX string `json:"public_key_x" yaml:"public_key_x"`
	PublicKeyY string `json:"public_key_y" yaml:"public_key_y"`
	PublicKey  string `json:"public_key" yaml:"public_key"`
}

func newKeyResult(km cvc.KeyMaterial) keyResult {
	return keyResult{
		PrivateKey: hex.EncodeToString(km.PrivateKeyBytes()),
		PublicKeyX: hex.EncodeToString(km.PublicKeyXBytes()),
		PublicKeyY: hex.EncodeToString(km.PublicKeyYBytes()),
		PublicKey:  hex.EncodeToString(km.PublicKey()),
	}
}

func (r keyResult) textFields() []field {
	return []field{
		{"private_key", r.PrivateKey},
		{"public_key_x", r.PublicKeyX},
		{"public_key_y", r.PublicKeyY},
		{"public_key", r.PublicKey},
	}
}

type pointResult struct {
	PublicKey string `json:"public_key" yaml:"public_key"`
}

func (r pointResult) textFields() []field {
	return []field{{"public_key", r.PublicKey}}
}

type fieldResult struct {
	Hash     string   `json:"hash" yaml:"hash"`
	Elements []string `json:"elements" yaml:"elements"`
}

func (r fieldResult) textFields() []field {
	out := []field{{"hash", r.Hash}}
	for i, e := range r.Elements {
		out = append(out, field{"u" + strconv.Itoa(i), e})
	}
	return out
}

// jwkResult holds a JWK; text output prints its compact JSON.
type jwkResult struct {
	JWK map[string]any `json:"jwk" yaml:"jwk"`
	raw string
}

func (r jwkResult) textFields() []field {
	return []field{{"jwk", r.raw}}
}

type versionResult struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Engine    string `json:"engine" yaml:"engine"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

func (r versionResult) textFields() []field {
	return []field{
		{"version", r.Version},
		{"commit", r.Commit},
		{"engine", r.Engine},
		{"go_version", r.GoVersion},
		{"platform", r.Platform},
	}
}
