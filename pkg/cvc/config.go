package cvc

import (
	"errors"
	"fmt"

	"github.com/MyNextID/cvc-go/pkg/cvc/h2f"
)

// Default derivation limits.
const (
	DefaultMaxMasterKeySize     = 2048
	DefaultMaxContextSize       = 2048
	DefaultMaxDSTSize           = 256
	DefaultMaxCombinedInputSize = 4096
)

// Config bounds the inputs of DeriveSecretKey and selects its hash.
// The zero value is not usable; start from DefaultConfig.
type Config struct {
	MaxMasterKeySize     int        `mapstructure:"max_master_key_size" json:"max_master_key_size" yaml:"max_master_key_size"`
	MaxContextSize       int        `mapstructure:"max_context_size" json:"max_context_size" yaml:"max_context_size"`
	MaxDSTSize           int        `mapstructure:"max_dst_size" json:"max_dst_size" yaml:"max_dst_size"`
	MaxCombinedInputSize int        `mapstructure:"max_combined_input_size" json:"max_combined_input_size" yaml:"max_combined_input_size"`
	HashFamily           h2f.Family `mapstructure:"hash_family" json:"hash_family" yaml:"hash_family"`
	HashSize             int        `mapstructure:"hash_size" json:"hash_size" yaml:"hash_size"`
}

// DefaultConfig returns the limits used by the package-level functions:
// SHA-256, master key and context up to 2048 bytes each, DST up to 256 bytes
// and at most 4096 bytes of combined input.
func DefaultConfig() Config {
	return Config{
		MaxMasterKeySize:     DefaultMaxMasterKeySize,
		MaxContextSize:       DefaultMaxContextSize,
		MaxDSTSize:           DefaultMaxDSTSize,
		MaxCombinedInputSize: DefaultMaxCombinedInputSize,
		HashFamily:           h2f.SHA2,
		HashSize:             32,
	}
}

var errBadConfig = errors.New("cvc: invalid config")

// Validate checks that every limit is positive and the hash is supported.
func (c Config) Validate() error {
	switch {
	case c.MaxMasterKeySize <= 0:
		return fmt.Errorf("%w: max master key size %d", errBadConfig, c.MaxMasterKeySize)
	case c.MaxContextSize <= 0:
		return fmt.Errorf("%w: max context size %d", errBadConfig, c.MaxContextSize)
	case c.MaxDSTSize <= 0:
		return fmt.Errorf("%w: max DST size %d", errBadConfig, c.MaxDSTSize)
	case c.MaxCombinedInputSize <= 0:
		return fmt.Errorf("%w: max combined input size %d", errBadConfig, c.MaxCombinedInputSize)
	}
	if _, err := h2f.Lookup(c.HashFamily, c.HashSize); err != nil {
		return fmt.Errorf("%w: %v", errBadConfig, err)
	}
	return nil
}
