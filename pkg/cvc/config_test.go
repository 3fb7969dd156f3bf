package cvc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyNextID/cvc-go/pkg/cvc"
)

func TestDefaultConfig(t *testing.T) {
	cfg := cvc.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2048, cfg.MaxMasterKeySize)
	assert.Equal(t, 2048, cfg.MaxContextSize)
	assert.Equal(t, 256, cfg.MaxDSTSize)
	assert.Equal(t, 4096, cfg.MaxCombinedInputSize)
	assert.Equal(t, cvc.SHA2, cfg.HashFamily)
	assert.Equal(t, 32, cfg.HashSize)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*cvc.Config)
	}{
		{"zero master", func(c *cvc.Config) { c.MaxMasterKeySize = 0 }},
		{"negative context", func(c *cvc.Config) { c.MaxContextSize = -1 }},
		{"zero dst", func(c *cvc.Config) { c.MaxDSTSize = 0 }},
		{"zero combined", func(c *cvc.Config) { c.MaxCombinedInputSize = 0 }},
		{"unknown family", func(c *cvc.Config) { c.HashFamily = 1 }},
		{"unknown size", func(c *cvc.Config) { c.HashSize = 28 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := cvc.DefaultConfig()
			tc.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}

	assert.Error(t, cvc.Config{}.Validate())
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, cvc.LibraryVersion())
	assert.NotEmpty(t, cvc.EngineVersion())
}

func TestZeroizeBytes(t *testing.T) {
	buf := []byte{1, 2, 3}
	cvc.ZeroizeBytes(buf)
	assert.Equal(t, []byte{0, 0, 0}, buf)
	cvc.ZeroizeBytes(nil)
}
