package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/MyNextID/cvc-go/pkg/cvc"
)

// EnvPrefix prefixes every environment variable read by the CLI, e.g.
// CVC_OUTPUT or CVC_PROVIDER_DST.
const EnvPrefix = "CVC"

// Config is the CLI configuration assembled from flags, environment and an
// optional YAML file, in that order of precedence.
type Config struct {
	Output   string         `mapstructure:"output"`
	Log      LogConfig      `mapstructure:"log"`
	Limits   cvc.Config     `mapstructure:"limits"`
	Provider ProviderConfig `mapstructure:"provider"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ProviderConfig configures serve-provider.
type ProviderConfig struct {
	Addr          string `mapstructure:"addr"`
	DST           string `mapstructure:"dst"`
	MasterKeyFile string `mapstructure:"master_key_file"`
	Metrics       bool   `mapstructure:"metrics"`
	MaxHashes     int    `mapstructure:"max_hashes"`
	TLSCertFile   string `mapstructure:"tls_cert_file"`
	TLSKeyFile    string `mapstructure:"tls_key_file"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	limits := cvc.DefaultConfig()
	v.SetDefault("output", string(OutputFormatText))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("limits.max_master_key_size", limits.MaxMasterKeySize)
	v.SetDefault("limits.max_context_size", limits.MaxContextSize)
	v.SetDefault("limits.max_dst_size", limits.MaxDSTSize)
	v.SetDefault("limits.max_combined_input_size", limits.MaxCombinedInputSize)
	v.SetDefault("limits.hash_family", int(limits.HashFamily))
	v.SetDefault("limits.hash_size", limits.HashSize)
	v.SetDefault("provider.addr", ":8080")
	v.SetDefault("provider.dst", "")
	v.SetDefault("provider.master_key_file", "")
	v.SetDefault("provider.metrics", true)
	v.SetDefault("provider.max_hashes", 0)
	v.SetDefault("provider.tls_cert_file", "")
	v.SetDefault("provider.tls_key_file", "")
	return v
}

// loadConfig reads the optional config file and decodes v into a Config.
func loadConfig(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if _, err := parseOutputFormat(cfg.Output); err != nil {
		return nil, err
	}
	if err := cfg.Limits.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
