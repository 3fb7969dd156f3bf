package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MyNextID/cvc-go/pkg/cvc"
	"github.com/MyNextID/cvc-go/pkg/cvc/jwk"
	"github.com/MyNextID/cvc-go/pkg/cvc/provider"
)

var errNoMasterKeyFile = errors.New("provider master key file is required (--master-key-file or CVC_PROVIDER_MASTER_KEY_FILE)")

func newServeProviderCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve-provider",
		Short: "Run the wallet provider HTTP API",
		Long: `Run the wallet provider HTTP API. Per-user keys are derived from the
private JWK in --master-key-file with the domain separation tag --dst.

Routes:
  POST /v1/public-keys   JSON array of user hashes
  POST /v1/secret-keys   {"key_id": ..., "hash": ...}
  GET  /ping
  GET  /metrics          (unless --metrics=false)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			srv, err := a.newProviderServer()
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
	f := cmd.Flags()
	f.String("addr", ":8080", "listen address")
	f.String("dst", "", "domain separation tag for key derivation")
	f.String("master-key-file", "", "path to the master private JWK")
	f.Bool("metrics", true, "serve Prometheus metrics on /metrics")
	f.Int("max-hashes", provider.DefaultMaxHashes, "maximum hashes per public-keys request")
	_ = a.v.BindPFlag("provider.addr", f.Lookup("addr"))
	_ = a.v.BindPFlag("provider.dst", f.Lookup("dst"))
	_ = a.v.BindPFlag("provider.master_key_file", f.Lookup("master-key-file"))
	_ = a.v.BindPFlag("provider.metrics", f.Lookup("metrics"))
	f.String("tls-cert-file", "", "TLS certificate (PEM); enables HTTPS with --tls-key-file")
	f.String("tls-key-file", "", "TLS private key (PEM)")
	_ = a.v.BindPFlag("provider.max_hashes", f.Lookup("max-hashes"))
	_ = a.v.BindPFlag("provider.tls_cert_file", f.Lookup("tls-cert-file"))
	_ = a.v.BindPFlag("provider.tls_key_file", f.Lookup("tls-key-file"))
	return cmd
}

func (a *app) newProviderServer() (*provider.Server, error) {
	pc := a.cfg.Provider
	if pc.MasterKeyFile == "" {
		return nil, errNoMasterKeyFile
	}
	raw, err := os.ReadFile(pc.MasterKeyFile)
	if err != nil {
		return nil, fmt.Errorf("read master key: %w", err)
	}
	master, err := jwk.Parse(raw)
	cvc.ZeroizeBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("master key %s: %w", pc.MasterKeyFile, err)
	}

	var m *provider.Metrics
	if pc.Metrics {
		m = provider.NewMetrics()
	}
	p, err := provider.New(provider.Config{
		MasterKey: master,
		DST:       pc.DST,
		Limits:    a.cfg.Limits,
		MaxHashes: pc.MaxHashes,
		Logger:    a.logger,
		Metrics:   m,
	})
	if err != nil {
		return nil, err
	}
	a.logger.Info(context.Background(), "provider configured",
		"addr", pc.Addr,
		"metrics", pc.Metrics,
		"master_key", master.KeyID,
	)
	if (pc.TLSCertFile == "") != (pc.TLSKeyFile == "") {
		return nil, errors.New("both --tls-cert-file and --tls-key-file are required for TLS")
	}
	return provider.NewServer(p, m, provider.ServerConfig{
		Addr:        pc.Addr,
		TLSCertFile: pc.TLSCertFile,
		TLSKeyFile:  pc.TLSKeyFile,
	}), nil
}
