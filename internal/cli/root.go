// Package cli implements the cvc-go command line.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MyNextID/cvc-go/pkg/cvc/logging"
)

// app carries state shared by all subcommands of one invocation.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *Config
	logger     logging.Logger
	out        io.Writer
	errOut     io.Writer
}

func (a *app) printer() *Printer {
	return NewPrinter(a.cfg.Output, a.out)
}

// Execute runs the root command against the process arguments.
func Execute() error {
	return NewRootCommand(os.Stdout, os.Stderr).Execute()
}

// NewRootCommand builds the command tree writing results to out and logs to
// errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{v: newViper(), out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "cvc-go",
		Short: "P-256 key combination and derivation",
		Long: `cvc-go combines P-256 secret and public keys, hashes messages to the
P-256 base field (RFC 9380 expand_message_xmd) and deterministically derives
secret keys from a master key, a context and a domain separation tag.

All keys are hex encoded: secret keys as 32 big-endian bytes, public keys
as 65-byte uncompressed points (04 || X || Y).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "YAML config file")
	pf.StringP("output", "o", string(OutputFormatText), "output format (text, json, yaml)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")
	_ = a.v.BindPFlag("output", pf.Lookup("output"))
	_ = a.v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", pf.Lookup("log-format"))

	root.AddCommand(
		newCombineSecretCommand(a),
		newCombinePublicCommand(a),
		newHashToFieldCommand(a),
		newDeriveCommand(a),
		newGenerateCommand(a),
		newServeProviderCommand(a),
		newVersionCommand(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := loadConfig(a.v, a.configFile)
	if err != nil {
		return err
	}
	logger, err := logging.NewWithOptions(a.errOut, logging.Options{
		Format: cfg.Log.Format,
		Level:  cfg.Log.Level,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger.With("component", "cli")
	return nil
}
