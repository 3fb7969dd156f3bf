package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MyNextID/cvc-go/pkg/cvc"
	"github.com/MyNextID/cvc-go/pkg/cvc/h2f"
	"github.com/MyNextID/cvc-go/pkg/cvc/jwk"
	"github.com/MyNextID/cvc-go/pkg/cvc/logging"
	"github.com/MyNextID/cvc-go/pkg/cvc/rng"
)

func decodeHex(name, s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, fmt.Errorf("%s: invalid hex: %w", name, err)
	}
	return b, nil
}

func newCombineSecretCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "combine-secret KEY1 KEY2",
		Short: "Add two secret keys modulo the group order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k1, err := decodeHex("KEY1", args[0])
			if err != nil {
				return err
			}
			defer cvc.ZeroizeBytes(k1)
			k2, err := decodeHex("KEY2", args[1])
			if err != nil {
				return err
			}
			defer cvc.ZeroizeBytes(k2)

			km, err := cvc.CombineSecretKeys(k1, k2)
			if err != nil {
				return err
			}
			defer km.Zeroize()
			return a.printer().Print(newKeyResult(km))
		},
	}
}

func newCombinePublicCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "combine-public KEY1 KEY2",
		Short: "Add two uncompressed public keys",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k1, err := decodeHex("KEY1", args[0])
			if err != nil {
				return err
			}
			k2, err := decodeHex("KEY2", args[1])
			if err != nil {
				return err
			}
			sum, err := cvc.CombinePublicKeys(k1, k2)
			if err != nil {
				return err
			}
			return a.printer().Print(pointResult{PublicKey: hex.EncodeToString(sum)})
		},
	}
}

func parseFamily(s string) (h2f.Family, error) {
	switch strings.ToLower(s) {
	case "sha2":
		return h2f.SHA2, nil
	case "sha3":
		return h2f.SHA3, nil
	default:
		return 0, fmt.Errorf("unknown hash family %q (sha2, sha3)", s)
	}
}

func newHashToFieldCommand(a *app) *cobra.Command {
	var (
		dst    string
		msgHex string
		count  int
		family string
		size   int
	)
	cmd := &cobra.Command{
		Use:   "hash-to-field",
		Short: "Hash a message to P-256 base field elements (RFC 9380)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fam, err := parseFamily(family)
			if err != nil {
				return err
			}
			msg, err := decodeHex("msg", msgHex)
			if err != nil {
				return err
			}
			u, err := cvc.HashToField(fam, size, []byte(dst), msg, count)
			if err != nil {
				return err
			}
			h, err := h2f.Lookup(fam, size)
			if err != nil {
				return err
			}
			res := fieldResult{Hash: h.Name(), Elements: make([]string, len(u))}
			for i, e := range u {
				res.Elements[i] = hex.EncodeToString(e.Bytes())
			}
			return a.printer().Print(res)
		},
	}
	f := cmd.Flags()
	f.StringVar(&dst, "dst", "", "domain separation tag")
	f.StringVar(&msgHex, "msg", "", "message (hex)")
	f.IntVar(&count, "count", 1, "number of field elements")
	f.StringVar(&family, "hash", "sha2", "hash family (sha2, sha3)")
	f.IntVar(&size, "hash-size", 32, "hash output size in bytes (32, 48, 64)")
	_ = cmd.MarkFlagRequired("dst")
	return cmd
}

func newDeriveCommand(a *app) *cobra.Command {
	var (
		masterHex  string
		contextHex string
		dst        string
		asJWK      bool
	)
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive a secret key from a master key, context and DST",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			master, err := decodeHex("master", masterHex)
			if err != nil {
				return err
			}
			defer cvc.ZeroizeBytes(master)
			ctx, err := decodeHex("context", contextHex)
			if err != nil {
				return err
			}
			km, err := a.cfg.Limits.DeriveSecretKey(master, ctx, []byte(dst))
			if err != nil {
				return err
			}
			defer km.Zeroize()
			a.logger.Debug(cmd.Context(), "derived key", "dst", dst, "private_key", logging.Placeholder())
			if asJWK {
				return a.printJWK(km)
			}
			return a.printer().Print(newKeyResult(km))
		},
	}
	f := cmd.Flags()
	f.StringVar(&masterHex, "master", "", "master key (hex)")
	f.StringVar(&contextHex, "context", "", "derivation context (hex)")
	f.StringVar(&dst, "dst", "", "domain separation tag")
	f.BoolVar(&asJWK, "jwk", false, "print the key as a private JWK")
	_ = cmd.MarkFlagRequired("master")
	_ = cmd.MarkFlagRequired("context")
	_ = cmd.MarkFlagRequired("dst")
	return cmd
}

func newGenerateCommand(a *app) *cobra.Command {
	var (
		seedHex string
		asJWK   bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random secret key",
		Long: `Generate a random secret key from the system CSPRNG, or, with --seed,
deterministically from at least 32 bytes of caller-provided entropy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var r *rng.Reader
			if seedHex != "" {
				seed, err := decodeHex("seed", seedHex)
				if err != nil {
					return err
				}
				r, err = rng.New(seed)
				cvc.ZeroizeBytes(seed)
				if err != nil {
					return err
				}
				defer r.Close()
			}

			var (
				km  cvc.KeyMaterial
				err error
			)
			if r != nil {
				km, err = cvc.GenerateSecretKey(r)
			} else {
				km, err = cvc.GenerateSecretKey(nil)
			}
			if err != nil {
				return err
			}
			defer km.Zeroize()
			if asJWK {
				return a.printJWK(km)
			}
			return a.printer().Print(newKeyResult(km))
		},
	}
	cmd.Flags().StringVar(&seedHex, "seed", "", "seed for deterministic generation (hex, >= 32 bytes)")
	cmd.Flags().BoolVar(&asJWK, "jwk", false, "print the key as a private JWK")
	return cmd
}

func (a *app) printJWK(km cvc.KeyMaterial) error {
	key, err := jwk.FromKeyMaterial(km)
	if err != nil {
		return err
	}
	raw, err := jwk.Marshal(key)
	if err != nil {
		return err
	}
	res := jwkResult{raw: string(raw)}
	if err := json.Unmarshal(raw, &res.JWK); err != nil {
		return err
	}
	return a.printer().Print(res)
}
