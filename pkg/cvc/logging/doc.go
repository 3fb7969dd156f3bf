// Package logging provides the structured logging facade used by the cvc
// provider, issuer and command-line tool.
//
// The core key operations never log. Components above them take a Logger,
// which wraps a subset of log/slog:
//
//	logger := logging.New(nil) // slog.Default()
//	logger.Info(ctx, "derived public keys", "count", len(hashes))
//
// Build a logger for a given output format and level with NewWithOptions:
//
//	logger, err := logging.NewWithOptions(os.Stderr, logging.Options{
//	    Format: "json",
//	    Level:  "debug",
//	})
//
// # Redaction
//
// Secret values such as private keys, master keys and salts are never
// passed to a Logger. Use Redacted to record that a value was deliberately
// left out:
//
//	logger.Debug(ctx, "secret key issued", "key_id", id, logging.Redacted("jwk"))
//	// Logs: jwk="[redacted]"
package logging
