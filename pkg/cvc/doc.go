// Package cvc provides composite key operations over NIST P-256: combining
// two private keys, combining two public keys, RFC 9380 hash-to-field and
// deterministic secret-key derivation.
//
// All operations are pure functions of their inputs and safe for concurrent
// use. Every failure is reported as an *Error carrying a Kind, so callers can
// branch on the exact cause:
//
//	km, err := cvc.CombineSecretKeys(k1, k2)
//	switch {
//	case errors.Is(err, cvc.ErrResultZero):
//	    // k2 == n - k1; pick another share
//	case cvc.IsValidationError(err):
//	    // malformed input
//	}
//
// Key material is returned as a curve.KeyMaterial value. Zeroize it once the
// private key is no longer needed.
package cvc
