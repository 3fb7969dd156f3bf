// Package jwk exposes the cvc key operations over JSON Web Keys (RFC 7517)
// and adds JWE encryption (RFC 7516) to P-256 public keys.
//
// Keys are go-jose JSONWebKey values holding *ecdsa.PrivateKey or
// *ecdsa.PublicKey on P-256:
//
//	vc, err := jwk.GenerateSecretKey(nil)
//	cnf, err := jwk.AddPublicKeys(vc, walletProviderKey)
//	token, err := jwk.Encrypt(payload, cnf)
//
// DeriveSecretKey uses the JSON serialization of the master JWK as the
// master key bytes, so the same master JWK and context always derive the
// same key.
package jwk
