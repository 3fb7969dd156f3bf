// Package provider implements the wallet-provider side of credential key
// issuance.
//
// A Provider holds a master JWK and a domain separation tag. For every user
// hash an issuer submits, it assigns a fresh key ID and derives a key pair
// from the master key with context keyID || hash. Only the public key leaves
// the provider at issuance time; the matching private key can be derived
// again later from the same key ID and hash.
//
// NewHandler exposes a Provider over HTTP:
//
//	POST /v1/public-keys   ["<hash>", ...]            -> {"<hash>": {"key_id": ..., "wp_pub_key": {JWK}}}
//	POST /v1/secret-keys   {"key_id": ..., "hash": ...} -> {private JWK}
//	GET  /ping
//	GET  /metrics
package provider
