// Package issuer implements the credential-issuer and recipient sides of
// confirmation-key issuance with a wallet provider.
//
// The issuer flow for a batch of users is:
//
//  1. GetPublicKeysFromWalletProvider salts and hashes each e-mail address,
//     sends the hashes to the provider and records the returned key ID and
//     wallet-provider public key per user.
//  2. AddCnfToPayload generates a fresh credential key per user and sets the
//     credential's confirmation key to vcPub + wpPub.
//  3. PrepareMessagePack encrypts the signed credential to the credential
//     key and the credential secret key to the wallet-provider key.
//
// OpenMessagePack is the recipient side: it fetches the wallet-provider
// secret key, decrypts the credential secret key and combines the two into
// the confirmation secret key.
package issuer
