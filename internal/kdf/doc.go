// Package kdf derives fixed-length symmetric keys from passphrases.
//
// The default derivation is PBKDF2-HMAC-SHA256 with 50000 rounds over a
// constant salt, producing 32 bytes. Changing the algorithm, the round count
// or the salt between encryption and decryption of the same file makes the
// derived keys differ, and decryption then fails authentication.
package kdf
