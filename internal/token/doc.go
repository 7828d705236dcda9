// Package token implements authenticated encryption of byte slices into
// self-describing tokens.
//
// Two schemes are supported. Both start with a version byte and a creation
// timestamp, and both are serialized as URL-safe base64 text:
//
//	fernet  (0x80): version | timestamp | IV(16) | AES-128-CBC ciphertext | HMAC-SHA256(32)
//	aes-gcm (0x91): version | timestamp | nonce(12) | AES-256-GCM ciphertext | tag(16)
//
// The fernet scheme follows the Fernet token specification, so tokens are
// interchangeable with other Fernet implementations given the same key.
// The version byte selects the scheme on decryption.
package token
