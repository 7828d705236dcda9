// Package filecrypt binds a passphrase-derived key to a source and a
// destination endpoint and moves bytes between them through the token cipher.
package filecrypt
