package kdf

import (
	"encoding/base64"
	"fmt"
	"runtime"
)

// KeySize is the length of a derived key in bytes.
const KeySize = 32

// Key is derived key material.
type Key [KeySize]byte

// Encode returns the key as URL-safe base64 with padding.
func (k *Key) Encode() string {
	return base64.URLEncoding.EncodeToString(k[:])
}

// Zero overwrites the key material.
func (k *Key) Zero() {
	for i := range k {
		k[i] = 0
	}

	runtime.KeepAlive(k)
}

// IsZero reports whether every byte of the key is zero.
func (k *Key) IsZero() bool {
	var acc byte

	for _, b := range k {
		acc |= b
	}

	return acc == 0
}

// DecodeKey parses a key produced by Encode.
func DecodeKey(s string) (Key, error) {
	var key Key

	raw, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return key, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	if len(raw) != KeySize {
		return key, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKey, len(raw), KeySize)
	}

	copy(key[:], raw)

	return key, nil
}
