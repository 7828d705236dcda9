package kdf

import "errors"

// ErrInvalidKey is returned when a textual key does not decode to KeySize bytes.
var ErrInvalidKey = errors.New("invalid key")
