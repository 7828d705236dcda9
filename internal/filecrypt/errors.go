package filecrypt

import "errors"

// ErrNoPassphrase is returned when Encrypt or Decrypt run before SetPassphrase.
var ErrNoPassphrase = errors.New("no passphrase set")
