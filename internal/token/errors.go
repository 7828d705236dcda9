package token

import "errors"

var (
	// ErrAuthentication is returned when a token does not verify under the key.
	// A wrong passphrase, a wrong salt and a tampered token are indistinguishable.
	ErrAuthentication = errors.New("authentication failed")
	// ErrMalformedToken is returned when a token cannot be parsed at all.
	ErrMalformedToken = errors.New("malformed token")
)
