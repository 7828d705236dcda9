package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/idelchi/filecrypt/internal/kdf"
)

// Cipher encrypts byte slices into tokens and decrypts them back.
// A Cipher holds no key material and is safe for concurrent use.
type Cipher struct {
	scheme Scheme
	maxAge time.Duration
	now    func() time.Time
}

// Option configures a Cipher.
type Option func(*Cipher)

// WithScheme selects the scheme used by Encrypt. Decrypt accepts every scheme.
func WithScheme(scheme Scheme) Option {
	return func(c *Cipher) {
		c.scheme = scheme
	}
}

// WithMaxAge rejects tokens older than maxAge on Decrypt. Zero disables the check.
func WithMaxAge(maxAge time.Duration) Option {
	return func(c *Cipher) {
		c.maxAge = maxAge
	}
}

// WithClock replaces the clock used for token timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Cipher) {
		c.now = now
	}
}

// New returns a Cipher producing fernet tokens unless configured otherwise.
func New(opts ...Option) *Cipher {
	c := &Cipher{
		scheme: SchemeFernet,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Scheme returns the scheme used by Encrypt.
func (c *Cipher) Scheme() Scheme {
	return c.scheme
}

// Encrypt seals plaintext under key and returns the token text.
// Every call draws a fresh IV or nonce from crypto/rand, so equal inputs give
// different tokens.
func (c *Cipher) Encrypt(plaintext []byte, key kdf.Key) ([]byte, error) {
	h := header{scheme: c.scheme, created: c.now()}

	var (
		raw []byte
		err error
	)

	switch c.scheme {
	case SchemeFernet:
		raw, err = sealFernet(h.created, plaintext, &key)
	case SchemeAESGCM:
		raw, err = sealGCM(h, plaintext, &key)
	default:
		err = fmt.Errorf("unsupported scheme %s", c.scheme)
	}

	key.Zero()

	if err != nil {
		return nil, fmt.Errorf("encrypting with %s: %w", c.scheme, err)
	}

	return encode(raw), nil
}

// Decrypt verifies tok under key and returns the plaintext.
// It never returns partially decrypted data: on any failure Plaintext is nil.
func (c *Cipher) Decrypt(tok []byte, key kdf.Key) Result {
	defer key.Zero()

	raw, err := decode(tok)
	if err != nil {
		return failed(MalformedToken, err)
	}

	h, err := parseHeader(raw)
	if err != nil {
		return failed(MalformedToken, err)
	}

	var plaintext []byte

	switch h.scheme {
	case SchemeFernet:
		plaintext, err = openFernet(raw, &key)
	case SchemeAESGCM:
		plaintext, err = openGCM(raw, &key)
	}

	switch {
	case errors.Is(err, ErrMalformedToken):
		return failed(MalformedToken, err)
	case errors.Is(err, ErrAuthentication):
		return failed(AuthenticationFailure, err)
	case err != nil:
		return failed(AuthenticationFailure, fmt.Errorf("%w: %w", ErrAuthentication, err))
	}

	if err := c.checkAge(h.created); err != nil {
		return failed(AuthenticationFailure, err)
	}

	return succeeded(plaintext)
}

// checkAge runs after verification, so the timestamp is authentic.
func (c *Cipher) checkAge(created time.Time) error {
	if c.maxAge <= 0 {
		return nil
	}

	now := c.now()

	if created.After(now.Add(maxClockSkew)) {
		return fmt.Errorf("%w: token created in the future", ErrAuthentication)
	}

	if now.Sub(created) > c.maxAge {
		return fmt.Errorf("%w: token expired", ErrAuthentication)
	}

	return nil
}
