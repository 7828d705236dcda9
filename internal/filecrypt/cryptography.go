package filecrypt

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/idelchi/filecrypt/internal/kdf"
	"github.com/idelchi/filecrypt/internal/token"
)

// Endpoint is a named location bytes are read from or written to.
type Endpoint interface {
	Exists() bool
	ReadAll() ([]byte, error)
	WriteAll(data []byte) error
}

// Cryptography encrypts or decrypts the content of a source endpoint into a
// destination endpoint. It is not safe for concurrent use.
type Cryptography struct {
	source      Endpoint
	destination Endpoint

	salt    []byte
	deriver kdf.Deriver
	cipher  *token.Cipher
	logger  *slog.Logger

	key    kdf.Key
	hasKey bool
}

// Option configures a Cryptography.
type Option func(*Cryptography)

// WithSalt replaces the salt mixed into key derivation.
func WithSalt(salt []byte) Option {
	return func(c *Cryptography) {
		c.salt = bytes.Clone(salt)
	}
}

// WithDeriver replaces the key derivation parameters.
func WithDeriver(deriver kdf.Deriver) Option {
	return func(c *Cryptography) {
		c.deriver = deriver
	}
}

// WithCipher replaces the token cipher.
func WithCipher(cipher *token.Cipher) Option {
	return func(c *Cryptography) {
		c.cipher = cipher
	}
}

// WithLogger sets the logger for diagnostic output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cryptography) {
		c.logger = logger
	}
}

// WithKey installs an already derived key, bypassing SetPassphrase.
// It lets a caller derive once and process many files.
func WithKey(key kdf.Key) Option {
	return func(c *Cryptography) {
		c.key = key
		c.hasKey = true
	}
}

// New returns a Cryptography moving data from source to destination.
// It uses the default salt, derivation parameters and fernet tokens unless
// configured otherwise.
func New(source, destination Endpoint, opts ...Option) *Cryptography {
	c := &Cryptography{
		source:      source,
		destination: destination,
		salt:        kdf.DefaultSalt,
		deriver:     kdf.New(),
		cipher:      token.New(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetPassphrase derives the key from passphrase and the held salt.
// A previous key is overwritten.
func (c *Cryptography) SetPassphrase(passphrase string) {
	c.key.Zero()

	c.key = c.deriver.Derive(passphrase, c.salt)
	c.hasKey = true

	c.logger.Debug("derived key", "kdf", c.deriver.String(), "salt_len", len(c.salt))
}

// Encrypt reads the source, encrypts it and writes the token to the destination.
func (c *Cryptography) Encrypt() error {
	if !c.hasKey {
		return ErrNoPassphrase
	}

	plaintext, err := c.source.ReadAll()
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	tok, err := c.cipher.Encrypt(plaintext, c.key)
	if err != nil {
		return err
	}

	if err := c.destination.WriteAll(tok); err != nil {
		return fmt.Errorf("writing destination: %w", err)
	}

	c.logger.Debug("encrypted", "scheme", c.cipher.Scheme().String(), "plaintext_size", len(plaintext), "token_size", len(tok))

	return nil
}

// Decrypt reads a token from the source and, if it verifies, writes the
// plaintext to the destination.
// A token that does not verify is reported in the Result with a nil error and
// the destination is left untouched. Errors are reserved for I/O failures.
func (c *Cryptography) Decrypt() (token.Result, error) {
	if !c.hasKey {
		return token.Result{}, ErrNoPassphrase
	}

	tok, err := c.source.ReadAll()
	if err != nil {
		return token.Result{}, fmt.Errorf("reading source: %w", err)
	}

	result := c.cipher.Decrypt(tok, c.key)
	if !result.OK() {
		c.logger.Debug("decryption rejected", "outcome", result.Outcome.String(), "error", result.Err)

		return result, nil
	}

	if err := c.destination.WriteAll(result.Plaintext); err != nil {
		return result, fmt.Errorf("writing destination: %w", err)
	}

	c.logger.Debug("decrypted", "token_size", len(tok), "plaintext_size", len(result.Plaintext))

	return result, nil
}

// Close drops the held key.
func (c *Cryptography) Close() {
	c.key.Zero()
	c.hasKey = false
}
