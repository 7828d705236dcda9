// Package config holds the runtime configuration of filecrypt.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/idelchi/filecrypt/internal/fileutil"
	"github.com/idelchi/filecrypt/internal/kdf"
	"github.com/idelchi/filecrypt/internal/token"
)

// Config holds the application configuration.
type Config struct {
	// Mode flags, exactly one is set
	Encrypt bool `mapstructure:"encrypt" yaml:"encrypt" validate:"exclusive=Decrypt"`
	Decrypt bool `mapstructure:"decrypt" yaml:"decrypt" validate:"required_without=Encrypt"`

	// Overwrite existing outputs without asking
	Overwrite bool `mapstructure:"overwrite" yaml:"overwrite"`

	// Suffix of encrypted files
	Suffix string `mapstructure:"suffix" yaml:"suffix" validate:"required,startswith=.,excludes=/"`

	// Cipher scheme used for encryption
	Cipher string `mapstructure:"cipher" yaml:"cipher" validate:"oneof=fernet aes-gcm"`

	// Key derivation
	KDF         string `mapstructure:"kdf"          yaml:"kdf"          validate:"oneof=pbkdf2-sha256 pbkdf2-sha512 argon2id"`
	Iterations  int    `mapstructure:"iterations"   yaml:"iterations"   validate:"min=1000"`
	ArgonTime   uint32 `mapstructure:"argon-time"   yaml:"argon-time"   validate:"min=1"`
	ArgonMemory uint32 `mapstructure:"argon-memory" yaml:"argon-memory" validate:"min=8"`
	ArgonThread uint8  `mapstructure:"argon-threads" yaml:"argon-threads" validate:"min=1"`
	Salt        string `mapstructure:"salt"         yaml:"salt"         validate:"required"`

	// Reject tokens older than MaxAge on decryption, 0 disables
	MaxAge time.Duration `mapstructure:"max-age" yaml:"max-age" validate:"min=0"`

	// Directory expansion
	Exclude     []string `mapstructure:"exclude"      yaml:"exclude,omitempty"`
	ExcludeFile string   `mapstructure:"exclude-file" yaml:"exclude-file,omitempty"`

	// Processing
	Parallel           int  `mapstructure:"parallel"            yaml:"parallel"            validate:"min=1"`
	Delete             bool `mapstructure:"delete"              yaml:"delete"`
	PreserveTimestamps bool `mapstructure:"preserve-timestamps" yaml:"preserve-timestamps"`

	// Output
	Quiet   bool `mapstructure:"quiet"   yaml:"quiet"`
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
	Stats   bool `mapstructure:"stats"   yaml:"stats"`
	Show    bool `mapstructure:"show"    yaml:"-"`

	// Positional arguments
	Files []string `mapstructure:"-" yaml:"files" validate:"min=1,dive,required"`
}

// Default returns the configuration matching the flag defaults.
func Default() Config {
	return Config{
		Suffix:      fileutil.EncSuffix,
		Cipher:      token.SchemeFernet.String(),
		KDF:         string(kdf.PBKDF2SHA256),
		Iterations:  kdf.DefaultIterations,
		ArgonTime:   kdf.DefaultArgonTime,
		ArgonMemory: kdf.DefaultArgonMemory,
		ArgonThread: kdf.DefaultArgonThreads,
		Salt:        string(kdf.DefaultSalt),
		Parallel:    1,
	}
}

// Validate validates the configuration against the struct tags.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := registerExclusive(validate); err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	if c.KDF == string(kdf.Argon2ID) && c.ArgonMemory < 8*uint32(c.ArgonThread) {
		return fmt.Errorf("validating configuration: argon-memory must be at least 8 KiB per thread (%d)",
			8*uint32(c.ArgonThread))
	}

	return nil
}

// Deriver returns the key derivation parameters.
func (c *Config) Deriver() kdf.Deriver {
	return kdf.Deriver{
		Algorithm:  kdf.Algorithm(c.KDF),
		Iterations: c.Iterations,
		Time:       c.ArgonTime,
		Memory:     c.ArgonMemory,
		Threads:    c.ArgonThread,
	}
}

// Scheme returns the cipher scheme for encryption.
func (c *Config) Scheme() (token.Scheme, error) {
	return token.ParseScheme(c.Cipher)
}

// Mode returns "encrypt" or "decrypt".
func (c *Config) Mode() string {
	if c.Decrypt {
		return "decrypt"
	}

	return "encrypt"
}

// Display renders the configuration as YAML, without the salt.
func (c *Config) Display() (string, error) {
	shown := *c
	if shown.Salt == string(kdf.DefaultSalt) {
		shown.Salt = "<default>"
	} else {
		shown.Salt = "<custom>"
	}

	out, err := yaml.Marshal(shown)
	if err != nil {
		return "", fmt.Errorf("marshalling configuration: %w", err)
	}

	return string(out), nil
}
