package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/filecrypt/internal/config"
	"github.com/idelchi/filecrypt/internal/kdf"
	"github.com/idelchi/filecrypt/internal/token"
)

func valid() config.Config {
	cfg := config.Default()
	cfg.Encrypt = true
	cfg.Files = []string{"test.txt"}

	return cfg
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		modify func(*config.Config)
		ok     bool
	}{
		{name: "encrypt", modify: func(*config.Config) {}, ok: true},
		{name: "decrypt", modify: func(c *config.Config) { c.Encrypt, c.Decrypt = false, true }, ok: true},
		{name: "both modes", modify: func(c *config.Config) { c.Decrypt = true }},
		{name: "no mode", modify: func(c *config.Config) { c.Encrypt = false }},
		{name: "no files", modify: func(c *config.Config) { c.Files = nil }},
		{name: "empty file", modify: func(c *config.Config) { c.Files = []string{""} }},
		{name: "suffix without dot", modify: func(c *config.Config) { c.Suffix = "enc" }},
		{name: "suffix with slash", modify: func(c *config.Config) { c.Suffix = ".x/y" }},
		{name: "custom suffix", modify: func(c *config.Config) { c.Suffix = ".sealed" }, ok: true},
		{name: "unknown cipher", modify: func(c *config.Config) { c.Cipher = "rot13" }},
		{name: "aes-gcm", modify: func(c *config.Config) { c.Cipher = "aes-gcm" }, ok: true},
		{name: "unknown kdf", modify: func(c *config.Config) { c.KDF = "md5" }},
		{name: "few iterations", modify: func(c *config.Config) { c.Iterations = 10 }},
		{name: "empty salt", modify: func(c *config.Config) { c.Salt = "" }},
		{name: "negative max age", modify: func(c *config.Config) { c.MaxAge = -time.Second }},
		{name: "max age", modify: func(c *config.Config) { c.MaxAge = time.Hour }, ok: true},
		{name: "no workers", modify: func(c *config.Config) { c.Parallel = 0 }},
		{name: "argon2id", modify: func(c *config.Config) { c.KDF = "argon2id" }, ok: true},
		{
			name: "argon2id memory per thread",
			modify: func(c *config.Config) {
				c.KDF = "argon2id"
				c.ArgonMemory = 8
				c.ArgonThread = 4
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tc.modify(&cfg)

			err := cfg.Validate()
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestDefault_MatchesReferenceDerivation(t *testing.T) {
	t.Parallel()

	cfg := config.Default()

	assert.Equal(t, kdf.New(), cfg.Deriver())
	assert.Equal(t, string(kdf.DefaultSalt), cfg.Salt)

	scheme, err := cfg.Scheme()
	require.NoError(t, err)
	assert.Equal(t, token.SchemeFernet, scheme)
}

func TestMode(t *testing.T) {
	t.Parallel()

	cfg := valid()
	assert.Equal(t, "encrypt", cfg.Mode())

	cfg.Encrypt, cfg.Decrypt = false, true
	assert.Equal(t, "decrypt", cfg.Mode())
}

func TestDisplay_HidesSalt(t *testing.T) {
	t.Parallel()

	cfg := valid()

	out, err := cfg.Display()
	require.NoError(t, err)
	assert.Contains(t, out, "<default>")
	assert.NotContains(t, out, string(kdf.DefaultSalt))

	cfg.Salt = "my secret salt"

	out, err = cfg.Display()
	require.NoError(t, err)
	assert.Contains(t, out, "<custom>")
	assert.NotContains(t, out, "my secret salt")
	assert.Contains(t, out, "test.txt")
}
