package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/filecrypt/internal/commands"
	"github.com/idelchi/filecrypt/internal/config"
	"github.com/idelchi/filecrypt/internal/logic"
)

type staticPrompter string

func (s staticPrompter) Passphrase(string) (string, error) { return string(s), nil }

func (s staticPrompter) ConfirmedPassphrase(string, string) (string, error) { return string(s), nil }

func (s staticPrompter) ConfirmOverwrite(string) (bool, error) { return false, nil }

type output struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func execute(t *testing.T, passphrase string, args ...string) (*output, error) {
	t.Helper()

	out := &output{}

	root := commands.NewRootCommand(&config.Config{}, "v1.2.3", staticPrompter(passphrase))
	root.SetOut(&out.stdout)
	root.SetErr(&out.stderr)
	root.SetArgs(args)

	return out, root.Execute()
}

func TestRoot_EncryptDecrypt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	plain := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(plain, []byte("hello world"), 0o600))

	out, err := execute(t, "pw", "-e", "--iterations", "1000", plain)
	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), "Encrypted file saved in '"+plain+".enc'")

	require.NoError(t, os.Remove(plain))

	out, err = execute(t, "pw", "-d", "--iterations", "1000", plain+".enc")
	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), "Decrypted file saved in '"+plain+"'")

	data, err := os.ReadFile(plain)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestSubcommands_EncryptDecrypt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	plain := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(plain, []byte("hello world"), 0o600))

	_, err := execute(t, "pw", "enc", "--iterations", "1000", "--cipher", "aes-gcm", "--delete", plain)
	require.NoError(t, err)

	_, err = os.Stat(plain)
	require.True(t, os.IsNotExist(err))

	out, err := execute(t, "pw", "inspect", plain+".enc")
	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), "scheme=aes-gcm")

	_, err = execute(t, "pw", "decrypt", "-q", "--iterations", "1000", plain+".enc")
	require.NoError(t, err)

	data, err := os.ReadFile(plain)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestRoot_WrongPassphrase(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	plain := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(plain, []byte("hello world"), 0o600))

	_, err := execute(t, "right", "-e", "--iterations", "1000", plain)
	require.NoError(t, err)

	out, err := execute(t, "wrong", "-d", "--overwrite", "--iterations", "1000", plain+".enc")
	require.ErrorIs(t, err, logic.ErrFailed)
	assert.Contains(t, out.stderr.String(), "Invalid passphrase")
}

func TestRoot_Rejects(t *testing.T) {
	t.Parallel()

	cases := map[string][]string{
		"both modes":     {"-e", "-d", "file.txt"},
		"no mode":        {"file.txt"},
		"unknown cipher": {"-e", "--cipher", "rot13", "file.txt"},
		"weak kdf":       {"-e", "--iterations", "10", "file.txt"},
		"missing config": {"-e", "--config", "does-not-exist.yml", "file.txt"},
		"encrypt no arg": {"encrypt"},
	}

	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := execute(t, "pw", args...)
			require.Error(t, err)
		})
	}
}

func TestRoot_Help(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "pw")
	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), "Usage:")
}

func TestRoot_ShowWithConfigFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "filecrypt.yml")
	require.NoError(t, os.WriteFile(file, []byte("suffix: .locked\nparallel: 4\n"), 0o600))

	out, err := execute(t, "pw", "--config", file, "--parallel", "2", "--show", "-e", "a.txt")
	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), ".locked")
	assert.Contains(t, out.stdout.String(), "parallel: 2", "flags take precedence over the file")
	assert.Contains(t, out.stdout.String(), "a.txt")
}

//nolint:paralleltest // modifies the environment
func TestRoot_Environment(t *testing.T) {
	t.Setenv("FILECRYPT_SUFFIX", ".sealed")
	t.Setenv("FILECRYPT_MAX_AGE", "1h")

	out, err := execute(t, "pw", "--show", "-d", "a.txt.sealed")
	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), ".sealed")
	assert.Contains(t, out.stdout.String(), "decrypt: true")
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "pw", "version")
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3\n", out.stdout.String())
}
