// Package prompt asks the user for passphrases and confirmations.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"golang.org/x/term"
)

// PassphraseEnvVar supplies the passphrase without prompting.
const PassphraseEnvVar = "FILECRYPT_PASSPHRASE"

// MaxAttempts bounds how often a mismatching confirmation is retried.
const MaxAttempts = 3

var (
	// ErrMismatch is returned when the confirmation never matched.
	ErrMismatch = errors.New("passphrases do not match")
	// ErrNoTerminal is returned when no terminal is available for hidden input.
	ErrNoTerminal = errors.New("no terminal available")
)

// PasswordReader reads a line without echo.
type PasswordReader func() ([]byte, error)

// Prompter asks questions on Out and reads answers from In.
type Prompter struct {
	In  *bufio.Reader
	Out io.Writer

	// ReadPassword reads hidden input. It defaults to the terminal.
	ReadPassword PasswordReader

	// Getenv looks up PassphraseEnvVar. It defaults to os.Getenv.
	Getenv func(string) string
}

// New returns a Prompter on stdin and stderr.
func New() *Prompter {
	return &Prompter{
		In:           bufio.NewReader(os.Stdin),
		Out:          os.Stderr,
		ReadPassword: terminalPassword,
		Getenv:       os.Getenv,
	}
}

// Passphrase asks once for a passphrase.
func (p *Prompter) Passphrase(label string) (string, error) {
	if env := p.Getenv(PassphraseEnvVar); env != "" {
		return env, nil
	}

	return p.read(label)
}

// ConfirmedPassphrase asks for a passphrase twice until both entries match.
func (p *Prompter) ConfirmedPassphrase(label, confirmLabel string) (string, error) {
	if env := p.Getenv(PassphraseEnvVar); env != "" {
		return env, nil
	}

	for range MaxAttempts {
		passphrase, err := p.read(label)
		if err != nil {
			return "", err
		}

		confirmation, err := p.read(confirmLabel)
		if err != nil {
			return "", err
		}

		if passphrase == confirmation {
			return passphrase, nil
		}

		fmt.Fprintln(p.Out, "Passphrases do not match. Try again.")
	}

	return "", ErrMismatch
}

// ConfirmOverwrite asks whether path may be overwritten.
// Only answers starting with y or n are accepted; end of input means no.
func (p *Prompter) ConfirmOverwrite(path string) (bool, error) {
	for {
		fmt.Fprintf(p.Out, "File '%s' exists. Overwrite? [y/n] ", path)

		line, err := p.In.ReadString('\n')

		answer := strings.ToLower(strings.TrimSpace(line))
		if answer != "" {
			switch answer[0] {
			case 'y':
				return true, nil
			case 'n':
				return false, nil
			}
		}

		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.Out)

			return false, nil
		}

		if err != nil {
			return false, fmt.Errorf("reading answer: %w", err)
		}
	}
}

func (p *Prompter) read(label string) (string, error) {
	fmt.Fprint(p.Out, label)

	secret, err := p.ReadPassword()

	fmt.Fprintln(p.Out)

	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}

	return string(secret), nil
}

// terminalPassword reads from stdin when it is a terminal, and from the
// controlling terminal when stdin is redirected.
func terminalPassword() ([]byte, error) {
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) { //nolint:gosec
		return term.ReadPassword(fd)
	}

	tty, err := os.Open("/dev/tty")
	if err != nil {
		if runtime.GOOS == "windows" {
			return nil, fmt.Errorf("%w: set %s when stdin is redirected", ErrNoTerminal, PassphraseEnvVar)
		}

		return nil, fmt.Errorf("%w: stdin is redirected and /dev/tty is unavailable, set %s",
			ErrNoTerminal, PassphraseEnvVar)
	}
	defer tty.Close()

	return term.ReadPassword(int(tty.Fd())) //nolint:gosec
}
