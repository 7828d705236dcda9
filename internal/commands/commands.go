package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/filecrypt/internal/config"
	"github.com/idelchi/filecrypt/internal/logic"
)

// EnvPrefix prefixes the environment variables mirroring the flags.
const EnvPrefix = "FILECRYPT"

// app carries the state shared by the command tree.
type app struct {
	cfg      *config.Config
	prompter logic.Prompter
	viper    *viper.Viper
}

// load merges flags, environment and the optional config file into the configuration.
// Precedence is flags, then environment, then file, then flag defaults.
func (a *app) load(cmd *cobra.Command) error {
	a.viper.SetEnvPrefix(EnvPrefix)
	a.viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.viper.AutomaticEnv()

	if err := a.viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if file := a.viper.GetString("config"); file != "" {
		a.viper.SetConfigFile(file)

		if err := a.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %q: %w", file, err)
		}
	}

	if err := a.viper.Unmarshal(a.cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	return nil
}

// preRun returns a PreRunE handler that resolves positional args into cfg.Files,
// applies the mode forced by the command (if any) and validates the configuration.
func (a *app) preRun(mode string) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		a.cfg.Files = args

		switch mode {
		case "encrypt":
			a.cfg.Encrypt, a.cfg.Decrypt = true, false
		case "decrypt":
			a.cfg.Encrypt, a.cfg.Decrypt = false, true
		}

		if a.cfg.Show {
			return nil
		}

		return a.cfg.Validate()
	}
}

// run shows the configuration or processes the files.
func (a *app) run(cmd *cobra.Command, _ []string) error {
	if a.cfg.Show {
		out, err := a.cfg.Display()
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), out)

		return nil
	}

	runner := &logic.Runner{
		Config:   a.cfg,
		Prompter: a.prompter,
		Logger:   newLogger(cmd.ErrOrStderr(), a.cfg.Verbose),
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
	}

	err := runner.Run(cmd.Context())
	if errors.Is(err, logic.ErrFailed) {
		// Per-file messages were already printed.
		cmd.SilenceErrors = true
	}

	return err
}

// newLogger returns the diagnostic logger. It only reports warnings unless verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
