package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/idelchi/filecrypt/internal/config"
	"github.com/idelchi/filecrypt/internal/kdf"
	"github.com/idelchi/filecrypt/internal/logic"
	"github.com/idelchi/filecrypt/internal/prompt"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
// A nil prompter asks on the terminal.
func NewRootCommand(cfg *config.Config, version string, prompter logic.Prompter) *cobra.Command {
	if prompter == nil {
		prompter = prompt.New()
	}

	a := &app{cfg: cfg, prompter: prompter, viper: viper.New()}

	root := &cobra.Command{
		Use:   "filecrypt [flags] -e|-d file...",
		Short: "Passphrase-based file encryption utility",
		Long: `Encrypt and decrypt files with a key derived from a passphrase.

Encrypted files are written next to the input with the '.enc' suffix.
Decryption strips the suffix again. Directories are walked recursively. The passphrase is asked once per run,
or taken from the ` + prompt.PassphraseEnvVar + ` environment variable.`,
		Version:           version,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if idle(cfg, args) {
				return nil
			}

			return a.preRun("")(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if idle(cfg, args) {
				return cmd.Help()
			}

			return a.run(cmd, args)
		},
	}

	root.Flags().BoolP("encrypt", "e", false, "Encrypt the given files")
	root.Flags().BoolP("decrypt", "d", false, "Decrypt the given files")
	root.MarkFlagsMutuallyExclusive("encrypt", "decrypt")

	registerFlags(root.PersistentFlags())

	root.AddCommand(
		NewEncryptCommand(a),
		NewDecryptCommand(a),
		NewInspectCommand(),
		NewVersionCommand(version),
	)

	return root
}

// idle reports a bare invocation, which prints the help.
func idle(cfg *config.Config, args []string) bool {
	return len(args) == 0 && !cfg.Encrypt && !cfg.Decrypt && !cfg.Show
}

// registerFlags declares the flags shared by all processing commands.
func registerFlags(flags *pflag.FlagSet) {
	defaults := config.Default()

	flags.String("config", "", "Path to a YAML configuration file")
	flags.BoolP("show", "s", false, "Show the configuration and exit")
	flags.BoolP("overwrite", "o", false, "Overwrite existing output files without asking")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.BoolP("verbose", "v", false, "Print diagnostic messages")
	flags.Bool("stats", false, "Print statistics after processing")
	flags.Bool("delete", false, "Delete the original file after successful encryption/decryption")
	flags.Bool("preserve-timestamps", false, "Carry the modification time of the input onto the output")
	flags.IntP("parallel", "j", defaults.Parallel, "Number of files processed concurrently")
	flags.StringSliceP("exclude", "x", nil, "Patterns of files and directories to skip when walking directories")
	flags.String("exclude-file", "", "Path to a JSONC file with a list of exclude patterns")

	flags.String("suffix", defaults.Suffix, "Suffix of encrypted files")
	flags.String("cipher", defaults.Cipher, "Cipher used for encryption (fernet, aes-gcm)")
	flags.Duration("max-age", 0, "Reject encrypted files older than this on decryption (0 disables)")

	flags.String("kdf", defaults.KDF, fmt.Sprintf("Key derivation function %v", kdf.Algorithms()))
	flags.Int("iterations", defaults.Iterations, "PBKDF2 iterations")
	flags.Uint32("argon-time", defaults.ArgonTime, "Argon2id passes")
	flags.Uint32("argon-memory", defaults.ArgonMemory, "Argon2id memory in KiB")
	flags.Uint8("argon-threads", defaults.ArgonThread, "Argon2id lanes")
	flags.String("salt", defaults.Salt, "Salt for key derivation")
}
