package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/idelchi/filecrypt/internal/logic"
)

// NewInspectCommand creates a new cobra command for the inspect subcommand.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect files...",
		Short: "Show the cipher and creation time of encrypted files",
		Long: `Show the cipher and creation time of encrypted files.

The header is read without a passphrase and is not authenticated.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return logic.RunInspect(args, cmd.OutOrStdout(), time.Now())
		},
	}
}
