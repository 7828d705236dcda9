package commands

import (
	"github.com/spf13/cobra"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags] files...",
		Aliases: []string{"dec"},
		Short:   "Decrypt files",
		Long:    "Decrypt files carrying the encrypted suffix, writing the output without it.",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: a.preRun("decrypt"),
		RunE:    a.run,
	}
}
