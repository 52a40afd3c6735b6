package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/rpgmd/internal/config"
	"github.com/idelchi/rpgmd/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags] [game directory]",
		Aliases: []string{"dec"},
		Short:   "Decrypt assets",
		Long: `Decrypts every .rpgmvp, .rpgmvm and .rpgmvo file below the game directory.
The key is taken from the first System.json found, or from --key.
Only the key file's path is printed; pass --show-key to print the key itself.`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: preRun(cfg),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.Run(cfg)
		},
	}
}
