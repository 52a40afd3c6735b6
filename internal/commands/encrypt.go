package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/rpgmd/internal/config"
	"github.com/idelchi/rpgmd/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "encrypt [flags] [game directory]",
		Aliases: []string{"enc"},
		Short:   "Encrypt .png, .m4a and .ogg files back into assets",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Encrypt = true

			return preRun(cfg)(cmd, args)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.Run(cfg)
		},
	}
}
