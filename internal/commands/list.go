package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/rpgmd/internal/config"
	"github.com/idelchi/rpgmd/internal/logic"
)

// NewListCommand creates a new cobra command listing the assets that would be processed.
func NewListCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [flags] [game directory]",
		Aliases: []string{"ls"},
		Short:   "List assets and their output paths",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := preRun(cfg)(cmd, args); err != nil {
				return err
			}

			cfg.Encrypt, _ = cmd.Flags().GetBool("plain")

			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.RunList(cfg)
		},
	}

	cmd.Flags().Bool("plain", false, "List plain files that encrypt would process")

	return cmd
}
