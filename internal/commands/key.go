package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/rpgmd/internal/config"
	"github.com/idelchi/rpgmd/internal/logic"
)

// NewKeyCommand creates a new cobra command printing the encryption key.
func NewKeyCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "key [flags] [game directory]",
		Short:   "Print the encryption key found in System.json",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: preRun(cfg),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.RunKey(cfg)
		},
	}
}
