// Package commands provides the command-line interface for the rpgmd tool.
//
// It implements commands for:
//   - decryption of RPG Maker MV assets
//   - re-encryption of plain assets
//   - printing the encryption key
//   - listing discovered assets
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/rpgmd/internal/config"
)

// envPrefix prefixes environment variables, e.g. RPGMD_OUTPUT.
const envPrefix = "RPGMD"

// bindEnv makes every flag settable through the environment.
func bindEnv() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// preRun returns a PreRunE handler that merges flags and environment into cfg,
// resolves the optional root argument and validates the configuration.
func preRun(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return fmt.Errorf("binding flags: %w", err)
		}

		if err := viper.Unmarshal(cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}

		cfg.Root = "."
		if len(args) > 0 {
			cfg.Root = args[0]
		}

		return cfg.Validate()
	}
}
