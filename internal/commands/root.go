package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/rpgmd/internal/config"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "rpgmd [flags] command [flags]"
	root.Short = "RPG Maker MV asset decrypter"
	root.Long = `Decrypts RPG Maker MV assets (.rpgmvp, .rpgmvm, .rpgmvo) into .png, .m4a and .ogg files.
The key is read from the System.json found anywhere below the game directory.
Outputs are written next to their inputs, or flattened into a single directory with --output.`

	flags := root.PersistentFlags()

	flags.StringP("output", "o", "", "Write all outputs directly into this directory instead of next to the inputs")
	flags.StringP("key", "k", "", "Encryption key (16 bytes, hex-encoded), skips the System.json lookup")
	flags.IntP("parallel", "j", 1, "Number of assets processed concurrently")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.Bool("show-key", false, "Print the encryption key in use (it is hidden by default)")
	flags.Bool("stats", false, "Print a summary after processing")
	flags.Bool("dry", false, "Show what would be processed without writing anything")
	flags.Bool("delete", false, "Delete each input after its output was written")
	flags.Bool("fail-fast", false, "Stop at the first asset that fails")
	flags.Bool("verify-header", false, "Reject assets whose header is not the RPG Maker MV signature")
	flags.Bool("preserve-timestamps", false, "Copy the input modification time to the output")
	flags.StringSlice("include", nil, "Only process assets matching these find -path patterns, relative to the root")
	flags.StringSlice("exclude", nil, "Skip assets matching these find -path patterns, relative to the root")
	flags.String("exclude-from", "", "JSONC file with an array of exclude patterns")

	bindEnv()

	root.AddCommand(
		NewDecryptCommand(cfg),
		NewEncryptCommand(cfg),
		NewKeyCommand(cfg),
		NewListCommand(cfg),
	)

	return root
}
