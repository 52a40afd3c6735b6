// Command rpgmd decrypts RPG Maker MV game assets.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/rpgmd/internal/commands"
	"github.com/idelchi/rpgmd/internal/config"
)

// version is set at build time.
var version = "unknown - unofficial & generated by unknown"

func main() {
	cfg := &config.Config{}

	if err := commands.NewRootCommand(cfg, version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
