package filter

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// LoadPatterns reads asset patterns from a JSONC file holding a single array of strings,
// e.g. ["img/tilesets/*", "*.rpgmvm"]. Comments and trailing commas are allowed.
func LoadPatterns(path string) ([]string, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // path is the --exclude-from flag
	if err != nil {
		return nil, fmt.Errorf("reading asset pattern file %q: %w", path, err)
	}

	var patterns []string
	if err := json.Unmarshal(jsonc.ToJSONInPlace(raw), &patterns); err != nil {
		return nil, fmt.Errorf("asset pattern file %q must hold an array of strings: %w", path, err)
	}

	for i, pattern := range patterns {
		if pattern == "" {
			return nil, fmt.Errorf("asset pattern file %q: entry %d is empty", path, i)
		}
	}

	return patterns, nil
}
