// Package filter narrows discovered assets with include/exclude patterns using find -path semantics.
package filter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/idelchi/rpgmd/internal/rpgmv"
	"github.com/idelchi/rpgmd/pkg/pathmatch"
)

// Filter selects assets by their path relative to the walk root.
// No includes means "match all". Excludes always win.
type Filter struct {
	includes pathmatch.Set
	excludes pathmatch.Set
}

// New compiles include/exclude patterns into a reusable filter.
func New(includes, excludes []string) (*Filter, error) {
	inc, err := pathmatch.NewSet(normalize(includes))
	if err != nil {
		return nil, fmt.Errorf("compiling include patterns: %w", err)
	}

	exc, err := pathmatch.NewSet(normalize(excludes))
	if err != nil {
		return nil, fmt.Errorf("compiling exclude patterns: %w", err)
	}

	return &Filter{includes: inc, excludes: exc}, nil
}

// Match reports whether a slash separated relative path passes the filter.
func (f *Filter) Match(rel string) bool {
	if len(f.includes) > 0 {
		if _, ok := f.includes.Match(rel); !ok {
			return false
		}
	}

	_, excluded := f.excludes.Match(rel)

	return !excluded
}

// Apply returns the assets under root that pass the filter, keeping their order.
func (f *Filter) Apply(root string, assets []rpgmv.Asset) ([]rpgmv.Asset, error) {
	if len(f.includes) == 0 && len(f.excludes) == 0 {
		return assets, nil
	}

	kept := make([]rpgmv.Asset, 0, len(assets))

	for _, asset := range assets {
		rel, err := filepath.Rel(root, asset.Path)
		if err != nil {
			return nil, fmt.Errorf("relative path of %q: %w", asset.Path, err)
		}

		if f.Match(filepath.ToSlash(rel)) {
			kept = append(kept, asset)
		}
	}

	return kept, nil
}

// normalize strips leading "./" so patterns match cleaned relative paths.
func normalize(patterns []string) []string {
	out := make([]string, len(patterns))

	for i, p := range patterns {
		out[i] = strings.TrimPrefix(p, "./")
	}

	return out
}
