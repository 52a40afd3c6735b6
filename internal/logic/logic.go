// Package logic drives a run: key lookup, asset discovery, and processing.
package logic

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/rpgmd/internal/config"
	"github.com/idelchi/rpgmd/internal/filter"
	"github.com/idelchi/rpgmd/internal/processor"
	"github.com/idelchi/rpgmd/internal/rpgmv"
)

// Run locates the key, discovers assets and transforms each of them.
// Without a key nothing is processed.
func Run(cfg *config.Config) error {
	start := time.Now()

	keyFile, err := resolveKey(cfg)
	if err != nil {
		return err
	}

	if line := keyLine(cfg, keyFile); line != "" {
		fmt.Fprintln(os.Stderr, line)
	}

	assets, discovered, err := resolveAssets(cfg)
	if err != nil {
		return err
	}

	jobs, collisions := processor.Plan(cfg, assets)
	warnCollisions(collisions)

	// The earlier output would be overwritten after its input is gone.
	if cfg.Delete && len(collisions) > 0 {
		return fmt.Errorf("%w: %d collision(s), refusing to delete inputs", processor.ErrOutputCollision, len(collisions))
	}

	if cfg.Dry {
		return dryRun(cfg, jobs, discovered, start)
	}

	if !cfg.InPlace() && len(jobs) > 0 {
		if err := os.MkdirAll(cfg.Output, 0o755); err != nil { //nolint:gosec,mnd // output is meant to be browsable
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	summary, err := processor.New(cfg, keyFile.Key).Process(jobs)

	if cfg.Stats {
		printStats(discovered, len(jobs), summary, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running logic: %w", err)
	}

	return nil
}

// RunKey locates the key and prints it.
func RunKey(cfg *config.Config) error {
	keyFile, err := resolveKey(cfg)
	if err != nil {
		return err
	}

	if cfg.Quiet {
		fmt.Println(keyFile.Key) //nolint:forbidigo

		return nil
	}

	fmt.Printf("Found key %s in %q\n", keyFile.Key, keyFile.Path) //nolint:forbidigo

	return nil
}

// RunList prints the planned input -> output mapping. No key is needed.
func RunList(cfg *config.Config) error {
	assets, _, err := resolveAssets(cfg)
	if err != nil {
		return err
	}

	jobs, collisions := processor.Plan(cfg, assets)
	warnCollisions(collisions)

	for _, job := range jobs {
		fmt.Printf("%s\t%q -> %q\n", job.Asset.Kind, job.Asset.Path, job.Output) //nolint:forbidigo
	}

	return nil
}

// keyLine reports which key is used. The key itself is only shown with cfg.ShowKey.
func keyLine(cfg *config.Config, keyFile rpgmv.KeyFile) string {
	switch {
	case cfg.ShowKey:
		return fmt.Sprintf("Using key %s from %q", keyFile.Key, source(keyFile))
	case !cfg.Quiet:
		return fmt.Sprintf("Using key from %q", source(keyFile))
	default:
		return ""
	}
}

// source names where a key came from.
func source(keyFile rpgmv.KeyFile) string {
	if keyFile.Path == "" {
		return "--key"
	}

	return keyFile.Path
}

// resolveKey returns the key given on the command line, or the first one found under the root.
func resolveKey(cfg *config.Config) (rpgmv.KeyFile, error) {
	if cfg.Key != "" {
		key, err := rpgmv.ParseKey(cfg.Key)
		if err != nil {
			return rpgmv.KeyFile{}, fmt.Errorf("parsing key: %w", err)
		}

		return rpgmv.KeyFile{Key: key}, nil
	}

	locator := rpgmv.Locator{
		OnCandidate: func(path string) {
			if !cfg.Quiet {
				fmt.Fprintf(os.Stderr, "Checking for key in %q\n", path)
			}
		},
		OnSkip: func(path string, err error) {
			fmt.Fprintf(os.Stderr, "Skipping %q: %v\n", path, err)
		},
	}

	keyFile, err := locator.Locate(cfg.Root)
	if err != nil {
		return rpgmv.KeyFile{}, fmt.Errorf("locating key: %w", err)
	}

	return keyFile, nil
}

// resolveAssets discovers assets under the root and applies include/exclude filtering.
// Returns the filtered assets and the number discovered before filtering.
func resolveAssets(cfg *config.Config) ([]rpgmv.Asset, int, error) {
	assets, err := rpgmv.Discover(cfg.Root, cfg.Classifier())
	if err != nil {
		return nil, 0, fmt.Errorf("discovering assets: %w", err)
	}

	excludes := append([]string{}, cfg.Exclude...)

	if cfg.ExcludeFrom != "" {
		patterns, err := filter.LoadPatterns(cfg.ExcludeFrom)
		if err != nil {
			return nil, 0, fmt.Errorf("loading exclude patterns: %w", err)
		}

		excludes = append(excludes, patterns...)
	}

	flt, err := filter.New(cfg.Include, excludes)
	if err != nil {
		return nil, 0, fmt.Errorf("filtering assets: %w", err)
	}

	kept, err := flt.Apply(cfg.Root, assets)
	if err != nil {
		return nil, 0, fmt.Errorf("filtering assets: %w", err)
	}

	if len(kept) == 0 {
		fmt.Fprintf(os.Stderr, "No assets found under %q\n", cfg.Root)
	}

	return kept, len(assets), nil
}

func warnCollisions(collisions []processor.Collision) {
	for _, c := range collisions {
		fmt.Fprintf(os.Stderr, "Warning: %q and %q both write %q\n", c.First, c.Second, c.Output)
	}
}

// dryRun previews what would be processed without writing anything.
func dryRun(cfg *config.Config, jobs []processor.Job, discovered int, start time.Time) error {
	var summary processor.Summary

	for _, job := range jobs {
		if !cfg.Quiet {
			fmt.Printf("Would process %q -> %q\n", job.Asset.Path, job.Output) //nolint:forbidigo
		}

		if info, err := os.Stat(job.Asset.Path); err == nil {
			summary.TotalSize += info.Size()
		}

		summary.Processed++
	}

	if cfg.Stats {
		printStats(discovered, len(jobs), summary, time.Since(start))
	}

	return nil
}

func printStats(discovered, selected int, summary processor.Summary, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Discovered: %d\n", discovered)
	fmt.Fprintf(os.Stderr, "  Excluded:   %d\n", discovered-selected)
	fmt.Fprintf(os.Stderr, "  Processed:  %d\n", summary.Processed)
	fmt.Fprintf(os.Stderr, "  Errors:     %d\n", summary.Errored)
	fmt.Fprintf(os.Stderr, "  Skipped:    %d\n", summary.Skipped)
	//nolint:gosec // TotalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(os.Stderr, "  Size:       %s\n", humanize.IBytes(uint64(max(0, summary.TotalSize))))
	fmt.Fprintf(os.Stderr, "  Duration:   %s\n", duration.Round(time.Millisecond))
}
