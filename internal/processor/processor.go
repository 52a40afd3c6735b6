package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/rpgmd/internal/config"
	"github.com/idelchi/rpgmd/internal/fileutil"
	"github.com/idelchi/rpgmd/internal/rpgmv"
)

// ErrAssetsFailed is returned when at least one asset could not be processed.
var ErrAssetsFailed = errors.New("assets failed")

// Processor handles the decryption and encryption of assets.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// key masks and unmasks asset blocks
	key rpgmv.Key

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// New creates a Processor for the given configuration and key.
func New(cfg *config.Config, key rpgmv.Key) *Processor {
	return &Processor{
		cfg: cfg,
		key: key,
	}
}

// Process runs all jobs with at most cfg.Parallel in flight.
// A failing asset does not stop the others unless cfg.FailFast is set,
// in which case jobs not yet started are skipped and counted in Summary.Skipped.
//
//nolint:cyclop,gocognit // parallel processing pipeline with printer goroutine
func (p *Processor) Process(jobs []Job) (summary Summary, err error) {
	p.results = make(chan Result, len(jobs))

	ctx := context.Background()

	var group *errgroup.Group

	if p.cfg.FailFast {
		group, ctx = errgroup.WithContext(ctx)
	} else {
		group = &errgroup.Group{}
	}

	group.SetLimit(max(1, p.cfg.Parallel))

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				summary.Errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", result.Input, result.Error)

				continue
			}

			summary.Processed++

			summary.TotalSize += result.OutputSize

			if !p.cfg.Quiet {
				fmt.Printf("Processed %q -> %q\n", result.Input, result.Output) //nolint:forbidigo
			}

			if p.cfg.Delete {
				if err := os.Remove(result.Input); err != nil {
					fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", result.Input, err)
				} else if !p.cfg.Quiet {
					fmt.Printf("Deleted %q\n", result.Input) //nolint:forbidigo
				}
			}
		}
	}()

	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}

		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			size, err := p.processFile(job)
			if err != nil {
				p.results <- Result{Input: job.Asset.Path, Error: err}

				return err
			}

			p.results <- Result{Input: job.Asset.Path, Output: job.Output, OutputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	summary.Skipped = len(jobs) - summary.Processed - summary.Errored

	if err != nil || summary.Errored > 0 {
		return summary, fmt.Errorf("%w: %d of %d", ErrAssetsFailed, summary.Errored+summary.Skipped, len(jobs))
	}

	return summary, nil
}

// processFile transforms a single asset and writes it atomically.
func (p *Processor) processFile(job Job) (int64, error) {
	data, err := os.ReadFile(filepath.Clean(job.Asset.Path))
	if err != nil {
		return 0, fmt.Errorf("reading asset: %w", err)
	}

	var out []byte

	if p.cfg.Encrypt {
		out, err = rpgmv.Encrypt(data, p.key)
	} else {
		out, err = rpgmv.Decrypt(data, p.key, p.cfg.VerifyHeader)
	}

	if err != nil {
		return 0, fmt.Errorf("transforming asset: %w", err)
	}

	size, err := fileutil.WriteFile(job.Asset.Path, job.Output, out, p.cfg.PreserveTimestamps)
	if err != nil {
		return 0, fmt.Errorf("writing asset: %w", err)
	}

	return size, nil
}
