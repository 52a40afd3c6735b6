package processor

import (
	"errors"

	"github.com/idelchi/rpgmd/internal/config"
	"github.com/idelchi/rpgmd/internal/rpgmv"
)

// ErrOutputCollision is returned when inputs that would be deleted share an output path.
var ErrOutputCollision = errors.New("inputs share an output path")

// Job pairs an asset with the path its output is written to.
type Job struct {
	Asset  rpgmv.Asset
	Output string
}

// Collision names two inputs planned to the same output path.
type Collision struct {
	Output string
	First  string
	Second string
}

// Plan computes the output path of every asset.
// In copy mode all outputs land directly in the output directory, so distinct inputs
// may collide; those are reported and still planned, the later one overwriting the earlier.
func Plan(cfg *config.Config, assets []rpgmv.Asset) ([]Job, []Collision) {
	jobs := make([]Job, 0, len(assets))
	owners := make(map[string]string, len(assets))

	var collisions []Collision

	for _, asset := range assets {
		out := rpgmv.OutputPath(asset.Path, cfg.TargetExt(asset.Kind), cfg.Output)

		if first, ok := owners[out]; ok {
			collisions = append(collisions, Collision{Output: out, First: first, Second: asset.Path})
		} else {
			owners[out] = asset.Path
		}

		jobs = append(jobs, Job{Asset: asset, Output: out})
	}

	return jobs, collisions
}
