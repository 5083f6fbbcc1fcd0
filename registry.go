package ghostfat

import (
	"fmt"

	"github.com/boljen/go-bitmap"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Registry is the validated, ordered file list plus the derived cluster
// layout a Device is built from. It enforces:
//
//   - start_fat0 < start_rootdir < start_clusters <= num_blocks
//   - registered files' block_count + UF2Sectors <= available data region
//   - file i's start_cluster == 2 + sum(preceding files' block_count)
//   - no two files share any cluster
type Registry struct {
	cfg   Config
	files []File
	boot  fatBootBlock
}

// NewRegistry validates cfg and files and assigns each file its start
// cluster. Every validation failure is collected (not just the first) with
// github.com/hashicorp/go-multierror, matching dargueta-disko's use of the
// same aggregation library.
func NewRegistry(files []File, cfg Config) (*Registry, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	var result *multierror.Error
	if err := cfg.validate(); err != nil {
		result = multierror.Append(result, err)
	}

	dataRegionClusters := int(cfg.NumBlocks) - int(cfg.startClusters())
	// Cluster occupancy is proven with a bitmap sized to the data region:
	// cluster n maps to bitmap index n-2, mirroring
	// dargueta-disko/drivers/common/allocatormap.go's Allocator, repurposed
	// here from a live free-block allocator to a one-shot static proof that
	// no two files (or the UF2 window) ever claim the same cluster.
	occupied := bitmap.New(maxInt(dataRegionClusters, 0))

	cluster := 2
	for i := range files {
		f := &files[i]
		f.startCluster = cluster
		for c := cluster; c < cluster+f.blockCount; c++ {
			idx := c - 2
			if idx < 0 || idx >= dataRegionClusters {
				result = multierror.Append(result, errors.Wrapf(ErrRegionOverlap,
					"file %d (cluster %d) falls outside the data region", i, c))
				continue
			}
			if occupied.Get(idx) {
				result = multierror.Append(result, fmt.Errorf(
					"ghostfat: file %d overlaps a cluster already claimed by a preceding file", i))
				continue
			}
			occupied.Set(idx, true)
		}
		cluster += f.blockCount
	}

	uf2First := cluster
	uf2Last := uf2First + UF2Sectors - 1
	if uf2Last-2 >= dataRegionClusters {
		result = multierror.Append(result, errors.Wrap(ErrRegionOverlap,
			"registered files plus the reserved UF2 window exceed the data region"))
	} else {
		for c := uf2First; c <= uf2Last; c++ {
			idx := c - 2
			if idx >= 0 && occupied.Get(idx) {
				result = multierror.Append(result, errors.Wrap(ErrRegionOverlap,
					"UF2 reserved window overlaps a registered file's clusters"))
				break
			}
		}
	}

	if result != nil {
		return nil, result.ErrorOrNil()
	}

	return &Registry{
		cfg:   cfg,
		files: files,
		boot:  newBootBlock(cfg),
	}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// uf2FirstCluster returns the first cluster of the UF2 pseudo-file's
// reserved address window: 2 + sum of every registered file's block count
// (see DESIGN.md D1 for why this is computed cluster-accurately rather than
// assuming one cluster per file).
func (r *Registry) uf2FirstCluster() int {
	cluster := 2
	for i := range r.files {
		cluster += r.files[i].blockCount
	}
	return cluster
}
