package terrain

import (
	"fmt"

	"github.com/Faultbox/summitgen/pkg/bezier"
)

// Jumps returns the dense-grid strides between consecutive control-point rows and
// columns of one sub-patch when the master net is split into resolution² patches.
//
// The master is sampled at 3*resolution segments per side, so each sub-patch owns a
// 4x4 block of samples spaced three apart and neighbours share a boundary row/column.
func Jumps(resolution int) (rowJump, colJump int) {
	stride := 3*resolution + 1
	return 3 * stride, 3
}

// GenerateTerrainPatches splits the master net into resolution*resolution control nets.
// Patch s sits at (row, col) = (s/resolution, s%resolution).
func GenerateTerrainPatches(master bezier.ControlNet, resolution int) (PatchGrid, error) {
	if resolution < 1 {
		return PatchGrid{}, fmt.Errorf("%w: patch resolution %d", bezier.ErrInvalidResolution, resolution)
	}
	if resolution == 1 {
		return PatchGrid{Resolution: 1, Nets: []bezier.ControlNet{master}}, nil
	}

	segments := 3 * resolution
	dense, err := bezier.Evaluate(master, segments, segments, 0)
	if err != nil {
		return PatchGrid{}, fmt.Errorf("evaluating master net: %w", err)
	}

	stride := segments + 1
	rowJump, colJump := Jumps(resolution)

	grid := PatchGrid{
		Resolution: resolution,
		Nets:       make([]bezier.ControlNet, resolution*resolution),
	}
	for s := range grid.Nets {
		row, col := s/resolution, s%resolution
		base := row*rowJump + col*colJump
		for a := range 4 {
			for b := range 4 {
				grid.Nets[s].Set(a, b, dense.Vertices[base+a*stride+b])
			}
		}
	}

	return grid, nil
}

// Validate checks that the grid holds exactly Resolution² nets.
func (g PatchGrid) Validate() error {
	if g.Resolution < 1 {
		return fmt.Errorf("%w: %w: resolution %d", ErrInvalidPatchGrid, bezier.ErrInvalidResolution, g.Resolution)
	}
	if want := g.Resolution * g.Resolution; len(g.Nets) != want {
		return fmt.Errorf("%w: expected %d nets, got %d", ErrInvalidPatchGrid, want, len(g.Nets))
	}
	return nil
}
