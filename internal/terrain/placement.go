package terrain

import (
	"fmt"

	"github.com/Faultbox/summitgen/pkg/math"
)

// PropRule describes one kind of prop scattered over the terrain.
// A cell spawns the prop when its noise sample falls within [MinNoise, MaxNoise].
type PropRule struct {
	Name     string
	Density  int // cells per side
	MinNoise float64
	MaxNoise float64
}

// CanSpawn reports whether a noise sample is inside the rule's window.
func (r PropRule) CanSpawn(sample float64) bool {
	return sample >= r.MinNoise && sample <= r.MaxNoise
}

// Placement is one prop dropped onto the terrain surface.
type Placement struct {
	Prop     string
	Position math.Vec3
	Normal   math.Vec3 // surface normal at Position, for aligning the prop
}

// PlaceProps scatters props over area. The area is split into Density×Density cells;
// each cell whose centre samples inside the rule's noise window drops one prop at a
// random point in the cell onto the mesh. Drops that miss the mesh are skipped.
func PlaceProps(hm *Heightmap, area Footprint, rules []PropRule, scale float64, src NoiseSource, rng Rand) ([]Placement, error) {
	if !(scale > 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidNoiseScale, scale)
	}

	offsetX := rng.Float64() * MaxNoiseOffset
	offsetZ := rng.Float64() * MaxNoiseOffset

	var placements []Placement
	for _, rule := range rules {
		if rule.Density < 1 {
			return nil, fmt.Errorf("%w: prop %q density %d", ErrInvalidRequest, rule.Name, rule.Density)
		}

		cellW := 2 * area.HalfWidth / float64(rule.Density)
		cellL := 2 * area.HalfLength / float64(rule.Density)

		for i := range rule.Density {
			x := area.MinX() + (float64(i)+0.5)*cellW
			for j := range rule.Density {
				z := area.MinZ() + (float64(j)+0.5)*cellL

				if !rule.CanSpawn(src.Sample((x+offsetX)*scale, (z+offsetZ)*scale)) {
					continue
				}

				px := x + (rng.Float64()-0.5)*cellW
				pz := z + (rng.Float64()-0.5)*cellL
				y, normal, ok := hm.HeightAt(px, pz)
				if !ok {
					continue
				}
				placements = append(placements, Placement{
					Prop:     rule.Name,
					Position: math.Vec3{X: px, Y: y, Z: pz},
					Normal:   normal,
				})
			}
		}
	}

	return placements, nil
}
