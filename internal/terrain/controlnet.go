package terrain

import (
	"fmt"

	"github.com/Faultbox/summitgen/pkg/bezier"
	"github.com/Faultbox/summitgen/pkg/math"
)

// Validate checks the divisor range.
func (c PeakConfig) Validate() error {
	if c.MinDivisor < 1 {
		return fmt.Errorf("%w: min divisor %d must be at least 1", ErrInvalidRequest, c.MinDivisor)
	}
	if c.MaxDivisor <= c.MinDivisor {
		return fmt.Errorf("%w: divisor range [%d, %d) is empty", ErrInvalidRequest, c.MinDivisor, c.MaxDivisor)
	}
	return nil
}

// GenerateMasterNet builds the 4x4 net outlining the whole terrain.
//
// Rows run along X from -halfWidth to +halfWidth and columns along Z from -halfLength
// to +halfLength, both relative to origin. Every boundary point sits at origin.Y.
// One interior point, picked uniformly, rises to origin.Y+height; the other three rise
// to height/k with k drawn independently from the configured divisor range.
func GenerateMasterNet(origin math.Vec3, halfWidth, height, halfLength float64, rng Rand, peak PeakConfig) (bezier.ControlNet, PeakSelection, error) {
	var net bezier.ControlNet
	if err := peak.Validate(); err != nil {
		return net, PeakSelection{}, err
	}

	xs := [4]float64{-halfWidth, -halfWidth / 2, halfWidth / 2, halfWidth}
	zs := [4]float64{-halfLength, -halfLength / 2, halfLength / 2, halfLength}
	for row, x := range xs {
		for col, z := range zs {
			net.Set(row, col, origin.Add(math.Vec3{X: x, Z: z}))
		}
	}

	sel := PeakSelection{Index: bezier.MidIndices[rng.IntN(len(bezier.MidIndices))]}
	span := peak.MaxDivisor - peak.MinDivisor
	for i, idx := range bezier.MidIndices {
		h := height
		if idx != sel.Index {
			h = height / float64(peak.MinDivisor+rng.IntN(span))
		}
		sel.Heights[i] = h
		net[idx].Y = origin.Y + h
	}

	return net, sel, nil
}
