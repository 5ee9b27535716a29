package terrain

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"github.com/Faultbox/summitgen/pkg/math"
)

// MaxNoiseOffset bounds the random sample offset drawn per ApplyNoise call.
const MaxNoiseOffset = 999999.0

// Noise kinds.
const (
	NoisePerlin  = "perlin"
	NoiseSimplex = "simplex"
)

// Perlin parameters: alpha is the amplitude falloff, beta the frequency step.
const (
	perlinAlpha  = 2
	perlinBeta   = 2
	perlinOctave = 3
)

// NoiseSource samples 2D coherent noise in [0, 1].
type NoiseSource interface {
	Sample(x, y float64) float64
}

// PerlinSource samples octave Perlin noise.
type PerlinSource struct {
	noise *perlin.Perlin
}

// NewPerlinSource creates a Perlin source with the given seed.
func NewPerlinSource(seed int64) *PerlinSource {
	return &PerlinSource{noise: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctave, seed)}
}

// Sample remaps Perlin output from roughly [-1, 1] into [0, 1].
func (p *PerlinSource) Sample(x, y float64) float64 {
	return clamp01((p.noise.Noise2D(x, y) + 1) / 2)
}

// SimplexSource samples OpenSimplex noise.
type SimplexSource struct {
	noise opensimplex.Noise
}

// NewSimplexSource creates a normalized OpenSimplex source with the given seed.
func NewSimplexSource(seed int64) *SimplexSource {
	return &SimplexSource{noise: opensimplex.NewNormalized(seed)}
}

// Sample returns noise in [0, 1].
func (s *SimplexSource) Sample(x, y float64) float64 {
	return s.noise.Eval2(x, y)
}

// NewNoiseSource returns the source for kind. An empty kind selects Perlin.
func NewNoiseSource(kind string, seed int64) (NoiseSource, error) {
	switch kind {
	case "", NoisePerlin:
		return NewPerlinSource(seed), nil
	case NoiseSimplex:
		return NewSimplexSource(seed), nil
	default:
		return nil, fmt.Errorf("%w: unknown noise kind %q", ErrInvalidRequest, kind)
	}
}

// ApplyNoise raises vertices in place by a noise sample taken at their ground position.
//
// One offset pair is drawn from rng per call so repeated terrains do not all sample
// around the noise origin. With ClampEdges set, vertices lying exactly on the
// footprint's outer edges are left untouched so neighbouring terrains still line up.
// The Enabled flag is not consulted; callers decide whether to run the pass.
func ApplyNoise(vertices []math.Vec3, area Footprint, opts NoiseOptions, src NoiseSource, rng Rand) error {
	if !(opts.Scale > 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidNoiseScale, opts.Scale)
	}
	amplitude := opts.Amplitude
	if amplitude == 0 {
		amplitude = 1
	}

	offsetX := rng.Float64() * MaxNoiseOffset
	offsetZ := rng.Float64() * MaxNoiseOffset

	for i, v := range vertices {
		if opts.ClampEdges && area.OnEdge(v) {
			continue
		}
		n := src.Sample((v.X+offsetX)*opts.Scale, (v.Z+offsetZ)*opts.Scale)
		vertices[i].Y += n * amplitude
	}

	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
