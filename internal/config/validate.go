package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/summitgen/internal/logger"
	"github.com/Faultbox/summitgen/internal/terrain"
	"github.com/Faultbox/summitgen/pkg/math"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Export formats.
const (
	FormatOBJ  = "obj"
	FormatTMSH = "tmsh"
)

// Validate checks settings that Request does not cover. Terrain values are checked
// through terrain.Request.Validate so both paths agree.
func (c *Config) Validate() error {
	if err := c.Request().Validate(); err != nil {
		return fmt.Errorf("%w: terrain: %w", ErrInvalidConfig, err)
	}

	switch c.Noise.Kind {
	case "", terrain.NoisePerlin, terrain.NoiseSimplex:
	default:
		return fmt.Errorf("%w: noise kind %q", ErrInvalidConfig, c.Noise.Kind)
	}

	if c.Placement.Enabled {
		if !(c.Placement.Scale > 0) {
			return fmt.Errorf("%w: placement scale %v", ErrInvalidConfig, c.Placement.Scale)
		}
		switch c.Placement.Kind {
		case "", terrain.NoisePerlin, terrain.NoiseSimplex:
		default:
			return fmt.Errorf("%w: placement noise kind %q", ErrInvalidConfig, c.Placement.Kind)
		}
		for _, p := range c.Placement.Props {
			if p.Density < 1 {
				return fmt.Errorf("%w: prop %q density %d", ErrInvalidConfig, p.Name, p.Density)
			}
			if p.MinNoise > p.MaxNoise {
				return fmt.Errorf("%w: prop %q noise window [%v, %v]", ErrInvalidConfig, p.Name, p.MinNoise, p.MaxNoise)
			}
		}
	}

	switch c.Export.Format {
	case FormatOBJ, FormatTMSH:
	default:
		return fmt.Errorf("%w: export format %q", ErrInvalidConfig, c.Export.Format)
	}
	if c.Export.Path == "" {
		return fmt.Errorf("%w: empty export path", ErrInvalidConfig)
	}
	if c.Export.Count < 1 {
		return fmt.Errorf("%w: export count %d", ErrInvalidConfig, c.Export.Count)
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Request builds the terrain request described by the config.
func (c *Config) Request() terrain.Request {
	t := c.Terrain
	return terrain.Request{
		Origin:            math.Vec3{X: t.Origin[0], Y: t.Origin[1], Z: t.Origin[2]},
		HalfWidth:         t.HalfWidth,
		HalfLength:        t.HalfLength,
		HeightMin:         t.HeightMin,
		HeightMax:         t.HeightMax,
		Resolution:        t.Resolution,
		SurfaceResolution: t.SurfaceResolution,
		Peak: terrain.PeakConfig{
			MinDivisor: c.Peak.MinDivisor,
			MaxDivisor: c.Peak.MaxDivisor,
		},
		Noise: terrain.NoiseOptions{
			Enabled:    c.Noise.Enabled,
			Kind:       c.Noise.Kind,
			Scale:      c.Noise.Scale,
			Amplitude:  c.Noise.Amplitude,
			ClampEdges: c.Noise.ClampEdges,
		},
		Weld: t.Weld,
	}
}

// PropRules converts the configured props to placement rules.
func (c *Config) PropRules() []terrain.PropRule {
	rules := make([]terrain.PropRule, len(c.Placement.Props))
	for i, p := range c.Placement.Props {
		rules[i] = terrain.PropRule{
			Name:     p.Name,
			Density:  p.Density,
			MinNoise: p.MinNoise,
			MaxNoise: p.MaxNoise,
		}
	}
	return rules
}
