// Package config handles summitgen configuration loading and management.
package config

import "github.com/Faultbox/summitgen/internal/logger"

// Config holds all generator settings.
type Config struct {
	Terrain   TerrainConfig   `yaml:"terrain"`
	Noise     NoiseConfig     `yaml:"noise"`
	Peak      PeakConfig      `yaml:"peak"`
	Placement PlacementConfig `yaml:"placement"`
	Export    ExportConfig    `yaml:"export"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// TerrainConfig holds the terrain footprint and tessellation.
type TerrainConfig struct {
	Seed              uint64     `yaml:"seed"` // 0 picks a seed from the clock
	Origin            [3]float64 `yaml:"origin"`
	HalfWidth         float64    `yaml:"half_width"`
	HalfLength        float64    `yaml:"half_length"`
	HeightMin         float64    `yaml:"height_min"`
	HeightMax         float64    `yaml:"height_max"`
	Resolution        int        `yaml:"resolution"`         // patches per side
	SurfaceResolution int        `yaml:"surface_resolution"` // segments per patch, longer side
	Weld              bool       `yaml:"weld"`
}

// NoiseConfig holds the surface noise settings.
type NoiseConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Kind       string  `yaml:"kind"` // perlin or simplex
	Scale      float64 `yaml:"scale"`
	Amplitude  float64 `yaml:"amplitude"`
	ClampEdges bool    `yaml:"clamp_edges"`
}

// PeakConfig holds the divisor range for secondary rises.
type PeakConfig struct {
	MinDivisor int `yaml:"min_divisor"`
	MaxDivisor int `yaml:"max_divisor"`
}

// PlacementConfig holds prop scattering settings.
type PlacementConfig struct {
	Enabled bool         `yaml:"enabled"`
	Kind    string       `yaml:"kind"`
	Scale   float64      `yaml:"scale"`
	Props   []PropConfig `yaml:"props"`
}

// PropConfig is one scattered prop kind.
type PropConfig struct {
	Name     string  `yaml:"name"`
	Density  int     `yaml:"density"`
	MinNoise float64 `yaml:"min_noise"`
	MaxNoise float64 `yaml:"max_noise"`
}

// ExportConfig holds output settings.
type ExportConfig struct {
	Path   string `yaml:"path"`   // "-" writes to stdout
	Format string `yaml:"format"` // obj or tmsh
	Name   string `yaml:"name"`   // OBJ object name
	Count  int    `yaml:"count"`  // terrains to generate
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string            `yaml:"level"`
	LogFile string            `yaml:"log_file"`
	File    logger.FileConfig `yaml:"file"` // rotation settings; Path is taken from LogFile
}

// FileConfig returns the rotation settings for LogFile, or an empty config when file logging is off.
func (l LoggingConfig) FileConfig() logger.FileConfig {
	if l.LogFile == "" {
		return logger.FileConfig{}
	}
	fc := l.File
	fc.Path = l.LogFile
	return fc
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			HalfWidth:         50,
			HalfLength:        50,
			HeightMin:         10,
			HeightMax:         30,
			Resolution:        2,
			SurfaceResolution: 16,
		},
		Noise: NoiseConfig{
			Enabled:    false,
			Kind:       "perlin",
			Scale:      0.05,
			Amplitude:  1,
			ClampEdges: true,
		},
		Peak: PeakConfig{
			MinDivisor: 2,
			MaxDivisor: 5,
		},
		Placement: PlacementConfig{
			Enabled: false,
			Kind:    "perlin",
			Scale:   0.1,
			Props: []PropConfig{
				{Name: "tree", Density: 16, MinNoise: 0.55, MaxNoise: 1},
				{Name: "rock", Density: 8, MinNoise: 0, MaxNoise: 0.3},
			},
		},
		Export: ExportConfig{
			Path:   "terrain.obj",
			Format: "obj",
			Name:   "terrain",
			Count:  1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
			File:    logger.DefaultFileConfig(""),
		},
	}
}
