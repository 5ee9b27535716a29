package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSeed       = flag.Uint64("seed", 0, "Random seed (0 keeps the configured seed)")
	flagResolution = flag.Int("resolution", 0, "Patches per side")
	flagSurface    = flag.Int("surface", 0, "Segments per patch along the longer side")
	flagNoise      = flag.String("noise", "", "Noise kind (perlin, simplex, or off)")
	flagWeld       = flag.Bool("weld", false, "Merge duplicated seam vertices")
	flagProps      = flag.Bool("props", false, "Scatter props and print their positions")
	flagOut        = flag.String("out", "", "Output path, - for stdout")
	flagFormat     = flag.String("format", "", "Output format (obj or tmsh)")
	flagCount      = flag.Int("count", 0, "Number of terrains to generate")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != 0 {
		cfg.Terrain.Seed = *flagSeed
	}
	if *flagResolution > 0 {
		cfg.Terrain.Resolution = *flagResolution
	}
	if *flagSurface > 0 {
		cfg.Terrain.SurfaceResolution = *flagSurface
	}
	switch *flagNoise {
	case "":
	case "off":
		cfg.Noise.Enabled = false
	default:
		cfg.Noise.Enabled = true
		cfg.Noise.Kind = *flagNoise
	}
	if *flagWeld {
		cfg.Terrain.Weld = true
	}
	if *flagProps {
		cfg.Placement.Enabled = true
	}
	if *flagOut != "" {
		cfg.Export.Path = *flagOut
	}
	if *flagFormat != "" {
		cfg.Export.Format = *flagFormat
	}
	if *flagCount > 0 {
		cfg.Export.Count = *flagCount
	}
}
