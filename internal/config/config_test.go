package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/summitgen/internal/terrain"
	"github.com/Faultbox/summitgen/pkg/bezier"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Terrain.HalfWidth != 50 || cfg.Terrain.HalfLength != 50 {
		t.Errorf("expected 50x50 footprint, got %vx%v", cfg.Terrain.HalfWidth, cfg.Terrain.HalfLength)
	}
	if cfg.Terrain.Resolution != 2 {
		t.Errorf("expected resolution 2, got %d", cfg.Terrain.Resolution)
	}
	if cfg.Terrain.SurfaceResolution != 16 {
		t.Errorf("expected surface resolution 16, got %d", cfg.Terrain.SurfaceResolution)
	}

	if cfg.Noise.Enabled {
		t.Error("expected noise to be disabled by default")
	}
	if !cfg.Noise.ClampEdges {
		t.Error("expected clamp_edges to be true by default")
	}

	if cfg.Peak.MinDivisor != 2 || cfg.Peak.MaxDivisor != 5 {
		t.Errorf("expected divisors [2, 5), got [%d, %d)", cfg.Peak.MinDivisor, cfg.Peak.MaxDivisor)
	}

	if cfg.Export.Format != FormatOBJ {
		t.Errorf("expected obj format, got %s", cfg.Export.Format)
	}
	if cfg.Export.Count != 1 {
		t.Errorf("expected count 1, got %d", cfg.Export.Count)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)

	yamlContent := `
terrain:
  seed: 42
  origin: [1, 2, 3]
  half_width: 20
  half_length: 10
  height_min: 5
  height_max: 8
  resolution: 4
  surface_resolution: 6
  weld: true

noise:
  enabled: true
  kind: simplex
  scale: 0.2
  amplitude: 3

peak:
  min_divisor: 3
  max_divisor: 4

placement:
  props:
    - name: bush
      density: 4
      min_noise: 0.1
      max_noise: 0.9

export:
  path: out.tmsh
  format: tmsh

logging:
  level: "debug"
  log_file: "gen.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Terrain.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Terrain.Seed)
	}
	if cfg.Terrain.Origin != [3]float64{1, 2, 3} {
		t.Errorf("expected origin [1 2 3], got %v", cfg.Terrain.Origin)
	}
	if cfg.Terrain.HalfWidth != 20 || cfg.Terrain.HalfLength != 10 {
		t.Errorf("unexpected footprint %vx%v", cfg.Terrain.HalfWidth, cfg.Terrain.HalfLength)
	}
	if cfg.Terrain.Resolution != 4 || !cfg.Terrain.Weld {
		t.Errorf("unexpected terrain settings %+v", cfg.Terrain)
	}

	if !cfg.Noise.Enabled || cfg.Noise.Kind != "simplex" || cfg.Noise.Amplitude != 3 {
		t.Errorf("unexpected noise settings %+v", cfg.Noise)
	}
	// Keys missing from the file keep their defaults.
	if !cfg.Noise.ClampEdges {
		t.Error("expected clamp_edges default to survive")
	}

	if len(cfg.Placement.Props) != 1 || cfg.Placement.Props[0].Name != "bush" {
		t.Errorf("expected props to be replaced, got %+v", cfg.Placement.Props)
	}

	if cfg.Export.Format != FormatTMSH || cfg.Export.Path != "out.tmsh" {
		t.Errorf("unexpected export settings %+v", cfg.Export)
	}
	if cfg.Export.Name != "terrain" {
		t.Errorf("expected export name default, got %s", cfg.Export.Name)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if fc := cfg.Logging.FileConfig(); fc.Path != "gen.log" || fc.MaxSizeMB != 50 {
		t.Errorf("unexpected file logging config %+v", fc)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax": `
terrain:
  half_width: not a number
  invalid syntax here
`,
		"unknown key": `
terrain:
  halfwidth: 10
`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if cfg.Terrain.Resolution != 2 {
		t.Errorf("expected defaults to survive, got resolution %d", cfg.Terrain.Resolution)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/summitgen.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("terrain:\n  resolution: 3\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 7 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.Seed != 7 {
					t.Errorf("expected seed 7, got %d", cfg.Terrain.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
		{
			name: "resolution flags",
			setup: func() {
				*flagResolution = 3
				*flagSurface = 9
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.Resolution != 3 || cfg.Terrain.SurfaceResolution != 9 {
					t.Errorf("expected 3/9, got %d/%d", cfg.Terrain.Resolution, cfg.Terrain.SurfaceResolution)
				}
			},
			teardown: func() {
				*flagResolution = 0
				*flagSurface = 0
			},
		},
		{
			name:  "noise kind enables noise",
			setup: func() { *flagNoise = "simplex" },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Noise.Enabled || cfg.Noise.Kind != "simplex" {
					t.Errorf("expected simplex noise enabled, got %+v", cfg.Noise)
				}
			},
			teardown: func() { *flagNoise = "" },
		},
		{
			name: "noise off",
			setup: func() {
				*flagNoise = "off"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Noise.Enabled {
					t.Error("expected noise disabled")
				}
				if cfg.Noise.Kind != "perlin" {
					t.Errorf("expected kind to stay perlin, got %s", cfg.Noise.Kind)
				}
			},
			teardown: func() { *flagNoise = "" },
		},
		{
			name: "weld and props flags",
			setup: func() {
				*flagWeld = true
				*flagProps = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Terrain.Weld || !cfg.Placement.Enabled {
					t.Error("expected weld and placement enabled")
				}
			},
			teardown: func() {
				*flagWeld = false
				*flagProps = false
			},
		},
		{
			name: "export flags",
			setup: func() {
				*flagOut = "-"
				*flagFormat = "tmsh"
				*flagCount = 3
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Export.Path != "-" || cfg.Export.Format != "tmsh" || cfg.Export.Count != 3 {
					t.Errorf("unexpected export settings %+v", cfg.Export)
				}
			},
			teardown: func() {
				*flagOut = ""
				*flagFormat = ""
				*flagCount = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)

	yamlContent := `
terrain:
  resolution: 3
  surface_resolution: 5
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagResolution = 4
	defer func() {
		*flagConfig = ""
		*flagResolution = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Flag beats file.
	if cfg.Terrain.Resolution != 4 {
		t.Errorf("expected resolution 4 from flag, got %d", cfg.Terrain.Resolution)
	}
	// File beats default.
	if cfg.Terrain.SurfaceResolution != 5 {
		t.Errorf("expected surface resolution 5 from file, got %d", cfg.Terrain.SurfaceResolution)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(configPath, []byte("terrain:\n  resolution: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	_, err := Load()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if !errors.Is(err, bezier.ErrInvalidResolution) {
		t.Errorf("expected wrapped ErrInvalidResolution, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative width", func(c *Config) { c.Terrain.HalfWidth = -1 }},
		{"inverted heights", func(c *Config) { c.Terrain.HeightMin = 40 }},
		{"bad divisors", func(c *Config) { c.Peak.MinDivisor = 0 }},
		{"noise kind", func(c *Config) { c.Noise.Kind = "worley" }},
		{"noise scale", func(c *Config) { c.Noise.Enabled = true; c.Noise.Scale = 0 }},
		{"placement scale", func(c *Config) { c.Placement.Enabled = true; c.Placement.Scale = -1 }},
		{"prop density", func(c *Config) { c.Placement.Enabled = true; c.Placement.Props[0].Density = 0 }},
		{"prop window", func(c *Config) { c.Placement.Enabled = true; c.Placement.Props[0].MinNoise = 2 }},
		{"format", func(c *Config) { c.Export.Format = "stl" }},
		{"empty path", func(c *Config) { c.Export.Path = "" }},
		{"count", func(c *Config) { c.Export.Count = 0 }},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestRequest(t *testing.T) {
	cfg := Default()
	cfg.Terrain.Origin = [3]float64{1, 2, 3}
	cfg.Terrain.Weld = true
	cfg.Noise.Enabled = true
	cfg.Peak.MaxDivisor = 4

	req := cfg.Request()

	if req.Origin.X != 1 || req.Origin.Y != 2 || req.Origin.Z != 3 {
		t.Errorf("unexpected origin %v", req.Origin)
	}
	if req.HalfWidth != 50 || req.Resolution != 2 || req.SurfaceResolution != 16 {
		t.Errorf("unexpected request %+v", req)
	}
	if req.Peak != (terrain.PeakConfig{MinDivisor: 2, MaxDivisor: 4}) {
		t.Errorf("unexpected peak config %+v", req.Peak)
	}
	if !req.Noise.Enabled || req.Noise.Kind != terrain.NoisePerlin || !req.Noise.ClampEdges {
		t.Errorf("unexpected noise options %+v", req.Noise)
	}
	if !req.Weld {
		t.Error("expected weld")
	}

	rules := cfg.PropRules()
	if len(rules) != 2 || rules[0].Name != "tree" || rules[0].Density != 16 {
		t.Errorf("unexpected prop rules %+v", rules)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Terrain.Seed = 99
	cfg.Noise.Kind = "simplex"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Terrain.Seed != 99 || loaded.Noise.Kind != "simplex" {
		t.Errorf("saved values not reloaded: %+v", loaded.Terrain)
	}
}
