// Package main is the entry point for the summitgen terrain generator.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/summitgen/internal/config"
	"github.com/Faultbox/summitgen/internal/logger"
	"github.com/Faultbox/summitgen/internal/terrain"
	"github.com/Faultbox/summitgen/pkg/formats"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewCLI(cfg.Logging.Level, cfg.Logging.FileConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("generation failed", zap.Error(err))
		logger.Sync(log)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Sync(log)
}

func run(cfg *config.Config, log *zap.Logger) error {
	seed := cfg.Terrain.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Info("=== summitgen ===", zap.Uint64("seed", seed), zap.Int("count", cfg.Export.Count))
	log.Sugar().Debugf("Config: %+v", cfg)

	reqs := make([]terrain.Request, cfg.Export.Count)
	for i := range reqs {
		reqs[i] = cfg.Request()
	}
	results, err := terrain.GenerateBatch(reqs, seed, log)
	if err != nil {
		return err
	}

	if cfg.Export.Path == "-" && len(results) > 1 {
		return fmt.Errorf("cannot write %d terrains to stdout", len(results))
	}

	for i, res := range results {
		path := outputPath(cfg.Export.Path, i, len(results))
		if err := export(cfg.Export, path, res.Mesh); err != nil {
			return fmt.Errorf("exporting %s: %w", path, err)
		}
		log.Info("wrote terrain",
			zap.String("path", path),
			zap.String("format", cfg.Export.Format),
			zap.Float64("height", res.Height),
			zap.Int("triangles", res.Mesh.TriangleCount()))

		if cfg.Placement.Enabled {
			// Each terrain gets its own placement stream after the generation streams.
			rng := terrain.NewRand(seed, uint64(len(results)+i))
			n, err := placeProps(cfg, res, rng, propsPath(path))
			if err != nil {
				return fmt.Errorf("placing props: %w", err)
			}
			log.Info("placed props", zap.String("path", propsPath(path)), zap.Int("count", n))
		}
	}
	return nil
}

// outputPath numbers batch outputs as name-i.ext.
func outputPath(path string, i, total int) string {
	if total == 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i, ext)
}

func propsPath(path string) string {
	if path == "-" {
		return "props.tsv"
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".props.tsv"
}

func export(ec config.ExportConfig, path string, mesh *terrain.Mesh) (err error) {
	file := mesh.ToTMSH()

	var w io.Writer = os.Stdout
	if path != "-" {
		var f *os.File
		if f, err = os.Create(path); err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	switch ec.Format {
	case config.FormatTMSH:
		return file.EncodeTo(w)
	default:
		return formats.WriteOBJ(w, file, ec.Name)
	}
}

// placeProps scatters the configured props and writes one "name x y z nx ny nz" row per prop.
func placeProps(cfg *config.Config, res *terrain.Result, rng terrain.Rand, path string) (n int, err error) {
	src, err := terrain.NewNoiseSource(cfg.Placement.Kind, int64(rng.IntN(1<<31-1)))
	if err != nil {
		return 0, err
	}

	hm := terrain.BuildHeightmap(res.Mesh)
	placements, err := terrain.PlaceProps(hm, cfg.Request().Footprint(), cfg.PropRules(), cfg.Placement.Scale, src, rng)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(f)
	for _, p := range placements {
		fmt.Fprintf(bw, "%s\t%g\t%g\t%g\t%g\t%g\t%g\n",
			p.Prop, p.Position.X, p.Position.Y, p.Position.Z, p.Normal.X, p.Normal.Y, p.Normal.Z)
	}
	if err := bw.Flush(); err != nil {
		return 0, err
	}
	return len(placements), nil
}
