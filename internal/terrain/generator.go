package terrain

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/summitgen/pkg/bezier"
)

// Result is everything produced for one request.
type Result struct {
	Mesh    *Mesh
	Master  bezier.ControlNet
	Peak    PeakSelection
	Patches PatchGrid
	Height  float64 // height sampled from [HeightMin, HeightMax]

	USegments int // per-patch tessellation along X
	VSegments int // per-patch tessellation along Z
}

// Generator runs the full pipeline. It owns its random source and is not safe for
// concurrent use; see GenerateBatch for parallel generation.
type Generator struct {
	rng Rand
	log *zap.Logger
}

// NewGenerator creates a generator. A nil logger discards output.
func NewGenerator(rng Rand, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{rng: rng, log: log}
}

// Validate rejects requests the pipeline cannot run. Zero width or length is allowed
// and yields a flat or linear mesh.
func (r Request) Validate() error {
	if r.Resolution < 1 {
		return fmt.Errorf("%w: patch resolution %d", bezier.ErrInvalidResolution, r.Resolution)
	}
	if r.SurfaceResolution < 1 {
		return fmt.Errorf("%w: surface resolution %d", bezier.ErrInvalidResolution, r.SurfaceResolution)
	}
	for name, v := range map[string]float64{"half width": r.HalfWidth, "half length": r.HalfLength} {
		if !(v >= 0) || gomath.IsInf(v, 0) {
			return fmt.Errorf("%w: %s %v", ErrInvalidRequest, name, v)
		}
	}
	if gomath.IsNaN(r.HeightMin) || gomath.IsNaN(r.HeightMax) || r.HeightMin > r.HeightMax {
		return fmt.Errorf("%w: height range [%v, %v]", ErrInvalidRequest, r.HeightMin, r.HeightMax)
	}
	if err := r.Peak.Validate(); err != nil {
		return err
	}
	if r.Noise.Enabled && !(r.Noise.Scale > 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidNoiseScale, r.Noise.Scale)
	}
	return nil
}

// Tessellation splits surfaceRes between the two axes by aspect ratio: the longer side
// gets surfaceRes segments and the shorter side proportionally fewer, at least one.
func Tessellation(halfWidth, halfLength float64, surfaceRes int) (uRes, vRes int) {
	uRes, vRes = surfaceRes, surfaceRes
	if halfWidth < halfLength {
		uRes = int(gomath.Ceil(halfWidth / halfLength * float64(surfaceRes)))
	}
	if halfLength < halfWidth {
		vRes = int(gomath.Ceil(halfLength / halfWidth * float64(surfaceRes)))
	}
	return max(uRes, 1), max(vRes, 1)
}

// Generate builds one terrain: master net, patch grid, mesh, optional noise, normals.
func (g *Generator) Generate(req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	height := req.HeightMin + g.rng.Float64()*(req.HeightMax-req.HeightMin)
	g.log.Debug("generating terrain",
		zap.Float64("half_width", req.HalfWidth),
		zap.Float64("half_length", req.HalfLength),
		zap.Float64("height", height),
		zap.Int("resolution", req.Resolution),
		zap.Int("surface_resolution", req.SurfaceResolution))

	master, peak, err := GenerateMasterNet(req.Origin, req.HalfWidth, height, req.HalfLength, g.rng, req.Peak)
	if err != nil {
		return nil, fmt.Errorf("generating master net: %w", err)
	}

	grid, err := GenerateTerrainPatches(master, req.Resolution)
	if err != nil {
		return nil, fmt.Errorf("generating patches: %w", err)
	}

	uRes, vRes := Tessellation(req.HalfWidth, req.HalfLength, req.SurfaceResolution)
	mesh, err := BuildTerrainMesh(grid, uRes, vRes)
	if err != nil {
		return nil, fmt.Errorf("building mesh: %w", err)
	}

	if req.Noise.Enabled {
		src, err := NewNoiseSource(req.Noise.Kind, int64(g.rng.IntN(gomath.MaxInt32)))
		if err != nil {
			return nil, err
		}
		if err := ApplyNoise(mesh.Vertices, req.Footprint(), req.Noise, src, g.rng); err != nil {
			return nil, fmt.Errorf("applying noise: %w", err)
		}
		mesh.UpdateBounds()
	}

	if req.Weld {
		mesh.Weld(0)
	}
	mesh.ComputeNormals()

	g.log.Info("terrain generated",
		zap.Int("patches", mesh.PatchCount),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("peak_index", peak.Index))

	return &Result{
		Mesh:      mesh,
		Master:    master,
		Peak:      peak,
		Patches:   grid,
		Height:    height,
		USegments: uRes,
		VSegments: vRes,
	}, nil
}
