// Package terrain generates Bezier-patch ground meshes and post-processes them.
package terrain

import (
	"errors"

	"github.com/Faultbox/summitgen/pkg/bezier"
	"github.com/Faultbox/summitgen/pkg/math"
)

// Terrain errors.
var (
	ErrInvalidRequest    = errors.New("invalid terrain request")
	ErrInvalidNoiseScale = errors.New("invalid noise scale: must be positive")
	ErrInvalidPatchGrid  = errors.New("invalid patch grid")
)

// Rand is the random source used for peak selection, height sampling and noise offsets.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Footprint is the ground-plane rectangle a terrain covers, centred on Origin.
type Footprint struct {
	Origin     math.Vec3
	HalfWidth  float64 // extent along X
	HalfLength float64 // extent along Z
}

// MinX returns the low X edge.
func (f Footprint) MinX() float64 { return f.Origin.X - f.HalfWidth }

// MaxX returns the high X edge.
func (f Footprint) MaxX() float64 { return f.Origin.X + f.HalfWidth }

// MinZ returns the low Z edge.
func (f Footprint) MinZ() float64 { return f.Origin.Z - f.HalfLength }

// MaxZ returns the high Z edge.
func (f Footprint) MaxZ() float64 { return f.Origin.Z + f.HalfLength }

// OnEdge reports whether p lies exactly on one of the four outer edges.
func (f Footprint) OnEdge(p math.Vec3) bool {
	return p.X == f.MinX() || p.X == f.MaxX() || p.Z == f.MinZ() || p.Z == f.MaxZ()
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// PatchGrid holds Resolution*Resolution control nets in row-major order.
type PatchGrid struct {
	Resolution int
	Nets       []bezier.ControlNet
}

// At returns the net of the patch at (row, col).
func (g PatchGrid) At(row, col int) bezier.ControlNet {
	return g.Nets[row*g.Resolution+col]
}

// Mesh is the combined buffer of every patch, ready for a renderer or collider.
type Mesh struct {
	Vertices []math.Vec3
	Indices  []int
	Normals  []math.Vec3 // empty until ComputeNormals runs
	Bounds   Bounds

	PatchCount       int
	PatchVertexCount int // vertices per patch; zero once welded
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// PatchVertices returns the vertex slice belonging to patch i, or nil when i is out
// of range or the mesh has been welded.
func (m *Mesh) PatchVertices(i int) []math.Vec3 {
	if m.PatchVertexCount <= 0 || i < 0 || i >= m.PatchCount {
		return nil
	}
	start := i * m.PatchVertexCount
	return m.Vertices[start : start+m.PatchVertexCount]
}

// PeakConfig controls how the interior control points are raised.
// Secondary rises get height/k with k drawn from [MinDivisor, MaxDivisor).
type PeakConfig struct {
	MinDivisor int
	MaxDivisor int
}

// DefaultPeakConfig draws divisors 2, 3 or 4.
func DefaultPeakConfig() PeakConfig {
	return PeakConfig{MinDivisor: 2, MaxDivisor: 5}
}

// PeakSelection records which interior point became the summit and the heights applied.
type PeakSelection struct {
	Index   int        // one of bezier.MidIndices
	Heights [4]float64 // applied height above origin, in bezier.MidIndices order
}

// NoiseOptions configures the noise post-process.
type NoiseOptions struct {
	Enabled    bool
	Kind       string // "perlin" or "simplex"
	Scale      float64
	Amplitude  float64 // 0 means 1
	ClampEdges bool
}

// Request describes one terrain to generate.
type Request struct {
	Origin     math.Vec3
	HalfWidth  float64
	HalfLength float64
	HeightMin  float64
	HeightMax  float64

	Resolution        int // patches per side
	SurfaceResolution int // segments along the longer side of each patch

	Peak  PeakConfig
	Noise NoiseOptions
	Weld  bool
}

// Footprint returns the request's ground rectangle.
func (r Request) Footprint() Footprint {
	return Footprint{Origin: r.Origin, HalfWidth: r.HalfWidth, HalfLength: r.HalfLength}
}
