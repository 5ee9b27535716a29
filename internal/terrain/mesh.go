package terrain

import (
	"fmt"
	gomath "math"

	"github.com/dgravesa/go-parallel/parallel"

	"github.com/Faultbox/summitgen/pkg/bezier"
	"github.com/Faultbox/summitgen/pkg/math"
)

// BuildTerrainMesh evaluates every patch of the grid at (uRes, vRes) and concatenates
// the results in row-major patch order. Patch i's indices are offset by the number of
// vertices emitted before it, so they address the shared vertex array directly.
//
// Patches are evaluated in parallel; the output is identical to a sequential build.
// Any failing patch aborts the build and no mesh is returned.
func BuildTerrainMesh(grid PatchGrid, uRes, vRes int) (*Mesh, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if uRes < 1 || vRes < 1 {
		return nil, fmt.Errorf("%w: tessellation %dx%d", bezier.ErrInvalidResolution, uRes, vRes)
	}

	perPatch := bezier.VertexCount(uRes, vRes)
	buffers := make([]bezier.PatchBuffer, len(grid.Nets))
	errs := make([]error, len(grid.Nets))

	parallel.For(len(grid.Nets), func(i, _ int) {
		buffers[i], errs[i] = bezier.Evaluate(grid.Nets[i], uRes, vRes, i*perPatch)
	})

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("patch %d: %w", i, err)
		}
	}

	mesh := &Mesh{
		Vertices:         make([]math.Vec3, 0, perPatch*len(buffers)),
		Indices:          make([]int, 0, bezier.IndexCount(uRes, vRes)*len(buffers)),
		PatchCount:       len(buffers),
		PatchVertexCount: perPatch,
	}
	for _, buf := range buffers {
		mesh.Vertices = append(mesh.Vertices, buf.Vertices...)
		mesh.Indices = append(mesh.Indices, buf.Indices...)
	}
	mesh.UpdateBounds()

	return mesh, nil
}

// UpdateBounds recomputes the bounding box from the current vertices.
func (m *Mesh) UpdateBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
		return
	}

	bounds := Bounds{
		Min: math.Vec3{X: gomath.Inf(1), Y: gomath.Inf(1), Z: gomath.Inf(1)},
		Max: math.Vec3{X: gomath.Inf(-1), Y: gomath.Inf(-1), Z: gomath.Inf(-1)},
	}
	for _, v := range m.Vertices {
		updateBounds(&bounds, v)
	}
	m.Bounds = bounds
}

func updateBounds(b *Bounds, p math.Vec3) {
	b.Min.X = gomath.Min(b.Min.X, p.X)
	b.Min.Y = gomath.Min(b.Min.Y, p.Y)
	b.Min.Z = gomath.Min(b.Min.Z, p.Z)
	b.Max.X = gomath.Max(b.Max.X, p.X)
	b.Max.Y = gomath.Max(b.Max.Y, p.Y)
	b.Max.Z = gomath.Max(b.Max.Z, p.Z)
}

// ComputeNormals fills Normals with smooth per-vertex normals.
// Each triangle contributes its unnormalized face normal, so larger faces weigh more.
// Vertices touched by no triangle get +Y.
func (m *Mesh) ComputeNormals() {
	normals := make([]math.Vec3, len(m.Vertices))

	for tri := 0; tri+2 < len(m.Indices); tri += 3 {
		i0, i1, i2 := m.Indices[tri], m.Indices[tri+1], m.Indices[tri+2]
		a, b, c := m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]

		face := b.Sub(a).Cross(c.Sub(a))
		normals[i0] = normals[i0].Add(face)
		normals[i1] = normals[i1].Add(face)
		normals[i2] = normals[i2].Add(face)
	}

	for i, n := range normals {
		if n.Length() < 1e-12 {
			normals[i] = math.Vec3{Y: 1}
			continue
		}
		normals[i] = n.Normalize()
	}
	m.Normals = normals
}

// Weld merges vertices closer than eps and rewrites the index buffer.
// Patch seams hold duplicated vertices; welding them lets smooth normals cross seams.
// Normals are dropped and must be recomputed.
func (m *Mesh) Weld(eps float64) {
	if eps <= 0 {
		eps = 1e-9
	}

	type key struct{ x, y, z int64 }
	quantize := func(v math.Vec3) key {
		return key{
			int64(gomath.Round(v.X / eps)),
			int64(gomath.Round(v.Y / eps)),
			int64(gomath.Round(v.Z / eps)),
		}
	}

	seen := make(map[key]int, len(m.Vertices))
	remap := make([]int, len(m.Vertices))
	welded := make([]math.Vec3, 0, len(m.Vertices))

	for i, v := range m.Vertices {
		k := quantize(v)
		if idx, ok := seen[k]; ok {
			remap[i] = idx
			continue
		}
		seen[k] = len(welded)
		remap[i] = len(welded)
		welded = append(welded, v)
	}

	for i, idx := range m.Indices {
		m.Indices[i] = remap[idx]
	}
	m.Vertices = welded
	m.Normals = nil
	m.PatchVertexCount = 0
}
