package terrain

import (
	"fmt"

	"github.com/Faultbox/summitgen/pkg/formats"
	"github.com/Faultbox/summitgen/pkg/math"
)

// ToTMSH converts the mesh to its on-disk form. Coordinates are narrowed to float32.
func (m *Mesh) ToTMSH() *formats.TMSH {
	out := &formats.TMSH{
		Version:          formats.CurrentTMSHVersion,
		PatchCount:       uint32(m.PatchCount),
		PatchVertexCount: uint32(m.PatchVertexCount),
		BoundsMin:        toFloat32(m.Bounds.Min),
		BoundsMax:        toFloat32(m.Bounds.Max),
		Vertices:         make([][3]float32, len(m.Vertices)),
		Indices:          make([]uint32, len(m.Indices)),
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = toFloat32(v)
	}
	if len(m.Normals) == len(m.Vertices) && len(m.Normals) > 0 {
		out.Normals = make([][3]float32, len(m.Normals))
		for i, n := range m.Normals {
			out.Normals[i] = toFloat32(n)
		}
	}
	for i, idx := range m.Indices {
		out.Indices[i] = uint32(idx)
	}
	return out
}

// MeshFromTMSH rebuilds a mesh from a decoded file. Bounds are recomputed from the vertices.
func MeshFromTMSH(t *formats.TMSH) (*Mesh, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("converting TMSH: %w", err)
	}

	m := &Mesh{
		Vertices:         make([]math.Vec3, len(t.Vertices)),
		Indices:          make([]int, len(t.Indices)),
		PatchCount:       int(t.PatchCount),
		PatchVertexCount: int(t.PatchVertexCount),
	}
	for i, v := range t.Vertices {
		m.Vertices[i] = fromFloat32(v)
	}
	if t.Normals != nil {
		m.Normals = make([]math.Vec3, len(t.Normals))
		for i, n := range t.Normals {
			m.Normals[i] = fromFloat32(n)
		}
	}
	for i, idx := range t.Indices {
		m.Indices[i] = int(idx)
	}
	m.UpdateBounds()
	return m, nil
}

func toFloat32(v math.Vec3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func fromFloat32(v [3]float32) math.Vec3 {
	return math.Vec3{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}
