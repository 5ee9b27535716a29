package terrain

import (
	gomath "math"

	"github.com/Faultbox/summitgen/pkg/math"
)

// Heightmap answers downward ray queries against a mesh.
// Triangles are bucketed into a uniform XZ grid so a query only tests nearby faces.
type Heightmap struct {
	mesh       *Mesh
	minX, minZ float64
	cellX      float64
	cellZ      float64
	cols, rows int
	cells      [][]int // triangle start offsets into mesh.Indices
}

// BuildHeightmap indexes the mesh's triangles. The mesh must not change afterwards.
func BuildHeightmap(mesh *Mesh) *Heightmap {
	tris := mesh.TriangleCount()
	side := max(1, int(gomath.Sqrt(float64(tris)/2)))

	hm := &Heightmap{
		mesh:  mesh,
		minX:  mesh.Bounds.Min.X,
		minZ:  mesh.Bounds.Min.Z,
		cellX: (mesh.Bounds.Max.X - mesh.Bounds.Min.X) / float64(side),
		cellZ: (mesh.Bounds.Max.Z - mesh.Bounds.Min.Z) / float64(side),
		cols:  side,
		rows:  side,
		cells: make([][]int, side*side),
	}

	for tri := 0; tri+2 < len(mesh.Indices); tri += 3 {
		a := mesh.Vertices[mesh.Indices[tri]]
		b := mesh.Vertices[mesh.Indices[tri+1]]
		c := mesh.Vertices[mesh.Indices[tri+2]]

		c0, r0 := hm.cell(gomath.Min(a.X, gomath.Min(b.X, c.X)), gomath.Min(a.Z, gomath.Min(b.Z, c.Z)))
		c1, r1 := hm.cell(gomath.Max(a.X, gomath.Max(b.X, c.X)), gomath.Max(a.Z, gomath.Max(b.Z, c.Z)))
		for r := r0; r <= r1; r++ {
			for col := c0; col <= c1; col++ {
				idx := r*hm.cols + col
				hm.cells[idx] = append(hm.cells[idx], tri)
			}
		}
	}

	return hm
}

// cell maps a ground position to clamped grid coordinates.
func (hm *Heightmap) cell(x, z float64) (col, row int) {
	if hm.cellX > 0 {
		col = int((x - hm.minX) / hm.cellX)
	}
	if hm.cellZ > 0 {
		row = int((z - hm.minZ) / hm.cellZ)
	}
	return clampi(col, 0, hm.cols-1), clampi(row, 0, hm.rows-1)
}

// HeightAt casts a ray straight down at (x, z) and returns the highest surface hit,
// interpolated barycentrically, along with that triangle's unit normal.
// ok is false when (x, z) is outside the mesh.
func (hm *Heightmap) HeightAt(x, z float64) (y float64, normal math.Vec3, ok bool) {
	b := hm.mesh.Bounds
	if x < b.Min.X || x > b.Max.X || z < b.Min.Z || z > b.Max.Z {
		return 0, math.Vec3{}, false
	}

	col, row := hm.cell(x, z)
	p := math.Vec2{X: x, Y: z}
	y = gomath.Inf(-1)
	for _, tri := range hm.cells[row*hm.cols+col] {
		a := hm.mesh.Vertices[hm.mesh.Indices[tri]]
		bv := hm.mesh.Vertices[hm.mesh.Indices[tri+1]]
		c := hm.mesh.Vertices[hm.mesh.Indices[tri+2]]

		wa, wb, wc, inside := barycentric(a.XZ(), bv.XZ(), c.XZ(), p)
		if !inside {
			continue
		}
		h := wa*a.Y + wb*bv.Y + wc*c.Y
		if h > y {
			y = h
			normal = bv.Sub(a).Cross(c.Sub(a)).Normalize()
			if normal.Y < 0 {
				normal = normal.Scale(-1)
			}
			ok = true
		}
	}

	if !ok {
		return 0, math.Vec3{}, false
	}
	return y, normal, true
}

// barycentric returns the weights of p against triangle abc on the ground plane.
func barycentric(a, b, c, p math.Vec2) (wa, wb, wc float64, inside bool) {
	ca, cb, cp := a.Sub(c), b.Sub(c), p.Sub(c)
	det := cb.Y*ca.X - cb.X*ca.Y
	if gomath.Abs(det) < 1e-15 {
		return 0, 0, 0, false
	}
	wa = (cb.Y*cp.X - cb.X*cp.Y) / det
	wb = (ca.X*cp.Y - ca.Y*cp.X) / det
	wc = 1 - wa - wb

	const eps = -1e-9
	return wa, wb, wc, wa >= eps && wb >= eps && wc >= eps
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
