package bezier

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/summitgen/pkg/math"
)

// basis converts four control points into cubic polynomial coefficients.
// Treat as constant.
var basis = mgl64.Mat4FromRows(
	mgl64.Vec4{-1, 3, -3, 1},
	mgl64.Vec4{3, -6, 3, 0},
	mgl64.Vec4{-3, 3, 0, 0},
	mgl64.Vec4{1, 0, 0, 0},
)

// Basis returns the Bernstein basis matrix.
func Basis() mgl64.Mat4 {
	return basis
}

// PatchBuffer holds the mesh data produced by evaluating one patch.
// Indices already include the vertex offset passed to Evaluate.
type PatchBuffer struct {
	Vertices []math.Vec3
	Indices  []int
}

// VertexCount returns the number of vertices for a patch tessellated at (uRes, vRes).
func VertexCount(uRes, vRes int) int {
	return (uRes + 1) * (vRes + 1)
}

// IndexCount returns the number of triangle indices for a patch tessellated at (uRes, vRes).
func IndexCount(uRes, vRes int) int {
	return uRes * vRes * 6
}

// coefficients holds per-axis cubic coefficients [a, b, c, d] for a*t^3 + b*t^2 + c*t + d.
// An axis whose four control values are equal is flagged constant and returned as is.
type coefficients struct {
	axis     [3]mgl64.Vec4
	constant [3]bool
	start    math.Vec3
	end      math.Vec3
}

func computeCoefficients(p0, p1, p2, p3 math.Vec3) coefficients {
	c := coefficients{start: p0, end: p3}
	for i, axis := range [3]math.Axis{math.AxisX, math.AxisY, math.AxisZ} {
		q := mgl64.Vec4{p0.Component(axis), p1.Component(axis), p2.Component(axis), p3.Component(axis)}
		c.axis[i] = basis.Mul4x1(q)
		c.constant[i] = q[0] == q[1] && q[1] == q[2] && q[2] == q[3]
	}
	return c
}

func (c coefficients) at(t float64) math.Vec3 {
	// a+b+c+d can drift from p3 by an ulp; boundary vertices must land exactly on p3.
	if t >= 1 {
		return c.end
	}
	tv := mgl64.Vec4{t * t * t, t * t, t, 1}
	var p math.Vec3
	for i, axis := range [3]math.Axis{math.AxisX, math.AxisY, math.AxisZ} {
		// Rim curves share one coordinate; the polynomial would round it.
		if c.constant[i] {
			p = p.WithComponent(axis, c.start.Component(axis))
			continue
		}
		p = p.WithComponent(axis, tv.Dot(c.axis[i]))
	}
	return p
}

// Curve evaluates the cubic Bezier curve through p0..p3 at t in [0, 1].
func Curve(p0, p1, p2, p3 math.Vec3, t float64) math.Vec3 {
	return computeCoefficients(p0, p1, p2, p3).at(t)
}

// EvaluatePoints checks that points form a control net and evaluates it.
func EvaluatePoints(points []math.Vec3, uRes, vRes, vertexOffset int) (PatchBuffer, error) {
	net, err := NewControlNet(points)
	if err != nil {
		return PatchBuffer{}, err
	}
	return Evaluate(net, uRes, vRes, vertexOffset)
}

// Evaluate tessellates a patch into (uRes+1)*(vRes+1) vertices and uRes*vRes*2 triangles.
//
// The u axis follows the net's rows (index/4) and v follows its columns (index%4).
// Vertex (u, v) is stored at u*(vRes+1)+v. Triangle indices are shifted by vertexOffset
// so the buffer can be appended to a shared mesh that already holds vertexOffset vertices.
func Evaluate(net ControlNet, uRes, vRes, vertexOffset int) (PatchBuffer, error) {
	if uRes < 1 || vRes < 1 {
		return PatchBuffer{}, fmt.Errorf("%w: got %dx%d", ErrInvalidResolution, uRes, vRes)
	}
	if vertexOffset < 0 {
		return PatchBuffer{}, fmt.Errorf("negative vertex offset %d", vertexOffset)
	}

	return PatchBuffer{
		Vertices: evaluateVertices(&net, uRes, vRes),
		Indices:  buildTriangles(uRes, vRes, vertexOffset),
	}, nil
}

func evaluateVertices(net *ControlNet, uRes, vRes int) []math.Vec3 {
	vertices := make([]math.Vec3, 0, VertexCount(uRes, vRes))

	// One curve per net column, each running along u.
	var columns [4]coefficients
	for k := range 4 {
		columns[k] = computeCoefficients(net[k], net[4+k], net[8+k], net[12+k])
	}

	for u := 0; u <= uRes; u++ {
		t := float64(u) / float64(uRes)
		section := computeCoefficients(columns[0].at(t), columns[1].at(t), columns[2].at(t), columns[3].at(t))

		for v := 0; v <= vRes; v++ {
			vertices = append(vertices, section.at(float64(v)/float64(vRes)))
		}
	}

	return vertices
}

func buildTriangles(uRes, vRes, vertexOffset int) []int {
	triangles := make([]int, 0, IndexCount(uRes, vRes))
	stride := vRes + 1

	for u := range uRes {
		for v := range vRes {
			a := vertexOffset + u*stride + v
			// Two triangles per quad, both wound so the normal faces +Y.
			triangles = append(triangles,
				a, a+1, a+stride,
				a+stride, a+1, a+stride+1,
			)
		}
	}

	return triangles
}
