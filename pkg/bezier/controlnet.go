// Package bezier evaluates bicubic Bezier surface patches into mesh buffers.
package bezier

import (
	"errors"
	"fmt"

	"github.com/Faultbox/summitgen/pkg/math"
)

// NetSize is the number of control points in a bicubic patch.
const NetSize = 16

// Bezier errors.
var (
	ErrMalformedControlNet = errors.New("malformed control net: expected 16 points")
	ErrInvalidResolution   = errors.New("invalid resolution: must be at least 1")
)

// Fixed index subsets of a 4x4 control net (index = row*4 + col).
var (
	LeftIndices  = [4]int{0, 1, 2, 3}
	RightIndices = [4]int{12, 13, 14, 15}
	FrontIndices = [4]int{3, 7, 11, 15}
	BackIndices  = [4]int{0, 4, 8, 12}
	MidIndices   = [4]int{5, 6, 9, 10}
)

// ControlNet holds the 16 control points of one patch, row-major.
type ControlNet [NetSize]math.Vec3

// NewControlNet copies points into a ControlNet.
// Returns ErrMalformedControlNet unless exactly 16 points are given.
func NewControlNet(points []math.Vec3) (ControlNet, error) {
	var net ControlNet
	if len(points) != NetSize {
		return net, fmt.Errorf("%w: got %d", ErrMalformedControlNet, len(points))
	}
	copy(net[:], points)
	return net, nil
}

// At returns the control point at (row, col).
func (n *ControlNet) At(row, col int) math.Vec3 {
	return n[row*4+col]
}

// Set replaces the control point at (row, col).
func (n *ControlNet) Set(row, col int, p math.Vec3) {
	n[row*4+col] = p
}

// Left returns the points at indices {0,1,2,3}.
func (n *ControlNet) Left() [4]math.Vec3 { return n.points(LeftIndices) }

// Right returns the points at indices {12,13,14,15}.
func (n *ControlNet) Right() [4]math.Vec3 { return n.points(RightIndices) }

// Front returns the points at indices {3,7,11,15}.
func (n *ControlNet) Front() [4]math.Vec3 { return n.points(FrontIndices) }

// Back returns the points at indices {0,4,8,12}.
func (n *ControlNet) Back() [4]math.Vec3 { return n.points(BackIndices) }

// Mid returns the interior points at indices {5,6,9,10}.
func (n *ControlNet) Mid() [4]math.Vec3 { return n.points(MidIndices) }

// SetLeft replaces the points at indices {0,1,2,3}.
func (n *ControlNet) SetLeft(p [4]math.Vec3) { n.setPoints(LeftIndices, p) }

// SetRight replaces the points at indices {12,13,14,15}.
func (n *ControlNet) SetRight(p [4]math.Vec3) { n.setPoints(RightIndices, p) }

// SetFront replaces the points at indices {3,7,11,15}.
func (n *ControlNet) SetFront(p [4]math.Vec3) { n.setPoints(FrontIndices, p) }

// SetBack replaces the points at indices {0,4,8,12}.
func (n *ControlNet) SetBack(p [4]math.Vec3) { n.setPoints(BackIndices, p) }

// SetMid replaces the interior points at indices {5,6,9,10}.
func (n *ControlNet) SetMid(p [4]math.Vec3) { n.setPoints(MidIndices, p) }

// SetEdges sets every boundary point to value.
func (n *ControlNet) SetEdges(value math.Vec3) {
	for _, indices := range [][4]int{FrontIndices, BackIndices, LeftIndices, RightIndices} {
		for _, idx := range indices {
			n[idx] = value
		}
	}
}

// SetEdgeCoord sets one coordinate of every boundary point, e.g. flattening the rim to a height.
func (n *ControlNet) SetEdgeCoord(axis math.Axis, value float64) {
	for _, indices := range [][4]int{FrontIndices, BackIndices, LeftIndices, RightIndices} {
		for _, idx := range indices {
			n[idx] = n[idx].WithComponent(axis, value)
		}
	}
}

// ComputePoints assigns all four edges and then derives the interior points from them.
// Corner points are shared between edges; later edges win (left, right, front, back).
func (n *ControlNet) ComputePoints(left, right, front, back [4]math.Vec3) {
	n.SetLeft(left)
	n.SetRight(right)
	n.SetFront(front)
	n.SetBack(back)
	n.InterpolateMid()
}

// InterpolateMid places each interior point at the centroid of its nearest corner
// and the two edge points adjacent to that corner.
func (n *ControlNet) InterpolateMid() {
	n[5] = centroid(n[0], n[1], n[4])
	n[6] = centroid(n[2], n[3], n[7])
	n[9] = centroid(n[8], n[12], n[13])
	n[10] = centroid(n[11], n[14], n[15])
}

func (n *ControlNet) points(indices [4]int) [4]math.Vec3 {
	var out [4]math.Vec3
	for i, idx := range indices {
		out[i] = n[idx]
	}
	return out
}

func (n *ControlNet) setPoints(indices [4]int, values [4]math.Vec3) {
	for i, idx := range indices {
		n[idx] = values[i]
	}
}

func centroid(a, b, c math.Vec3) math.Vec3 {
	return a.Add(b).Add(c).Scale(1.0 / 3.0)
}
