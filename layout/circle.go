// Package layout places the nodes of a functional graph evenly on a circle and computes the arrow drawn for each
// node's outgoing edge.
package layout

import (
	"math"

	"github.com/fine-structures/rho/rho"
	"github.com/fine-structures/rho/geom"
	"github.com/pkg/errors"
)

// Options specifies the viewport and the circle the nodes sit on.
type Options struct {
	Width   float64 // viewport width
	Height  float64 // viewport height
	Radius  float64 // distance of each node from the viewport center
	Offset  float64 // angle of node 0, in radians
	HeadLen float64 // length of an arrow head
}

// DefaultOptions puts node 0 at the top of an 800x700 viewport (y grows downward).
var DefaultOptions = Options{
	Width:   800,
	Height:  700,
	Radius:  200,
	Offset:  -math.Pi / 2,
	HeadLen: 20,
}

// Circle maps node indices to points on a circle.
type Circle struct {
	opts   Options
	center geom.Vec2
	step   float64
	pos    []geom.Vec2
}

// New lays out nodeCount nodes; node i sits at angle i*2π/nodeCount + opts.Offset.
func New(nodeCount int, opts Options) (*Circle, error) {
	if nodeCount < 1 {
		return nil, errors.Wrapf(rho.ErrInvalidArgument, "node count %d must be at least 1", nodeCount)
	}
	if opts.Width <= 0 || opts.Height <= 0 || opts.Radius <= 0 {
		return nil, errors.Wrapf(rho.ErrInvalidArgument, "bad viewport %vx%v with radius %v", opts.Width, opts.Height, opts.Radius)
	}
	if opts.HeadLen < 0 {
		return nil, errors.Wrapf(rho.ErrInvalidArgument, "arrow head length %v", opts.HeadLen)
	}

	L := &Circle{
		opts: opts,
		center: geom.Vec2{
			X: opts.Width / 2,
			Y: opts.Height / 2,
		},
		step: 2 * math.Pi / float64(nodeCount),
		pos:  make([]geom.Vec2, nodeCount),
	}
	for i := range L.pos {
		sin, cos := math.Sincos(float64(i)*L.step + opts.Offset)
		L.pos[i] = geom.Vec2{
			X: L.center.X + opts.Radius*cos,
			Y: L.center.Y + opts.Radius*sin,
		}
	}
	return L, nil
}

func (L *Circle) Options() Options {
	return L.opts
}

// Size returns the number of nodes laid out.
func (L *Circle) Size() int {
	return len(L.pos)
}

// Center returns the viewport center.
func (L *Circle) Center() geom.Vec2 {
	return L.center
}

// PositionOf returns the center of the given node's marker.
func (L *Circle) PositionOf(node int) (geom.Vec2, error) {
	if node < 0 || node >= len(L.pos) {
		return geom.Zero, errors.Wrapf(rho.ErrOutOfRange, "node %d of %d", node, len(L.pos))
	}
	return L.pos[node], nil
}

// NodeRadius returns the radius of a node marker: a quarter of the arc length between neighboring nodes.
func (L *Circle) NodeRadius() float64 {
	return 2 * math.Pi * L.opts.Radius / (4 * float64(len(L.pos)))
}
