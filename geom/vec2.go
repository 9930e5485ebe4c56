// Package geom is the small amount of plane geometry the layout and the walkers share.
package geom

import (
	"math"

	"github.com/fine-structures/rho/rho"
	"github.com/pkg/errors"
)

// Vec2 is a point or displacement in layout coordinates (y grows downward).
type Vec2 struct {
	X, Y float64
}

// Zero is the null vector.
var Zero = Vec2{}

func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{v.X + w.X, v.Y + w.Y}
}

func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{v.X - w.X, v.Y - w.Y}
}

func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{v.X * k, v.Y * k}
}

// Len returns the magnitude of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Dist returns the distance between points p and q.
func Dist(p, q Vec2) float64 {
	return q.Sub(p).Len()
}

// Resize returns v scaled to the given magnitude, keeping its direction.
// A zero vector has no direction and yields ErrDegenerateVector.
func (v Vec2) Resize(mag float64) (Vec2, error) {
	size := v.Len()
	if size == 0 {
		return Zero, errors.Wrapf(rho.ErrDegenerateVector, "resize to %v", mag)
	}
	return v.Scale(mag / size), nil
}

// Rotate turns v by rad radians.
func (v Vec2) Rotate(rad float64) Vec2 {
	sin, cos := math.Sincos(rad)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Lerp returns the point at fraction t along the segment p -> q.
func Lerp(p, q Vec2, t float64) Vec2 {
	return p.Add(q.Sub(p).Scale(t))
}

// OnSegment reports whether p lies on segment a -> b within tolerance eps.
func OnSegment(p, a, b Vec2, eps float64) bool {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return Dist(p, a) <= eps
	}
	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / lenSq
	if t < -eps || t > 1+eps {
		return false
	}
	t = math.Max(0, math.Min(1, t))
	return Dist(p, Lerp(a, b, t)) <= eps
}
