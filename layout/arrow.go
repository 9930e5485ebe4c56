package layout

import (
	"math"

	"github.com/fine-structures/rho/geom"
	"github.com/pkg/errors"
)

// Arrow is the drawable form of the edge from one node to its successor.
//
// A straight arrow runs from the center of the From marker to the rim of the To marker (so it is hidden under the
// From marker and its tip touches the To marker). A self-loop is a circle of the marker's radius sitting just
// outside the disk, with its head near where the loop rejoins the node.
type Arrow struct {
	From, To int
	Tail     geom.Vec2
	Tip      geom.Vec2
	Barbs    [2]geom.Vec2 // back corners of the head triangle
	SelfLoop bool
	Loop     Loop // valid only when SelfLoop is set
}

// Loop is the circle drawn for a self-loop.
type Loop struct {
	Center geom.Vec2
	Radius float64
}

// Arrow returns the arrow for the edge from -> to.
func (L *Circle) Arrow(from, to int) (Arrow, error) {
	arrow := Arrow{
		From: from,
		To:   to,
	}
	pos1, err := L.PositionOf(from)
	if err != nil {
		return arrow, err
	}
	pos2, err := L.PositionOf(to)
	if err != nil {
		return arrow, err
	}
	r := L.NodeRadius()

	var far geom.Vec2
	if from != to {
		gap, err := pos2.Sub(pos1).Resize(r + 2)
		if err != nil {
			return arrow, errors.Wrapf(err, "arrow %d -> %d", from, to)
		}
		arrow.Tail = pos1
		arrow.Tip = pos2.Sub(gap)
		far = pos1
	} else {
		out, err := pos1.Sub(L.center).Resize(r)
		if err != nil {
			return arrow, errors.Wrapf(err, "self-loop at %d", from)
		}
		arrow.SelfLoop = true
		arrow.Loop = Loop{
			Center: pos1.Add(out),
			Radius: r,
		}
		tip := out.Rotate(math.Pi / 3)
		arrow.Tail = pos1
		arrow.Tip = pos1.Add(tip)
		far = pos1.Add(tip.Rotate(-math.Pi / 7).Scale(3))
	}

	arrow.Barbs, err = L.head(far, arrow.Tip)
	return arrow, err
}

// head returns the two back corners of an arrow head pointing from far toward tip.
func (L *Circle) head(far, tip geom.Vec2) ([2]geom.Vec2, error) {
	var barbs [2]geom.Vec2
	if L.opts.HeadLen == 0 {
		barbs[0], barbs[1] = tip, tip
		return barbs, nil
	}
	back, err := far.Sub(tip).Resize(L.opts.HeadLen)
	if err != nil {
		return barbs, errors.Wrap(err, "arrow head")
	}
	side := geom.Vec2{X: back.Y, Y: -back.X}.Scale(0.5)
	mid := tip.Add(back)
	barbs[0] = mid.Add(side)
	barbs[1] = mid.Sub(side)
	return barbs, nil
}
