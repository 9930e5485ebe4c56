package tui

import (
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fine-structures/rho/geom"
	"github.com/fine-structures/rho/session"
	"github.com/fine-structures/rho/walker"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	nodeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#147814")).
			Bold(true)

	hareStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffc8ff")).
			Bold(true)

	tortoiseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c8ffc8")).
			Bold(true)

	metStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Hue returns the color of step i of an n-step walk: evenly spaced around the color wheel.
func Hue(i, n int) lipgloss.Color {
	hue := 0
	if n > 0 {
		hue = int(360/float64(n)*float64(i)) % 360
	}
	return lipgloss.Color(colorful.Hsv(float64(hue), 0.7, 0.7).Hex())
}

var arrowGlyphs = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// arrowGlyph picks the arrow rune closest to the direction of dir (y grows downward).
func arrowGlyph(dir geom.Vec2) rune {
	octant := int(math.Round(math.Atan2(dir.Y, dir.X)/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return arrowGlyphs[octant]
}

// render draws the session's edges, nodes and walkers onto a cols x rows canvas.
func render(sess *session.Session, cols, rows int) (*Canvas, error) {
	C := NewCanvas(cols, rows)
	cols, rows = C.Size()
	L := sess.Layout()
	opts := L.Options()
	proj := NewProjection(opts.Width, opts.Height, cols, rows)

	edges, err := sess.Edges()
	if err != nil {
		return nil, err
	}
	N := sess.Graph().Size()
	dim := C.Ink(dimStyle)
	for _, edge := range edges {
		ink := dim
		if edge.Step >= 0 {
			ink = C.Ink(lipgloss.NewStyle().Foreground(Hue(edge.Step, N)))
		}
		x0, y0 := proj.Cell(edge.Tail)
		x1, y1 := proj.Cell(edge.Tip)
		if edge.SelfLoop {
			drawLoop(C, proj, edge.Loop.Center, edge.Loop.Radius, ink)
		} else {
			C.Line(x0, y0, x1, y1, '·', ink)
		}
		C.Put(x1, y1, arrowGlyph(edge.Tip.Sub(edge.Barbs[0].Add(edge.Barbs[1]).Scale(0.5))), ink)
	}

	node := C.Ink(nodeStyle)
	for i := 0; i < N; i++ {
		pos, err := L.PositionOf(i)
		if err != nil {
			return nil, err
		}
		label := strconv.Itoa(i)
		x, y := proj.Cell(pos)
		C.Text(x-len(label)/2, y, label, node)
	}

	snap := sess.Snapshot()
	for _, w := range []struct {
		state walker.State
		ch    rune
		ink   Ink
	}{
		{snap.Tortoise(), 'T', C.Ink(tortoiseStyle)},
		{snap.Hare(), 'H', C.Ink(hareStyle)},
	} {
		x, y := proj.Cell(w.state.Pos)
		y--
		if C.At(x, y) == 'T' {
			C.Put(x, y, '*', C.Ink(metStyle))
			continue
		}
		C.Put(x, y, w.ch, w.ink)
	}
	return C, nil
}

// drawLoop plots a circle given in layout coordinates.
func drawLoop(C *Canvas, proj Projection, center geom.Vec2, radius float64, ink Ink) {
	steps := max(12, int(2*math.Pi*radius*proj.Scale()))
	for i := 0; i < steps; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(steps))
		x, y := proj.Cell(center.Add(geom.Vec2{X: radius * cos, Y: radius * sin}))
		C.Put(x, y, '·', ink)
	}
}
