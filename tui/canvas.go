package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fine-structures/rho/geom"
)

// Ink selects a style registered with Canvas.Ink; the zero Ink is unstyled.
type Ink int

type cell struct {
	ch  rune
	ink Ink
}

// Canvas is a grid of styled runes, one per terminal cell.
type Canvas struct {
	cols, rows int
	cells      []cell
	inks       []lipgloss.Style
}

func NewCanvas(cols, rows int) *Canvas {
	C := &Canvas{
		cols: max(cols, 1),
		rows: max(rows, 1),
		inks: []lipgloss.Style{lipgloss.NewStyle()},
	}
	C.cells = make([]cell, C.cols*C.rows)
	C.Clear()
	return C
}

func (C *Canvas) Size() (cols, rows int) {
	return C.cols, C.rows
}

// Clear blanks every cell.
func (C *Canvas) Clear() {
	for i := range C.cells {
		C.cells[i] = cell{ch: ' '}
	}
}

// Ink registers a style for use with Put, Text and Line.
func (C *Canvas) Ink(style lipgloss.Style) Ink {
	C.inks = append(C.inks, style)
	return Ink(len(C.inks) - 1)
}

// Put sets one cell; cells outside the canvas are ignored.
func (C *Canvas) Put(x, y int, ch rune, ink Ink) {
	if x < 0 || y < 0 || x >= C.cols || y >= C.rows {
		return
	}
	C.cells[y*C.cols+x] = cell{ch, ink}
}

// At returns the rune in the given cell.
func (C *Canvas) At(x, y int) rune {
	if x < 0 || y < 0 || x >= C.cols || y >= C.rows {
		return 0
	}
	return C.cells[y*C.cols+x].ch
}

// Text writes str starting at (x, y), clipped to the canvas.
func (C *Canvas) Text(x, y int, str string, ink Ink) {
	for _, ch := range str {
		C.Put(x, y, ch, ink)
		x++
	}
}

// Line draws from (x0, y0) to (x1, y1) inclusive (Bresenham).
func (C *Canvas) Line(x0, y0, x1, y1 int, ch rune, ink Ink) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		C.Put(x0, y0, ch, ink)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the canvas, one line per row, merging runs of the same ink.
func (C *Canvas) String() string {
	b := strings.Builder{}
	b.Grow(C.rows * (C.cols + 1))
	run := strings.Builder{}
	for y := 0; y < C.rows; y++ {
		row := C.cells[y*C.cols : (y+1)*C.cols]
		for x := 0; x < len(row); {
			ink := row[x].ink
			run.Reset()
			for ; x < len(row) && row[x].ink == ink; x++ {
				run.WriteRune(row[x].ch)
			}
			if ink == 0 {
				b.WriteString(run.String())
			} else {
				b.WriteString(C.inks[ink].Render(run.String()))
			}
		}
		if y < C.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Projection maps layout coordinates onto terminal cells, keeping circles round given cells twice as tall as wide.
type Projection struct {
	scale      float64
	offX, offY float64
}

// NewProjection fits a width x height layout viewport into cols x rows cells.
func NewProjection(width, height float64, cols, rows int) Projection {
	scale := math.Min(float64(cols)/width, 2*float64(rows)/height)
	return Projection{
		scale: scale,
		offX:  (float64(cols) - width*scale) / 2,
		offY:  (float64(rows) - height*scale/2) / 2,
	}
}

// Cell returns the cell containing layout point p.
func (P Projection) Cell(p geom.Vec2) (x, y int) {
	return int(math.Floor(p.X*P.scale + P.offX)), int(math.Floor(p.Y*P.scale/2 + P.offY))
}

// Scale returns how many cell widths one layout unit spans.
func (P Projection) Scale() float64 {
	return P.scale
}
