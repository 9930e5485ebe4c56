package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fine-structures/rho/funcgraph"
	"github.com/fine-structures/rho/geom"
	"github.com/fine-structures/rho/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T, succ ...int) Model {
	t.Helper()
	opts := session.DefaultOptions
	opts.Source = funcgraph.Source{Values: succ}
	sess, err := session.New(opts, nil)
	require.NoError(t, err)
	return NewModel(sess, nil, Config{FPS: 60, TicksPerFrame: 50, Cols: 60, Rows: 24})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func runeKey(ch rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{ch}}
}

func TestSpaceStartsPairCycle(t *testing.T) {
	m := newModel(t, 1, 2, 0)
	assert.NotNil(t, m.Init())

	// frames before space change nothing
	m, cmd := update(t, m, frameMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.Equal(t, 0, m.sess.Snapshot().Ticks)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, m.sess.Running())

	frames := 0
	for m.sess.Running() {
		m, cmd = update(t, m, frameMsg(time.Now()))
		require.NotNil(t, cmd)
		frames++
		require.Less(t, frames, 10000)
	}
	assert.Greater(t, frames, 1)
	snap := m.sess.Snapshot()
	assert.Equal(t, 1, snap.PairCycles)
	assert.Equal(t, 2, snap.Hare().Current)
	assert.Equal(t, 1, snap.Tortoise().Current)
}

func TestMeetIsReported(t *testing.T) {
	m := newModel(t, 1, 2, 0)
	for pair := 0; pair < 3; pair++ {
		m, _ = update(t, m, runeKey(' '))
		for m.sess.Running() {
			m, _ = update(t, m, frameMsg(time.Now()))
		}
	}
	assert.Equal(t, 3, m.metAt)
	assert.Equal(t, 0, m.meetNode)
	assert.Contains(t, m.status(), "met at 0 after 3")

	m, _ = update(t, m, runeKey('r'))
	assert.Equal(t, 0, m.metAt)
	assert.Equal(t, 0, m.sess.Snapshot().PairCycles)
}

func TestQuit(t *testing.T) {
	m := newModel(t, 0)
	m, cmd := update(t, m, runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.NoError(t, m.Err())
	assert.Equal(t, "", m.View())
}

func TestView(t *testing.T) {
	m := newModel(t, 1, 2, 3, 4, 2)
	view := m.View()
	for _, label := range []string{"0", "1", "2", "3", "4"} {
		assert.Contains(t, view, label)
	}
	// both walkers start on node 0
	assert.Contains(t, view, "*")
	assert.Contains(t, view, "entry 2  tail 2  cycle 3")
	assert.Contains(t, view, "press space")
}

func TestCanvas(t *testing.T) {
	C := NewCanvas(5, 3)
	C.Line(0, 0, 4, 2, '#', 0)
	C.Text(3, 0, "abc", 0)
	assert.Equal(t, "#  ab\n ##  \n   ##", C.String())

	C.Put(-1, 0, 'x', 0)
	C.Put(5, 0, 'x', 0)
	assert.Equal(t, rune(0), C.At(9, 9))
	assert.Equal(t, '#', C.At(2, 1))
}

func TestProjectionKeepsAspect(t *testing.T) {
	P := NewProjection(800, 700, 80, 35)
	x0, y0 := P.Cell(geom.Vec2{X: 0, Y: 0})
	x1, y1 := P.Cell(geom.Vec2{X: 800, Y: 700})
	assert.GreaterOrEqual(t, x0, 0)
	assert.GreaterOrEqual(t, y0, 0)
	assert.LessOrEqual(t, x1, 80)
	assert.LessOrEqual(t, y1, 35)

	// a circle spans twice as many columns as rows
	c := geom.Vec2{X: 400, Y: 350}
	xr, _ := P.Cell(c.Add(geom.Vec2{X: 200}))
	xc, yc := P.Cell(c)
	_, yr := P.Cell(c.Add(geom.Vec2{Y: 200}))
	assert.InDelta(t, float64(xr-xc), 2*float64(yr-yc), 2)
}

func TestArrowGlyph(t *testing.T) {
	assert.Equal(t, '→', arrowGlyph(geom.Vec2{X: 1}))
	assert.Equal(t, '↓', arrowGlyph(geom.Vec2{Y: 1}))
	assert.Equal(t, '↑', arrowGlyph(geom.Vec2{Y: -1}))
	assert.Equal(t, '←', arrowGlyph(geom.Vec2{X: -1}))
	assert.Equal(t, '↗', arrowGlyph(geom.Vec2{X: 1, Y: -1}))
}

func TestHue(t *testing.T) {
	assert.Equal(t, Hue(0, 6), Hue(6, 6))
	assert.NotEqual(t, Hue(0, 6), Hue(3, 6))
	assert.Equal(t, "#b33636", string(Hue(0, 4)))
}
