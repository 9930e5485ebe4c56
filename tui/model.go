// Package tui shows a tortoise & hare session in the terminal.
//
// The model is driven entirely by bubbletea: a frame message arrives FPS times a second and advances the
// animation by TicksPerFrame ticks; space starts the next pair cycle.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fine-structures/rho/funcgraph"
	"github.com/fine-structures/rho/session"
	"github.com/plan-systems/klog"
)

// Config specifies the frame clock and the canvas size.
type Config struct {
	FPS           int // frames per second
	TicksPerFrame int // animation ticks per frame
	Cols, Rows    int // canvas size in cells; 0 follows the terminal
}

var DefaultConfig = Config{
	FPS:           60,
	TicksPerFrame: 8,
}

type frameMsg time.Time

// Model is the bubbletea model for one session.
type Model struct {
	sess   *session.Session
	rng    funcgraph.Rand
	cfg    Config
	keys   keyMap
	help   help.Model
	width  int
	height int

	metAt    int // pair cycle at which the walkers first met, 0 if not yet
	meetNode int
	quitting bool
	err      error
}

// NewModel returns a model showing sess; rng is used when a new graph is requested.
func NewModel(sess *session.Session, rng funcgraph.Rand, cfg Config) Model {
	if cfg.FPS < 1 {
		cfg.FPS = DefaultConfig.FPS
	}
	if cfg.TicksPerFrame < 1 {
		cfg.TicksPerFrame = DefaultConfig.TicksPerFrame
	}
	return Model{
		sess:   sess,
		rng:    rng,
		cfg:    cfg,
		keys:   defaultKeyMap(),
		help:   help.New(),
		width:  80,
		height: 24,
	}
}

// Err returns the error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) frame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FPS), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.frame()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Begin):
			m.sess.Begin()

		case key.Matches(msg, m.keys.Reset):
			m.metAt = 0
			return m.fail(m.sess.Reset())

		case key.Matches(msg, m.keys.New):
			if m.rng != nil {
				m.metAt = 0
				return m.fail(m.sess.Regenerate(m.rng))
			}

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case frameMsg:
		for i := 0; i < m.cfg.TicksPerFrame; i++ {
			rpt, err := m.sess.Tick()
			if err != nil {
				return m.fail(err)
			}
			if rpt.PairStopped && rpt.Met && m.metAt == 0 {
				m.metAt = rpt.PairCycles
				m.meetNode = rpt.MeetNode
			}
		}
		return m, m.frame()
	}

	return m, nil
}

// fail ends the program with err; a nil err changes nothing.
func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	if err == nil {
		return m, nil
	}
	klog.Errorf("animation stopped: %v", err)
	m.err = err
	m.quitting = true
	return m, tea.Quit
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		if m.err != nil {
			return fmt.Sprintf("error: %v\n", m.err)
		}
		return ""
	}

	cols, rows := m.cfg.Cols, m.cfg.Rows
	if cols <= 0 {
		cols = m.width
	}
	if rows <= 0 {
		rows = m.height - 3
	}

	b := strings.Builder{}
	canvas, err := render(m.sess, cols, rows)
	if err != nil {
		fmt.Fprintf(&b, "render: %v\n", err)
	} else {
		b.WriteString(canvas.String())
		b.WriteByte('\n')
	}
	b.WriteString(m.status())
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) status() string {
	res := m.sess.Result()
	snap := m.sess.Snapshot()

	b := strings.Builder{}
	fmt.Fprintf(&b, "nodes %d  entry %d  tail %d  cycle %d", m.sess.Graph().Size(), res.Entry, res.TailLen, res.CycleLen)
	fmt.Fprintf(&b, "  |  pair cycles %d  hare %d  tortoise %d", snap.PairCycles, snap.Hare().Current, snap.Tortoise().Current)
	switch {
	case m.metAt > 0:
		b.WriteString(metStyle.Render(fmt.Sprintf("  met at %d after %d", m.meetNode, m.metAt)))
	case snap.Running:
		b.WriteString(dimStyle.Render("  running"))
	default:
		b.WriteString(dimStyle.Render("  press space"))
	}
	return b.String()
}
