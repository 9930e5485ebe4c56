// Package session ties one functional graph to its layout and its tortoise & hare animation.
package session

import (
	"fmt"
	"io"

	"github.com/fine-structures/rho/rho"
	"github.com/fine-structures/rho/floyd"
	"github.com/fine-structures/rho/funcgraph"
	"github.com/fine-structures/rho/layout"
	"github.com/fine-structures/rho/walker"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Options specifies the graph of a session and how it is shown.
type Options struct {
	Source funcgraph.Source // node count or explicit successors
	Mode   rho.GenMode      // how a random graph is drawn
	Layout layout.Options
	Walker walker.Options
}

// DefaultOptions draws a 10-node graph whose successors avoid node 0.
var DefaultOptions = Options{
	Source: funcgraph.Source{Count: 10},
	Mode:   rho.GenNonZero,
	Layout: layout.DefaultOptions,
	Walker: walker.DefaultOptions,
}

// Session owns a graph and the layout and animator that read it.
type Session struct {
	opts   Options
	graph  *funcgraph.Graph
	layout *layout.Circle
	anim   *walker.Animator
	result rho.CycleResult
}

// New builds the graph described by opts.Source (drawing from rng if it is a node count), lays it out, and runs
// cycle detection once.
func New(opts Options, rng funcgraph.Rand) (*Session, error) {
	X, err := opts.Source.Build(rng, opts.Mode)
	if err != nil {
		return nil, errors.Wrap(err, "build graph")
	}
	S := &Session{
		opts: opts,
	}
	if err = S.setGraph(X); err != nil {
		return nil, err
	}
	return S, nil
}

func (S *Session) setGraph(X *funcgraph.Graph) error {
	L, err := layout.New(X.Size(), S.opts.Layout)
	if err != nil {
		return errors.Wrap(err, "layout")
	}
	anim, err := walker.New(X, L, S.opts.Walker)
	if err != nil {
		return errors.Wrap(err, "animator")
	}
	res, err := floyd.Detect(X)
	if err != nil {
		return errors.Wrap(err, "detect")
	}

	S.graph = X
	S.layout = L
	S.anim = anim
	S.result = res
	klog.V(2).Infof("session: %d nodes, cycle entry %d (tail %d, cycle %d)", X.Size(), res.Entry, res.TailLen, res.CycleLen)
	return nil
}

// Regenerate draws a new graph for a session built from a node count, and restarts the animation on it.
// A session built from an explicit sequence keeps its graph and is only reset.
func (S *Session) Regenerate(rng funcgraph.Rand) error {
	if S.opts.Source.IsSequence() {
		return S.Reset()
	}
	X, err := S.opts.Source.Build(rng, S.opts.Mode)
	if err != nil {
		return errors.Wrap(err, "build graph")
	}
	return S.setGraph(X)
}

func (S *Session) Options() Options {
	return S.opts
}

func (S *Session) Graph() *funcgraph.Graph {
	return S.graph
}

func (S *Session) Layout() *layout.Circle {
	return S.layout
}

// Result returns where the cycle reachable from node 0 begins.
func (S *Session) Result() rho.CycleResult {
	return S.result
}

// Begin starts the next pair cycle of the walkers (a no-op while one is running).
func (S *Session) Begin() {
	S.anim.Begin()
}

func (S *Session) Tick() (walker.TickReport, error) {
	return S.anim.Tick()
}

func (S *Session) Running() bool {
	return S.anim.Running()
}

func (S *Session) Snapshot() walker.Snapshot {
	return S.anim.Snapshot()
}

// Reset puts both walkers back on node 0.
func (S *Session) Reset() error {
	return S.anim.Reset()
}

// WriteDebug prints the successor line, the index line and the cycle entry, as selected by opts.
func (S *Session) WriteDebug(out io.Writer, opts rho.PrintOpts) {
	S.graph.WriteAsString(out, opts)
	if opts.Cycle {
		if len(opts.Label) > 0 {
			fmt.Fprintf(out, "%s ", opts.Label)
		}
		fmt.Fprintf(out, "%d\n", S.result.Entry)
	}
}

// Edge is an arrow to draw along with its place in the walk from node 0.
type Edge struct {
	layout.Arrow
	Step int // position in the walk from node 0, or -1 if the walk never takes this edge
}

// Edges returns the arrows of the graph: first the n steps of the walk from node 0 in order (edges on the cycle
// appear more than once), then the edges of nodes the walk never reaches.
func (S *Session) Edges() ([]Edge, error) {
	N := S.graph.Size()
	edges := make([]Edge, 0, 2*N)
	reached := make([]bool, N)

	from := walker.Root
	for i := 0; i < N; i++ {
		to, err := S.graph.Neighbor(from)
		if err != nil {
			return nil, err
		}
		arrow, err := S.layout.Arrow(from, to)
		if err != nil {
			return nil, err
		}
		edges = append(edges, Edge{arrow, i})
		reached[from] = true
		from = to
	}

	for from := 0; from < N; from++ {
		if reached[from] {
			continue
		}
		to, err := S.graph.Neighbor(from)
		if err != nil {
			return nil, err
		}
		arrow, err := S.layout.Arrow(from, to)
		if err != nil {
			return nil, err
		}
		edges = append(edges, Edge{arrow, -1})
	}
	return edges, nil
}
