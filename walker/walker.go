package walker

import (
	"github.com/fine-structures/rho/rho"
	"github.com/fine-structures/rho/geom"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Root is the node both walkers start on.
const Root = 0

// Animator advances the tortoise and the hare over a graph, driven by Begin and Tick.
//
// The graph and the layout are only read, never owned.
type Animator struct {
	graph   rho.Graph
	layout  Positioner
	opts    Options
	walkers [NumRoles]State
	running bool

	// set once both walkers set out on the first tick of a pair cycle
	departed bool

	// set once the hare chained into its second hop; cleared when the pair stops
	firstHopDone bool
	pairCycles   int
	ticks        int
}

// New returns an Animator with both walkers resting on node 0.
func New(graph rho.Graph, layout Positioner, opts Options) (*Animator, error) {
	if graph == nil {
		return nil, rho.ErrNilGraph
	}
	if layout == nil {
		return nil, errors.Wrap(rho.ErrInvalidArgument, "nil layout")
	}
	if graph.Size() < 1 {
		return nil, errors.Wrap(rho.ErrInvalidArgument, "empty graph")
	}
	if opts.HareSpeed <= 0 || opts.TortoiseSpeed <= 0 {
		return nil, errors.Wrapf(rho.ErrInvalidArgument, "speeds must be positive (hare %v, tortoise %v)", opts.HareSpeed, opts.TortoiseSpeed)
	}

	A := &Animator{
		graph:  graph,
		layout: layout,
		opts:   opts,
	}
	if err := A.Reset(); err != nil {
		return nil, err
	}
	return A, nil
}

// Reset puts both walkers back on node 0 and stops the pair.
func (A *Animator) Reset() error {
	pos, err := A.layout.PositionOf(Root)
	if err != nil {
		return err
	}
	A.walkers[Hare] = State{
		Role:  Hare,
		Speed: A.opts.HareSpeed,
	}
	A.walkers[Tortoise] = State{
		Role:  Tortoise,
		Speed: A.opts.TortoiseSpeed,
	}
	for i := range A.walkers {
		w := &A.walkers[i]
		w.Current = Root
		w.Target = Root
		w.Pos = pos
		w.Phase = Idle
	}
	A.running = false
	A.departed = false
	A.firstHopDone = false
	A.pairCycles = 0
	A.ticks = 0
	return nil
}

// Begin starts a pair cycle.  It has no effect while a pair cycle is already running.
func (A *Animator) Begin() {
	if A.running {
		return
	}
	A.running = true
}

// Running reports if a pair cycle is in progress.
func (A *Animator) Running() bool {
	return A.running
}

// Snapshot returns a copy of both walkers' state.
func (A *Animator) Snapshot() Snapshot {
	return Snapshot{
		Walkers:      A.walkers,
		Running:      A.running,
		FirstHopDone: A.firstHopDone,
		PairCycles:   A.pairCycles,
		Ticks:        A.ticks,
	}
}

// Tick advances both walkers by one frame.  While the pair is not running nothing changes.
//
// An error means two distinct nodes share a position, or a lookup failed; either is a defect and the Animator
// should not be ticked again.
func (A *Animator) Tick() (TickReport, error) {
	rpt := TickReport{
		PairCycles: A.pairCycles,
	}
	if !A.running {
		return rpt, nil
	}
	rpt.Advanced = true
	A.ticks++

	H, T := &A.walkers[Hare], &A.walkers[Tortoise]

	// first tick of the pair: both set out for their successor
	departing := !A.departed
	if departing {
		for i := range A.walkers {
			if err := A.depart(&A.walkers[i]); err != nil {
				return rpt, err
			}
		}
		A.departed = true
	}

	for i := range A.walkers {
		w := &A.walkers[i]
		if !w.IsMoving() {
			// a hare that arrived on its departure tick takes its second hop from rest
			if w.Role == Hare && w.Phase == Arrived && !departing {
				if err := A.chain(w, &rpt); err != nil {
					return rpt, err
				}
			}
			continue
		}
		w.Pos = w.Pos.Add(w.Movement)

		dst, err := A.layout.PositionOf(w.Target)
		if err != nil {
			return rpt, err
		}
		if geom.Dist(w.Pos, dst) >= w.Speed {
			continue
		}

		// arrived
		w.Pos = dst
		w.Current = w.Target
		w.Movement = geom.Zero
		w.Phase = Arrived
		rpt.Arrivals[w.Role] = true

		if w.Role == Hare && !departing {
			if err = A.chain(w, &rpt); err != nil {
				return rpt, err
			}
		}
	}

	owed, err := A.owesSecondHop(H)
	if err != nil {
		return rpt, err
	}
	if !H.IsMoving() && !T.IsMoving() && !owed {
		A.running = false
		A.departed = false
		A.firstHopDone = false
		A.pairCycles++
		for i := range A.walkers {
			A.walkers[i].Phase = Idle
		}

		rpt.PairStopped = true
		rpt.PairCycles = A.pairCycles
		if H.Current == T.Current {
			rpt.Met = true
			rpt.MeetNode = H.Current
		}
		klog.V(2).Infof("pair cycle %d done after %d ticks: hare at %d, tortoise at %d", A.pairCycles, A.ticks, H.Current, T.Current)
	}

	return rpt, nil
}

// chain sends an arrived hare on to its next successor, once per pair cycle.
func (A *Animator) chain(H *State, rpt *TickReport) error {
	owed, err := A.owesSecondHop(H)
	if err != nil || !owed {
		return err
	}
	A.firstHopDone = true
	rpt.Chained = true
	return A.depart(H)
}

// owesSecondHop reports if the hare rests after its first hop with somewhere left to go.
func (A *Animator) owesSecondHop(H *State) (bool, error) {
	if A.firstHopDone || H.Phase != Arrived {
		return false, nil
	}
	next, err := A.graph.Neighbor(H.Current)
	if err != nil {
		return false, err
	}
	return next != H.Current, nil
}

// depart points a resting walker at the successor of its current node.  A walker on a self-loop stays Idle.
func (A *Animator) depart(w *State) error {
	next, err := A.graph.Neighbor(w.Current)
	if err != nil {
		return err
	}
	src, err := A.layout.PositionOf(w.Current)
	if err != nil {
		return err
	}

	w.Pos = src
	w.Target = next
	if next == w.Current {
		w.Movement = geom.Zero
		w.Phase = Idle
		return nil
	}

	dst, err := A.layout.PositionOf(next)
	if err != nil {
		return err
	}
	w.Movement, err = dst.Sub(src).Resize(w.Speed)
	if err != nil {
		return errors.Wrapf(err, "%v hop %d -> %d", w.Role, w.Current, next)
	}
	w.Phase = InTransit
	return nil
}
