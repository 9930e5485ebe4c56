// Package walker animates the tortoise and the hare along the edges of a functional graph, one tick per frame.
//
// Both walkers start at node 0. Each Begin starts one pair cycle: the tortoise makes one hop while the hare makes
// up to two, and the pair stops once both are at rest. After k pair cycles the tortoise rests on f^k(0) and the
// hare on f^2k(0), so the walkers visibly meet where Floyd's first phase does.
package walker

import (
	"github.com/fine-structures/rho/geom"
)

// Role names one of the two walkers.
type Role int

const (
	Hare Role = iota
	Tortoise

	NumRoles = 2
)

func (role Role) String() string {
	switch role {
	case Hare:
		return "hare"
	case Tortoise:
		return "tortoise"
	}
	return "unknown"
}

// Phase is where a walker is in its hop.
type Phase int

const (
	Idle      Phase = iota // resting at Current
	InTransit              // moving from Current toward Target
	Arrived                // reached Current this pair cycle; waiting for the other walker
)

func (phase Phase) String() string {
	switch phase {
	case Idle:
		return "idle"
	case InTransit:
		return "in-transit"
	case Arrived:
		return "arrived"
	}
	return "unknown"
}

// Positioner maps a node index to where it is drawn.
type Positioner interface {
	PositionOf(node int) (geom.Vec2, error)
}

// Options specifies how fast the walkers move, in layout units per tick.
type Options struct {
	HareSpeed     float64
	TortoiseSpeed float64
}

var DefaultOptions = Options{
	HareSpeed:     0.8,
	TortoiseSpeed: 0.4,
}

// State is a walker's state as of the last tick.
type State struct {
	Role     Role
	Current  int       // node the walker last left or rests on
	Target   int       // node the walker moves toward (equal to Current when at rest)
	Pos      geom.Vec2 // always on the segment Current -> Target
	Movement geom.Vec2 // displacement per tick; zero unless InTransit
	Speed    float64
	Phase    Phase
}

// IsMoving reports if this walker is between nodes.
func (st *State) IsMoving() bool {
	return st.Phase == InTransit
}

// Snapshot is the state of both walkers.
type Snapshot struct {
	Walkers      [NumRoles]State
	Running      bool
	FirstHopDone bool // set once the hare has chained its second hop in the current pair cycle
	PairCycles   int  // completed pair cycles since the last reset
	Ticks        int  // ticks that advanced the walkers since the last reset
}

func (snap Snapshot) Hare() State {
	return snap.Walkers[Hare]
}

func (snap Snapshot) Tortoise() State {
	return snap.Walkers[Tortoise]
}

// TickReport says what happened during one Tick.
type TickReport struct {
	Advanced    bool           // false if the pair was not running
	Arrivals    [NumRoles]bool // walkers that reached a node this tick
	Chained     bool           // the hare started its second hop this tick
	PairStopped bool           // both walkers came to rest and the pair cycle ended
	PairCycles  int            // completed pair cycles, including one ending this tick
	Met         bool           // the pair stopped with both walkers on the same node
	MeetNode    int            // valid when Met is set
}
