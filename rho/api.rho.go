// Package rho holds the types shared by the tortoise & hare packages: the read-only view of a functional graph,
// the cycle detection result, and the sentinel errors every package wraps.
package rho

// Graph is a read-only functional graph: every node in [0, Size()) has exactly one successor.
type Graph interface {

	// Size returns the number of nodes.
	Size() int

	// Neighbor returns the single successor of the given node (ErrOutOfRange if node is not a valid index).
	Neighbor(node int) (int, error)
}

// CycleResult describes the rho-shape reachable from node 0.
type CycleResult struct {
	Entry    int // first node of the cycle reachable from node 0
	Meet     int // node where tortoise and hare first coincide (phase 1)
	TailLen  int // steps from node 0 to Entry (mu)
	CycleLen int // number of nodes on the cycle (lambda)
}

// GenMode selects how a random successor is drawn for node i of an n-node graph.
type GenMode int32

const (
	GenUniform GenMode = iota // [0, n)
	GenNoSelf                 // [0, n) \ {i}
	GenNonZero                // [1, n-1]; node 0 never has an incoming edge
)

var genModeNames = [...]string{"uniform", "noself", "nonzero"}

func (mode GenMode) String() string {
	if mode < 0 || int(mode) >= len(genModeNames) {
		return "unknown"
	}
	return genModeNames[mode]
}

// ParseGenMode maps a mode name ("uniform", "noself", "nonzero") to a GenMode.
func ParseGenMode(name string) (GenMode, bool) {
	for i, str := range genModeNames {
		if str == name {
			return GenMode(i), true
		}
	}
	return GenUniform, false
}

// PrintOpts specifies what is written when printing a graph
type PrintOpts struct {
	Label      string // Prefix label
	Successors bool   // If set, prints the successor sequence
	Indices    bool   // If set, prints the index sequence 0..n-1
	Cycle      bool   // If set, prints the detected cycle entry
}

// DefaultPrintOpts prints everything the startup check needs.
var DefaultPrintOpts = PrintOpts{
	Successors: true,
	Indices:    true,
	Cycle:      true,
}
