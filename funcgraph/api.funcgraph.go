// Package funcgraph implements the functional graph the tortoise and hare run over: an array of successors where
// node i has exactly one outgoing edge, to successor[i].
package funcgraph

import (
	"io"
)

// Rand is the caller-owned random source used to draw successors (*math/rand/v2.Rand satisfies it).
type Rand interface {
	IntN(n int) int
}

// OpenFunc opens a named file for reading (see OSOpener and FSOpener).
type OpenFunc func(name string) (io.ReadCloser, error)

// Source is what a command line token resolves to: either a node count for a random graph or an explicit
// successor sequence.
type Source struct {
	Count  int   // node count when Values is nil
	Values []int // explicit successors
	Path   string
}

// IsSequence reports if this Source holds an explicit successor sequence.
func (src Source) IsSequence() bool {
	return src.Values != nil
}
