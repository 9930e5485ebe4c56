// Package floyd locates the cycle of a functional graph with Floyd's tortoise & hare, and cross-checks it
// against a plain walk.
package floyd

import (
	"github.com/fine-structures/rho/rho"
	"github.com/pkg/errors"
)

// Root is the node every walk starts from.
const Root = 0

// Detect runs Floyd's two-phase algorithm from node 0 and returns where the cycle begins.
//
// Phase 1 advances slow by one and fast by two until they meet, which must happen since every walk in a
// functional graph is eventually periodic. Phase 2 restarts one pointer at the root and steps both by one; they
// meet at the cycle entry after exactly TailLen steps. A final lap around the cycle measures CycleLen.
func Detect(X rho.Graph) (rho.CycleResult, error) {
	var res rho.CycleResult
	if X == nil {
		return res, rho.ErrNilGraph
	}
	if X.Size() < 1 {
		return res, errors.Wrap(rho.ErrInvalidArgument, "empty graph")
	}

	f := X.Neighbor

	// phase 1: tortoise one step, hare two
	slow, fast := Root, Root
	for {
		var err error
		if slow, err = f(slow); err != nil {
			return res, err
		}
		if fast, err = f(fast); err != nil {
			return res, err
		}
		if fast, err = f(fast); err != nil {
			return res, err
		}
		if slow == fast {
			break
		}
	}
	res.Meet = slow

	// phase 2: one from the root, one from the meeting point, same speed
	ptr1, ptr2 := Root, slow
	for ptr1 != ptr2 {
		var err error
		if ptr1, err = f(ptr1); err != nil {
			return res, err
		}
		if ptr2, err = f(ptr2); err != nil {
			return res, err
		}
		res.TailLen++
	}
	res.Entry = ptr2

	// phase 3: once around the cycle
	for next := res.Entry; ; {
		var err error
		if next, err = f(next); err != nil {
			return res, err
		}
		res.CycleLen++
		if next == res.Entry {
			break
		}
	}

	return res, nil
}

// OnCycle reports if iterating successors from node returns to node after a positive number of steps.
func OnCycle(X rho.Graph, node int) (bool, error) {
	next := node
	for steps := 0; steps < X.Size(); steps++ {
		var err error
		if next, err = X.Neighbor(next); err != nil {
			return false, err
		}
		if next == node {
			return true, nil
		}
	}
	return false, nil
}

// Walk returns the distinct nodes visited from the root in visiting order: the tail followed by the cycle.
func Walk(X rho.Graph) ([]int, error) {
	N := X.Size()
	seen := make([]bool, N)
	path := make([]int, 0, N)
	for next := Root; !seen[next]; {
		seen[next] = true
		path = append(path, next)
		var err error
		if next, err = X.Neighbor(next); err != nil {
			return nil, err
		}
	}
	return path, nil
}
