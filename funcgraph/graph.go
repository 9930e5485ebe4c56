package funcgraph

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fine-structures/rho/rho"
	"github.com/pkg/errors"
)

// Graph is an immutable functional graph.
type Graph struct {
	succ []int
}

var _ rho.Graph = (*Graph)(nil)

// NewRandom draws each successor independently and uniformly from the range the given mode allows.
func NewRandom(nodeCount int, rng Rand, mode rho.GenMode) (*Graph, error) {
	if nodeCount < 1 {
		return nil, errors.Wrapf(rho.ErrInvalidArgument, "node count %d must be at least 1", nodeCount)
	}
	if rng == nil {
		return nil, errors.Wrap(rho.ErrInvalidArgument, "nil random source")
	}

	switch mode {
	case rho.GenUniform:
	case rho.GenNoSelf, rho.GenNonZero:
		if nodeCount < 2 {
			return nil, errors.Wrapf(rho.ErrInvalidArgument, "mode %v needs at least 2 nodes (got %d)", mode, nodeCount)
		}
	default:
		return nil, errors.Wrapf(rho.ErrInvalidArgument, "unknown generation mode %d", mode)
	}

	X := &Graph{
		succ: make([]int, nodeCount),
	}
	for i := range X.succ {
		var next int
		switch mode {
		case rho.GenUniform:
			next = rng.IntN(nodeCount)
		case rho.GenNoSelf:
			next = rng.IntN(nodeCount - 1)
			if next >= i {
				next++
			}
		case rho.GenNonZero:
			next = 1 + rng.IntN(nodeCount-1)
		}
		X.succ[i] = next
	}
	return X, nil
}

// NewFromSequence builds a graph from an explicit successor sequence; every value must be a valid index.
func NewFromSequence(values []int) (*Graph, error) {
	N := len(values)
	if N == 0 {
		return nil, errors.Wrap(rho.ErrInvalidArgument, "empty successor sequence")
	}
	for i, vi := range values {
		if vi < 0 || vi >= N {
			// matches both ErrInvalidArgument and ErrOutOfRange
			return nil, fmt.Errorf("%w: %w: successor[%d] = %d is not in [0,%d)", rho.ErrInvalidArgument, rho.ErrOutOfRange, i, vi, N)
		}
	}

	X := &Graph{
		succ: append([]int(nil), values...),
	}
	return X, nil
}

// Size returns the number of nodes.
func (X *Graph) Size() int {
	return len(X.succ)
}

// Neighbor returns the successor of the given node.
func (X *Graph) Neighbor(node int) (int, error) {
	if node < 0 || node >= len(X.succ) {
		return 0, errors.Wrapf(rho.ErrOutOfRange, "node %d is not in [0,%d)", node, len(X.succ))
	}
	return X.succ[node], nil
}

// Successors returns a copy of the successor sequence.
func (X *Graph) Successors() []int {
	return append([]int(nil), X.succ...)
}

// AppendEncoding appends a compact binary key for this graph (node count then each successor, as uvarints).
func (X *Graph) AppendEncoding(dst []byte) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(X.succ)))
	for _, next := range X.succ {
		dst = binary.AppendUvarint(dst, uint64(next))
	}
	return dst
}

// String returns the successor sequence as CSV, the same form ParseSequence reads.
func (X *Graph) String() string {
	b := strings.Builder{}
	b.Grow(4 * len(X.succ))
	for i, next := range X.succ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(next))
	}
	return b.String()
}

// WriteAsString prints the successor line and/or the index line, columns aligned so each successor sits above
// its node index.
func (X *Graph) WriteAsString(out io.Writer, opts rho.PrintOpts) {
	pad := ""
	if len(opts.Label) > 0 {
		pad = strings.Repeat(" ", len(opts.Label)+1)
	}
	if opts.Successors {
		if len(opts.Label) > 0 {
			fmt.Fprintf(out, "%s ", opts.Label)
		}
		X.writeColumns(out, false)
	}
	if opts.Indices {
		io.WriteString(out, pad)
		X.writeColumns(out, true)
	}
}

func (X *Graph) writeColumns(out io.Writer, indices bool) {
	var buf [24]byte
	for i, next := range X.succ {
		width := max(len(strconv.Itoa(i)), len(strconv.Itoa(next)))
		val := next
		if indices {
			val = i
		}
		str := strconv.AppendInt(buf[:0], int64(val), 10)
		if i > 0 {
			io.WriteString(out, ", ")
		}
		io.WriteString(out, strings.Repeat(" ", width-len(str)))
		out.Write(str)
	}
	io.WriteString(out, "\n")
}
