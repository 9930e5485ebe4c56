package floyd

import (
	"fmt"
	"io"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/fine-structures/rho/rho"
	"github.com/fine-structures/rho/funcgraph"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// SurveyOpts specifies a batch of random graphs to run Detect over.
type SurveyOpts struct {
	Nodes  int         // node count of each graph
	Count  int         // number of graphs to draw
	Mode   rho.GenMode // how successors are drawn
	Verify bool        // if set, each result is cross-checked with Verify
}

// Histogram counts occurrences per value, iterated in ascending value order.
type Histogram struct {
	tree *redblacktree.Tree
}

func newHistogram() Histogram {
	return Histogram{
		tree: redblacktree.NewWithIntComparator(),
	}
}

func (h Histogram) add(val int) {
	count := 0
	if prev, found := h.tree.Get(val); found {
		count = prev.(int)
	}
	h.tree.Put(val, count+1)
}

// Count returns how many times val was added.
func (h Histogram) Count(val int) int {
	if prev, found := h.tree.Get(val); found {
		return prev.(int)
	}
	return 0
}

// Each calls fn for every value in ascending order.
func (h Histogram) Each(fn func(val, count int)) {
	it := h.tree.Iterator()
	for it.Next() {
		fn(it.Key().(int), it.Value().(int))
	}
}

// Total returns the sum of all counts.
func (h Histogram) Total() int {
	total := 0
	h.Each(func(_, count int) {
		total += count
	})
	return total
}

// SurveyReport is the outcome of Survey.
type SurveyReport struct {
	Opts     SurveyOpts
	Drawn    int       // graphs generated
	Unique   int       // graphs with a distinct successor sequence
	Entry    Histogram // cycle entry node -> count (unique graphs only)
	TailLen  Histogram // tail length -> count (unique graphs only)
	CycleLen Histogram // cycle length -> count (unique graphs only)
}

// Survey draws opts.Count random graphs, drops repeated successor sequences, and tallies the rho-shape of each
// remaining graph.
func Survey(opts SurveyOpts, rng funcgraph.Rand) (*SurveyReport, error) {
	if opts.Count < 1 {
		return nil, errors.Wrapf(rho.ErrInvalidArgument, "survey count %d must be at least 1", opts.Count)
	}

	rpt := &SurveyReport{
		Opts:     opts,
		Entry:    newHistogram(),
		TailLen:  newHistogram(),
		CycleLen: newHistogram(),
	}

	seen := NewKeySet()
	defer seen.Close()

	// one store serves every walk the oracle checks
	visited := NewVisitSet()
	defer visited.Close()

	var scrap [128]byte
	for i := 0; i < opts.Count; i++ {
		X, err := funcgraph.NewRandom(opts.Nodes, rng, opts.Mode)
		if err != nil {
			return nil, err
		}
		rpt.Drawn++

		isNew, err := seen.TryAdd(X.AppendEncoding(scrap[:0]))
		if err != nil {
			return nil, err
		}
		if !isNew {
			continue
		}
		rpt.Unique++

		var res rho.CycleResult
		if opts.Verify {
			res, err = visited.Verify(X)
		} else {
			res, err = Detect(X)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "graph %v", X)
		}

		rpt.Entry.add(res.Entry)
		rpt.TailLen.add(res.TailLen)
		rpt.CycleLen.add(res.CycleLen)
	}

	klog.V(2).Infof("survey: %d graphs of %d nodes, %d unique", rpt.Drawn, opts.Nodes, rpt.Unique)
	return rpt, nil
}

// WriteTo prints the report as labeled CSV lines.
func (rpt *SurveyReport) WriteTo(out io.Writer) (int64, error) {
	cw := &countingWriter{out: out}
	fmt.Fprintf(cw, "nodes=%d,mode=%v,drawn=%d,unique=%d\n", rpt.Opts.Nodes, rpt.Opts.Mode, rpt.Drawn, rpt.Unique)

	for _, row := range []struct {
		label string
		hist  Histogram
	}{
		{"entry", rpt.Entry},
		{"tail", rpt.TailLen},
		{"cycle", rpt.CycleLen},
	} {
		fmt.Fprintf(cw, "%-5s", row.label)
		row.hist.Each(func(val, count int) {
			fmt.Fprintf(cw, " %d:%d", val, count)
		})
		io.WriteString(cw, "\n")
	}
	return cw.n, cw.err
}

type countingWriter struct {
	out io.Writer
	n   int64
	err error
}

func (cw *countingWriter) Write(buf []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.out.Write(buf)
	cw.n += int64(n)
	cw.err = err
	return n, err
}
