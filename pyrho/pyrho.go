// Package pyrho registers the gpython module "rho", giving scripts access to functional graphs, cycle detection
// and surveys.
package pyrho

import (
	"math/rand/v2"
	"strings"

	"github.com/fine-structures/rho/rho"
	"github.com/fine-structures/rho/floyd"
	"github.com/fine-structures/rho/funcgraph"
	"github.com/go-python/gpython/py"
	"github.com/pkg/errors"
)

var (
	LIB_VERSION = "v1.2026.1"
)

var (
	pyGraphType = py.NewType("Graph", "a functional graph: every node has exactly one successor")
)

type pyGraph struct {
	*funcgraph.Graph
}

func (X pyGraph) Type() *py.Type {
	return pyGraphType
}

func (X pyGraph) M__str__() (py.Object, error) {
	return py.String(X.String()), nil
}

func (X pyGraph) M__repr__() (py.Object, error) {
	return py.String("Graph(\"" + X.String() + "\")"), nil
}

func (X pyGraph) M__len__() (py.Object, error) {
	return py.Int(X.Size()), nil
}

// pyErr maps an error onto the Python exception a script would expect.
func pyErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, rho.ErrOutOfRange):
		return py.ExceptionNewf(py.IndexError, "%v", err)
	case errors.Is(err, rho.ErrInvalidArgument), errors.Is(err, rho.ErrParse):
		return py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.ExceptionNewf(py.RuntimeError, "%v", err)
}

func getGraph(obj py.Object) (pyGraph, error) {
	X, ok := obj.(pyGraph)
	if !ok {
		return X, py.ExceptionNewf(py.TypeError, "expected Graph object (got %v)", obj.Type().Name)
	}
	return X, nil
}

func newRand(seed py.Object) (*rand.Rand, error) {
	s := int64(1)
	if seed != nil {
		val, err := py.GetInt(seed)
		if err != nil {
			return nil, err
		}
		s = int64(val)
	}
	return rand.New(rand.NewPCG(uint64(s), 0x5eed)), nil
}

func getMode(obj py.Object) (rho.GenMode, error) {
	if obj == nil {
		return rho.GenNonZero, nil
	}
	name, ok := obj.(py.String)
	if !ok {
		return 0, py.ExceptionNewf(py.TypeError, "mode must be a str (got %v)", obj.Type().Name)
	}
	mode, ok := rho.ParseGenMode(string(name))
	if !ok {
		return 0, py.ExceptionNewf(py.ValueError, "unknown mode %q", string(name))
	}
	return mode, nil
}

// Graph(src[, seed[, mode]]) where src is a node count, a sequence string such as "1,2,0", or a tuple/list of
// successors.
func py_NewGraph(module py.Object, args py.Tuple) (py.Object, error) {
	var src, seed, modeObj py.Object
	err := py.ParseTuple(args, "O|OO", &src, &seed, &modeObj)
	if err != nil {
		return nil, err
	}

	var X *funcgraph.Graph
	switch src := src.(type) {
	case py.Int:
		rng, err := newRand(seed)
		if err != nil {
			return nil, err
		}
		mode, err := getMode(modeObj)
		if err != nil {
			return nil, err
		}
		X, err = funcgraph.NewRandom(int(src), rng, mode)
		if err != nil {
			return nil, pyErr(err)
		}

	case py.String:
		values, err := funcgraph.ParseSequence(string(src))
		if err != nil {
			return nil, pyErr(err)
		}
		if X, err = funcgraph.NewFromSequence(values); err != nil {
			return nil, pyErr(err)
		}

	case py.Tuple, *py.List:
		var items py.Tuple
		if list, isList := src.(*py.List); isList {
			items = list.Items
		} else {
			items = src.(py.Tuple)
		}
		values := make([]int, len(items))
		for i, item := range items {
			val, err := py.GetInt(item)
			if err != nil {
				return nil, err
			}
			values[i] = int(val)
		}
		if X, err = funcgraph.NewFromSequence(values); err != nil {
			return nil, pyErr(err)
		}

	default:
		return nil, py.ExceptionNewf(py.TypeError, "Graph() takes a node count, a str or a sequence of successors (got %v)", src.Type().Name)
	}

	return py.Object(pyGraph{X}), nil
}

func py_Graph_Size(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	return py.Int(X.Size()), nil
}

func py_Graph_Neighbor(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	var nodeObj py.Object
	if err := py.ParseTuple(args, "i", &nodeObj); err != nil {
		return nil, err
	}
	next, err := X.Neighbor(int(nodeObj.(py.Int)))
	if err != nil {
		return nil, pyErr(err)
	}
	return py.Int(next), nil
}

func py_Graph_Successors(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	succ := X.Successors()
	items := make(py.Tuple, len(succ))
	for i, next := range succ {
		items[i] = py.Int(next)
	}
	return items, nil
}

func resultTuple(res rho.CycleResult) py.Tuple {
	return py.Tuple{
		py.Int(res.Entry),
		py.Int(res.TailLen),
		py.Int(res.CycleLen),
	}
}

// detect(graph) -> (entry, tail, cycle)
func py_Detect(module py.Object, args py.Tuple) (py.Object, error) {
	var graphObj py.Object
	if err := py.ParseTuple(args, "O", &graphObj); err != nil {
		return nil, err
	}
	X, err := getGraph(graphObj)
	if err != nil {
		return nil, err
	}
	res, err := floyd.Detect(X)
	if err != nil {
		return nil, pyErr(err)
	}
	return resultTuple(res), nil
}

// verify(graph) -> (entry, tail, cycle), raising RuntimeError if the walk and Floyd disagree
func py_Verify(module py.Object, args py.Tuple) (py.Object, error) {
	var graphObj py.Object
	if err := py.ParseTuple(args, "O", &graphObj); err != nil {
		return nil, err
	}
	X, err := getGraph(graphObj)
	if err != nil {
		return nil, err
	}
	res, err := floyd.Verify(X)
	if err != nil {
		return nil, pyErr(err)
	}
	return resultTuple(res), nil
}

// survey(nodes, count[, seed[, mode]]) -> str
func py_Survey(module py.Object, args py.Tuple) (py.Object, error) {
	var nodes, count, seed, modeObj py.Object
	if err := py.ParseTuple(args, "ii|OO", &nodes, &count, &seed, &modeObj); err != nil {
		return nil, err
	}
	rng, err := newRand(seed)
	if err != nil {
		return nil, err
	}
	mode, err := getMode(modeObj)
	if err != nil {
		return nil, err
	}

	rpt, err := floyd.Survey(floyd.SurveyOpts{
		Nodes: int(nodes.(py.Int)),
		Count: int(count.(py.Int)),
		Mode:  mode,
	}, rng)
	if err != nil {
		return nil, pyErr(err)
	}

	out := strings.Builder{}
	if _, err = rpt.WriteTo(&out); err != nil {
		return nil, pyErr(err)
	}
	return py.String(out.String()), nil
}

func init() {

	/////////////////////////////////
	// Graph
	{
		pyGraphType.Dict["size"] = py.MustNewMethod("size", py_Graph_Size, 0, "returns the number of nodes")
		pyGraphType.Dict["neighbor"] = py.MustNewMethod("neighbor", py_Graph_Neighbor, 0, "returns the successor of the given node")
		pyGraphType.Dict["successors"] = py.MustNewMethod("successors", py_Graph_Successors, 0, "returns the successor of every node as a tuple")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("Graph", py_NewGraph, 0, "Graph(count|str|seq[, seed[, mode]]) builds a functional graph"),
			py.MustNewMethod("detect", py_Detect, 0, "detect(graph) returns (entry, tail, cycle) of the cycle reached from node 0"),
			py.MustNewMethod("verify", py_Verify, 0, "verify(graph) is detect() cross-checked against a plain walk"),
			py.MustNewMethod("survey", py_Survey, 0, "survey(nodes, count[, seed[, mode]]) tallies the shape of random graphs"),
		}

		globals := py.StringDict{
			"LIB_VERSION": py.String(LIB_VERSION),
			"ROOT":        py.Int(floyd.Root),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "rho",
				Doc:  "tortoise & hare over functional graphs",
			},
			Methods: methods,
			Globals: globals,
		})
	}
}
