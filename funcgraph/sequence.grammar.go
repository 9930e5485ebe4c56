package funcgraph

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/fine-structures/rho/rho"
	"github.com/pkg/errors"
)

// SequenceExpr is one line of successors: integers separated by commas and/or whitespace, e.g. "3,1,2", "3 1 2",
// or "3, 1, 2,".
type SequenceExpr struct {
	Values []int `parser:"( @Int ( \",\"? @Int )* \",\"? )?"`
}

var sSequenceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "Punct", Pattern: `,`},
	{Name: "whitespace", Pattern: `[ \t\r\n]+`},
})

var sParseSequenceExpr = participle.MustBuild[SequenceExpr](
	participle.Lexer(sSequenceLexer),
	participle.Elide("whitespace"),
	participle.UseLookahead(2),
)

// ParseSequence reads a successor sequence from a single line of text.
// Malformed input yields ErrParse; range checks are left to NewFromSequence.
func ParseSequence(line string) ([]int, error) {
	expr, err := sParseSequenceExpr.ParseString("", line)
	if err != nil {
		return nil, errors.Wrapf(rho.ErrParse, "%q: %v", line, err)
	}
	if expr.Values == nil {
		return []int{}, nil
	}
	return expr.Values, nil
}

// LoadToken resolves a command line token: an integer is a node count, anything else is a path whose first line
// holds a successor sequence.
func LoadToken(token string, open OpenFunc) (Source, error) {
	token = strings.TrimSpace(token)
	if count, err := strconv.Atoi(token); err == nil {
		return Source{Count: count}, nil
	}
	if open == nil {
		return Source{}, errors.Wrapf(rho.ErrInvalidArgument, "%q is not a node count", token)
	}

	file, err := open(token)
	if err != nil {
		return Source{}, errors.Wrapf(err, "open %q", token)
	}
	defer file.Close()

	line, err := readFirstLine(file)
	if err != nil {
		return Source{}, errors.Wrapf(err, "read %q", token)
	}

	values, err := ParseSequence(line)
	if err != nil {
		return Source{}, errors.Wrapf(err, "in %q", token)
	}
	return Source{
		Values: values,
		Path:   token,
	}, nil
}

func readFirstLine(in io.Reader) (string, error) {
	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	return "", scanner.Err()
}

// Build constructs the graph this Source describes.
func (src Source) Build(rng Rand, mode rho.GenMode) (*Graph, error) {
	if src.IsSequence() {
		return NewFromSequence(src.Values)
	}
	return NewRandom(src.Count, rng, mode)
}

// OSOpener opens files from the local file system.
func OSOpener(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// FSOpener opens files from the given fs.FS.
func FSOpener(fsys fs.FS) OpenFunc {
	return func(name string) (io.ReadCloser, error) {
		return fsys.Open(name)
	}
}
